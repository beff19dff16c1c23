// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gov

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type engineMetrics struct {
	operationsTotal *prometheus.CounterVec
	votesCast       prometheus.Counter
	totalStaked     prometheus.Gauge
	proposalCount   prometheus.Gauge
}

func (e *Engine) initMetrics() {
	promautoFactory := promauto.With(e.config.PromRegistry)
	e.metrics.operationsTotal = promautoFactory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gov_operations_total",
			Help: "governance operations by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)
	e.metrics.votesCast = promautoFactory.NewCounter(prometheus.CounterOpts{
		Name: "gov_votes_cast_total",
		Help: "total votes cast",
	})
	e.metrics.totalStaked = promautoFactory.NewGauge(prometheus.GaugeOpts{
		Name: "gov_total_staked",
		Help: "sum of staked amounts across all members",
	})
	e.metrics.proposalCount = promautoFactory.NewGauge(prometheus.GaugeOpts{
		Name: "gov_proposal_count",
		Help: "number of proposals created",
	})
}

// observeOperation records the outcome of a public operation
func (e *Engine) observeOperation(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	e.metrics.operationsTotal.WithLabelValues(operation, outcome).Inc()
}
