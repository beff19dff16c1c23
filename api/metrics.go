// Copyright 2026 Blink Labs Software
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

package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type apiMetrics struct {
	requestsTotal *prometheus.CounterVec
}

func (a *Api) initMetrics() {
	promautoFactory := promauto.With(a.config.PromRegistry)
	a.metrics.requestsTotal = promautoFactory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "HTTP requests by method, route pattern, and status",
		},
		[]string{"method", "pattern", "status"},
	)
}

// statusRecorder captures the response status code for metrics
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// handleFunc registers a handler wrapped with request metrics. The route
// pattern label comes from the mux pattern, not the raw URL, to keep the
// label cardinality bounded.
func (a *Api) handleFunc(
	mux *http.ServeMux,
	pattern string,
	handler http.HandlerFunc,
) {
	method, _, found := strings.Cut(pattern, " ")
	if !found {
		method = ""
	}
	mux.HandleFunc(
		pattern,
		func(w http.ResponseWriter, r *http.Request) {
			recorder := &statusRecorder{
				ResponseWriter: w,
				status:         http.StatusOK,
			}
			handler(recorder, r)
			a.metrics.requestsTotal.WithLabelValues(
				method,
				pattern,
				strconv.Itoa(recorder.status),
			).Inc()
		},
	)
}
