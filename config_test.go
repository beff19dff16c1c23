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

package dao

import (
	"log/slog"
	"testing"
	"time"

	"github.com/benedict-drio/decentralized-autonomous-organization/gov"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()

	// Default logger discards output but is never nil
	assert.NotNil(t, cfg.logger)
	assert.Empty(t, cfg.dataDir)
	assert.Empty(t, cfg.treasury)
	assert.Zero(t, cfg.apiPort)
	assert.Zero(t, cfg.blockInterval)
	assert.False(t, cfg.tracing)
}

func TestConfigOptions(t *testing.T) {
	logger := slog.Default()
	promRegistry := prometheus.NewRegistry()
	clock := gov.NewManualClock(42)
	params := gov.DefaultParams()
	balances := map[string]uint64{"alice": 1000}

	cfg := NewConfig(
		WithApiHost("127.0.0.1"),
		WithApiPort(9000),
		WithBlockInterval(250*time.Millisecond),
		WithClock(clock),
		WithDatabasePath("/data/dao"),
		WithGenesisBalances(balances),
		WithLogger(logger),
		WithParams(params),
		WithPrometheusRegistry(promRegistry),
		WithShutdownTimeout(5*time.Second),
		WithTracing(true),
		WithTracingStdout(true),
		WithTreasury("vault"),
	)

	assert.Equal(t, "127.0.0.1", cfg.apiHost)
	assert.Equal(t, uint(9000), cfg.apiPort)
	assert.Equal(t, 250*time.Millisecond, cfg.blockInterval)
	assert.Same(t, clock, cfg.clock)
	assert.Equal(t, "/data/dao", cfg.dataDir)
	assert.Equal(t, balances, cfg.genesisBalances)
	assert.Same(t, logger, cfg.logger)
	assert.Equal(t, params, cfg.params)
	assert.Same(t, promRegistry, cfg.promRegistry)
	assert.Equal(t, 5*time.Second, cfg.shutdownTimeout)
	assert.True(t, cfg.tracing)
	assert.True(t, cfg.tracingStdout)
	assert.Equal(t, "vault", cfg.treasury)
}

func TestWithGenesisBalancesNil(t *testing.T) {
	cfg := NewConfig(WithGenesisBalances(nil))
	assert.Nil(t, cfg.genesisBalances)
}
