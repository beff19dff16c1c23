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
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/benedict-drio/decentralized-autonomous-organization/gov"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	defaultTreasury = "treasury"
	defaultApiPort  = 8080
)

type Config struct {
	promRegistry    prometheus.Registerer
	logger          *slog.Logger
	ledger          gov.Ledger
	clock           gov.Clock
	contractInvoker gov.ContractInvoker
	genesisBalances map[string]uint64
	params          gov.Params
	dataDir         string
	treasury        string
	apiHost         string
	apiPort         uint
	blockInterval   time.Duration
	shutdownTimeout time.Duration
	tracing         bool
	tracingStdout   bool
}

func (d *Dao) configValidate() error {
	if d.config.apiPort > 65535 {
		return fmt.Errorf("invalid API port: %d", d.config.apiPort)
	}
	if d.config.blockInterval < 0 {
		return fmt.Errorf(
			"invalid block interval: %s",
			d.config.blockInterval,
		)
	}
	if d.config.params != (gov.Params{}) {
		if err := d.config.params.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ConfigOptionFunc is a type that represents functions that modify the DAO config
type ConfigOptionFunc func(*Config)

// NewConfig creates a new dao config with the specified options
func NewConfig(opts ...ConfigOptionFunc) Config {
	c := Config{
		// Default logger will throw away logs
		// We do this so we don't have to add guards around every log operation
		logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	// Apply options
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithApiHost specifies the host for the governance REST API listener to bind. The default is to listen
// on all interfaces
func WithApiHost(host string) ConfigOptionFunc {
	return func(c *Config) {
		c.apiHost = host
	}
}

// WithApiPort specifies the port to use for the governance REST API listener. This defaults to port 8080
func WithApiPort(port uint) ConfigOptionFunc {
	return func(c *Config) {
		c.apiPort = port
	}
}

// WithBlockInterval specifies the wall clock duration of a single block for the built-in ticking clock.
// The default is one second. This has no effect when a clock is provided via WithClock
func WithBlockInterval(interval time.Duration) ConfigOptionFunc {
	return func(c *Config) {
		c.blockInterval = interval
	}
}

// WithClock specifies the block height source for the governance engine. The default is a ticking
// clock that advances one block per block interval
func WithClock(clock gov.Clock) ConfigOptionFunc {
	return func(c *Config) {
		c.clock = clock
	}
}

// WithContractInvoker specifies the executor for the external call of contract-call proposals.
// The default is none, in which case contract calls are recorded but not executed
func WithContractInvoker(invoker gov.ContractInvoker) ConfigOptionFunc {
	return func(c *Config) {
		c.contractInvoker = invoker
	}
}

// WithDatabasePath specifies the persistent data directory to use. The default is to store everything in memory
func WithDatabasePath(dataDir string) ConfigOptionFunc {
	return func(c *Config) {
		c.dataDir = dataDir
	}
}

// WithGenesisBalances specifies the token balances used to seed the built-in ledger. This has no
// effect when a ledger is provided via WithLedger
func WithGenesisBalances(balances map[string]uint64) ConfigOptionFunc {
	return func(c *Config) {
		c.genesisBalances = balances
	}
}

// WithLedger specifies the value ledger used for stake custody and treasury transfers. The default
// is an in-process token ledger seeded from the genesis balances
func WithLedger(ledger gov.Ledger) ConfigOptionFunc {
	return func(c *Config) {
		c.ledger = ledger
	}
}

// WithLogger specifies the logger to use. This defaults to discarding log output
func WithLogger(logger *slog.Logger) ConfigOptionFunc {
	return func(c *Config) {
		c.logger = logger
	}
}

// WithParams specifies the governance parameters used to seed a fresh database. Parameters already
// persisted in the database take precedence on restart
func WithParams(params gov.Params) ConfigOptionFunc {
	return func(c *Config) {
		c.params = params
	}
}

// WithPrometheusRegistry specifies a prometheus.Registerer instance to add metrics to. In most cases, prometheus.DefaultRegistry would be
// a good choice to get metrics working
func WithPrometheusRegistry(registry prometheus.Registerer) ConfigOptionFunc {
	return func(c *Config) {
		c.promRegistry = registry
	}
}

// WithShutdownTimeout specifies the timeout for graceful shutdown. The default is 30 seconds
func WithShutdownTimeout(timeout time.Duration) ConfigOptionFunc {
	return func(c *Config) {
		c.shutdownTimeout = timeout
	}
}

// WithTracing enables tracing. By default, spans are submitted to a HTTP(s) endpoint using OTLP. This can be configured
// using the OTEL_EXPORTER_OTLP_* env vars documented in the README for [go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp]
func WithTracing(tracing bool) ConfigOptionFunc {
	return func(c *Config) {
		c.tracing = tracing
	}
}

// WithTracingStdout enables tracing output to stdout. This also requires tracing to enabled separately. This is mostly useful for debugging
func WithTracingStdout(stdout bool) ConfigOptionFunc {
	return func(c *Config) {
		c.tracingStdout = stdout
	}
}

// WithTreasury specifies the identity that holds staked funds and the treasury balance. The
// default is "treasury"
func WithTreasury(identity string) ConfigOptionFunc {
	return func(c *Config) {
		c.treasury = identity
	}
}
