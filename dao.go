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
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benedict-drio/decentralized-autonomous-organization/api"
	"github.com/benedict-drio/decentralized-autonomous-organization/database"
	"github.com/benedict-drio/decentralized-autonomous-organization/event"
	"github.com/benedict-drio/decentralized-autonomous-organization/gov"
	"github.com/benedict-drio/decentralized-autonomous-organization/token"
)

type Dao struct {
	eventBus      *event.EventBus
	db            *database.Database
	ledger        gov.Ledger
	engine        *gov.Engine
	api           *api.Api
	shutdownFuncs []func(context.Context) error
	config        Config
	done          chan struct{}
	shutdownOnce  sync.Once
}

func New(cfg Config) (*Dao, error) {
	eventBus := event.NewEventBus(cfg.promRegistry, cfg.logger)
	d := &Dao{
		config:   cfg,
		eventBus: eventBus,
		done:     make(chan struct{}),
	}
	if err := d.configValidate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return d, nil
}

// Engine returns the governance engine. It is nil until Run has been called
func (d *Dao) Engine() *gov.Engine {
	return d.engine
}

func (d *Dao) Run(ctx context.Context) error {
	// Configure tracing
	if d.config.tracing {
		if err := d.setupTracing(); err != nil {
			return err
		}
	}
	// Load database
	dbNeedsRecovery := false
	dbConfig := &database.Config{
		DataDir:      d.config.dataDir,
		Logger:       d.config.logger,
		PromRegistry: d.config.promRegistry,
	}
	db, err := database.New(dbConfig)
	if db == nil {
		d.config.logger.Error(
			"failed to create database",
			"error",
			"empty database returned",
		)
		return errors.New("empty database returned")
	}
	d.db = db
	if err != nil {
		var dbErr database.CommitTimestampError
		if !errors.As(err, &dbErr) {
			return fmt.Errorf("failed to open database: %w", err)
		}
		d.config.logger.Warn(
			"database initialization error, needs recovery",
			"error",
			err,
		)
		dbNeedsRecovery = true
	}
	// Run DB recovery if needed
	if dbNeedsRecovery {
		if err := d.db.RecoverCommitTimestampConflict(); err != nil {
			return fmt.Errorf("failed to recover database: %w", err)
		}
	}
	// Configure value ledger
	d.ledger = d.config.ledger
	if d.ledger == nil {
		tokenLedger, err := token.NewLedger(token.LedgerConfig{
			Logger:          d.config.logger,
			PromRegistry:    d.config.promRegistry,
			InitialBalances: d.config.genesisBalances,
		})
		if err != nil {
			return fmt.Errorf("failed to create token ledger: %w", err)
		}
		d.ledger = tokenLedger
	}
	// Configure block clock
	clock := d.config.clock
	if clock == nil {
		clock = gov.NewTickingClock(d.config.blockInterval)
	}
	// Load governance engine
	treasury := d.config.treasury
	if treasury == "" {
		treasury = defaultTreasury
	}
	engine, err := gov.NewEngine(gov.EngineConfig{
		Logger:          d.config.logger,
		EventBus:        d.eventBus,
		Database:        d.db,
		Ledger:          d.ledger,
		Clock:           clock,
		ContractInvoker: d.config.contractInvoker,
		PromRegistry:    d.config.promRegistry,
		Treasury:        treasury,
		Params:          d.config.params,
	})
	if err != nil {
		return fmt.Errorf("failed to load governance engine: %w", err)
	}
	d.engine = engine
	// Start API listener
	apiPort := d.config.apiPort
	if apiPort == 0 {
		apiPort = defaultApiPort
	}
	apiServer, err := api.New(api.ApiConfig{
		Logger:       d.config.logger,
		Engine:       d.engine,
		PromRegistry: d.config.promRegistry,
		Host:         d.config.apiHost,
		Port:         apiPort,
	})
	if err != nil {
		return fmt.Errorf("failed to create API server: %w", err)
	}
	d.api = apiServer
	if err := d.api.Start(ctx); err != nil {
		return err
	}

	// Wait for shutdown signal
	select {
	case <-ctx.Done():
	case <-d.done:
	}
	return nil
}

func (d *Dao) Stop() error {
	var err error
	d.shutdownOnce.Do(func() {
		err = d.shutdown()
	})
	return err
}

func (d *Dao) shutdown() error {
	// Create shutdown context with timeout (default 30s if not configured)
	shutdownTimeout := 30 * time.Second
	if d.config.shutdownTimeout > 0 {
		shutdownTimeout = d.config.shutdownTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var err error

	d.config.logger.Debug("starting graceful shutdown")

	// Phase 1: Stop accepting new work
	d.config.logger.Debug("shutdown phase 1: stopping API listener")

	if d.api != nil {
		if stopErr := d.api.Stop(ctx); stopErr != nil {
			err = errors.Join(err, fmt.Errorf("api shutdown: %w", stopErr))
		}
	}

	// Phase 2: Flush state and close database
	d.config.logger.Debug("shutdown phase 2: closing database")

	if d.db != nil {
		if closeErr := d.db.Close(); closeErr != nil {
			err = errors.Join(
				err,
				fmt.Errorf("database close: %w", closeErr),
			)
		}
	}

	// Phase 3: Cleanup resources
	d.config.logger.Debug("shutdown phase 3: cleanup resources")

	// Call registered shutdown functions
	for _, fn := range d.shutdownFuncs {
		if fnErr := fn(ctx); fnErr != nil {
			err = errors.Join(err, fmt.Errorf("shutdown function: %w", fnErr))
		}
	}
	d.shutdownFuncs = nil

	if d.eventBus != nil {
		d.eventBus.Stop()
	}

	d.config.logger.Debug("graceful shutdown complete")
	close(d.done)
	return err
}
