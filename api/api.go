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
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/benedict-drio/decentralized-autonomous-organization/gov"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

type ApiConfig struct {
	Logger       *slog.Logger
	Engine       *gov.Engine
	PromRegistry prometheus.Registerer
	Host         string
	// Port zero selects an ephemeral port
	Port uint
}

// Api is the governance REST server. It exposes the engine's read
// accessors and operations over JSON and serves HTTP/2 cleartext.
type Api struct {
	config     ApiConfig
	logger     *slog.Logger
	engine     *gov.Engine
	metrics    apiMetrics
	httpServer *http.Server
	mu         sync.Mutex
}

func New(cfg ApiConfig) (*Api, error) {
	if cfg.Engine == nil {
		return nil, errors.New("governance engine is required")
	}
	if cfg.Host == "" {
		cfg.Host = "0.0.0.0"
	}
	logger := cfg.Logger
	if logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	a := &Api{
		config: cfg,
		engine: cfg.Engine,
		logger: logger.With("component", "api"),
	}
	a.initMetrics()
	return a, nil
}

// Start begins serving in a background goroutine. The listening socket is
// bound before Start returns so port conflicts surface immediately. The
// server shuts down when the context is cancelled or Stop is called.
func (a *Api) Start(ctx context.Context) error {
	a.mu.Lock()
	if a.httpServer != nil {
		a.mu.Unlock()
		return errors.New("server already started")
	}
	server := &http.Server{
		Addr: net.JoinHostPort(
			a.config.Host,
			strconv.FormatUint(uint64(a.config.Port), 10),
		),
		// Use h2c so we can serve HTTP/2 without TLS
		Handler:           h2c.NewHandler(a.routes(), &http2.Server{}),
		ReadHeaderTimeout: 60 * time.Second,
	}
	a.httpServer = server
	a.mu.Unlock()

	if err := a.startServer(server); err != nil {
		a.mu.Lock()
		a.httpServer = nil
		a.mu.Unlock()
		return err
	}
	a.logger.Info(
		"governance API listener started on " + server.Addr,
	)

	go func() {
		<-ctx.Done()
		a.mu.Lock()
		srv := a.httpServer
		a.httpServer = nil
		a.mu.Unlock()
		if srv != nil {
			a.logger.Debug(
				"context cancelled, shutting down governance API server",
			)
			//nolint:contextcheck
			shutdownCtx, cancel := context.WithTimeout(
				context.Background(),
				30*time.Second,
			)
			defer cancel()
			//nolint:contextcheck
			if err := srv.Shutdown(shutdownCtx); err != nil {
				a.logger.Error(
					"failed to shutdown governance API server on context cancellation",
					"error", err,
				)
			}
		}
	}()
	return nil
}

// Stop gracefully shuts down the HTTP server
func (a *Api) Stop(ctx context.Context) error {
	a.mu.Lock()
	srv := a.httpServer
	a.httpServer = nil
	a.mu.Unlock()
	if srv != nil {
		a.logger.Debug("shutting down governance API server")
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf(
				"failed to shutdown governance API server: %w",
				err,
			)
		}
	}
	return nil
}

// routes builds the request mux with instrumented handlers
func (a *Api) routes() *http.ServeMux {
	mux := http.NewServeMux()
	a.handleFunc(mux, "GET /", a.handleRoot)
	a.handleFunc(mux, "GET /health", a.handleHealth)
	a.handleFunc(mux, "GET /api/member/{id}", a.handleMember)
	a.handleFunc(mux, "GET /api/power/{id}", a.handlePower)
	a.handleFunc(mux, "GET /api/delegation/{id}", a.handleDelegation)
	a.handleFunc(mux, "GET /api/proposals", a.handleProposals)
	a.handleFunc(mux, "GET /api/proposal/{id}", a.handleProposal)
	a.handleFunc(mux, "GET /api/proposal/{id}/votes", a.handleProposalVotes)
	a.handleFunc(mux, "GET /api/params", a.handleParams)
	a.handleFunc(mux, "GET /api/events", a.handleEvents)
	a.handleFunc(mux, "GET /api/timelock/{id}/{op}", a.handleTimelock)
	a.handleFunc(mux, "POST /api/stake", a.handleStake)
	a.handleFunc(mux, "POST /api/unstake/request", a.handleUnstakeRequest)
	a.handleFunc(mux, "POST /api/unstake", a.handleUnstake)
	a.handleFunc(mux, "POST /api/delegate", a.handleDelegate)
	a.handleFunc(mux, "POST /api/undelegate", a.handleUndelegate)
	a.handleFunc(mux, "POST /api/proposal", a.handleCreateProposal)
	a.handleFunc(mux, "POST /api/proposal/{id}/vote", a.handleVote)
	a.handleFunc(mux, "POST /api/proposal/{id}/execute", a.handleExecute)
	a.handleFunc(mux, "POST /api/rewards/claim", a.handleClaimRewards)
	a.handleFunc(mux, "POST /api/owner/init", a.handleOwnerInit)
	a.handleFunc(
		mux,
		"POST /api/owner/change/request",
		a.handleOwnerChangeRequest,
	)
	a.handleFunc(
		mux,
		"POST /api/owner/change/execute",
		a.handleOwnerChangeExecute,
	)
	return mux
}

// startServer binds the listening socket first so port conflicts are
// detected immediately, then serves in a background goroutine
func (a *Api) startServer(server *http.Server) error {
	listenConfig := net.ListenConfig{Control: socketControl}
	ln, err := listenConfig.Listen(
		context.Background(),
		"tcp",
		server.Addr,
	)
	if err != nil {
		return fmt.Errorf(
			"failed to listen for governance API server: %w",
			err,
		)
	}
	go func() {
		if err := server.Serve(ln); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			a.logger.Error(
				"governance API server error",
				"error", err,
			)
		}
	}()
	return nil
}
