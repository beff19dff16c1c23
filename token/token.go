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

package token

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAccount    = errors.New("invalid account")
	ErrSupplyOverflow    = errors.New("total supply overflow")
)

type LedgerConfig struct {
	PromRegistry prometheus.Registerer
	Logger       *slog.Logger
	// InitialBalances seeds accounts at construction time. The map is
	// copied; later changes to it are not observed.
	InitialBalances map[string]uint64
}

// Ledger is an in-process value ledger. It implements the transfer
// interface the governance engine depends on and exists for deployments
// without an external asset backend.
type Ledger struct {
	mutex   sync.RWMutex
	config  LedgerConfig
	logger  *slog.Logger
	metrics struct {
		transfersTotal prometheus.Counter
		totalSupply    prometheus.Gauge
	}
	balances map[string]uint64
	supply   uint64
}

func NewLedger(config LedgerConfig) (*Ledger, error) {
	l := &Ledger{
		config:   config,
		balances: make(map[string]uint64),
	}
	if config.Logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		l.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	} else {
		l.logger = config.Logger
	}
	promautoFactory := promauto.With(config.PromRegistry)
	l.metrics.transfersTotal = promautoFactory.NewCounter(
		prometheus.CounterOpts{
			Name: "token_transfers_total",
			Help: "total ledger transfers applied",
		},
	)
	l.metrics.totalSupply = promautoFactory.NewGauge(
		prometheus.GaugeOpts{
			Name: "token_total_supply",
			Help: "total value tracked by the ledger",
		},
	)
	for account, amount := range config.InitialBalances {
		if err := l.mint(account, amount); err != nil {
			return nil, err
		}
	}
	l.metrics.totalSupply.Set(float64(l.supply))
	return l, nil
}

// Transfer moves amount from one account to another. It fails with
// ErrInsufficientFunds when the source balance is too small and leaves
// both accounts untouched on any failure.
func (l *Ledger) Transfer(amount uint64, from string, to string) error {
	if from == "" || to == "" {
		return fmt.Errorf("%w: empty account", ErrInvalidAccount)
	}
	l.mutex.Lock()
	defer l.mutex.Unlock()
	balance := l.balances[from]
	if balance < amount {
		return fmt.Errorf(
			"%w: account %s holds %d, transfer needs %d",
			ErrInsufficientFunds,
			from,
			balance,
			amount,
		)
	}
	l.balances[from] = balance - amount
	l.balances[to] += amount
	l.metrics.transfersTotal.Inc()
	l.logger.Debug(
		"applied transfer",
		"component", "token",
		"from", from,
		"to", to,
		"amount", amount,
	)
	return nil
}

// Mint creates new value in an account and grows the total supply
func (l *Ledger) Mint(account string, amount uint64) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if err := l.mint(account, amount); err != nil {
		return err
	}
	l.metrics.totalSupply.Set(float64(l.supply))
	l.logger.Debug(
		"minted value",
		"component", "token",
		"account", account,
		"amount", amount,
	)
	return nil
}

func (l *Ledger) mint(account string, amount uint64) error {
	if account == "" {
		return fmt.Errorf("%w: empty account", ErrInvalidAccount)
	}
	if amount > math.MaxUint64-l.supply {
		return ErrSupplyOverflow
	}
	l.balances[account] += amount
	l.supply += amount
	return nil
}

// BalanceOf returns the current balance for an account. Unknown accounts
// hold zero.
func (l *Ledger) BalanceOf(account string) uint64 {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.balances[account]
}

// TotalSupply returns the sum of all balances
func (l *Ledger) TotalSupply() uint64 {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.supply
}
