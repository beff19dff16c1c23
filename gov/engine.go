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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/benedict-drio/decentralized-autonomous-organization/database"
	"github.com/benedict-drio/decentralized-autonomous-organization/database/models"
	"github.com/benedict-drio/decentralized-autonomous-organization/database/types"
	"github.com/benedict-drio/decentralized-autonomous-organization/event"
	"github.com/prometheus/client_golang/prometheus"
)

// Ledger is the external value-transfer primitive. Transfer moves amount
// from one identity to another atomically and returns an error when the
// source balance is insufficient.
type Ledger interface {
	Transfer(amount uint64, from string, to string) error
}

// ContractInvoker executes the external target of a contract-call
// proposal. The engine treats the call as opaque and best-effort.
type ContractInvoker interface {
	Invoke(contract string, function string) error
}

type EngineConfig struct {
	Logger          *slog.Logger
	EventBus        *event.EventBus
	Database        *database.Database
	Ledger          Ledger
	Clock           Clock
	ContractInvoker ContractInvoker
	PromRegistry    prometheus.Registerer
	Treasury        string
	// Params seeds the governance parameters on first start. A zero value
	// selects DefaultParams. Once the state row exists the persisted
	// parameters win and this field is ignored.
	Params Params
}

// engineState is the in-memory copy of the persisted governance state row.
// Mutating operations work on a copy and swap it in only after the
// database transaction commits, so a failed operation never leaves a stale
// cache behind.
type engineState struct {
	params           Params
	totalStaked      uint64
	proposalCount    uint64
	owner            string
	ownerInitialized bool
}

func (s engineState) model() *models.GovState {
	return &models.GovState{
		QuorumThreshold:   s.params.QuorumThreshold,
		ProposalDuration:  s.params.ProposalDuration,
		MinProposalAmount: types.Uint64(s.params.MinProposalAmount),
		TimelockPeriod:    s.params.TimelockPeriod,
		UnstakeCooldown:   s.params.UnstakeCooldown,
		ExecutionDelay:    s.params.ExecutionDelay,
		RewardRate:        s.params.RewardRate,
		TotalStaked:       types.Uint64(s.totalStaked),
		ProposalCount:     s.proposalCount,
		Owner:             s.owner,
		OwnerInitialized:  s.ownerInitialized,
	}
}

func stateFromModel(m *models.GovState) engineState {
	return engineState{
		params: Params{
			QuorumThreshold:   m.QuorumThreshold,
			ProposalDuration:  m.ProposalDuration,
			MinProposalAmount: uint64(m.MinProposalAmount),
			TimelockPeriod:    m.TimelockPeriod,
			UnstakeCooldown:   m.UnstakeCooldown,
			ExecutionDelay:    m.ExecutionDelay,
			RewardRate:        m.RewardRate,
		},
		totalStaked:      uint64(m.TotalStaked),
		proposalCount:    m.ProposalCount,
		owner:            m.Owner,
		ownerInitialized: m.OwnerInitialized,
	}
}

// Engine is the governance state machine. Every public mutating operation
// runs to completion under a single lock and applies its writes through
// one database transaction, so callers observe serializable behavior with
// zero partial state on failure.
type Engine struct {
	sync.RWMutex
	config   EngineConfig
	db       *database.Database
	eventBus *event.EventBus
	ledger   Ledger
	clock    Clock
	invoker  ContractInvoker
	logger   *slog.Logger
	treasury string
	metrics  engineMetrics
	state    engineState
}

func NewEngine(cfg EngineConfig) (*Engine, error) {
	if cfg.Database == nil {
		return nil, errors.New("database is required")
	}
	if cfg.Ledger == nil {
		return nil, errors.New("ledger is required")
	}
	if cfg.Clock == nil {
		return nil, errors.New("clock is required")
	}
	if cfg.Treasury == "" {
		return nil, errors.New("treasury identity is required")
	}
	e := &Engine{
		config:   cfg,
		db:       cfg.Database,
		eventBus: cfg.EventBus,
		ledger:   cfg.Ledger,
		clock:    cfg.Clock,
		invoker:  cfg.ContractInvoker,
		treasury: cfg.Treasury,
	}
	if cfg.Logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		e.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	} else {
		e.logger = cfg.Logger
	}
	e.initMetrics()
	if err := e.loadState(); err != nil {
		return nil, err
	}
	e.metrics.totalStaked.Set(float64(e.state.totalStaked))
	e.metrics.proposalCount.Set(float64(e.state.proposalCount))
	return e, nil
}

// Treasury returns the treasury identity stake is held under
func (e *Engine) Treasury() string {
	return e.treasury
}

// loadState reads the governance state row, creating it from the
// configured parameters on first start
func (e *Engine) loadState() error {
	stateModel, err := e.db.GetGovState(nil)
	if err != nil {
		if !errors.Is(err, models.ErrGovStateNotFound) {
			return fmt.Errorf("load governance state: %w", err)
		}
		params := e.config.Params
		if params == (Params{}) {
			params = DefaultParams()
		}
		if err := params.Validate(); err != nil {
			return err
		}
		e.state = engineState{params: params}
		if err := e.db.SetGovState(e.state.model(), nil); err != nil {
			return fmt.Errorf("seed governance state: %w", err)
		}
		e.logger.Info(
			"governance state initialized",
			"component", "gov",
			"quorum_threshold", params.QuorumThreshold,
			"proposal_duration", params.ProposalDuration,
		)
		return nil
	}
	e.state = stateFromModel(stateModel)
	return nil
}

// memberPower computes voting power within a transaction: the identity's
// own staked amount plus the total amount delegated to it by others. An
// outgoing delegation does not reduce the result.
func (e *Engine) memberPower(
	identity string,
	txn *database.Txn,
) (uint64, error) {
	var power uint64
	member, err := e.db.GetMember(identity, txn)
	if err != nil {
		if !errors.Is(err, models.ErrMemberNotFound) {
			return 0, err
		}
	} else {
		power += uint64(member.StakedAmount)
	}
	delegation, err := e.db.GetDelegation(identity, txn)
	if err != nil {
		if !errors.Is(err, models.ErrDelegationNotFound) {
			return 0, err
		}
	} else {
		power += uint64(delegation.TotalDelegated)
	}
	return power, nil
}

// appendEvent marshals the payload and appends a record to the durable
// event log within the supplied transaction
func (e *Engine) appendEvent(
	txn *database.Txn,
	eventType event.EventType,
	initiator string,
	block uint64,
	payload any,
) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}
	ev := database.EventRecord{
		Name:      string(eventType),
		Initiator: initiator,
		Block:     block,
		Payload:   data,
	}
	return e.db.AppendEvent(&ev, txn)
}

// publish delivers an event to bus subscribers after the operation's
// transaction has committed
func (e *Engine) publish(eventType event.EventType, payload any) {
	if e.eventBus == nil {
		return
	}
	e.eventBus.Publish(eventType, event.NewEvent(eventType, payload))
}
