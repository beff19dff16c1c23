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

package gov_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/benedict-drio/decentralized-autonomous-organization/database"
	"github.com/benedict-drio/decentralized-autonomous-organization/event"
	"github.com/benedict-drio/decentralized-autonomous-organization/gov"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastParams keeps proposal timelines short and lets any staker propose
func fastParams() gov.Params {
	return gov.Params{
		QuorumThreshold:   500,
		ProposalDuration:  10,
		MinProposalAmount: 1,
		TimelockPeriod:    5,
		UnstakeCooldown:   1,
		ExecutionDelay:    2,
		RewardRate:        0,
	}
}

// advanceToExecution moves the clock past a proposal's execution block
func advanceToExecution(t *testing.T, h *testHarness, id uint64) {
	t.Helper()
	info, err := h.engine.ProposalInfo(id)
	require.NoError(t, err)
	now := h.clock.Now()
	require.GreaterOrEqual(t, info.ExecutionBlock, now)
	h.clock.Advance(info.ExecutionBlock - now)
}

func TestExecuteQuorumBoundary(t *testing.T) {
	t.Run("one below quorum fails", func(t *testing.T) {
		h := newTestEngine(t, withParams(fastParams()))
		h.stakeFor(t, "alice", 500_001)
		h.stakeFor(t, "bob", 499_999)
		id := createTestProposal(t, h, "alice")
		// Quorum is 500_000 of the 1_000_000 total
		require.NoError(t, h.engine.Vote("bob", id, true))
		advanceToExecution(t, h, id)
		require.NoError(t, h.engine.ExecuteProposal("alice", id))
		info, err := h.engine.ProposalInfo(id)
		require.NoError(t, err)
		assert.Equal(t, gov.ProposalStatusRejected, info.Status)
		assert.True(t, info.Executed)
		assert.Equal(t, uint64(0), h.ledger.BalanceOf("builders"))
	})
	t.Run("exactly quorum passes", func(t *testing.T) {
		h := newTestEngine(t, withParams(fastParams()))
		h.stakeFor(t, "carol", 500_000)
		h.stakeFor(t, "dave", 500_000)
		id := createTestProposal(t, h, "carol")
		require.NoError(t, h.engine.Vote("carol", id, true))
		advanceToExecution(t, h, id)
		require.NoError(t, h.engine.ExecuteProposal("carol", id))
		info, err := h.engine.ProposalInfo(id)
		require.NoError(t, err)
		assert.Equal(t, gov.ProposalStatusExecuted, info.Status)
		assert.True(t, info.Executed)
		assert.Equal(t, uint64(1000), h.ledger.BalanceOf("builders"))
	})
}

func TestExecuteYesMustExceedNo(t *testing.T) {
	params := fastParams()
	params.QuorumThreshold = 1
	h := newTestEngine(t, withParams(params))
	h.stakeFor(t, "alice", 500)
	h.stakeFor(t, "bob", 500)
	id := createTestProposal(t, h, "alice")
	require.NoError(t, h.engine.Vote("alice", id, true))
	require.NoError(t, h.engine.Vote("bob", id, false))
	advanceToExecution(t, h, id)
	require.NoError(t, h.engine.ExecuteProposal("alice", id))
	// A tie meets quorum but still fails
	info, err := h.engine.ProposalInfo(id)
	require.NoError(t, err)
	assert.Equal(t, gov.ProposalStatusRejected, info.Status)
}

func TestExecuteTimeline(t *testing.T) {
	h := newTestEngine(t, withParams(fastParams()))
	h.stakeFor(t, "alice", 1000)
	id := createTestProposal(t, h, "alice")
	require.NoError(t, h.engine.Vote("alice", id, true))
	// Voting still open
	err := h.engine.ExecuteProposal("alice", id)
	require.ErrorIs(t, err, gov.ErrProposalNotActive)
	// Voting closed but execution delay not served
	h.clock.Advance(10)
	err = h.engine.ExecuteProposal("alice", id)
	require.ErrorIs(t, err, gov.ErrTimelockActive)
	h.clock.Advance(2)
	require.NoError(t, h.engine.ExecuteProposal("alice", id))
}

func TestExecuteTransferMovesValue(t *testing.T) {
	h := newTestEngine(t, withParams(fastParams()))
	h.stakeFor(t, "alice", 10_000)
	id, err := h.engine.CreateProposal("alice", gov.ProposalRequest{
		Title:       "fund the builders",
		Description: "pay out part of the treasury",
		Type:        gov.ProposalTypeTransfer,
		Amount:      4000,
		Recipient:   "builders",
	})
	require.NoError(t, err)
	require.NoError(t, h.engine.Vote("alice", id, true))
	advanceToExecution(t, h, id)
	require.NoError(t, h.engine.ExecuteProposal("alice", id))
	assert.Equal(t, uint64(4000), h.ledger.BalanceOf("builders"))
	assert.Equal(t, uint64(6000), h.ledger.BalanceOf(testTreasury))
}

func TestExecuteTransferFailureIsRetryable(t *testing.T) {
	h := newTestEngine(t, withParams(fastParams()))
	h.stakeFor(t, "alice", 10_000)
	id, err := h.engine.CreateProposal("alice", gov.ProposalRequest{
		Title:       "over-sized payout",
		Description: "transfer more than the treasury holds",
		Type:        gov.ProposalTypeTransfer,
		Amount:      50_000,
		Recipient:   "builders",
	})
	require.NoError(t, err)
	require.NoError(t, h.engine.Vote("alice", id, true))
	advanceToExecution(t, h, id)
	err = h.engine.ExecuteProposal("alice", id)
	require.ErrorIs(t, err, gov.ErrInsufficientBalance)
	// The failed transfer leaves the proposal active and retryable
	info, err := h.engine.ProposalInfo(id)
	require.NoError(t, err)
	assert.Equal(t, gov.ProposalStatusActive, info.Status)
	assert.False(t, info.Executed)
	// Once the treasury is topped up the same proposal executes
	h.fund(t, testTreasury, 40_000)
	require.NoError(t, h.engine.ExecuteProposal("alice", id))
	info, err = h.engine.ProposalInfo(id)
	require.NoError(t, err)
	assert.Equal(t, gov.ProposalStatusExecuted, info.Status)
	assert.Equal(t, uint64(50_000), h.ledger.BalanceOf("builders"))
}

func TestExecuteParameterApplies(t *testing.T) {
	h := newTestEngine(t, withParams(fastParams()))
	h.stakeFor(t, "alice", 1000)
	id, err := h.engine.CreateProposal("alice", gov.ProposalRequest{
		Title:       "lower the quorum",
		Description: "reduce the quorum threshold",
		Type:        gov.ProposalTypeParameter,
		ParamName:   gov.ParamQuorumThreshold,
		ParamValue:  333,
	})
	require.NoError(t, err)
	require.NoError(t, h.engine.Vote("alice", id, true))
	advanceToExecution(t, h, id)
	require.NoError(t, h.engine.ExecuteProposal("alice", id))
	assert.Equal(t, uint64(333), h.engine.Params().QuorumThreshold)
	info, err := h.engine.ProposalInfo(id)
	require.NoError(t, err)
	assert.Equal(t, gov.ProposalStatusExecuted, info.Status)
}

func TestExecuteContractCall(t *testing.T) {
	invoker := &mockInvoker{}
	h := newTestEngine(t, func(cfg *gov.EngineConfig) {
		cfg.Params = fastParams()
		cfg.ContractInvoker = invoker
	})
	h.stakeFor(t, "alice", 1000)
	id, err := h.engine.CreateProposal("alice", gov.ProposalRequest{
		Title:        "sweep the vault",
		Description:  "trigger the vault sweep entry point",
		Type:         gov.ProposalTypeContractCall,
		CallContract: "vault",
		CallFunction: "sweep",
	})
	require.NoError(t, err)
	require.NoError(t, h.engine.Vote("alice", id, true))
	advanceToExecution(t, h, id)
	require.NoError(t, h.engine.ExecuteProposal("alice", id))
	require.Len(t, invoker.calls, 1)
	assert.Equal(t, [2]string{"vault", "sweep"}, invoker.calls[0])
	info, err := h.engine.ProposalInfo(id)
	require.NoError(t, err)
	assert.Equal(t, gov.ProposalStatusExecuted, info.Status)
}

func TestExecuteContractCallFailureIsBestEffort(t *testing.T) {
	invoker := &mockInvoker{err: errors.New("contract reverted")}
	h := newTestEngine(t, func(cfg *gov.EngineConfig) {
		cfg.Params = fastParams()
		cfg.ContractInvoker = invoker
	})
	h.stakeFor(t, "alice", 1000)
	id, err := h.engine.CreateProposal("alice", gov.ProposalRequest{
		Title:        "sweep the vault",
		Description:  "trigger the vault sweep entry point",
		Type:         gov.ProposalTypeContractCall,
		CallContract: "vault",
		CallFunction: "sweep",
	})
	require.NoError(t, err)
	require.NoError(t, h.engine.Vote("alice", id, true))
	advanceToExecution(t, h, id)
	// The call error does not abort resolution
	require.NoError(t, h.engine.ExecuteProposal("alice", id))
	info, err := h.engine.ProposalInfo(id)
	require.NoError(t, err)
	assert.Equal(t, gov.ProposalStatusExecuted, info.Status)
	// The outcome record carries the call error
	outcome := lastOutcomeEvent(t, h, gov.ProposalExecuteEventType)
	assert.Contains(t, outcome.CallError, "contract reverted")
}

func TestExecuteContractCallWithoutInvoker(t *testing.T) {
	h := newTestEngine(t, withParams(fastParams()))
	h.stakeFor(t, "alice", 1000)
	id, err := h.engine.CreateProposal("alice", gov.ProposalRequest{
		Title:        "sweep the vault",
		Description:  "trigger the vault sweep entry point",
		Type:         gov.ProposalTypeContractCall,
		CallContract: "vault",
		CallFunction: "sweep",
	})
	require.NoError(t, err)
	require.NoError(t, h.engine.Vote("alice", id, true))
	advanceToExecution(t, h, id)
	require.NoError(t, h.engine.ExecuteProposal("alice", id))
	info, err := h.engine.ProposalInfo(id)
	require.NoError(t, err)
	assert.Equal(t, gov.ProposalStatusExecuted, info.Status)
	outcome := lastOutcomeEvent(t, h, gov.ProposalExecuteEventType)
	assert.Contains(t, outcome.CallError, "no contract invoker")
}

func TestExecuteResolutionIsTerminal(t *testing.T) {
	h := newTestEngine(t, withParams(fastParams()))
	h.stakeFor(t, "alice", 1000)
	h.stakeFor(t, "bob", 1000)
	id := createTestProposal(t, h, "alice")
	require.NoError(t, h.engine.Vote("alice", id, true))
	advanceToExecution(t, h, id)
	require.NoError(t, h.engine.ExecuteProposal("alice", id))
	// Resolved proposals cannot be executed or voted again
	err := h.engine.ExecuteProposal("alice", id)
	require.ErrorIs(t, err, gov.ErrInvalidStatus)
	err = h.engine.Vote("bob", id, true)
	require.ErrorIs(t, err, gov.ErrProposalNotActive)
}

func TestExecuteRejectionIsTerminal(t *testing.T) {
	h := newTestEngine(t, withParams(fastParams()))
	h.stakeFor(t, "alice", 1000)
	id := createTestProposal(t, h, "alice")
	// No votes at all fails quorum
	advanceToExecution(t, h, id)
	require.NoError(t, h.engine.ExecuteProposal("alice", id))
	info, err := h.engine.ProposalInfo(id)
	require.NoError(t, err)
	assert.Equal(t, gov.ProposalStatusRejected, info.Status)
	assert.True(t, info.Executed)
	err = h.engine.ExecuteProposal("alice", id)
	require.ErrorIs(t, err, gov.ErrInvalidStatus)
	outcome := lastOutcomeEvent(t, h, gov.ProposalRejectEventType)
	assert.False(t, outcome.Passed)
	assert.Equal(t, uint64(500), outcome.Quorum)
}

func TestExecuteValidation(t *testing.T) {
	h := newTestEngine(t, withParams(fastParams()))
	assert.ErrorIs(
		t,
		h.engine.ExecuteProposal("", 1),
		gov.ErrNotAuthorized,
	)
	assert.ErrorIs(
		t,
		h.engine.ExecuteProposal("alice", 99),
		gov.ErrProposalNotFound,
	)
}

// lastOutcomeEvent scans the durable event log for the most recent record
// of the given type and decodes its outcome payload
func lastOutcomeEvent(
	t *testing.T,
	h *testHarness,
	eventType event.EventType,
) gov.ProposalOutcomeEvent {
	t.Helper()
	head, err := h.engine.EventHead()
	require.NoError(t, err)
	events, err := h.engine.Events(database.EventInitialSequence, int(head))
	require.NoError(t, err)
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Name != string(eventType) {
			continue
		}
		var outcome gov.ProposalOutcomeEvent
		require.NoError(t, json.Unmarshal(events[i].Payload, &outcome))
		return outcome
	}
	t.Fatalf("no %s event found in the log", eventType)
	return gov.ProposalOutcomeEvent{}
}
