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
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/benedict-drio/decentralized-autonomous-organization/database"
	"github.com/benedict-drio/decentralized-autonomous-organization/database/models"
	"github.com/benedict-drio/decentralized-autonomous-organization/event"
)

// ExecuteProposal resolves a proposal once both the voting period and the
// post-vote execution delay have elapsed, applying its effect when it
// passed. A proposal passes iff its yes weight meets quorum and strictly
// exceeds its no weight. Resolution is terminal either way; the Executed
// flag rejects any second attempt. A treasury transfer failure rolls the
// whole resolution back, leaving the proposal active and retryable.
func (e *Engine) ExecuteProposal(
	caller string,
	proposalId uint64,
) (err error) {
	defer func() { e.observeOperation("execute_proposal", err) }()
	if caller == "" {
		return fmt.Errorf("%w: empty caller identity", ErrNotAuthorized)
	}
	e.Lock()
	defer e.Unlock()
	now := e.clock.Now()
	state := e.state
	var (
		evtType event.EventType
		evt     ProposalOutcomeEvent
	)
	txn := e.db.Transaction(true)
	err = txn.Do(func(txn *database.Txn) error {
		proposal, err := e.db.GetProposal(proposalId, txn)
		if err != nil {
			if errors.Is(err, models.ErrProposalNotFound) {
				return fmt.Errorf("%w: %d", ErrProposalNotFound, proposalId)
			}
			return err
		}
		if proposal.Executed {
			return fmt.Errorf(
				"%w: proposal %d already resolved",
				ErrInvalidStatus,
				proposalId,
			)
		}
		if proposal.Status != models.ProposalStatusActive {
			return fmt.Errorf(
				"%w: proposal %d",
				ErrInvalidStatus,
				proposalId,
			)
		}
		if now < proposal.EndBlock {
			return fmt.Errorf(
				"%w: voting open until block %d",
				ErrProposalNotActive,
				proposal.EndBlock,
			)
		}
		if now < proposal.ExecutionBlock {
			return fmt.Errorf(
				"%w: executable at block %d",
				ErrTimelockActive,
				proposal.ExecutionBlock,
			)
		}
		quorum := quorumRequirement(
			state.totalStaked,
			state.params.QuorumThreshold,
		)
		yes := uint64(proposal.YesVotes)
		no := uint64(proposal.NoVotes)
		passed := yes >= quorum && yes > no
		evt = ProposalOutcomeEvent{
			ProposalId: proposalId,
			Passed:     passed,
			YesVotes:   yes,
			NoVotes:    no,
			Quorum:     quorum,
		}
		if !passed {
			proposal.Status = models.ProposalStatusRejected
			proposal.Executed = true
			if err := e.db.SetProposal(proposal, txn); err != nil {
				return err
			}
			evtType = ProposalRejectEventType
			return e.appendEvent(txn, evtType, caller, now, evt)
		}
		// Apply the proposal's effect
		switch proposal.ProposalType {
		case models.ProposalTypeTransfer:
			// Handled below, after every other write is staged
		case models.ProposalTypeParameter:
			if err := state.params.set(
				proposal.ParamName,
				proposal.ParamValue,
			); err != nil {
				return err
			}
			if err := e.db.SetGovState(state.model(), txn); err != nil {
				return err
			}
		case models.ProposalTypeContractCall:
			// Best effort: the engine does not interpret the target's
			// result
			if callErr := e.invokeContract(
				proposal.CallContract,
				proposal.CallFunction,
			); callErr != nil {
				e.logger.Warn(
					"contract call failed",
					"component", "gov",
					"proposal_id", proposalId,
					"contract", proposal.CallContract,
					"function", proposal.CallFunction,
					"error", callErr,
				)
				evt.CallError = callErr.Error()
			}
		default:
			return fmt.Errorf(
				"%w: %d",
				ErrProposalTypeInvalid,
				proposal.ProposalType,
			)
		}
		proposal.Status = models.ProposalStatusExecuted
		proposal.Executed = true
		if err := e.db.SetProposal(proposal, txn); err != nil {
			return err
		}
		evtType = ProposalExecuteEventType
		if err := e.appendEvent(txn, evtType, caller, now, evt); err != nil {
			return err
		}
		// The treasury payout happens last so a ledger failure rolls back
		// the status flip and leaves the proposal retryable
		if proposal.ProposalType == models.ProposalTypeTransfer {
			if err := e.ledger.Transfer(
				uint64(proposal.Amount),
				e.treasury,
				proposal.Recipient,
			); err != nil {
				return fmt.Errorf("%w: %w", ErrInsufficientBalance, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	e.state = state
	e.logger.Info(
		"proposal resolved",
		"component", "gov",
		"proposal_id", proposalId,
		"passed", evt.Passed,
		"yes_votes", evt.YesVotes,
		"no_votes", evt.NoVotes,
		"quorum", evt.Quorum,
	)
	e.publish(evtType, evt)
	return nil
}

// invokeContract calls the external target of a contract-call proposal
func (e *Engine) invokeContract(contract string, function string) error {
	if e.invoker == nil {
		return errors.New("no contract invoker configured")
	}
	return e.invoker.Invoke(contract, function)
}

// quorumRequirement computes the minimum yes weight for a proposal to
// pass: floor(totalStaked * quorumThreshold / QuorumDenominator). The
// intermediate product is taken at arbitrary precision to avoid overflow.
func quorumRequirement(totalStaked uint64, quorumThreshold uint64) uint64 {
	q := new(big.Int).SetUint64(totalStaked)
	q.Mul(q, new(big.Int).SetUint64(quorumThreshold))
	q.Div(q, big.NewInt(QuorumDenominator))
	if !q.IsUint64() {
		return math.MaxUint64
	}
	return q.Uint64()
}
