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
	"fmt"

	"github.com/benedict-drio/decentralized-autonomous-organization/database"
	"github.com/benedict-drio/decentralized-autonomous-organization/database/models"
	"github.com/benedict-drio/decentralized-autonomous-organization/database/types"
)

// ProposalRequest carries the caller-supplied fields for a new proposal.
// Only the fields relevant to the proposal type are validated; the rest
// are stored as given.
type ProposalRequest struct {
	Title        string
	Description  string
	Type         ProposalType
	Amount       uint64
	Recipient    string
	ParamName    string
	ParamValue   uint64
	CallContract string
	CallFunction string
}

// CreateProposal submits a new proposal and returns its assigned id.
// Eligibility requires the caller's voting power to be positive and at
// least the min-proposal-amount parameter.
func (e *Engine) CreateProposal(
	caller string,
	req ProposalRequest,
) (id uint64, err error) {
	defer func() { e.observeOperation("create_proposal", err) }()
	if caller == "" {
		return 0, fmt.Errorf("%w: empty caller identity", ErrNotAuthorized)
	}
	if err := e.validateProposalRequest(caller, req); err != nil {
		return 0, err
	}
	e.Lock()
	defer e.Unlock()
	now := e.clock.Now()
	state := e.state
	var evt ProposalCreateEvent
	txn := e.db.Transaction(true)
	err = txn.Do(func(txn *database.Txn) error {
		power, err := e.memberPower(caller, txn)
		if err != nil {
			return err
		}
		if power == 0 {
			return fmt.Errorf("%w: %s", ErrInactiveMember, caller)
		}
		if power < state.params.MinProposalAmount {
			return fmt.Errorf(
				"%w: voting power %d below proposal minimum %d",
				ErrNotAuthorized,
				power,
				state.params.MinProposalAmount,
			)
		}
		state.proposalCount++
		proposal := &models.Proposal{
			ID:             state.proposalCount,
			Proposer:       caller,
			Title:          req.Title,
			Description:    req.Description,
			Amount:         types.Uint64(req.Amount),
			Recipient:      req.Recipient,
			StartBlock:     now,
			EndBlock:       now + state.params.ProposalDuration,
			ExecutionBlock: now + state.params.ProposalDuration + state.params.ExecutionDelay,
			Status:         models.ProposalStatusActive,
			ProposalType:   uint(req.Type),
			ParamName:      req.ParamName,
			ParamValue:     req.ParamValue,
			CallContract:   req.CallContract,
			CallFunction:   req.CallFunction,
		}
		if err := e.db.SetProposal(proposal, txn); err != nil {
			return err
		}
		if err := e.db.SetGovState(state.model(), txn); err != nil {
			return err
		}
		evt = ProposalCreateEvent{
			ProposalId:     proposal.ID,
			Proposer:       caller,
			Type:           req.Type.String(),
			Amount:         req.Amount,
			Recipient:      req.Recipient,
			StartBlock:     proposal.StartBlock,
			EndBlock:       proposal.EndBlock,
			ExecutionBlock: proposal.ExecutionBlock,
		}
		return e.appendEvent(txn, ProposalCreateEventType, caller, now, evt)
	})
	if err != nil {
		return 0, err
	}
	e.state = state
	e.metrics.proposalCount.Set(float64(state.proposalCount))
	e.logger.Info(
		"proposal created",
		"component", "gov",
		"proposal_id", evt.ProposalId,
		"proposer", caller,
		"type", evt.Type,
	)
	e.publish(ProposalCreateEventType, evt)
	return evt.ProposalId, nil
}

// validateProposalRequest checks the caller-supplied fields before any
// state is read. Lengths are byte counts.
func (e *Engine) validateProposalRequest(
	caller string,
	req ProposalRequest,
) error {
	if req.Title == "" || len(req.Title) > MaxTitleLength {
		return fmt.Errorf(
			"%w: title must be 1 to %d bytes",
			ErrInvalidTitle,
			MaxTitleLength,
		)
	}
	if req.Description == "" || len(req.Description) > MaxDescriptionLength {
		return fmt.Errorf(
			"%w: description must be 1 to %d bytes",
			ErrInvalidDescription,
			MaxDescriptionLength,
		)
	}
	switch req.Type {
	case ProposalTypeTransfer:
		if req.Amount == 0 {
			return fmt.Errorf(
				"%w: transfer amount must be greater than zero",
				ErrInvalidAmount,
			)
		}
		if req.Recipient == "" {
			return fmt.Errorf("%w: empty recipient", ErrInvalidRecipient)
		}
		if req.Recipient == caller || req.Recipient == e.treasury {
			return fmt.Errorf(
				"%w: recipient cannot be the proposer or the treasury",
				ErrInvalidRecipient,
			)
		}
	case ProposalTypeParameter:
		if err := validateParamValue(req.ParamName, req.ParamValue); err != nil {
			return err
		}
	case ProposalTypeContractCall:
		if req.CallContract == "" || req.CallFunction == "" {
			return fmt.Errorf(
				"%w: contract call requires a target and function",
				ErrInvalidParameter,
			)
		}
	default:
		return fmt.Errorf("%w: %d", ErrProposalTypeInvalid, uint(req.Type))
	}
	return nil
}
