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

	"github.com/benedict-drio/decentralized-autonomous-organization/database"
	"github.com/benedict-drio/decentralized-autonomous-organization/database/models"
	"github.com/benedict-drio/decentralized-autonomous-organization/database/types"
)

// Vote casts the caller's voting power on an active proposal. The weight
// is computed from the caller's own power, but the record is keyed under
// the caller's delegate when one is set, so a delegate and their
// delegators share a single vote slot per proposal.
func (e *Engine) Vote(
	caller string,
	proposalId uint64,
	support bool,
) (err error) {
	defer func() { e.observeOperation("vote", err) }()
	if caller == "" {
		return fmt.Errorf("%w: empty caller identity", ErrNotAuthorized)
	}
	e.Lock()
	defer e.Unlock()
	now := e.clock.Now()
	var evt VoteEvent
	txn := e.db.Transaction(true)
	err = txn.Do(func(txn *database.Txn) error {
		proposal, err := e.db.GetProposal(proposalId, txn)
		if err != nil {
			if errors.Is(err, models.ErrProposalNotFound) {
				return fmt.Errorf("%w: %d", ErrProposalNotFound, proposalId)
			}
			return err
		}
		if proposal.Status != models.ProposalStatusActive {
			return fmt.Errorf(
				"%w: proposal %d",
				ErrProposalNotActive,
				proposalId,
			)
		}
		if now > proposal.EndBlock {
			return fmt.Errorf(
				"%w: voting closed at block %d",
				ErrProposalExpired,
				proposal.EndBlock,
			)
		}
		member, err := e.db.GetMember(caller, txn)
		if err != nil {
			if errors.Is(err, models.ErrMemberNotFound) {
				return fmt.Errorf("%w: %s", ErrInactiveMember, caller)
			}
			return err
		}
		// The vote is recorded under the caller's delegate when one is
		// set, but weighted by the caller's own power
		voter := caller
		if member.DelegatedTo != "" {
			voter = member.DelegatedTo
		}
		if _, err := e.db.GetVote(proposalId, voter, txn); err == nil {
			return fmt.Errorf(
				"%w: %s on proposal %d",
				ErrAlreadyVoted,
				voter,
				proposalId,
			)
		} else if !errors.Is(err, models.ErrVoteNotFound) {
			return err
		}
		power, err := e.memberPower(caller, txn)
		if err != nil {
			return err
		}
		if power == 0 {
			return fmt.Errorf("%w: no voting power", ErrInsufficientBalance)
		}
		if err := e.db.SetVote(&models.Vote{
			ProposalID: proposalId,
			Voter:      voter,
			Direction:  support,
			Power:      types.Uint64(power),
			CastBlock:  now,
		}, txn); err != nil {
			return err
		}
		if support {
			proposal.YesVotes += types.Uint64(power)
		} else {
			proposal.NoVotes += types.Uint64(power)
		}
		if err := e.db.SetProposal(proposal, txn); err != nil {
			return err
		}
		evt = VoteEvent{
			ProposalId: proposalId,
			Caller:     caller,
			Voter:      voter,
			Support:    support,
			Power:      power,
		}
		return e.appendEvent(txn, VoteEventType, caller, now, evt)
	})
	if err != nil {
		return err
	}
	e.metrics.votesCast.Inc()
	e.logger.Debug(
		"vote cast",
		"component", "gov",
		"proposal_id", proposalId,
		"caller", caller,
		"voter", evt.Voter,
		"support", support,
		"power", evt.Power,
	)
	e.publish(VoteEventType, evt)
	return nil
}
