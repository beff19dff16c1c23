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

package gov

import (
	"github.com/benedict-drio/decentralized-autonomous-organization/database"
	"github.com/benedict-drio/decentralized-autonomous-organization/database/models"
)

// MemberInfo is the public view of a member record
type MemberInfo struct {
	Identity        string `json:"identity"`
	StakedAmount    uint64 `json:"staked_amount"`
	DelegatedTo     string `json:"delegated_to,omitempty"`
	CooldownEnd     uint64 `json:"cooldown_end"`
	LastRewardBlock uint64 `json:"last_reward_block"`
	PendingRewards  uint64 `json:"pending_rewards"`
	RewardsClaimed  uint64 `json:"rewards_claimed"`
}

// ProposalInfo is the public view of a proposal record
type ProposalInfo struct {
	ID             uint64         `json:"id"`
	Proposer       string         `json:"proposer"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Type           ProposalType   `json:"type"`
	Amount         uint64         `json:"amount,omitempty"`
	Recipient      string         `json:"recipient,omitempty"`
	ParamName      string         `json:"param_name,omitempty"`
	ParamValue     uint64         `json:"param_value,omitempty"`
	CallContract   string         `json:"call_contract,omitempty"`
	CallFunction   string         `json:"call_function,omitempty"`
	StartBlock     uint64         `json:"start_block"`
	EndBlock       uint64         `json:"end_block"`
	ExecutionBlock uint64         `json:"execution_block"`
	YesVotes       uint64         `json:"yes_votes"`
	NoVotes        uint64         `json:"no_votes"`
	Status         ProposalStatus `json:"status"`
	Executed       bool           `json:"executed"`
}

// DelegationInfo is the public view of a delegate's aggregate
type DelegationInfo struct {
	Delegate       string   `json:"delegate"`
	TotalDelegated uint64   `json:"total_delegated"`
	Delegators     []string `json:"delegators"`
}

// VoteInfo is the public view of a vote record
type VoteInfo struct {
	ProposalId uint64 `json:"proposal_id"`
	Voter      string `json:"voter"`
	Support    bool   `json:"support"`
	Power      uint64 `json:"power"`
	CastBlock  uint64 `json:"cast_block"`
}

// TimelockInfo is the public view of a pending timelock entry. Cleared
// reports whether the delay has matured at the current block height.
type TimelockInfo struct {
	Initiator  string `json:"initiator"`
	Operation  string `json:"operation"`
	EndBlock   uint64 `json:"end_block"`
	ParamName  string `json:"param_name,omitempty"`
	ParamValue uint64 `json:"param_value,omitempty"`
	Cleared    bool   `json:"cleared"`
}

// MemberInfo returns the member record for an identity
func (e *Engine) MemberInfo(identity string) (*MemberInfo, error) {
	e.RLock()
	defer e.RUnlock()
	member, err := e.db.GetMember(identity, nil)
	if err != nil {
		return nil, err
	}
	return &MemberInfo{
		Identity:        member.Identity,
		StakedAmount:    uint64(member.StakedAmount),
		DelegatedTo:     member.DelegatedTo,
		CooldownEnd:     member.CooldownEnd,
		LastRewardBlock: member.LastRewardBlock,
		PendingRewards:  uint64(member.PendingRewards),
		RewardsClaimed:  uint64(member.RewardsClaimed),
	}, nil
}

// ProposalInfo returns a proposal by id
func (e *Engine) ProposalInfo(id uint64) (*ProposalInfo, error) {
	e.RLock()
	defer e.RUnlock()
	proposal, err := e.db.GetProposal(id, nil)
	if err != nil {
		return nil, err
	}
	return proposalInfoFromModel(proposal), nil
}

// Proposals returns every proposal ordered by id
func (e *Engine) Proposals() ([]ProposalInfo, error) {
	e.RLock()
	defer e.RUnlock()
	proposals, err := e.db.GetProposals(nil)
	if err != nil {
		return nil, err
	}
	ret := make([]ProposalInfo, 0, len(proposals))
	for i := range proposals {
		ret = append(ret, *proposalInfoFromModel(&proposals[i]))
	}
	return ret, nil
}

// ProposalCount returns the number of proposals created
func (e *Engine) ProposalCount() uint64 {
	e.RLock()
	defer e.RUnlock()
	return e.state.proposalCount
}

// VotingPower returns an identity's current voting power: its own staked
// amount plus the total delegated to it. Unknown identities have zero
// power.
func (e *Engine) VotingPower(identity string) (uint64, error) {
	e.RLock()
	defer e.RUnlock()
	txn := e.db.MetadataTxn(false)
	defer txn.Release()
	return e.memberPower(identity, txn)
}

// PendingRewards returns the rewards the member could claim at the
// current block height, including accrual not yet materialized
func (e *Engine) PendingRewards(identity string) (uint64, error) {
	e.RLock()
	defer e.RUnlock()
	now := e.clock.Now()
	member, err := e.db.GetMember(identity, nil)
	if err != nil {
		return 0, err
	}
	pending := uint64(member.PendingRewards)
	rate := e.state.params.RewardRate
	if rate > 0 && member.StakedAmount > 0 && now > member.LastRewardBlock {
		pending += rewardAmount(
			uint64(member.StakedAmount),
			rate,
			now-member.LastRewardBlock,
		)
	}
	return pending, nil
}

// DelegationInfo returns a delegate's aggregate and delegator list in
// insertion order
func (e *Engine) DelegationInfo(delegate string) (*DelegationInfo, error) {
	e.RLock()
	defer e.RUnlock()
	txn := e.db.MetadataTxn(false)
	defer txn.Release()
	delegation, err := e.db.GetDelegation(delegate, txn)
	if err != nil {
		return nil, err
	}
	delegators, err := e.db.GetDelegators(delegate, txn)
	if err != nil {
		return nil, err
	}
	identities := make([]string, 0, len(delegators))
	for _, d := range delegators {
		identities = append(identities, d.Identity)
	}
	return &DelegationInfo{
		Delegate:       delegation.Delegate,
		TotalDelegated: uint64(delegation.TotalDelegated),
		Delegators:     identities,
	}, nil
}

// VoteInfo returns the vote recorded under a voter for a proposal
func (e *Engine) VoteInfo(proposalId uint64, voter string) (*VoteInfo, error) {
	e.RLock()
	defer e.RUnlock()
	vote, err := e.db.GetVote(proposalId, voter, nil)
	if err != nil {
		return nil, err
	}
	return voteInfoFromModel(vote), nil
}

// Votes returns every vote recorded for a proposal
func (e *Engine) Votes(proposalId uint64) ([]VoteInfo, error) {
	e.RLock()
	defer e.RUnlock()
	votes, err := e.db.GetVotesByProposal(proposalId, nil)
	if err != nil {
		return nil, err
	}
	ret := make([]VoteInfo, 0, len(votes))
	for i := range votes {
		ret = append(ret, *voteInfoFromModel(&votes[i]))
	}
	return ret, nil
}

// TimelockStatus returns the pending timelock entry for an initiator and
// operation
func (e *Engine) TimelockStatus(
	initiator string,
	operation string,
) (*TimelockInfo, error) {
	e.RLock()
	defer e.RUnlock()
	now := e.clock.Now()
	timelock, err := e.db.GetTimelock(initiator, operation, nil)
	if err != nil {
		return nil, err
	}
	return &TimelockInfo{
		Initiator:  timelock.Initiator,
		Operation:  timelock.Operation,
		EndBlock:   timelock.EndBlock,
		ParamName:  timelock.ParamName,
		ParamValue: timelock.ParamValue,
		Cleared:    now >= timelock.EndBlock,
	}, nil
}

// Params returns the current governance parameters
func (e *Engine) Params() Params {
	e.RLock()
	defer e.RUnlock()
	return e.state.params
}

// TotalStaked returns the running total of staked value
func (e *Engine) TotalStaked() uint64 {
	e.RLock()
	defer e.RUnlock()
	return e.state.totalStaked
}

// Owner returns the owner identity and whether the role has been claimed
func (e *Engine) Owner() (string, bool) {
	e.RLock()
	defer e.RUnlock()
	return e.state.owner, e.state.ownerInitialized
}

// Events returns up to count durable event log records starting at the
// given sequence number
func (e *Engine) Events(from uint64, count int) ([]database.EventRecord, error) {
	e.RLock()
	defer e.RUnlock()
	return e.db.GetEvents(from, count, nil)
}

// EventHead returns the sequence number of the most recent event
func (e *Engine) EventHead() (uint64, error) {
	e.RLock()
	defer e.RUnlock()
	return e.db.EventHead(nil)
}

func proposalInfoFromModel(p *models.Proposal) *ProposalInfo {
	return &ProposalInfo{
		ID:             p.ID,
		Proposer:       p.Proposer,
		Title:          p.Title,
		Description:    p.Description,
		Type:           ProposalType(p.ProposalType),
		Amount:         uint64(p.Amount),
		Recipient:      p.Recipient,
		ParamName:      p.ParamName,
		ParamValue:     p.ParamValue,
		CallContract:   p.CallContract,
		CallFunction:   p.CallFunction,
		StartBlock:     p.StartBlock,
		EndBlock:       p.EndBlock,
		ExecutionBlock: p.ExecutionBlock,
		YesVotes:       uint64(p.YesVotes),
		NoVotes:        uint64(p.NoVotes),
		Status:         ProposalStatus(p.Status),
		Executed:       p.Executed,
	}
}

func voteInfoFromModel(v *models.Vote) *VoteInfo {
	return &VoteInfo{
		ProposalId: v.ProposalID,
		Voter:      v.Voter,
		Support:    v.Direction,
		Power:      uint64(v.Power),
		CastBlock:  v.CastBlock,
	}
}
