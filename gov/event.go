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
	"github.com/benedict-drio/decentralized-autonomous-organization/event"
)

// Event types published on the event bus after each successful governance
// operation. The same name keys the record written to the durable event
// log inside the operation's transaction.
const (
	StakeEventType              event.EventType = "gov.stake"
	UnstakeRequestEventType     event.EventType = "gov.unstake_request"
	UnstakeEventType            event.EventType = "gov.unstake"
	DelegationAddEventType      event.EventType = "gov.delegation_add"
	DelegationRemoveEventType   event.EventType = "gov.delegation_remove"
	ProposalCreateEventType     event.EventType = "gov.proposal_create"
	VoteEventType               event.EventType = "gov.vote"
	ProposalExecuteEventType    event.EventType = "gov.proposal_execute"
	ProposalRejectEventType     event.EventType = "gov.proposal_reject"
	RewardsClaimEventType       event.EventType = "gov.rewards_claim"
	OwnerInitializeEventType    event.EventType = "gov.owner_initialize"
	OwnerChangeRequestEventType event.EventType = "gov.owner_change_request"
	OwnerChangeEventType        event.EventType = "gov.owner_change"
)

// StakeEvent is emitted when a member locks additional stake
type StakeEvent struct {
	Staker       string `json:"staker"`
	Amount       uint64 `json:"amount"`
	StakedAmount uint64 `json:"staked_amount"`
	TotalStaked  uint64 `json:"total_staked"`
}

// UnstakeRequestEvent is emitted when a member starts the unstake cooldown
type UnstakeRequestEvent struct {
	Staker      string `json:"staker"`
	Amount      uint64 `json:"amount"`
	CooldownEnd uint64 `json:"cooldown_end"`
}

// UnstakeEvent is emitted when a member withdraws matured stake
type UnstakeEvent struct {
	Staker       string `json:"staker"`
	Amount       uint64 `json:"amount"`
	StakedAmount uint64 `json:"staked_amount"`
	TotalStaked  uint64 `json:"total_staked"`
}

// DelegationEvent is emitted when stake moves into or out of a delegate's
// aggregate. The same payload serves add and remove events.
type DelegationEvent struct {
	Delegator      string `json:"delegator"`
	Delegate       string `json:"delegate"`
	Amount         uint64 `json:"amount"`
	TotalDelegated uint64 `json:"total_delegated"`
}

// ProposalCreateEvent is emitted when a proposal is submitted
type ProposalCreateEvent struct {
	ProposalId     uint64 `json:"proposal_id"`
	Proposer       string `json:"proposer"`
	Type           string `json:"type"`
	Amount         uint64 `json:"amount,omitempty"`
	Recipient      string `json:"recipient,omitempty"`
	StartBlock     uint64 `json:"start_block"`
	EndBlock       uint64 `json:"end_block"`
	ExecutionBlock uint64 `json:"execution_block"`
}

// VoteEvent is emitted when a vote is cast. Voter is the identity the vote
// is recorded under, which is the caller's delegate when one is set.
type VoteEvent struct {
	ProposalId uint64 `json:"proposal_id"`
	Caller     string `json:"caller"`
	Voter      string `json:"voter"`
	Support    bool   `json:"support"`
	Power      uint64 `json:"power"`
}

// ProposalOutcomeEvent is emitted when a proposal resolves. CallError
// carries the failure of a best-effort contract call, which does not
// prevent execution.
type ProposalOutcomeEvent struct {
	ProposalId uint64 `json:"proposal_id"`
	Passed     bool   `json:"passed"`
	YesVotes   uint64 `json:"yes_votes"`
	NoVotes    uint64 `json:"no_votes"`
	Quorum     uint64 `json:"quorum"`
	CallError  string `json:"call_error,omitempty"`
}

// RewardsClaimEvent is emitted when a member claims accrued rewards
type RewardsClaimEvent struct {
	Member       string `json:"member"`
	Amount       uint64 `json:"amount"`
	TotalClaimed uint64 `json:"total_claimed"`
}

// OwnerInitializeEvent is emitted when the owner role is first claimed
type OwnerInitializeEvent struct {
	Owner string `json:"owner"`
}

// OwnerChangeRequestEvent is emitted when an owner handover enters its
// timelock
type OwnerChangeRequestEvent struct {
	Owner    string `json:"owner"`
	NewOwner string `json:"new_owner"`
	EndBlock uint64 `json:"end_block"`
}

// OwnerChangeEvent is emitted when a matured owner handover is applied
type OwnerChangeEvent struct {
	PreviousOwner string `json:"previous_owner"`
	NewOwner      string `json:"new_owner"`
}
