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
	"github.com/benedict-drio/decentralized-autonomous-organization/database"
	"github.com/benedict-drio/decentralized-autonomous-organization/gov"
)

// RootResponse is returned by GET /.
type RootResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	IsHealthy bool `json:"is_healthy"`
}

// ErrorResponse is the error body for every non-2xx response.
type ErrorResponse struct {
	StatusCode int    `json:"status_code"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

// StakeRequest is the body for POST /api/stake.
type StakeRequest struct {
	Caller string `json:"caller"`
	Amount uint64 `json:"amount"`
}

// UnstakeRequest is the body for POST /api/unstake/request and
// POST /api/unstake.
type UnstakeRequest struct {
	Caller string `json:"caller"`
	Amount uint64 `json:"amount"`
}

// DelegateRequest is the body for POST /api/delegate.
type DelegateRequest struct {
	Caller   string `json:"caller"`
	Delegate string `json:"delegate"`
}

// CreateProposalRequest is the body for POST /api/proposal. Type is one
// of "transfer", "parameter", or "contract-call"; the remaining fields
// are required per type.
type CreateProposalRequest struct {
	Caller       string `json:"caller"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Type         string `json:"type"`
	Amount       uint64 `json:"amount,omitempty"`
	Recipient    string `json:"recipient,omitempty"`
	ParamName    string `json:"param_name,omitempty"`
	ParamValue   uint64 `json:"param_value,omitempty"`
	CallContract string `json:"call_contract,omitempty"`
	CallFunction string `json:"call_function,omitempty"`
}

// VoteRequest is the body for POST /api/proposal/{id}/vote.
type VoteRequest struct {
	Caller  string `json:"caller"`
	Support bool   `json:"support"`
}

// CallerRequest is the body for operations that need only the caller
// identity, such as undelegate, execute, and rewards claim.
type CallerRequest struct {
	Caller string `json:"caller"`
}

// OwnerChangeRequest is the body for POST /api/owner/change/request.
type OwnerChangeRequest struct {
	Caller   string `json:"caller"`
	NewOwner string `json:"new_owner"`
}

// ProposalResponse is a proposal with its type and status rendered as
// strings.
type ProposalResponse struct {
	ID             uint64 `json:"id"`
	Proposer       string `json:"proposer"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Type           string `json:"type"`
	Amount         uint64 `json:"amount,omitempty"`
	Recipient      string `json:"recipient,omitempty"`
	ParamName      string `json:"param_name,omitempty"`
	ParamValue     uint64 `json:"param_value,omitempty"`
	CallContract   string `json:"call_contract,omitempty"`
	CallFunction   string `json:"call_function,omitempty"`
	StartBlock     uint64 `json:"start_block"`
	EndBlock       uint64 `json:"end_block"`
	ExecutionBlock uint64 `json:"execution_block"`
	YesVotes       uint64 `json:"yes_votes"`
	NoVotes        uint64 `json:"no_votes"`
	Status         string `json:"status"`
	Executed       bool   `json:"executed"`
}

// PowerResponse is returned by GET /api/power/{id}.
type PowerResponse struct {
	Identity string `json:"identity"`
	Power    uint64 `json:"power"`
}

// ParamsResponse is returned by GET /api/params and carries the active
// parameters alongside aggregate governance state.
type ParamsResponse struct {
	QuorumThreshold   uint64 `json:"quorum_threshold"`
	ProposalDuration  uint64 `json:"proposal_duration"`
	MinProposalAmount uint64 `json:"min_proposal_amount"`
	TimelockPeriod    uint64 `json:"timelock_period"`
	UnstakeCooldown   uint64 `json:"unstake_cooldown"`
	ExecutionDelay    uint64 `json:"execution_delay"`
	RewardRate        uint64 `json:"reward_rate"`
	TotalStaked       uint64 `json:"total_staked"`
	ProposalCount     uint64 `json:"proposal_count"`
	Owner             string `json:"owner,omitempty"`
	OwnerInitialized  bool   `json:"owner_initialized"`
	Treasury          string `json:"treasury"`
}

// OwnerResponse is returned by the owner write operations.
type OwnerResponse struct {
	Owner       string `json:"owner,omitempty"`
	Initialized bool   `json:"initialized"`
}

// EventsResponse is returned by GET /api/events. Head is the sequence
// number of the most recent event in the log.
type EventsResponse struct {
	From   uint64                 `json:"from"`
	Head   uint64                 `json:"head"`
	Events []database.EventRecord `json:"events"`
}

func proposalResponse(p *gov.ProposalInfo) ProposalResponse {
	return ProposalResponse{
		ID:             p.ID,
		Proposer:       p.Proposer,
		Title:          p.Title,
		Description:    p.Description,
		Type:           p.Type.String(),
		Amount:         p.Amount,
		Recipient:      p.Recipient,
		ParamName:      p.ParamName,
		ParamValue:     p.ParamValue,
		CallContract:   p.CallContract,
		CallFunction:   p.CallFunction,
		StartBlock:     p.StartBlock,
		EndBlock:       p.EndBlock,
		ExecutionBlock: p.ExecutionBlock,
		YesVotes:       p.YesVotes,
		NoVotes:        p.NoVotes,
		Status:         p.Status.String(),
		Executed:       p.Executed,
	}
}
