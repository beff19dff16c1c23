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
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strconv"

	"github.com/benedict-drio/decentralized-autonomous-organization/database"
	"github.com/benedict-drio/decentralized-autonomous-organization/database/models"
	"github.com/benedict-drio/decentralized-autonomous-organization/gov"
)

const apiVersion = "0.1.0"

// writeJSON writes a JSON response with the given status code.
func writeJSON(
	w http.ResponseWriter,
	status int,
	v any,
) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,errchkjson
	json.NewEncoder(w).Encode(v)
}

// writeBadRequest writes a 400 response for malformed request input.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		StatusCode: http.StatusBadRequest,
		Error:      http.StatusText(http.StatusBadRequest),
		Message:    message,
	})
}

// writeError maps an operation error onto an HTTP status and writes the
// error response body. Internal failures are logged and masked.
func (a *Api) writeError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		a.logger.Error(
			"request failed",
			"error", err,
		)
		message = "internal error"
	}
	writeJSON(w, status, ErrorResponse{
		StatusCode: status,
		Error:      http.StatusText(status),
		Message:    message,
	})
}

// statusForError maps the governance failure taxonomy onto HTTP status
// codes. Unknown errors are treated as internal failures.
func statusForError(err error) int {
	switch {
	case errors.Is(err, gov.ErrProposalNotFound),
		errors.Is(err, gov.ErrDelegateNotFound),
		errors.Is(err, models.ErrMemberNotFound),
		errors.Is(err, models.ErrDelegationNotFound),
		errors.Is(err, models.ErrProposalNotFound),
		errors.Is(err, models.ErrVoteNotFound),
		errors.Is(err, models.ErrTimelockNotFound):
		return http.StatusNotFound
	case errors.Is(err, gov.ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, gov.ErrInsufficientBalance):
		return http.StatusPaymentRequired
	case errors.Is(err, gov.ErrInvalidAmount),
		errors.Is(err, gov.ErrInvalidParameter),
		errors.Is(err, gov.ErrInvalidTitle),
		errors.Is(err, gov.ErrInvalidDescription),
		errors.Is(err, gov.ErrInvalidRecipient),
		errors.Is(err, gov.ErrInvalidOwner),
		errors.Is(err, gov.ErrProposalTypeInvalid),
		errors.Is(err, gov.ErrSelfDelegation),
		errors.Is(err, ErrInvalidPaginationParameters):
		return http.StatusBadRequest
	case errors.Is(err, gov.ErrAlreadyVoted),
		errors.Is(err, gov.ErrProposalExpired),
		errors.Is(err, gov.ErrProposalNotActive),
		errors.Is(err, gov.ErrInvalidStatus),
		errors.Is(err, gov.ErrTimelockActive),
		errors.Is(err, gov.ErrCooldownActive),
		errors.Is(err, gov.ErrInactiveMember),
		errors.Is(err, gov.ErrDelegationLimit):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON decodes a request body into v
func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// proposalIdFromPath parses the {id} path segment
func proposalIdFromPath(r *http.Request) (uint64, error) {
	return strconv.ParseUint(r.PathValue("id"), 10, 64)
}

// memberView returns a member record with pending rewards folded forward
// to the current block height
func (a *Api) memberView(identity string) (*gov.MemberInfo, error) {
	member, err := a.engine.MemberInfo(identity)
	if err != nil {
		return nil, err
	}
	pending, err := a.engine.PendingRewards(identity)
	if err != nil {
		return nil, err
	}
	member.PendingRewards = pending
	return member, nil
}

// respondMember writes the current member record for an identity
func (a *Api) respondMember(w http.ResponseWriter, identity string) {
	member, err := a.memberView(identity)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, member)
}

// respondProposal writes the current proposal record with the given
// status code
func (a *Api) respondProposal(
	w http.ResponseWriter,
	id uint64,
	status int,
) {
	proposal, err := a.engine.ProposalInfo(id)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, status, proposalResponse(proposal))
}

// respondOwner writes the current owner state
func (a *Api) respondOwner(w http.ResponseWriter) {
	owner, initialized := a.engine.Owner()
	writeJSON(w, http.StatusOK, OwnerResponse{
		Owner:       owner,
		Initialized: initialized,
	})
}

// handleRoot handles GET / and returns API metadata.
func (a *Api) handleRoot(
	w http.ResponseWriter,
	_ *http.Request,
) {
	writeJSON(w, http.StatusOK, RootResponse{
		Name:    "governance",
		Version: apiVersion,
	})
}

// handleHealth handles GET /health and returns service health status.
func (a *Api) handleHealth(
	w http.ResponseWriter,
	_ *http.Request,
) {
	writeJSON(w, http.StatusOK, HealthResponse{
		IsHealthy: true,
	})
}

// handleMember handles GET /api/member/{id} and returns the member
// record for an identity.
func (a *Api) handleMember(
	w http.ResponseWriter,
	r *http.Request,
) {
	a.respondMember(w, r.PathValue("id"))
}

// handlePower handles GET /api/power/{id} and returns an identity's
// current voting power.
func (a *Api) handlePower(
	w http.ResponseWriter,
	r *http.Request,
) {
	identity := r.PathValue("id")
	power, err := a.engine.VotingPower(identity)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PowerResponse{
		Identity: identity,
		Power:    power,
	})
}

// handleDelegation handles GET /api/delegation/{id} and returns a
// delegate's aggregate and delegator list.
func (a *Api) handleDelegation(
	w http.ResponseWriter,
	r *http.Request,
) {
	delegation, err := a.engine.DelegationInfo(r.PathValue("id"))
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, delegation)
}

// handleProposals handles GET /api/proposals and returns proposals with
// pagination.
func (a *Api) handleProposals(
	w http.ResponseWriter,
	r *http.Request,
) {
	pagination, err := ParsePagination(r)
	if err != nil {
		a.writeError(w, err)
		return
	}
	proposals, err := a.engine.Proposals()
	if err != nil {
		a.writeError(w, err)
		return
	}
	if pagination.Order == PaginationOrderDesc {
		slices.Reverse(proposals)
	}
	SetPaginationHeaders(w, len(proposals), pagination)
	start, end := pageBounds(len(proposals), pagination)
	ret := make([]ProposalResponse, 0, end-start)
	for i := start; i < end; i++ {
		ret = append(ret, proposalResponse(&proposals[i]))
	}
	writeJSON(w, http.StatusOK, ret)
}

// handleProposal handles GET /api/proposal/{id} and returns a single
// proposal.
func (a *Api) handleProposal(
	w http.ResponseWriter,
	r *http.Request,
) {
	id, err := proposalIdFromPath(r)
	if err != nil {
		writeBadRequest(w, "invalid proposal id")
		return
	}
	a.respondProposal(w, id, http.StatusOK)
}

// handleProposalVotes handles GET /api/proposal/{id}/votes and returns
// the votes recorded for a proposal with pagination.
func (a *Api) handleProposalVotes(
	w http.ResponseWriter,
	r *http.Request,
) {
	id, err := proposalIdFromPath(r)
	if err != nil {
		writeBadRequest(w, "invalid proposal id")
		return
	}
	pagination, err := ParsePagination(r)
	if err != nil {
		a.writeError(w, err)
		return
	}
	if _, err := a.engine.ProposalInfo(id); err != nil {
		a.writeError(w, err)
		return
	}
	votes, err := a.engine.Votes(id)
	if err != nil {
		a.writeError(w, err)
		return
	}
	if pagination.Order == PaginationOrderDesc {
		slices.Reverse(votes)
	}
	SetPaginationHeaders(w, len(votes), pagination)
	start, end := pageBounds(len(votes), pagination)
	writeJSON(w, http.StatusOK, votes[start:end])
}

// handleParams handles GET /api/params and returns the active governance
// parameters alongside aggregate state.
func (a *Api) handleParams(
	w http.ResponseWriter,
	_ *http.Request,
) {
	params := a.engine.Params()
	owner, initialized := a.engine.Owner()
	writeJSON(w, http.StatusOK, ParamsResponse{
		QuorumThreshold:   params.QuorumThreshold,
		ProposalDuration:  params.ProposalDuration,
		MinProposalAmount: params.MinProposalAmount,
		TimelockPeriod:    params.TimelockPeriod,
		UnstakeCooldown:   params.UnstakeCooldown,
		ExecutionDelay:    params.ExecutionDelay,
		RewardRate:        params.RewardRate,
		TotalStaked:       a.engine.TotalStaked(),
		ProposalCount:     a.engine.ProposalCount(),
		Owner:             owner,
		OwnerInitialized:  initialized,
		Treasury:          a.engine.Treasury(),
	})
}

// handleEvents handles GET /api/events and returns durable event log
// records starting from a sequence cursor.
func (a *Api) handleEvents(
	w http.ResponseWriter,
	r *http.Request,
) {
	query := r.URL.Query()
	from := database.EventInitialSequence
	if fromParam := query.Get("from"); fromParam != "" {
		parsed, err := strconv.ParseUint(fromParam, 10, 64)
		if err != nil {
			writeBadRequest(w, "invalid from parameter")
			return
		}
		from = parsed
	}
	count := DefaultPaginationCount
	if countParam := query.Get("count"); countParam != "" {
		parsed, err := strconv.Atoi(countParam)
		if err != nil {
			writeBadRequest(w, "invalid count parameter")
			return
		}
		count = parsed
	}
	if count < 1 {
		count = 1
	}
	if count > MaxPaginationCount {
		count = MaxPaginationCount
	}
	head, err := a.engine.EventHead()
	if err != nil {
		a.writeError(w, err)
		return
	}
	events, err := a.engine.Events(from, count)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, EventsResponse{
		From:   from,
		Head:   head,
		Events: events,
	})
}

// handleTimelock handles GET /api/timelock/{id}/{op} and returns the
// pending timelock entry for an initiator and operation.
func (a *Api) handleTimelock(
	w http.ResponseWriter,
	r *http.Request,
) {
	info, err := a.engine.TimelockStatus(
		r.PathValue("id"),
		r.PathValue("op"),
	)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// handleStake handles POST /api/stake.
func (a *Api) handleStake(
	w http.ResponseWriter,
	r *http.Request,
) {
	var req StakeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if err := a.engine.Stake(req.Caller, req.Amount); err != nil {
		a.writeError(w, err)
		return
	}
	a.respondMember(w, req.Caller)
}

// handleUnstakeRequest handles POST /api/unstake/request and starts the
// unstake cooldown for the caller.
func (a *Api) handleUnstakeRequest(
	w http.ResponseWriter,
	r *http.Request,
) {
	var req UnstakeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if err := a.engine.RequestUnstake(req.Caller, req.Amount); err != nil {
		a.writeError(w, err)
		return
	}
	a.respondMember(w, req.Caller)
}

// handleUnstake handles POST /api/unstake.
func (a *Api) handleUnstake(
	w http.ResponseWriter,
	r *http.Request,
) {
	var req UnstakeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if err := a.engine.Unstake(req.Caller, req.Amount); err != nil {
		a.writeError(w, err)
		return
	}
	a.respondMember(w, req.Caller)
}

// handleDelegate handles POST /api/delegate and returns the delegate's
// updated aggregate.
func (a *Api) handleDelegate(
	w http.ResponseWriter,
	r *http.Request,
) {
	var req DelegateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if err := a.engine.Delegate(req.Caller, req.Delegate); err != nil {
		a.writeError(w, err)
		return
	}
	delegation, err := a.engine.DelegationInfo(req.Delegate)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, delegation)
}

// handleUndelegate handles POST /api/undelegate.
func (a *Api) handleUndelegate(
	w http.ResponseWriter,
	r *http.Request,
) {
	var req CallerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if err := a.engine.Undelegate(req.Caller); err != nil {
		a.writeError(w, err)
		return
	}
	a.respondMember(w, req.Caller)
}

// handleCreateProposal handles POST /api/proposal and returns the new
// proposal with status 201.
func (a *Api) handleCreateProposal(
	w http.ResponseWriter,
	r *http.Request,
) {
	var req CreateProposalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	proposalType, err := gov.ParseProposalType(req.Type)
	if err != nil {
		a.writeError(w, err)
		return
	}
	id, err := a.engine.CreateProposal(req.Caller, gov.ProposalRequest{
		Title:        req.Title,
		Description:  req.Description,
		Type:         proposalType,
		Amount:       req.Amount,
		Recipient:    req.Recipient,
		ParamName:    req.ParamName,
		ParamValue:   req.ParamValue,
		CallContract: req.CallContract,
		CallFunction: req.CallFunction,
	})
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.respondProposal(w, id, http.StatusCreated)
}

// handleVote handles POST /api/proposal/{id}/vote and returns the
// proposal with updated tallies.
func (a *Api) handleVote(
	w http.ResponseWriter,
	r *http.Request,
) {
	id, err := proposalIdFromPath(r)
	if err != nil {
		writeBadRequest(w, "invalid proposal id")
		return
	}
	var req VoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if err := a.engine.Vote(req.Caller, id, req.Support); err != nil {
		a.writeError(w, err)
		return
	}
	a.respondProposal(w, id, http.StatusOK)
}

// handleExecute handles POST /api/proposal/{id}/execute and returns the
// resolved proposal.
func (a *Api) handleExecute(
	w http.ResponseWriter,
	r *http.Request,
) {
	id, err := proposalIdFromPath(r)
	if err != nil {
		writeBadRequest(w, "invalid proposal id")
		return
	}
	var req CallerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if err := a.engine.ExecuteProposal(req.Caller, id); err != nil {
		a.writeError(w, err)
		return
	}
	a.respondProposal(w, id, http.StatusOK)
}

// handleClaimRewards handles POST /api/rewards/claim.
func (a *Api) handleClaimRewards(
	w http.ResponseWriter,
	r *http.Request,
) {
	var req CallerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if err := a.engine.ClaimRewards(req.Caller); err != nil {
		a.writeError(w, err)
		return
	}
	a.respondMember(w, req.Caller)
}

// handleOwnerInit handles POST /api/owner/init and claims the unset
// owner role for the caller.
func (a *Api) handleOwnerInit(
	w http.ResponseWriter,
	r *http.Request,
) {
	var req CallerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if err := a.engine.InitializeOwner(req.Caller); err != nil {
		a.writeError(w, err)
		return
	}
	a.respondOwner(w)
}

// handleOwnerChangeRequest handles POST /api/owner/change/request and
// returns the created timelock entry.
func (a *Api) handleOwnerChangeRequest(
	w http.ResponseWriter,
	r *http.Request,
) {
	var req OwnerChangeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if err := a.engine.RequestOwnerChange(req.Caller, req.NewOwner); err != nil {
		a.writeError(w, err)
		return
	}
	info, err := a.engine.TimelockStatus(
		req.Caller,
		gov.TimelockOpOwnerChange,
	)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// handleOwnerChangeExecute handles POST /api/owner/change/execute.
func (a *Api) handleOwnerChangeExecute(
	w http.ResponseWriter,
	r *http.Request,
) {
	var req CallerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if err := a.engine.ExecuteOwnerChange(req.Caller); err != nil {
		a.writeError(w, err)
		return
	}
	a.respondOwner(w)
}
