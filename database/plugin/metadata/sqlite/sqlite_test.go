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

package sqlite

import (
	"testing"

	"github.com/benedict-drio/decentralized-autonomous-organization/database/models"
	"github.com/benedict-drio/decentralized-autonomous-organization/database/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *MetadataStoreSqlite {
	t.Helper()
	store, err := New("", nil, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		store.Close() //nolint:errcheck
	})
	return store
}

func TestGetSetMember(t *testing.T) {
	store := setupTestStore(t)

	// Initially no member
	member, err := store.GetMember("alice", nil)
	require.NoError(t, err)
	assert.Nil(t, member)

	// Add a member
	err = store.SetMember(&models.Member{
		Identity:        "alice",
		StakedAmount:    types.Uint64(5000),
		LastRewardBlock: 100,
	}, nil)
	require.NoError(t, err)

	// Retrieve it
	member, err = store.GetMember("alice", nil)
	require.NoError(t, err)
	require.NotNil(t, member)
	assert.Equal(t, "alice", member.Identity)
	assert.Equal(t, types.Uint64(5000), member.StakedAmount)
	assert.Equal(t, uint64(100), member.LastRewardBlock)

	// Update via upsert on identity
	member.StakedAmount = types.Uint64(7500)
	member.DelegatedTo = "bob"
	member.CooldownEnd = 250
	err = store.SetMember(member, nil)
	require.NoError(t, err)

	member, err = store.GetMember("alice", nil)
	require.NoError(t, err)
	require.NotNil(t, member)
	assert.Equal(t, types.Uint64(7500), member.StakedAmount)
	assert.Equal(t, "bob", member.DelegatedTo)
	assert.Equal(t, uint64(250), member.CooldownEnd)
}

func TestDelegationAggregate(t *testing.T) {
	store := setupTestStore(t)

	// Initially no delegation aggregate
	delegation, err := store.GetDelegation("bob", nil)
	require.NoError(t, err)
	assert.Nil(t, delegation)

	// Create the aggregate
	err = store.SetDelegation(&models.Delegation{
		Delegate:       "bob",
		TotalDelegated: types.Uint64(1000),
	}, nil)
	require.NoError(t, err)

	// Update via upsert on delegate
	err = store.SetDelegation(&models.Delegation{
		Delegate:       "bob",
		TotalDelegated: types.Uint64(3000),
	}, nil)
	require.NoError(t, err)

	delegation, err = store.GetDelegation("bob", nil)
	require.NoError(t, err)
	require.NotNil(t, delegation)
	assert.Equal(t, types.Uint64(3000), delegation.TotalDelegated)
}

func TestDelegatorList(t *testing.T) {
	store := setupTestStore(t)

	// Add delegators out of position order
	err := store.AddDelegator(&models.Delegator{
		Delegate: "bob",
		Identity: "carol",
		Position: 1,
	}, nil)
	require.NoError(t, err)
	err = store.AddDelegator(&models.Delegator{
		Delegate: "bob",
		Identity: "alice",
		Position: 0,
	}, nil)
	require.NoError(t, err)

	count, err := store.CountDelegators("bob", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// List follows insertion position, not insert order
	delegators, err := store.GetDelegators("bob", nil)
	require.NoError(t, err)
	require.Len(t, delegators, 2)
	assert.Equal(t, "alice", delegators[0].Identity)
	assert.Equal(t, "carol", delegators[1].Identity)

	// Duplicate delegator rejected by unique index
	err = store.AddDelegator(&models.Delegator{
		Delegate: "bob",
		Identity: "alice",
		Position: 2,
	}, nil)
	assert.Error(t, err)

	// Remove one
	err = store.RemoveDelegator("bob", "alice", nil)
	require.NoError(t, err)
	count, err = store.CountDelegators("bob", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Other delegates unaffected
	count, err = store.CountDelegators("dave", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestGetSetProposal(t *testing.T) {
	store := setupTestStore(t)

	// Initially no proposal
	proposal, err := store.GetProposal(1, nil)
	require.NoError(t, err)
	assert.Nil(t, proposal)

	// Create a proposal
	err = store.SetProposal(&models.Proposal{
		ID:             1,
		Proposer:       "alice",
		Title:          "fund the relay",
		Description:    "monthly budget",
		Amount:         types.Uint64(2_000_000),
		Recipient:      "carol",
		StartBlock:     100,
		EndBlock:       244,
		ExecutionBlock: 256,
		Status:         models.ProposalStatusActive,
		ProposalType:   models.ProposalTypeTransfer,
	}, nil)
	require.NoError(t, err)

	// Tally update leaves creation fields untouched
	err = store.SetProposal(&models.Proposal{
		ID:           1,
		YesVotes:     types.Uint64(5000),
		NoVotes:      types.Uint64(100),
		Status:       models.ProposalStatusActive,
		ProposalType: models.ProposalTypeTransfer,
	}, nil)
	require.NoError(t, err)

	proposal, err = store.GetProposal(1, nil)
	require.NoError(t, err)
	require.NotNil(t, proposal)
	assert.Equal(t, "alice", proposal.Proposer)
	assert.Equal(t, "fund the relay", proposal.Title)
	assert.Equal(t, types.Uint64(2_000_000), proposal.Amount)
	assert.Equal(t, types.Uint64(5000), proposal.YesVotes)
	assert.Equal(t, types.Uint64(100), proposal.NoVotes)

	// Listing returns proposals in ID order
	err = store.SetProposal(&models.Proposal{
		ID:           2,
		Proposer:     "bob",
		Title:        "tune quorum",
		Status:       models.ProposalStatusActive,
		ProposalType: models.ProposalTypeParameter,
		ParamName:    "quorum-threshold",
		ParamValue:   500,
	}, nil)
	require.NoError(t, err)
	proposals, err := store.GetProposals(nil)
	require.NoError(t, err)
	require.Len(t, proposals, 2)
	assert.Equal(t, uint64(1), proposals[0].ID)
	assert.Equal(t, uint64(2), proposals[1].ID)
}

func TestVoteUniqueness(t *testing.T) {
	store := setupTestStore(t)

	err := store.SetVote(&models.Vote{
		ProposalID: 1,
		Voter:      "alice",
		Direction:  true,
		Power:      types.Uint64(5000),
		CastBlock:  120,
	}, nil)
	require.NoError(t, err)

	// Second vote under the same (proposal, voter) key is rejected
	err = store.SetVote(&models.Vote{
		ProposalID: 1,
		Voter:      "alice",
		Direction:  false,
		Power:      types.Uint64(5000),
		CastBlock:  121,
	}, nil)
	assert.Error(t, err)

	// Same voter on another proposal is fine
	err = store.SetVote(&models.Vote{
		ProposalID: 2,
		Voter:      "alice",
		Direction:  false,
		Power:      types.Uint64(5000),
		CastBlock:  122,
	}, nil)
	require.NoError(t, err)

	votes, err := store.GetVotesByProposal(1, nil)
	require.NoError(t, err)
	require.Len(t, votes, 1)
	assert.Equal(t, "alice", votes[0].Voter)
	assert.True(t, votes[0].Direction)

	vote, err := store.GetVote(1, "alice", nil)
	require.NoError(t, err)
	require.NotNil(t, vote)
	assert.Equal(t, types.Uint64(5000), vote.Power)

	vote, err = store.GetVote(1, "bob", nil)
	require.NoError(t, err)
	assert.Nil(t, vote)
}

func TestTimelockRestart(t *testing.T) {
	store := setupTestStore(t)

	// Initially no timelock
	timelock, err := store.GetTimelock("owner1", "change-owner", nil)
	require.NoError(t, err)
	assert.Nil(t, timelock)

	err = store.SetTimelock(&models.Timelock{
		Initiator: "owner1",
		Operation: "change-owner",
		EndBlock:  172,
	}, nil)
	require.NoError(t, err)

	// Re-request restarts the delay by overwriting end_block
	err = store.SetTimelock(&models.Timelock{
		Initiator: "owner1",
		Operation: "change-owner",
		EndBlock:  300,
	}, nil)
	require.NoError(t, err)

	timelock, err = store.GetTimelock("owner1", "change-owner", nil)
	require.NoError(t, err)
	require.NotNil(t, timelock)
	assert.Equal(t, uint64(300), timelock.EndBlock)
}

func TestGovStateSingleRow(t *testing.T) {
	store := setupTestStore(t)

	// Initially absent
	state, err := store.GetGovState(nil)
	require.NoError(t, err)
	assert.Nil(t, state)

	err = store.SetGovState(&models.GovState{
		QuorumThreshold:  400,
		ProposalDuration: 144,
		TotalStaked:      types.Uint64(1_000_000),
		ProposalCount:    3,
		Owner:            "owner1",
		OwnerInitialized: true,
	}, nil)
	require.NoError(t, err)

	// Writes always land on the same row
	err = store.SetGovState(&models.GovState{
		ID:               42,
		QuorumThreshold:  500,
		ProposalDuration: 144,
		TotalStaked:      types.Uint64(1_500_000),
		ProposalCount:    4,
		Owner:            "owner1",
		OwnerInitialized: true,
	}, nil)
	require.NoError(t, err)

	state, err = store.GetGovState(nil)
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, uint(1), state.ID)
	assert.Equal(t, uint64(500), state.QuorumThreshold)
	assert.Equal(t, types.Uint64(1_500_000), state.TotalStaked)
	assert.Equal(t, uint64(4), state.ProposalCount)
}

func TestTransactionRollback(t *testing.T) {
	store := setupTestStore(t)

	txn := store.Transaction()
	err := store.SetMember(&models.Member{
		Identity:     "eve",
		StakedAmount: types.Uint64(1234),
	}, txn)
	require.NoError(t, err)
	require.NoError(t, txn.Rollback())

	// Rolled back write is not visible
	member, err := store.GetMember("eve", nil)
	require.NoError(t, err)
	assert.Nil(t, member)
}
