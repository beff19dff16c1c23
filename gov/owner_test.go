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
	"testing"

	"github.com/benedict-drio/decentralized-autonomous-organization/gov"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeOwner(t *testing.T) {
	h := newTestEngine(t)
	owner, initialized := h.engine.Owner()
	require.Empty(t, owner)
	require.False(t, initialized)
	require.NoError(t, h.engine.InitializeOwner("alice"))
	owner, initialized = h.engine.Owner()
	assert.Equal(t, "alice", owner)
	assert.True(t, initialized)
	// The role can only be claimed once
	err := h.engine.InitializeOwner("bob")
	require.ErrorIs(t, err, gov.ErrNotAuthorized)
	owner, _ = h.engine.Owner()
	assert.Equal(t, "alice", owner)
}

func TestInitializeOwnerEmpty(t *testing.T) {
	h := newTestEngine(t)
	assert.ErrorIs(t, h.engine.InitializeOwner(""), gov.ErrInvalidOwner)
}

func TestOwnerChangeFlow(t *testing.T) {
	h := newTestEngine(t)
	require.NoError(t, h.engine.InitializeOwner("alice"))
	require.NoError(t, h.engine.RequestOwnerChange("alice", "bob"))
	status, err := h.engine.TimelockStatus("alice", gov.TimelockOpOwnerChange)
	require.NoError(t, err)
	assert.Equal(
		t,
		testStartHeight+gov.DefaultParams().TimelockPeriod,
		status.EndBlock,
	)
	assert.Equal(t, "bob", status.ParamName)
	assert.False(t, status.Cleared)
	// The delay must be served in full
	err = h.engine.ExecuteOwnerChange("alice")
	require.ErrorIs(t, err, gov.ErrTimelockActive)
	h.clock.Advance(gov.DefaultParams().TimelockPeriod - 1)
	require.ErrorIs(
		t,
		h.engine.ExecuteOwnerChange("alice"),
		gov.ErrTimelockActive,
	)
	h.clock.Advance(1)
	status, err = h.engine.TimelockStatus("alice", gov.TimelockOpOwnerChange)
	require.NoError(t, err)
	assert.True(t, status.Cleared)
	require.NoError(t, h.engine.ExecuteOwnerChange("alice"))
	owner, _ := h.engine.Owner()
	assert.Equal(t, "bob", owner)
}

func TestOwnerChangeRequestAuth(t *testing.T) {
	h := newTestEngine(t)
	// No owner claimed yet
	err := h.engine.RequestOwnerChange("alice", "bob")
	require.ErrorIs(t, err, gov.ErrNotAuthorized)
	require.NoError(t, h.engine.InitializeOwner("alice"))
	err = h.engine.RequestOwnerChange("mallory", "bob")
	require.ErrorIs(t, err, gov.ErrNotAuthorized)
}

func TestOwnerChangeRequestValidation(t *testing.T) {
	h := newTestEngine(t)
	require.NoError(t, h.engine.InitializeOwner("alice"))
	assert.ErrorIs(
		t,
		h.engine.RequestOwnerChange("alice", ""),
		gov.ErrInvalidOwner,
	)
	assert.ErrorIs(
		t,
		h.engine.RequestOwnerChange("alice", "alice"),
		gov.ErrInvalidOwner,
	)
}

func TestOwnerChangeExecuteWithoutRequest(t *testing.T) {
	h := newTestEngine(t)
	require.NoError(t, h.engine.InitializeOwner("alice"))
	err := h.engine.ExecuteOwnerChange("alice")
	require.ErrorIs(t, err, gov.ErrTimelockActive)
}

func TestOwnerChangeRequestRestartsDelay(t *testing.T) {
	h := newTestEngine(t)
	require.NoError(t, h.engine.InitializeOwner("alice"))
	require.NoError(t, h.engine.RequestOwnerChange("alice", "bob"))
	h.clock.Advance(10)
	// A second request overwrites the pending change and restarts the delay
	require.NoError(t, h.engine.RequestOwnerChange("alice", "carol"))
	status, err := h.engine.TimelockStatus("alice", gov.TimelockOpOwnerChange)
	require.NoError(t, err)
	assert.Equal(
		t,
		testStartHeight+10+gov.DefaultParams().TimelockPeriod,
		status.EndBlock,
	)
	assert.Equal(t, "carol", status.ParamName)
	h.clock.Advance(gov.DefaultParams().TimelockPeriod)
	require.NoError(t, h.engine.ExecuteOwnerChange("alice"))
	owner, _ := h.engine.Owner()
	assert.Equal(t, "carol", owner)
}

func TestOwnerChangeRecordNotConsumed(t *testing.T) {
	h := newTestEngine(t)
	require.NoError(t, h.engine.InitializeOwner("alice"))
	require.NoError(t, h.engine.RequestOwnerChange("alice", "bob"))
	h.clock.Advance(gov.DefaultParams().TimelockPeriod)
	require.NoError(t, h.engine.ExecuteOwnerChange("alice"))
	// The matured record survives execution
	status, err := h.engine.TimelockStatus("alice", gov.TimelockOpOwnerChange)
	require.NoError(t, err)
	assert.True(t, status.Cleared)
	assert.Equal(t, "bob", status.ParamName)
	// The previous owner lost the authority to act on it again
	err = h.engine.ExecuteOwnerChange("alice")
	require.ErrorIs(t, err, gov.ErrNotAuthorized)
}

func TestOwnerChangePersists(t *testing.T) {
	h := newTestEngine(t)
	require.NoError(t, h.engine.InitializeOwner("alice"))
	require.NoError(t, h.engine.RequestOwnerChange("alice", "bob"))
	h.clock.Advance(gov.DefaultParams().TimelockPeriod)
	require.NoError(t, h.engine.ExecuteOwnerChange("alice"))
	// A reloaded engine sees the handed-over owner
	reloaded, err := gov.NewEngine(gov.EngineConfig{
		Database: h.db,
		Ledger:   h.ledger,
		Clock:    h.clock,
		Treasury: testTreasury,
	})
	require.NoError(t, err)
	owner, initialized := reloaded.Owner()
	assert.Equal(t, "bob", owner)
	assert.True(t, initialized)
}
