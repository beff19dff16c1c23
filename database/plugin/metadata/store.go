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

package metadata

import (
	"log/slog"

	"github.com/benedict-drio/decentralized-autonomous-organization/database/models"
	"github.com/benedict-drio/decentralized-autonomous-organization/database/plugin/metadata/sqlite"
	"github.com/benedict-drio/decentralized-autonomous-organization/database/types"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type MetadataStore interface {
	// Database
	Close() error
	DB() *gorm.DB
	GetCommitTimestamp() (int64, error)
	SetCommitTimestamp(int64, types.Txn) error
	Transaction() types.Txn

	// Members
	GetMember(
		string, // identity
		types.Txn,
	) (*models.Member, error)
	SetMember(
		*models.Member,
		types.Txn,
	) error

	// Delegations
	GetDelegation(
		string, // delegate
		types.Txn,
	) (*models.Delegation, error)
	SetDelegation(
		*models.Delegation,
		types.Txn,
	) error
	GetDelegators(
		string, // delegate
		types.Txn,
	) ([]models.Delegator, error)
	CountDelegators(
		string, // delegate
		types.Txn,
	) (int64, error)
	AddDelegator(
		*models.Delegator,
		types.Txn,
	) error
	RemoveDelegator(
		string, // delegate
		string, // identity
		types.Txn,
	) error

	// Proposals
	GetProposal(
		uint64, // id
		types.Txn,
	) (*models.Proposal, error)
	GetProposals(types.Txn) ([]models.Proposal, error)
	SetProposal(
		*models.Proposal,
		types.Txn,
	) error

	// Votes
	GetVote(
		uint64, // proposalId
		string, // voter
		types.Txn,
	) (*models.Vote, error)
	GetVotesByProposal(
		uint64, // proposalId
		types.Txn,
	) ([]models.Vote, error)
	SetVote(
		*models.Vote,
		types.Txn,
	) error

	// Timelocks
	GetTimelock(
		string, // initiator
		string, // operation
		types.Txn,
	) (*models.Timelock, error)
	SetTimelock(
		*models.Timelock,
		types.Txn,
	) error

	// Governance state
	GetGovState(types.Txn) (*models.GovState, error)
	SetGovState(
		*models.GovState,
		types.Txn,
	) error
}

// For now, this always returns a sqlite plugin
func New(
	pluginName, dataDir string,
	logger *slog.Logger,
	promRegistry prometheus.Registerer,
) (MetadataStore, error) {
	return sqlite.New(dataDir, logger, promRegistry)
}
