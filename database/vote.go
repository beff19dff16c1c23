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

package database

import (
	"errors"
	"fmt"

	"github.com/benedict-drio/decentralized-autonomous-organization/database/models"
)

// GetVote returns the vote record for a proposal and effective voter
func (d *Database) GetVote(
	proposalId uint64,
	voter string,
	txn *Txn,
) (*models.Vote, error) {
	if txn == nil {
		txn = d.MetadataTxn(false)
		defer txn.Release()
	}
	vote, err := d.metadata.GetVote(proposalId, voter, txn.Metadata())
	if err != nil {
		return nil, fmt.Errorf("failed to get vote: %w", err)
	}
	if vote == nil {
		return nil, models.ErrVoteNotFound
	}
	return vote, nil
}

// GetVotesByProposal returns all vote records for a proposal
func (d *Database) GetVotesByProposal(
	proposalId uint64,
	txn *Txn,
) ([]models.Vote, error) {
	if txn == nil {
		txn = d.MetadataTxn(false)
		defer txn.Release()
	}
	votes, err := d.metadata.GetVotesByProposal(proposalId, txn.Metadata())
	if err != nil {
		return nil, fmt.Errorf("failed to get votes: %w", err)
	}
	return votes, nil
}

// SetVote records a vote
func (d *Database) SetVote(
	vote *models.Vote,
	txn *Txn,
) error {
	if vote == nil {
		return errors.New("vote cannot be nil")
	}
	owned := false
	if txn == nil {
		txn = d.MetadataTxn(true)
		owned = true
		defer txn.Release()
	}
	if err := d.metadata.SetVote(vote, txn.Metadata()); err != nil {
		return fmt.Errorf("failed to set vote: %w", err)
	}
	if owned {
		if err := txn.Commit(); err != nil {
			return fmt.Errorf("failed to commit vote: %w", err)
		}
	}
	return nil
}
