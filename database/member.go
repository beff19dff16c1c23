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

// GetMember returns the member record for an identity
func (d *Database) GetMember(
	identity string,
	txn *Txn,
) (*models.Member, error) {
	if txn == nil {
		txn = d.MetadataTxn(false)
		defer txn.Release()
	}
	member, err := d.metadata.GetMember(identity, txn.Metadata())
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	if member == nil {
		return nil, models.ErrMemberNotFound
	}
	return member, nil
}

// SetMember creates or updates a member record
func (d *Database) SetMember(
	member *models.Member,
	txn *Txn,
) error {
	if member == nil {
		return errors.New("member cannot be nil")
	}
	owned := false
	if txn == nil {
		txn = d.MetadataTxn(true)
		owned = true
		defer txn.Release()
	}
	if err := d.metadata.SetMember(member, txn.Metadata()); err != nil {
		return fmt.Errorf("failed to set member: %w", err)
	}
	if owned {
		if err := txn.Commit(); err != nil {
			return fmt.Errorf("failed to commit member: %w", err)
		}
	}
	return nil
}
