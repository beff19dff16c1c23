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

// GetGovState returns the single governance state row
func (d *Database) GetGovState(
	txn *Txn,
) (*models.GovState, error) {
	if txn == nil {
		txn = d.MetadataTxn(false)
		defer txn.Release()
	}
	state, err := d.metadata.GetGovState(txn.Metadata())
	if err != nil {
		return nil, fmt.Errorf("failed to get governance state: %w", err)
	}
	if state == nil {
		return nil, models.ErrGovStateNotFound
	}
	return state, nil
}

// SetGovState creates or updates the single governance state row
func (d *Database) SetGovState(
	state *models.GovState,
	txn *Txn,
) error {
	if state == nil {
		return errors.New("state cannot be nil")
	}
	owned := false
	if txn == nil {
		txn = d.MetadataTxn(true)
		owned = true
		defer txn.Release()
	}
	if err := d.metadata.SetGovState(state, txn.Metadata()); err != nil {
		return fmt.Errorf("failed to set governance state: %w", err)
	}
	if owned {
		if err := txn.Commit(); err != nil {
			return fmt.Errorf("failed to commit governance state: %w", err)
		}
	}
	return nil
}
