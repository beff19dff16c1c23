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

// GetTimelock returns the timelock entry for an initiator and operation
func (d *Database) GetTimelock(
	initiator string,
	operation string,
	txn *Txn,
) (*models.Timelock, error) {
	if txn == nil {
		txn = d.MetadataTxn(false)
		defer txn.Release()
	}
	timelock, err := d.metadata.GetTimelock(initiator, operation, txn.Metadata())
	if err != nil {
		return nil, fmt.Errorf("failed to get timelock: %w", err)
	}
	if timelock == nil {
		return nil, models.ErrTimelockNotFound
	}
	return timelock, nil
}

// SetTimelock creates or updates a timelock entry
func (d *Database) SetTimelock(
	timelock *models.Timelock,
	txn *Txn,
) error {
	if timelock == nil {
		return errors.New("timelock cannot be nil")
	}
	owned := false
	if txn == nil {
		txn = d.MetadataTxn(true)
		owned = true
		defer txn.Release()
	}
	if err := d.metadata.SetTimelock(timelock, txn.Metadata()); err != nil {
		return fmt.Errorf("failed to set timelock: %w", err)
	}
	if owned {
		if err := txn.Commit(); err != nil {
			return fmt.Errorf("failed to commit timelock: %w", err)
		}
	}
	return nil
}
