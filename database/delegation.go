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

// GetDelegation returns the delegation aggregate for a delegate
func (d *Database) GetDelegation(
	delegate string,
	txn *Txn,
) (*models.Delegation, error) {
	if txn == nil {
		txn = d.MetadataTxn(false)
		defer txn.Release()
	}
	delegation, err := d.metadata.GetDelegation(delegate, txn.Metadata())
	if err != nil {
		return nil, fmt.Errorf("failed to get delegation: %w", err)
	}
	if delegation == nil {
		return nil, models.ErrDelegationNotFound
	}
	return delegation, nil
}

// SetDelegation creates or updates the delegation aggregate for a delegate
func (d *Database) SetDelegation(
	delegation *models.Delegation,
	txn *Txn,
) error {
	if delegation == nil {
		return errors.New("delegation cannot be nil")
	}
	owned := false
	if txn == nil {
		txn = d.MetadataTxn(true)
		owned = true
		defer txn.Release()
	}
	if err := d.metadata.SetDelegation(delegation, txn.Metadata()); err != nil {
		return fmt.Errorf("failed to set delegation: %w", err)
	}
	if owned {
		if err := txn.Commit(); err != nil {
			return fmt.Errorf("failed to commit delegation: %w", err)
		}
	}
	return nil
}

// GetDelegators returns the delegator list for a delegate in insertion order
func (d *Database) GetDelegators(
	delegate string,
	txn *Txn,
) ([]models.Delegator, error) {
	if txn == nil {
		txn = d.MetadataTxn(false)
		defer txn.Release()
	}
	delegators, err := d.metadata.GetDelegators(delegate, txn.Metadata())
	if err != nil {
		return nil, fmt.Errorf("failed to get delegators: %w", err)
	}
	return delegators, nil
}

// CountDelegators returns the number of delegators for a delegate
func (d *Database) CountDelegators(
	delegate string,
	txn *Txn,
) (int64, error) {
	if txn == nil {
		txn = d.MetadataTxn(false)
		defer txn.Release()
	}
	count, err := d.metadata.CountDelegators(delegate, txn.Metadata())
	if err != nil {
		return 0, fmt.Errorf("failed to count delegators: %w", err)
	}
	return count, nil
}

// AddDelegator records a delegator under a delegate
func (d *Database) AddDelegator(
	delegator *models.Delegator,
	txn *Txn,
) error {
	if delegator == nil {
		return errors.New("delegator cannot be nil")
	}
	owned := false
	if txn == nil {
		txn = d.MetadataTxn(true)
		owned = true
		defer txn.Release()
	}
	if err := d.metadata.AddDelegator(delegator, txn.Metadata()); err != nil {
		return fmt.Errorf("failed to add delegator: %w", err)
	}
	if owned {
		if err := txn.Commit(); err != nil {
			return fmt.Errorf("failed to commit delegator: %w", err)
		}
	}
	return nil
}

// RemoveDelegator removes a delegator from a delegate's list
func (d *Database) RemoveDelegator(
	delegate string,
	identity string,
	txn *Txn,
) error {
	owned := false
	if txn == nil {
		txn = d.MetadataTxn(true)
		owned = true
		defer txn.Release()
	}
	if err := d.metadata.RemoveDelegator(delegate, identity, txn.Metadata()); err != nil {
		return fmt.Errorf("failed to remove delegator: %w", err)
	}
	if owned {
		if err := txn.Commit(); err != nil {
			return fmt.Errorf("failed to commit delegator removal: %w", err)
		}
	}
	return nil
}
