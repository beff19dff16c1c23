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
	"errors"

	"github.com/benedict-drio/decentralized-autonomous-organization/database/models"
	"github.com/benedict-drio/decentralized-autonomous-organization/database/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetDelegation retrieves the delegation aggregate for a delegate. Returns
// nil if nobody has ever delegated to the identity.
func (d *MetadataStoreSqlite) GetDelegation(
	delegate string,
	txn types.Txn,
) (*models.Delegation, error) {
	var delegation models.Delegation
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	if result := db.Where(
		"delegate = ?",
		delegate,
	).First(&delegation); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &delegation, nil
}

// SetDelegation creates or updates the delegation aggregate for a delegate.
func (d *MetadataStoreSqlite) SetDelegation(
	delegation *models.Delegation,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return err
	}
	onConflict := clause.OnConflict{
		Columns: []clause.Column{
			{Name: "delegate"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_delegated",
		}),
	}
	if result := db.Clauses(onConflict).Create(delegation); result.Error != nil {
		return result.Error
	}
	return nil
}

// GetDelegators retrieves the delegator list for a delegate in insertion
// order.
func (d *MetadataStoreSqlite) GetDelegators(
	delegate string,
	txn types.Txn,
) ([]models.Delegator, error) {
	var delegators []models.Delegator
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	if result := db.Where(
		"delegate = ?",
		delegate,
	).Order("position").Find(&delegators); result.Error != nil {
		return nil, result.Error
	}
	return delegators, nil
}

// CountDelegators returns the number of delegators for a delegate.
func (d *MetadataStoreSqlite) CountDelegators(
	delegate string,
	txn types.Txn,
) (int64, error) {
	var count int64
	db, err := d.resolveDB(txn)
	if err != nil {
		return 0, err
	}
	if result := db.Model(&models.Delegator{}).Where(
		"delegate = ?",
		delegate,
	).Count(&count); result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// AddDelegator records a delegator under a delegate.
func (d *MetadataStoreSqlite) AddDelegator(
	delegator *models.Delegator,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return err
	}
	if result := db.Create(delegator); result.Error != nil {
		return result.Error
	}
	return nil
}

// RemoveDelegator removes a delegator from a delegate's list.
func (d *MetadataStoreSqlite) RemoveDelegator(
	delegate string,
	identity string,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return err
	}
	if result := db.Where(
		"delegate = ? AND identity = ?",
		delegate,
		identity,
	).Delete(&models.Delegator{}); result.Error != nil {
		return result.Error
	}
	return nil
}
