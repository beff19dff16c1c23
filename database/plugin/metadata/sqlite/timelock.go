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

// GetTimelock retrieves the timelock entry for an initiator and operation.
// Returns nil if the pair has never been requested.
func (d *MetadataStoreSqlite) GetTimelock(
	initiator string,
	operation string,
	txn types.Txn,
) (*models.Timelock, error) {
	var timelock models.Timelock
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	if result := db.Where(
		"initiator = ? AND operation = ?",
		initiator,
		operation,
	).First(&timelock); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &timelock, nil
}

// SetTimelock creates or updates a timelock entry. Re-requesting an
// existing (initiator, operation) pair restarts the delay.
func (d *MetadataStoreSqlite) SetTimelock(
	timelock *models.Timelock,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return err
	}
	onConflict := clause.OnConflict{
		Columns: []clause.Column{
			{Name: "initiator"},
			{Name: "operation"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"end_block",
			"param_name",
			"param_value",
		}),
	}
	if result := db.Clauses(onConflict).Create(timelock); result.Error != nil {
		return result.Error
	}
	return nil
}
