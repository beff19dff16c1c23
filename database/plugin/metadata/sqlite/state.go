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

const (
	govStateRowId = 1
)

// GetGovState retrieves the single governance state row. Returns nil when
// the row has not been written yet.
func (d *MetadataStoreSqlite) GetGovState(
	txn types.Txn,
) (*models.GovState, error) {
	var state models.GovState
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	if result := db.Where(
		"id = ?",
		govStateRowId,
	).First(&state); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &state, nil
}

// SetGovState creates or updates the single governance state row.
func (d *MetadataStoreSqlite) SetGovState(
	state *models.GovState,
	txn types.Txn,
) error {
	state.ID = govStateRowId
	db, err := d.resolveDB(txn)
	if err != nil {
		return err
	}
	onConflict := clause.OnConflict{
		Columns: []clause.Column{
			{Name: "id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"quorum_threshold",
			"proposal_duration",
			"min_proposal_amount",
			"timelock_period",
			"unstake_cooldown",
			"execution_delay",
			"reward_rate",
			"total_staked",
			"proposal_count",
			"owner",
			"owner_initialized",
		}),
	}
	if result := db.Clauses(onConflict).Create(state); result.Error != nil {
		return result.Error
	}
	return nil
}
