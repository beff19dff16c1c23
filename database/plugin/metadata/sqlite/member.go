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

// GetMember retrieves a member record by identity. Returns nil if the
// identity has never staked.
func (d *MetadataStoreSqlite) GetMember(
	identity string,
	txn types.Txn,
) (*models.Member, error) {
	var member models.Member
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	if result := db.Where(
		"identity = ?",
		identity,
	).First(&member); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &member, nil
}

// SetMember creates or updates a member record.
func (d *MetadataStoreSqlite) SetMember(
	member *models.Member,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return err
	}
	onConflict := clause.OnConflict{
		Columns: []clause.Column{
			{Name: "identity"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"staked_amount",
			"delegated_to",
			"cooldown_end",
			"last_reward_block",
			"pending_rewards",
			"rewards_claimed",
		}),
	}
	if result := db.Clauses(onConflict).Create(member); result.Error != nil {
		return result.Error
	}
	return nil
}
