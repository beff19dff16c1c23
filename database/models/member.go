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

package models

import (
	"errors"

	"github.com/benedict-drio/decentralized-autonomous-organization/database/types"
)

var ErrMemberNotFound = errors.New("member not found")

// Member tracks the staking state for a single identity. Records are created
// on first stake and never deleted; a zero staked amount is a valid state.
type Member struct {
	ID              uint   `gorm:"primarykey"`
	Identity        string `gorm:"uniqueIndex;size:128"`
	StakedAmount    types.Uint64
	DelegatedTo     string `gorm:"index;size:128"`
	CooldownEnd     uint64
	LastRewardBlock uint64
	PendingRewards  types.Uint64
	RewardsClaimed  types.Uint64
}

func (Member) TableName() string {
	return "member"
}
