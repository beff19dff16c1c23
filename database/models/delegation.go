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

var ErrDelegationNotFound = errors.New("delegation not found")

// Delegation tracks the aggregate power delegated to a single delegate.
// The total is maintained incrementally by stake, unstake, delegate and
// undelegate operations rather than recomputed from delegator rows.
type Delegation struct {
	ID             uint   `gorm:"primarykey"`
	Delegate       string `gorm:"uniqueIndex;size:128"`
	TotalDelegated types.Uint64
}

func (Delegation) TableName() string {
	return "delegation"
}

// Delegator is a single member within a delegate's delegator list. Position
// preserves insertion order for the bounded list.
type Delegator struct {
	ID       uint   `gorm:"primarykey"`
	Delegate string `gorm:"index:idx_delegator_delegate_identity,unique;size:128"`
	Identity string `gorm:"index:idx_delegator_delegate_identity,unique;size:128"`
	Position uint   `gorm:"index"`
}

func (Delegator) TableName() string {
	return "delegator"
}
