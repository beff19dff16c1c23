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

var ErrGovStateNotFound = errors.New("governance state not found")

// GovState is the single-row governance state: tunable parameters plus the
// aggregate counters that every operation reads. The row always has ID 1.
type GovState struct {
	ID                uint `gorm:"primarykey"`
	QuorumThreshold   uint64
	ProposalDuration  uint64
	MinProposalAmount types.Uint64
	TimelockPeriod    uint64
	UnstakeCooldown   uint64
	ExecutionDelay    uint64
	RewardRate        uint64
	TotalStaked       types.Uint64
	ProposalCount     uint64
	Owner             string `gorm:"size:128"`
	OwnerInitialized  bool
}

func (GovState) TableName() string {
	return "gov_state"
}
