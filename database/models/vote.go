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

var ErrVoteNotFound = errors.New("vote not found")

// Vote is a single vote record keyed by (proposal, voter). The voter column
// holds the effective voter: the delegate when the caller had delegated their
// power, otherwise the caller itself.
type Vote struct {
	ID         uint   `gorm:"primarykey"`
	ProposalID uint64 `gorm:"uniqueIndex:idx_vote_proposal_voter"`
	Voter      string `gorm:"uniqueIndex:idx_vote_proposal_voter;size:128"`
	Direction  bool
	Power      types.Uint64
	CastBlock  uint64
}

func (Vote) TableName() string {
	return "vote"
}
