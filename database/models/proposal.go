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

var ErrProposalNotFound = errors.New("proposal not found")

// Proposal status values. Cancelled and Queued are declared for wire/API
// compatibility but no lifecycle transition currently produces them.
const (
	ProposalStatusActive    = 0
	ProposalStatusExecuted  = 1
	ProposalStatusRejected  = 2
	ProposalStatusCancelled = 3
	ProposalStatusQueued    = 4
)

// Proposal type values
const (
	ProposalTypeTransfer     = 0
	ProposalTypeParameter    = 1
	ProposalTypeContractCall = 2
)

// Proposal is a single governance proposal. IDs are assigned sequentially
// starting at 1. Records are never deleted; status transitions are monotone
// and the Executed flag flips false to true exactly once.
type Proposal struct {
	ID             uint64 `gorm:"primarykey"`
	Proposer       string `gorm:"index;size:128"`
	Title          string `gorm:"size:256"`
	Description    string `gorm:"size:2048"`
	Amount         types.Uint64
	Recipient      string `gorm:"size:128"`
	StartBlock     uint64
	EndBlock       uint64 `gorm:"index"`
	ExecutionBlock uint64
	YesVotes       types.Uint64
	NoVotes        types.Uint64
	Status         uint `gorm:"index"`
	Executed       bool
	ProposalType   uint
	ParamName      string `gorm:"size:64"`
	ParamValue     uint64
	CallContract   string `gorm:"size:256"`
	CallFunction   string `gorm:"size:256"`
}

func (Proposal) TableName() string {
	return "proposal"
}
