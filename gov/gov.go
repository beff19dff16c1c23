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

package gov

import (
	"fmt"

	"github.com/benedict-drio/decentralized-autonomous-organization/database/models"
)

// Input limits enforced on proposal submission and delegation
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 2000
	MaxDelegators        = 20
)

// Timelock-gated operation names
const (
	TimelockOpOwnerChange = "owner-change"
)

// ProposalType identifies the effect a passed proposal applies
type ProposalType uint

const (
	ProposalTypeTransfer     ProposalType = models.ProposalTypeTransfer
	ProposalTypeParameter    ProposalType = models.ProposalTypeParameter
	ProposalTypeContractCall ProposalType = models.ProposalTypeContractCall
)

func (t ProposalType) String() string {
	switch t {
	case ProposalTypeTransfer:
		return "transfer"
	case ProposalTypeParameter:
		return "parameter"
	case ProposalTypeContractCall:
		return "contract-call"
	default:
		return "unknown"
	}
}

// ParseProposalType converts a proposal type name to its value
func ParseProposalType(s string) (ProposalType, error) {
	switch s {
	case "transfer":
		return ProposalTypeTransfer, nil
	case "parameter":
		return ProposalTypeParameter, nil
	case "contract-call":
		return ProposalTypeContractCall, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrProposalTypeInvalid, s)
	}
}

// ProposalStatus is the lifecycle state of a proposal. Active proposals
// resolve to Executed or Rejected; Cancelled and Queued are declared for
// completeness but no transition currently produces them.
type ProposalStatus uint

const (
	ProposalStatusActive    ProposalStatus = models.ProposalStatusActive
	ProposalStatusExecuted  ProposalStatus = models.ProposalStatusExecuted
	ProposalStatusRejected  ProposalStatus = models.ProposalStatusRejected
	ProposalStatusCancelled ProposalStatus = models.ProposalStatusCancelled
	ProposalStatusQueued    ProposalStatus = models.ProposalStatusQueued
)

func (s ProposalStatus) String() string {
	switch s {
	case ProposalStatusActive:
		return "active"
	case ProposalStatusExecuted:
		return "executed"
	case ProposalStatusRejected:
		return "rejected"
	case ProposalStatusCancelled:
		return "cancelled"
	case ProposalStatusQueued:
		return "queued"
	default:
		return "unknown"
	}
}
