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

import "errors"

// Governance failure taxonomy. Public operations return these sentinels,
// usually wrapped with context, so callers can match them with errors.Is.
// Every failure aborts the whole operation with no partial state change.
var (
	ErrNotAuthorized       = errors.New("not authorized")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidParameter    = errors.New("invalid parameter")
	ErrInvalidTitle        = errors.New("invalid title")
	ErrInvalidDescription  = errors.New("invalid description")
	ErrInvalidRecipient    = errors.New("invalid recipient")
	ErrInvalidOwner        = errors.New("invalid owner")
	ErrProposalTypeInvalid = errors.New("invalid proposal type")
	ErrProposalNotFound    = errors.New("proposal not found")
	ErrAlreadyVoted        = errors.New("already voted")
	ErrProposalExpired     = errors.New("proposal voting period has ended")
	ErrProposalNotActive   = errors.New("proposal not active")
	ErrInvalidStatus       = errors.New("invalid proposal status")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrTimelockActive      = errors.New("timelock active")
	ErrCooldownActive      = errors.New("unstake cooldown active")
	ErrDelegateNotFound    = errors.New("delegate not found")
	ErrSelfDelegation      = errors.New("cannot delegate to self")
	ErrInactiveMember      = errors.New("inactive member")
	ErrDelegationLimit     = errors.New("delegator limit reached")
)
