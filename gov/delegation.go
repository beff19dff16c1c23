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
	"errors"
	"fmt"

	"github.com/benedict-drio/decentralized-autonomous-organization/database"
	"github.com/benedict-drio/decentralized-autonomous-organization/database/models"
	"github.com/benedict-drio/decentralized-autonomous-organization/database/types"
)

// Delegate assigns the caller's full current stake to another member's
// voting power. A prior delegation is withdrawn first, so re-delegating
// moves the stake in one operation. Each delegate accepts at most
// MaxDelegators delegators.
func (e *Engine) Delegate(caller string, delegate string) (err error) {
	defer func() { e.observeOperation("delegate", err) }()
	if caller == "" {
		return fmt.Errorf("%w: empty caller identity", ErrNotAuthorized)
	}
	if delegate == "" {
		return fmt.Errorf("%w: empty delegate identity", ErrDelegateNotFound)
	}
	if caller == delegate {
		return fmt.Errorf("%w: %s", ErrSelfDelegation, caller)
	}
	e.Lock()
	defer e.Unlock()
	now := e.clock.Now()
	var (
		added   DelegationEvent
		removed *DelegationEvent
	)
	txn := e.db.Transaction(true)
	err = txn.Do(func(txn *database.Txn) error {
		member, err := e.db.GetMember(caller, txn)
		if err != nil {
			if errors.Is(err, models.ErrMemberNotFound) {
				return fmt.Errorf("%w: %s", ErrInactiveMember, caller)
			}
			return err
		}
		target, err := e.db.GetMember(delegate, txn)
		if err != nil {
			if errors.Is(err, models.ErrMemberNotFound) {
				return fmt.Errorf("%w: %s", ErrDelegateNotFound, delegate)
			}
			return err
		}
		if target.StakedAmount == 0 {
			return fmt.Errorf(
				"%w: %s has no stake",
				ErrDelegateNotFound,
				delegate,
			)
		}
		if member.StakedAmount == 0 {
			return fmt.Errorf(
				"%w: nothing staked to delegate",
				ErrInsufficientBalance,
			)
		}
		stake := uint64(member.StakedAmount)
		// Withdraw any existing delegation from the prior delegate first
		if prior := member.DelegatedTo; prior != "" {
			total, err := e.adjustDelegation(txn, prior, stake, false)
			if err != nil {
				return err
			}
			if err := e.db.RemoveDelegator(prior, caller, txn); err != nil {
				return err
			}
			removed = &DelegationEvent{
				Delegator:      caller,
				Delegate:       prior,
				Amount:         stake,
				TotalDelegated: total,
			}
		}
		// Enforce the delegator list bound
		delegators, err := e.db.GetDelegators(delegate, txn)
		if err != nil {
			return err
		}
		if len(delegators) >= MaxDelegators {
			return fmt.Errorf(
				"%w: %s already has %d delegators",
				ErrDelegationLimit,
				delegate,
				len(delegators),
			)
		}
		position := uint(0)
		for _, d := range delegators {
			if d.Position >= position {
				position = d.Position + 1
			}
		}
		if err := e.db.AddDelegator(&models.Delegator{
			Delegate: delegate,
			Identity: caller,
			Position: position,
		}, txn); err != nil {
			return err
		}
		total, err := e.adjustDelegation(txn, delegate, stake, true)
		if err != nil {
			return err
		}
		member.DelegatedTo = delegate
		if err := e.db.SetMember(member, txn); err != nil {
			return err
		}
		added = DelegationEvent{
			Delegator:      caller,
			Delegate:       delegate,
			Amount:         stake,
			TotalDelegated: total,
		}
		if removed != nil {
			if err := e.appendEvent(
				txn, DelegationRemoveEventType, caller, now, *removed,
			); err != nil {
				return err
			}
		}
		return e.appendEvent(txn, DelegationAddEventType, caller, now, added)
	})
	if err != nil {
		return err
	}
	if removed != nil {
		e.publish(DelegationRemoveEventType, *removed)
	}
	e.publish(DelegationAddEventType, added)
	e.logger.Debug(
		"delegation added",
		"component", "gov",
		"delegator", caller,
		"delegate", delegate,
		"amount", added.Amount,
	)
	return nil
}

// Undelegate withdraws the caller's stake from their current delegate and
// clears the delegation
func (e *Engine) Undelegate(caller string) (err error) {
	defer func() { e.observeOperation("undelegate", err) }()
	if caller == "" {
		return fmt.Errorf("%w: empty caller identity", ErrNotAuthorized)
	}
	e.Lock()
	defer e.Unlock()
	now := e.clock.Now()
	var evt DelegationEvent
	txn := e.db.Transaction(true)
	err = txn.Do(func(txn *database.Txn) error {
		member, err := e.db.GetMember(caller, txn)
		if err != nil {
			if errors.Is(err, models.ErrMemberNotFound) {
				return fmt.Errorf("%w: %s", ErrInactiveMember, caller)
			}
			return err
		}
		delegate := member.DelegatedTo
		if delegate == "" {
			return fmt.Errorf("%w: no active delegation", ErrDelegateNotFound)
		}
		stake := uint64(member.StakedAmount)
		total, err := e.adjustDelegation(txn, delegate, stake, false)
		if err != nil {
			return err
		}
		if err := e.db.RemoveDelegator(delegate, caller, txn); err != nil {
			return err
		}
		member.DelegatedTo = ""
		if err := e.db.SetMember(member, txn); err != nil {
			return err
		}
		evt = DelegationEvent{
			Delegator:      caller,
			Delegate:       delegate,
			Amount:         stake,
			TotalDelegated: total,
		}
		return e.appendEvent(txn, DelegationRemoveEventType, caller, now, evt)
	})
	if err != nil {
		return err
	}
	e.logger.Debug(
		"delegation removed",
		"component", "gov",
		"delegator", caller,
		"delegate", evt.Delegate,
		"amount", evt.Amount,
	)
	e.publish(DelegationRemoveEventType, evt)
	return nil
}

// adjustDelegation adds or removes amount from a delegate's aggregated
// total, creating the aggregate row when needed. The total saturates at
// zero rather than wrapping. Returns the updated total.
func (e *Engine) adjustDelegation(
	txn *database.Txn,
	delegate string,
	amount uint64,
	add bool,
) (uint64, error) {
	delegation, err := e.db.GetDelegation(delegate, txn)
	if err != nil {
		if !errors.Is(err, models.ErrDelegationNotFound) {
			return 0, err
		}
		delegation = &models.Delegation{Delegate: delegate}
	}
	total := uint64(delegation.TotalDelegated)
	if add {
		total += amount
	} else if amount > total {
		total = 0
	} else {
		total -= amount
	}
	delegation.TotalDelegated = types.Uint64(total)
	if err := e.db.SetDelegation(delegation, txn); err != nil {
		return 0, err
	}
	return total, nil
}
