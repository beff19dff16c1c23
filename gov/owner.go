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
)

// InitializeOwner claims the initially unset owner role for the caller.
// It succeeds exactly once for the lifetime of the organization.
func (e *Engine) InitializeOwner(caller string) (err error) {
	defer func() { e.observeOperation("initialize_owner", err) }()
	if caller == "" {
		return fmt.Errorf("%w: empty owner identity", ErrInvalidOwner)
	}
	e.Lock()
	defer e.Unlock()
	now := e.clock.Now()
	state := e.state
	if state.ownerInitialized {
		return fmt.Errorf("%w: owner already initialized", ErrNotAuthorized)
	}
	state.owner = caller
	state.ownerInitialized = true
	evt := OwnerInitializeEvent{Owner: caller}
	txn := e.db.Transaction(true)
	err = txn.Do(func(txn *database.Txn) error {
		if err := e.db.SetGovState(state.model(), txn); err != nil {
			return err
		}
		return e.appendEvent(txn, OwnerInitializeEventType, caller, now, evt)
	})
	if err != nil {
		return err
	}
	e.state = state
	e.logger.Info(
		"owner initialized",
		"component", "gov",
		"owner", caller,
	)
	e.publish(OwnerInitializeEventType, evt)
	return nil
}

// RequestOwnerChange starts the timelock for handing the owner role to a
// new identity. Re-requesting overwrites the pending entry and restarts
// the delay.
func (e *Engine) RequestOwnerChange(
	caller string,
	newOwner string,
) (err error) {
	defer func() { e.observeOperation("request_owner_change", err) }()
	e.Lock()
	defer e.Unlock()
	now := e.clock.Now()
	state := e.state
	if !state.ownerInitialized || caller != state.owner {
		return fmt.Errorf("%w: caller is not the owner", ErrNotAuthorized)
	}
	if newOwner == "" || newOwner == state.owner {
		return fmt.Errorf("%w: %q", ErrInvalidOwner, newOwner)
	}
	endBlock := now + state.params.TimelockPeriod
	evt := OwnerChangeRequestEvent{
		Owner:    caller,
		NewOwner: newOwner,
		EndBlock: endBlock,
	}
	txn := e.db.Transaction(true)
	err = txn.Do(func(txn *database.Txn) error {
		if err := e.db.SetTimelock(&models.Timelock{
			Initiator: caller,
			Operation: TimelockOpOwnerChange,
			EndBlock:  endBlock,
			ParamName: newOwner,
		}, txn); err != nil {
			return err
		}
		return e.appendEvent(
			txn, OwnerChangeRequestEventType, caller, now, evt,
		)
	})
	if err != nil {
		return err
	}
	e.logger.Info(
		"owner change requested",
		"component", "gov",
		"owner", caller,
		"new_owner", newOwner,
		"end_block", endBlock,
	)
	e.publish(OwnerChangeRequestEventType, evt)
	return nil
}

// ExecuteOwnerChange applies a matured owner handover. The timelock entry
// is left in place; only a new request overwrites it.
func (e *Engine) ExecuteOwnerChange(caller string) (err error) {
	defer func() { e.observeOperation("execute_owner_change", err) }()
	e.Lock()
	defer e.Unlock()
	now := e.clock.Now()
	state := e.state
	if !state.ownerInitialized || caller != state.owner {
		return fmt.Errorf("%w: caller is not the owner", ErrNotAuthorized)
	}
	var evt OwnerChangeEvent
	txn := e.db.Transaction(true)
	err = txn.Do(func(txn *database.Txn) error {
		timelock, err := e.db.GetTimelock(caller, TimelockOpOwnerChange, txn)
		if err != nil {
			if errors.Is(err, models.ErrTimelockNotFound) {
				return fmt.Errorf(
					"%w: no pending owner change",
					ErrTimelockActive,
				)
			}
			return err
		}
		if now < timelock.EndBlock {
			return fmt.Errorf(
				"%w: executable at block %d",
				ErrTimelockActive,
				timelock.EndBlock,
			)
		}
		newOwner := timelock.ParamName
		if newOwner == "" {
			return fmt.Errorf("%w: pending owner is empty", ErrInvalidOwner)
		}
		evt = OwnerChangeEvent{
			PreviousOwner: state.owner,
			NewOwner:      newOwner,
		}
		state.owner = newOwner
		if err := e.db.SetGovState(state.model(), txn); err != nil {
			return err
		}
		return e.appendEvent(txn, OwnerChangeEventType, caller, now, evt)
	})
	if err != nil {
		return err
	}
	e.state = state
	e.logger.Info(
		"owner changed",
		"component", "gov",
		"previous_owner", evt.PreviousOwner,
		"new_owner", evt.NewOwner,
	)
	e.publish(OwnerChangeEventType, evt)
	return nil
}
