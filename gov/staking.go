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

// Stake moves amount from the caller's balance into the treasury and
// credits the caller's staked amount, creating the member record on first
// use. New stake is forwarded to the caller's delegate when one is set.
func (e *Engine) Stake(caller string, amount uint64) (err error) {
	defer func() { e.observeOperation("stake", err) }()
	if caller == "" {
		return fmt.Errorf("%w: empty caller identity", ErrNotAuthorized)
	}
	if amount == 0 {
		return fmt.Errorf(
			"%w: stake amount must be greater than zero",
			ErrInvalidAmount,
		)
	}
	e.Lock()
	defer e.Unlock()
	now := e.clock.Now()
	state := e.state
	var evt StakeEvent
	txn := e.db.Transaction(true)
	err = txn.Do(func(txn *database.Txn) error {
		member, err := e.db.GetMember(caller, txn)
		if err != nil {
			if !errors.Is(err, models.ErrMemberNotFound) {
				return err
			}
			member = &models.Member{
				Identity:        caller,
				LastRewardBlock: now,
			}
		}
		e.accrueRewards(member, state.params.RewardRate, now)
		member.StakedAmount += types.Uint64(amount)
		if err := e.db.SetMember(member, txn); err != nil {
			return err
		}
		// Forward the new stake to the caller's delegate
		if member.DelegatedTo != "" {
			if _, err := e.adjustDelegation(
				txn, member.DelegatedTo, amount, true,
			); err != nil {
				return err
			}
		}
		state.totalStaked += amount
		if err := e.db.SetGovState(state.model(), txn); err != nil {
			return err
		}
		evt = StakeEvent{
			Staker:       caller,
			Amount:       amount,
			StakedAmount: uint64(member.StakedAmount),
			TotalStaked:  state.totalStaked,
		}
		if err := e.appendEvent(
			txn, StakeEventType, caller, now, evt,
		); err != nil {
			return err
		}
		// Move the value last so a ledger failure rolls back every staged
		// write
		if err := e.ledger.Transfer(amount, caller, e.treasury); err != nil {
			return fmt.Errorf("%w: %w", ErrInsufficientBalance, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	e.state = state
	e.metrics.totalStaked.Set(float64(state.totalStaked))
	e.logger.Debug(
		"tokens staked",
		"component", "gov",
		"staker", caller,
		"amount", amount,
		"total_staked", state.totalStaked,
	)
	e.publish(StakeEventType, evt)
	return nil
}

// RequestUnstake starts the unstake cooldown for the caller. The cooldown
// is a single scalar per member: re-requesting overwrites it, and once it
// matures it gates nothing further until reset by a successful unstake.
func (e *Engine) RequestUnstake(caller string, amount uint64) (err error) {
	defer func() { e.observeOperation("request_unstake", err) }()
	if caller == "" {
		return fmt.Errorf("%w: empty caller identity", ErrNotAuthorized)
	}
	if amount == 0 {
		return fmt.Errorf(
			"%w: unstake amount must be greater than zero",
			ErrInvalidAmount,
		)
	}
	e.Lock()
	defer e.Unlock()
	now := e.clock.Now()
	state := e.state
	var evt UnstakeRequestEvent
	txn := e.db.Transaction(true)
	err = txn.Do(func(txn *database.Txn) error {
		member, err := e.db.GetMember(caller, txn)
		if err != nil {
			if errors.Is(err, models.ErrMemberNotFound) {
				return fmt.Errorf("%w: %s", ErrInactiveMember, caller)
			}
			return err
		}
		if types.Uint64(amount) > member.StakedAmount {
			return fmt.Errorf(
				"%w: requested %d, staked %d",
				ErrInsufficientBalance,
				amount,
				uint64(member.StakedAmount),
			)
		}
		member.CooldownEnd = now + state.params.UnstakeCooldown
		if err := e.db.SetMember(member, txn); err != nil {
			return err
		}
		evt = UnstakeRequestEvent{
			Staker:      caller,
			Amount:      amount,
			CooldownEnd: member.CooldownEnd,
		}
		return e.appendEvent(txn, UnstakeRequestEventType, caller, now, evt)
	})
	if err != nil {
		return err
	}
	e.logger.Debug(
		"unstake requested",
		"component", "gov",
		"staker", caller,
		"amount", amount,
		"cooldown_end", evt.CooldownEnd,
	)
	e.publish(UnstakeRequestEventType, evt)
	return nil
}

// Unstake returns amount from the treasury to the caller once the cooldown
// has matured. The gate is purely time-based: a cooldown end of zero
// passes trivially, and a single matured cooldown covers any number of
// unstakes until a successful one resets it to zero.
func (e *Engine) Unstake(caller string, amount uint64) (err error) {
	defer func() { e.observeOperation("unstake", err) }()
	if caller == "" {
		return fmt.Errorf("%w: empty caller identity", ErrNotAuthorized)
	}
	if amount == 0 {
		return fmt.Errorf(
			"%w: unstake amount must be greater than zero",
			ErrInvalidAmount,
		)
	}
	e.Lock()
	defer e.Unlock()
	now := e.clock.Now()
	state := e.state
	var evt UnstakeEvent
	txn := e.db.Transaction(true)
	err = txn.Do(func(txn *database.Txn) error {
		member, err := e.db.GetMember(caller, txn)
		if err != nil {
			if errors.Is(err, models.ErrMemberNotFound) {
				return fmt.Errorf("%w: %s", ErrInactiveMember, caller)
			}
			return err
		}
		if types.Uint64(amount) > member.StakedAmount {
			return fmt.Errorf(
				"%w: requested %d, staked %d",
				ErrInsufficientBalance,
				amount,
				uint64(member.StakedAmount),
			)
		}
		if now < member.CooldownEnd {
			return fmt.Errorf(
				"%w: %d blocks remaining",
				ErrCooldownActive,
				member.CooldownEnd-now,
			)
		}
		e.accrueRewards(member, state.params.RewardRate, now)
		member.StakedAmount -= types.Uint64(amount)
		member.CooldownEnd = 0
		if err := e.db.SetMember(member, txn); err != nil {
			return err
		}
		// Withdraw the removed stake from the caller's delegate
		if member.DelegatedTo != "" {
			if _, err := e.adjustDelegation(
				txn, member.DelegatedTo, amount, false,
			); err != nil {
				return err
			}
		}
		state.totalStaked -= amount
		if err := e.db.SetGovState(state.model(), txn); err != nil {
			return err
		}
		evt = UnstakeEvent{
			Staker:       caller,
			Amount:       amount,
			StakedAmount: uint64(member.StakedAmount),
			TotalStaked:  state.totalStaked,
		}
		if err := e.appendEvent(
			txn, UnstakeEventType, caller, now, evt,
		); err != nil {
			return err
		}
		// Return the value last so a ledger failure rolls back every
		// staged write
		if err := e.ledger.Transfer(amount, e.treasury, caller); err != nil {
			return fmt.Errorf("%w: %w", ErrInsufficientBalance, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	e.state = state
	e.metrics.totalStaked.Set(float64(state.totalStaked))
	e.logger.Debug(
		"tokens unstaked",
		"component", "gov",
		"staker", caller,
		"amount", amount,
		"total_staked", state.totalStaked,
	)
	e.publish(UnstakeEventType, evt)
	return nil
}
