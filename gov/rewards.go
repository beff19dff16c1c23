// Copyright 2026 Blink Labs Software
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
	"math"
	"math/big"

	"github.com/benedict-drio/decentralized-autonomous-organization/database"
	"github.com/benedict-drio/decentralized-autonomous-organization/database/models"
	"github.com/benedict-drio/decentralized-autonomous-organization/database/types"
)

// ClaimRewards pays out the caller's accrued rewards from the treasury
// and adds them to the member's claimed total
func (e *Engine) ClaimRewards(caller string) (err error) {
	defer func() { e.observeOperation("claim_rewards", err) }()
	if caller == "" {
		return fmt.Errorf("%w: empty caller identity", ErrNotAuthorized)
	}
	e.Lock()
	defer e.Unlock()
	now := e.clock.Now()
	state := e.state
	var evt RewardsClaimEvent
	txn := e.db.Transaction(true)
	err = txn.Do(func(txn *database.Txn) error {
		member, err := e.db.GetMember(caller, txn)
		if err != nil {
			if errors.Is(err, models.ErrMemberNotFound) {
				return fmt.Errorf("%w: %s", ErrInactiveMember, caller)
			}
			return err
		}
		e.accrueRewards(member, state.params.RewardRate, now)
		amount := uint64(member.PendingRewards)
		if amount == 0 {
			return fmt.Errorf("%w: no rewards to claim", ErrInvalidAmount)
		}
		member.PendingRewards = 0
		member.RewardsClaimed += types.Uint64(amount)
		if err := e.db.SetMember(member, txn); err != nil {
			return err
		}
		evt = RewardsClaimEvent{
			Member:       caller,
			Amount:       amount,
			TotalClaimed: uint64(member.RewardsClaimed),
		}
		if err := e.appendEvent(
			txn, RewardsClaimEventType, caller, now, evt,
		); err != nil {
			return err
		}
		// Pay out last so a ledger failure rolls back the reset
		if err := e.ledger.Transfer(amount, e.treasury, caller); err != nil {
			return fmt.Errorf("%w: %w", ErrInsufficientBalance, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	e.logger.Debug(
		"rewards claimed",
		"component", "gov",
		"member", caller,
		"amount", evt.Amount,
	)
	e.publish(RewardsClaimEventType, evt)
	return nil
}

// accrueRewards folds rewards earned since the last reward block into the
// member's pending balance and advances the marker to now. Must run
// before any change to the member's staked amount.
func (e *Engine) accrueRewards(
	member *models.Member,
	rate uint64,
	now uint64,
) {
	if now <= member.LastRewardBlock {
		return
	}
	if rate > 0 && member.StakedAmount > 0 {
		blocks := now - member.LastRewardBlock
		member.PendingRewards += types.Uint64(
			rewardAmount(uint64(member.StakedAmount), rate, blocks),
		)
	}
	member.LastRewardBlock = now
}

// rewardAmount computes staked * rate * blocks / RewardRateDenominator at
// arbitrary precision, saturating at the uint64 maximum
func rewardAmount(staked uint64, rate uint64, blocks uint64) uint64 {
	r := new(big.Int).SetUint64(staked)
	r.Mul(r, new(big.Int).SetUint64(rate))
	r.Mul(r, new(big.Int).SetUint64(blocks))
	r.Div(r, big.NewInt(RewardRateDenominator))
	if !r.IsUint64() {
		return math.MaxUint64
	}
	return r.Uint64()
}
