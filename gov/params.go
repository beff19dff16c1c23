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

import "fmt"

// Governance parameter names accepted by PARAMETER proposals
const (
	ParamQuorumThreshold   = "quorum-threshold"
	ParamProposalDuration  = "proposal-duration"
	ParamMinProposalAmount = "min-proposal-amount"
	ParamTimelockPeriod    = "timelock-period"
	ParamUnstakeCooldown   = "unstake-cooldown"
	ParamExecutionDelay    = "execution-delay"
	ParamRewardRate        = "reward-rate"
)

const (
	// QuorumDenominator is the fixed denominator for the quorum threshold,
	// which is expressed in tenths of a percent
	QuorumDenominator = 1000

	// RewardRateDenominator is the fixed denominator for the reward rate,
	// which is expressed in millionths of the staked amount per block
	RewardRateDenominator = 1_000_000
)

// Params holds the tunable governance parameters. Durations and delays are
// in blocks. Params are mutated only through initialization, the PARAMETER
// proposal execution path, and owner handover.
type Params struct {
	QuorumThreshold   uint64
	ProposalDuration  uint64
	MinProposalAmount uint64
	TimelockPeriod    uint64
	UnstakeCooldown   uint64
	ExecutionDelay    uint64
	RewardRate        uint64
}

// DefaultParams returns the parameter values used when no explicit initial
// configuration is provided
func DefaultParams() Params {
	return Params{
		QuorumThreshold:   400,
		ProposalDuration:  144,
		MinProposalAmount: 1_000_000,
		TimelockPeriod:    72,
		UnstakeCooldown:   36,
		ExecutionDelay:    12,
		RewardRate:        0,
	}
}

// Validate checks every parameter against its bounds
func (p Params) Validate() error {
	if err := validateParamValue(ParamQuorumThreshold, p.QuorumThreshold); err != nil {
		return err
	}
	if err := validateParamValue(ParamProposalDuration, p.ProposalDuration); err != nil {
		return err
	}
	if err := validateParamValue(ParamTimelockPeriod, p.TimelockPeriod); err != nil {
		return err
	}
	if err := validateParamValue(ParamUnstakeCooldown, p.UnstakeCooldown); err != nil {
		return err
	}
	return validateParamValue(ParamExecutionDelay, p.ExecutionDelay)
}

// validateParamValue checks a single named parameter against the allow-list
// and its bounds
func validateParamValue(name string, value uint64) error {
	switch name {
	case ParamQuorumThreshold:
		if value > QuorumDenominator {
			return fmt.Errorf(
				"%w: %s must not exceed %d",
				ErrInvalidParameter,
				name,
				QuorumDenominator,
			)
		}
	case ParamProposalDuration,
		ParamTimelockPeriod,
		ParamUnstakeCooldown,
		ParamExecutionDelay:
		if value == 0 {
			return fmt.Errorf(
				"%w: %s must be greater than zero",
				ErrInvalidParameter,
				name,
			)
		}
	case ParamMinProposalAmount, ParamRewardRate:
		// Any value is allowed
	default:
		return fmt.Errorf("%w: unknown parameter %q", ErrInvalidParameter, name)
	}
	return nil
}

// set applies a validated change to a single named parameter
func (p *Params) set(name string, value uint64) error {
	if err := validateParamValue(name, value); err != nil {
		return err
	}
	switch name {
	case ParamQuorumThreshold:
		p.QuorumThreshold = value
	case ParamProposalDuration:
		p.ProposalDuration = value
	case ParamMinProposalAmount:
		p.MinProposalAmount = value
	case ParamTimelockPeriod:
		p.TimelockPeriod = value
	case ParamUnstakeCooldown:
		p.UnstakeCooldown = value
	case ParamExecutionDelay:
		p.ExecutionDelay = value
	case ParamRewardRate:
		p.RewardRate = value
	}
	return nil
}
