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

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/benedict-drio/decentralized-autonomous-organization/gov"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type ctxKey string

const configContextKey ctxKey = "dao.config"

const (
	DefaultBlockInterval   = "1s"
	DefaultShutdownTimeout = "30s"
)

func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configContextKey, cfg)
}

func FromContext(ctx context.Context) *Config {
	cfg, ok := ctx.Value(configContextKey).(*Config)
	if !ok {
		return nil
	}
	return cfg
}

type Config struct {
	Genesis         GenesisConfig `yaml:"genesis"`
	Params          ParamsConfig  `yaml:"params"`
	DatabasePath    string        `yaml:"databasePath"    split_words:"true"`
	BindAddr        string        `yaml:"bindAddr"        split_words:"true"`
	Treasury        string        `yaml:"treasury"`
	BlockInterval   string        `yaml:"blockInterval"   split_words:"true"`
	ShutdownTimeout string        `yaml:"shutdownTimeout" split_words:"true"`
	ApiPort         uint          `yaml:"apiPort"         split_words:"true"`
	MetricsPort     uint          `yaml:"metricsPort"     split_words:"true"`
	Tracing         bool          `yaml:"tracing"`
	TracingStdout   bool          `yaml:"tracingStdout"   split_words:"true"`
}

// GenesisConfig holds the token balances used to seed the built-in ledger.
// Balances can also be given via DAO_GENESIS_BALANCES as comma separated
// identity:amount pairs
type GenesisConfig struct {
	Balances map[string]uint64 `yaml:"balances"`
}

// ParamsConfig mirrors the governance parameters with config file naming
type ParamsConfig struct {
	QuorumThreshold   uint64 `yaml:"quorumThreshold"   split_words:"true"`
	ProposalDuration  uint64 `yaml:"proposalDuration"  split_words:"true"`
	MinProposalAmount uint64 `yaml:"minProposalAmount" split_words:"true"`
	TimelockPeriod    uint64 `yaml:"timelockPeriod"    split_words:"true"`
	UnstakeCooldown   uint64 `yaml:"unstakeCooldown"   split_words:"true"`
	ExecutionDelay    uint64 `yaml:"executionDelay"    split_words:"true"`
	RewardRate        uint64 `yaml:"rewardRate"        split_words:"true"`
}

// GovParams converts the configured values into governance engine parameters
func (p ParamsConfig) GovParams() gov.Params {
	return gov.Params{
		QuorumThreshold:   p.QuorumThreshold,
		ProposalDuration:  p.ProposalDuration,
		MinProposalAmount: p.MinProposalAmount,
		TimelockPeriod:    p.TimelockPeriod,
		UnstakeCooldown:   p.UnstakeCooldown,
		ExecutionDelay:    p.ExecutionDelay,
		RewardRate:        p.RewardRate,
	}
}

func newParamsConfig(p gov.Params) ParamsConfig {
	return ParamsConfig{
		QuorumThreshold:   p.QuorumThreshold,
		ProposalDuration:  p.ProposalDuration,
		MinProposalAmount: p.MinProposalAmount,
		TimelockPeriod:    p.TimelockPeriod,
		UnstakeCooldown:   p.UnstakeCooldown,
		ExecutionDelay:    p.ExecutionDelay,
		RewardRate:        p.RewardRate,
	}
}

var globalConfig = &Config{
	DatabasePath:    ".dao",
	BindAddr:        "0.0.0.0",
	Treasury:        "treasury",
	BlockInterval:   DefaultBlockInterval,
	ShutdownTimeout: DefaultShutdownTimeout,
	ApiPort:         8080,
	MetricsPort:     12798,
	Params:          newParamsConfig(gov.DefaultParams()),
}

func LoadConfig(configFile string) (*Config, error) {
	// Load config file as YAML if provided
	if configFile == "" {
		// Check for config file in this path: ~/.dao/dao.yaml
		if homeDir, err := os.UserHomeDir(); err == nil {
			userPath := filepath.Join(homeDir, ".dao", "dao.yaml")
			if _, err := os.Stat(userPath); err == nil {
				configFile = userPath
			}
		}

		// Try to check for /etc/dao/dao.yaml if still not found
		if configFile == "" {
			systemPath := "/etc/dao/dao.yaml"
			if _, err := os.Stat(systemPath); err == nil {
				configFile = systemPath
			}
		}
	}

	if configFile != "" {
		buf, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}

		// Overlay config file values onto existing defaults
		if err := yaml.Unmarshal(buf, globalConfig); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}
	// Process environment variables
	err := envconfig.Process("dao", globalConfig)
	if err != nil {
		return nil, fmt.Errorf("error processing environment: %+w", err)
	}
	return globalConfig, nil
}

func GetConfig() *Config {
	return globalConfig
}
