package config

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/benedict-drio/decentralized-autonomous-organization/gov"
)

func resetGlobalConfig() {
	globalConfig = &Config{
		DatabasePath:    ".dao",
		BindAddr:        "0.0.0.0",
		Treasury:        "treasury",
		BlockInterval:   DefaultBlockInterval,
		ShutdownTimeout: DefaultShutdownTimeout,
		ApiPort:         8080,
		MetricsPort:     12798,
		Params:          newParamsConfig(gov.DefaultParams()),
	}
}

func TestLoad_CompareFullStruct(t *testing.T) {
	resetGlobalConfig()
	yamlContent := `
databasePath: "/data/dao"
bindAddr: "127.0.0.1"
treasury: "vault"
blockInterval: "500ms"
shutdownTimeout: "10s"
apiPort: 9000
metricsPort: 8088
tracing: true
tracingStdout: true
genesis:
  balances:
    alice: 1000000
    bob: 250000
params:
  quorumThreshold: 500
  proposalDuration: 100
  minProposalAmount: 5000
  timelockPeriod: 10
  unstakeCooldown: 5
  executionDelay: 2
  rewardRate: 1000
`

	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test-dao.yaml")

	err := os.WriteFile(tmpFile, []byte(yamlContent), 0644)
	if err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	expected := &Config{
		Genesis: GenesisConfig{
			Balances: map[string]uint64{
				"alice": 1000000,
				"bob":   250000,
			},
		},
		Params: ParamsConfig{
			QuorumThreshold:   500,
			ProposalDuration:  100,
			MinProposalAmount: 5000,
			TimelockPeriod:    10,
			UnstakeCooldown:   5,
			ExecutionDelay:    2,
			RewardRate:        1000,
		},
		DatabasePath:    "/data/dao",
		BindAddr:        "127.0.0.1",
		Treasury:        "vault",
		BlockInterval:   "500ms",
		ShutdownTimeout: "10s",
		ApiPort:         9000,
		MetricsPort:     8088,
		Tracing:         true,
		TracingStdout:   true,
	}

	actual, err := LoadConfig(tmpFile)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if !reflect.DeepEqual(actual, expected) {
		t.Errorf(
			"Loaded config does not match expected.\nActual: %+v\nExpected: %+v",
			actual,
			expected,
		)
	}
}

func TestLoad_PartialConfigKeepsDefaults(t *testing.T) {
	resetGlobalConfig()
	yamlContent := `
params:
  rewardRate: 250
`

	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test-partial.yaml")

	err := os.WriteFile(tmpFile, []byte(yamlContent), 0644)
	if err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(tmpFile)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if cfg.Params.RewardRate != 250 {
		t.Errorf("expected RewardRate to be 250, got: %d", cfg.Params.RewardRate)
	}
	// Values not present in the file keep their defaults
	if cfg.Params.QuorumThreshold != 400 {
		t.Errorf(
			"expected QuorumThreshold to be 400, got: %d",
			cfg.Params.QuorumThreshold,
		)
	}
	if cfg.Treasury != "treasury" {
		t.Errorf("expected Treasury to be \"treasury\", got: %q", cfg.Treasury)
	}
	if cfg.ApiPort != 8080 {
		t.Errorf("expected ApiPort to be 8080, got: %d", cfg.ApiPort)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("DAO_API_PORT", "9999")
	t.Setenv("DAO_TREASURY", "community-fund")
	t.Setenv("DAO_PARAMS_QUORUM_THRESHOLD", "600")
	resetGlobalConfig()

	yamlContent := `
bindAddr: "127.0.0.1"
`
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test-env.yaml")

	err := os.WriteFile(tmpFile, []byte(yamlContent), 0644)
	if err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(tmpFile)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if cfg.ApiPort != 9999 {
		t.Errorf("expected ApiPort to be 9999, got: %d", cfg.ApiPort)
	}
	if cfg.Treasury != "community-fund" {
		t.Errorf("expected Treasury to be overridden, got: %q", cfg.Treasury)
	}
	if cfg.Params.QuorumThreshold != 600 {
		t.Errorf(
			"expected QuorumThreshold to be 600, got: %d",
			cfg.Params.QuorumThreshold,
		)
	}
	if cfg.BindAddr != "127.0.0.1" {
		t.Errorf("expected BindAddr from file, got: %q", cfg.BindAddr)
	}
}

func TestGovParamsRoundTrip(t *testing.T) {
	params := newParamsConfig(gov.DefaultParams()).GovParams()
	if params != gov.DefaultParams() {
		t.Errorf(
			"expected round trip to preserve params, got: %+v",
			params,
		)
	}
}

func TestConfigContext(t *testing.T) {
	resetGlobalConfig()
	cfg := GetConfig()

	ctx := WithContext(context.Background(), cfg)
	if got := FromContext(ctx); got != cfg {
		t.Errorf("expected config from context, got: %+v", got)
	}
	if got := FromContext(context.Background()); got != nil {
		t.Errorf("expected nil config from empty context, got: %+v", got)
	}
}
