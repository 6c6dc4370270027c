package config

import (
	"fmt"
	"log/slog"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain/config"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DataDirName holds per-project state such as config.local.json
const DataDirName = ".nftree"

// Environment variables read verbatim, without the NFTREE_ prefix
const (
	EnvConfig        = "CONFIG"
	EnvAccounts      = "ACCOUNTS"
	EnvProvider      = "PROVIDER"
	EnvEtherscan     = "ETHERSCAN"
	EnvOverrideLocal = "PROVIDER_OVERRIDE_LOCAL"
)

// projectMarkers identify the root of a contracts project
var projectMarkers = []string{"hardhat.config.js", "hardhat.config.ts", NetworksFile, DataDirName}

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		projectRoot = FindProjectRoot()
	}

	topology, err := LoadTopology(projectRoot)
	if err != nil {
		return nil, err
	}

	unsetVars, err := UnsetEndpointVars(projectRoot)
	if err != nil {
		return nil, err
	}

	output := config.OutputFormat(strings.ToLower(v.GetString("output")))
	switch output {
	case config.OutputText, config.OutputJSON, config.OutputYAML:
	default:
		return nil, &domain.ValidationError{Field: "output", Reason: fmt.Sprintf("unsupported format %q (text, json, yaml)", output)}
	}

	gasPrice, err := ParseGasPrice(v.GetString("gas_price"))
	if err != nil {
		return nil, err
	}

	artifacts := v.GetString("artifacts")
	if !filepath.IsAbs(artifacts) {
		artifacts = filepath.Join(projectRoot, artifacts)
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:       projectRoot,
		ConfigPath:        v.GetString("config"),
		ArtifactsDir:      artifacts,
		NetworkName:       v.GetString("network"),
		Topology:          topology,
		UnsetEndpointVars: unsetVars,
		EtherscanKey:      v.GetString("etherscan"),
		StaticGasPrice:    gasPrice,
		ConfirmTimeout:    v.GetDuration("confirm_timeout"),
		PollInterval:      v.GetDuration("poll_interval"),
		SignerIndex:       v.GetInt("signer"),
		Debug:             v.GetBool("debug"),
		NonInteractive:    v.GetBool("non_interactive"),
		AssumeYes:         v.GetBool("yes"),
		Output:            output,
		Timeout:           v.GetDuration("timeout"),
		Overrides: domain.Overrides{
			Provider:      strings.TrimSpace(v.GetString("provider")),
			Accounts:      SplitAccounts(v.GetString("accounts")),
			OverrideLocal: v.GetBool("provider_override_local"),
		},
	}

	if cfg.PollInterval <= 0 {
		return nil, &domain.ValidationError{Field: "poll-interval", Reason: "must be positive"}
	}
	if cfg.ConfirmTimeout <= 0 {
		return nil, &domain.ValidationError{Field: "confirm-timeout", Reason: "must be positive"}
	}

	return cfg, nil
}

// FindProjectRoot walks up from the current directory looking for a contracts
// project marker, falling back to the current directory.
func FindProjectRoot() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}

	dir := cwd
	for {
		for _, marker := range projectMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd
		}
		dir = parent
	}
}

// LoadDotEnv loads .env and .env.local from the project root. Variables already
// present in the environment win.
func LoadDotEnv(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				slog.Warn("failed to load env file", "path", envFile, "error", err)
			}
		}
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	LoadDotEnv(projectRoot)

	v := viper.New()

	// Set up config file
	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, DataDirName))

	// Set up environment variables
	v.SetEnvPrefix("NFTREE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Deployment tooling variables keep their historical names
	_ = v.BindEnv("config", EnvConfig)
	_ = v.BindEnv("accounts", EnvAccounts)
	_ = v.BindEnv("provider", EnvProvider)
	_ = v.BindEnv("etherscan", EnvEtherscan)
	_ = v.BindEnv("provider_override_local", EnvOverrideLocal)

	// Set defaults
	v.SetDefault("network", domain.LocalNetworkName)
	v.SetDefault("artifacts", "artifacts")
	v.SetDefault("confirm_timeout", "5m")
	v.SetDefault("poll_interval", "2s")
	v.SetDefault("timeout", "15m")
	v.SetDefault("output", string(config.OutputText))
	v.SetDefault("signer", 0)
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("project_root", projectRoot)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	if cmd != nil {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if err := v.BindPFlag(key, f); err != nil {
				panic(err)
			}
		})
	}

	return v
}

// SplitAccounts parses the comma-separated ACCOUNTS value
func SplitAccounts(raw string) []string {
	parts := lo.Map(strings.Split(raw, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	})
	return lo.Compact(parts)
}

// ParseGasPrice parses a static gas price given in wei, or in gwei with a "gwei" suffix.
// An empty value means no static fee policy.
func ParseGasPrice(raw string) (*big.Int, error) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return nil, nil
	}

	multiplier := big.NewInt(1)
	if strings.HasSuffix(raw, "gwei") {
		raw = strings.TrimSpace(strings.TrimSuffix(raw, "gwei"))
		multiplier = big.NewInt(1_000_000_000)
	} else {
		raw = strings.TrimSpace(strings.TrimSuffix(raw, "wei"))
	}

	value, ok := new(big.Int).SetString(raw, 10)
	if !ok || value.Sign() <= 0 {
		return nil, &domain.ValidationError{Field: "gas-price", Reason: fmt.Sprintf("%q is not a positive integer", raw)}
	}
	return value.Mul(value, multiplier), nil
}
