package config

import (
	"math/big"
	"time"

	"github.com/rifaisiciliadao/nftree-contracts/internal/domain"
)

// OutputFormat selects how command results are rendered
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot  string
	ConfigPath   string // CONFIG
	ArtifactsDir string

	// Network selection
	NetworkName string
	Overrides   domain.Overrides
	Topology    domain.Topology
	// UnsetEndpointVars maps networks.toml entries to the missing variable their endpoint needs
	UnsetEndpointVars map[string]string

	// Explorer verification key (ETHERSCAN)
	EtherscanKey string

	// Transaction settings
	StaticGasPrice *big.Int // nil unless a static fee policy is configured
	ConfirmTimeout time.Duration
	PollInterval   time.Duration
	SignerIndex    int

	// Execution settings
	Debug          bool
	NonInteractive bool
	AssumeYes      bool
	Output         OutputFormat
	Timeout        time.Duration
}

// PendingPath returns the journal file kept next to the config record
func (c *RuntimeConfig) PendingPath() string {
	return c.ConfigPath + ".pending.json"
}
