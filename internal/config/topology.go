package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/BurntSushi/toml"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain"
)

// NetworksFile is the optional project file extending the built-in topology
const NetworksFile = "networks.toml"

// DefaultRPCURL is the endpoint every built-in network starts from
const DefaultRPCURL = "http://localhost:8545"

// NetworksTOML represents the raw networks.toml structure
type NetworksTOML struct {
	Networks map[string]domain.Network `toml:"networks"`
}

// DefaultTopology returns the built-in network table
func DefaultTopology() domain.Topology {
	builtin := []domain.Network{
		{Name: domain.LocalNetworkName, ChainID: 31337, Local: true},
		{Name: "amoy", ChainID: 80002, ExplorerURL: "https://amoy.polygonscan.com", ExplorerAPI: "https://api-amoy.polygonscan.com/api"},
		{Name: "polygon", ChainID: 137, ExplorerURL: "https://polygonscan.com", ExplorerAPI: "https://api.polygonscan.com/api"},
		{Name: "goerli", ChainID: 5, ExplorerURL: "https://goerli.etherscan.io", ExplorerAPI: "https://api-goerli.etherscan.io/api"},
		{Name: "polygon_zkevm", ChainID: 1101, ExplorerURL: "https://zkevm.polygonscan.com", ExplorerAPI: "https://api-zkevm.polygonscan.com/api"},
		{Name: "linea_mainnet", ChainID: 59144, ExplorerURL: "https://lineascan.build", ExplorerAPI: "https://api.lineascan.build/api"},
		{Name: "optimism", ChainID: 10, ExplorerURL: "https://optimistic.etherscan.io", ExplorerAPI: "https://api-optimistic.etherscan.io/api"},
		{Name: "arbitrum", ChainID: 42161, ExplorerURL: "https://arbiscan.io", ExplorerAPI: "https://api.arbiscan.io/api"},
		{Name: "mainnet", ChainID: 1, ExplorerURL: "https://etherscan.io", ExplorerAPI: "https://api.etherscan.io/api"},
		{Name: "base-sepolia", ChainID: 84532, ExplorerURL: "https://sepolia.basescan.org", ExplorerAPI: "https://api-sepolia.basescan.org/api"},
		{Name: "base-mainnet", ChainID: 8453, ExplorerURL: "https://basescan.org", ExplorerAPI: "https://api.basescan.org/api"},
	}

	topology := make(domain.Topology, len(builtin))
	for i := range builtin {
		n := builtin[i]
		n.RPCURL = DefaultRPCURL
		topology[n.Name] = &n
	}
	return topology
}

// LoadTopology returns the built-in topology overlaid with networks.toml, if present.
// Values may reference environment variables as ${VAR}.
func LoadTopology(projectRoot string) (domain.Topology, error) {
	topology := DefaultTopology()

	path := filepath.Join(projectRoot, NetworksFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return topology, nil
	}

	var raw NetworksTOML
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", NetworksFile, err)
	}

	for name, entry := range raw.Networks {
		base, exists := topology[name]
		if !exists {
			base = &domain.Network{Name: name, RPCURL: DefaultRPCURL}
			topology[name] = base
		}
		if entry.ChainID != 0 {
			base.ChainID = entry.ChainID
		}
		if entry.RPCURL != "" {
			base.RPCURL = os.ExpandEnv(entry.RPCURL)
		}
		if entry.ExplorerURL != "" {
			base.ExplorerURL = os.ExpandEnv(entry.ExplorerURL)
		}
		if entry.ExplorerAPI != "" {
			base.ExplorerAPI = os.ExpandEnv(entry.ExplorerAPI)
		}
		if entry.Local {
			base.Local = true
		}
	}

	return topology, nil
}

// envVarPattern matches ${VAR_NAME} patterns in TOML values
var envVarPattern = regexp.MustCompile(`^\$\{([A-Za-z_][A-Za-z0-9_]*)\}$`)

// DetectEnvVar checks if a raw TOML value is a simple ${VAR_NAME} reference.
// Returns the variable name and true if the value is a pure env var reference.
func DetectEnvVar(rawValue string) (string, bool) {
	matches := envVarPattern.FindStringSubmatch(rawValue)
	if len(matches) == 2 {
		return matches[1], true
	}
	return "", false
}

// UnsetEndpointVars lists the networks.toml endpoints referencing an environment
// variable that is not set, keyed by network name.
func UnsetEndpointVars(projectRoot string) (map[string]string, error) {
	path := filepath.Join(projectRoot, NetworksFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return map[string]string{}, nil
	}

	var raw NetworksTOML
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", NetworksFile, err)
	}

	unset := make(map[string]string)
	for name, entry := range raw.Networks {
		if v, ok := DetectEnvVar(entry.RPCURL); ok && os.Getenv(v) == "" {
			unset[name] = v
		}
	}
	return unset, nil
}
