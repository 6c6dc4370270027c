package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rifaisiciliadao/nftree-contracts/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTopology(t *testing.T) {
	topology := DefaultTopology()

	expected := map[string]uint64{
		"hardhat":       31337,
		"amoy":          80002,
		"polygon":       137,
		"goerli":        5,
		"polygon_zkevm": 1101,
		"linea_mainnet": 59144,
		"optimism":      10,
		"arbitrum":      42161,
		"mainnet":       1,
		"base-sepolia":  84532,
		"base-mainnet":  8453,
	}
	require.Len(t, topology, len(expected))

	for name, chainID := range expected {
		network, ok := topology[name]
		require.True(t, ok, name)
		assert.Equal(t, name, network.Name)
		assert.Equal(t, chainID, network.ChainID, name)
		assert.Equal(t, DefaultRPCURL, network.RPCURL, name)
		assert.Equal(t, name == domain.LocalNetworkName, network.Local, name)
	}
}

func TestLoadTopology_Overlay(t *testing.T) {
	root := t.TempDir()
	t.Setenv("AMOY_RPC_URL", "https://rpc-amoy.example")
	content := `
[networks.amoy]
url = "${AMOY_RPC_URL}"

[networks.sepolia]
chain_id = 11155111
url = "https://sepolia.example"
explorer_url = "https://sepolia.etherscan.io"
`
	require.NoError(t, os.WriteFile(filepath.Join(root, NetworksFile), []byte(content), 0644))

	topology, err := LoadTopology(root)
	require.NoError(t, err)

	assert.Equal(t, "https://rpc-amoy.example", topology["amoy"].RPCURL)
	assert.Equal(t, uint64(80002), topology["amoy"].ChainID)

	sepolia := topology["sepolia"]
	require.NotNil(t, sepolia)
	assert.Equal(t, "sepolia", sepolia.Name)
	assert.Equal(t, uint64(11155111), sepolia.ChainID)
	assert.Equal(t, "https://sepolia.etherscan.io", sepolia.ExplorerURL)
	assert.False(t, sepolia.Local)
}

func TestLoadTopology_InvalidFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, NetworksFile), []byte("[networks.amoy\n"), 0644))

	_, err := LoadTopology(root)
	assert.Error(t, err)
}

func TestDetectEnvVar(t *testing.T) {
	tests := []struct {
		name       string
		rawValue   string
		wantEnvVar string
		wantIsVar  bool
	}{
		{"simple env var", "${AMOY_RPC_URL}", "AMOY_RPC_URL", true},
		{"hardcoded URL", "https://polygon-rpc.com", "", false},
		{"env var with path suffix", "${MY_VAR}/path", "", false},
		{"empty string", "", "", false},
		{"env var starting with underscore", "${_MY_VAR}", "_MY_VAR", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			envVar, isVar := DetectEnvVar(tt.rawValue)
			assert.Equal(t, tt.wantEnvVar, envVar)
			assert.Equal(t, tt.wantIsVar, isVar)
		})
	}
}

func TestUnsetEndpointVars(t *testing.T) {
	root := t.TempDir()
	t.Setenv("SET_RPC_URL", "https://set.example")
	t.Setenv("UNSET_RPC_URL", "")
	content := `
[networks.polygon]
url = "${SET_RPC_URL}"

[networks.mainnet]
url = "${UNSET_RPC_URL}"
`
	require.NoError(t, os.WriteFile(filepath.Join(root, NetworksFile), []byte(content), 0644))

	unset, err := UnsetEndpointVars(root)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"mainnet": "UNSET_RPC_URL"}, unset)
}
