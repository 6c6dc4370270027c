package domain

import (
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// LocalNetworkName is the locally-simulated network
const LocalNetworkName = "hardhat"

// LocalAccountBalance is the synthetic balance credited to every credential on the local network
var LocalAccountBalance, _ = new(big.Int).SetString("10000000000000000000000000000000000000", 10)

// Network is one entry of the static topology
type Network struct {
	Name        string `toml:"-" json:"name"`
	ChainID     uint64 `toml:"chain_id" json:"chainId"`
	RPCURL      string `toml:"url" json:"rpcUrl"`
	ExplorerAPI string `toml:"explorer_api" json:"explorerApi,omitempty"`
	ExplorerURL string `toml:"explorer_url" json:"explorerUrl,omitempty"`
	Local       bool   `toml:"local" json:"local,omitempty"`
}

// Topology maps network names to their static definition
type Topology map[string]*Network

// Names returns the network names of the topology
func (t Topology) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	return names
}

// Credential is a signing key, optionally paired with the synthetic balance it
// is funded with on the local network.
type Credential struct {
	Key     *ecdsa.PrivateKey
	Balance *big.Int // nil outside the local network
}

// Address returns the account controlled by the credential
func (c Credential) Address() common.Address {
	return crypto.PubkeyToAddress(c.Key.PublicKey)
}

// Overrides carries the environment values that take part in network resolution
type Overrides struct {
	Provider      string   // PROVIDER
	Accounts      []string // ACCOUNTS, already split
	OverrideLocal bool     // PROVIDER_OVERRIDE_LOCAL
}

// NetworkProfile is the per-run view of a network. It is never persisted.
type NetworkProfile struct {
	Name        string
	Endpoint    string
	ChainID     uint64 // 0 when unknown until the endpoint is dialed
	Local       bool
	ExplorerURL string
	Credentials []Credential
}

// Signer returns the credential at index
func (p *NetworkProfile) Signer(index int) (Credential, bool) {
	if index < 0 || index >= len(p.Credentials) {
		return Credential{}, false
	}
	return p.Credentials[index], true
}
