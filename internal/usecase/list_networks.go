package usecase

import (
	"context"

	"github.com/rifaisiciliadao/nftree-contracts/internal/domain"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain/config"
)

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks     []NetworkStatus `json:"networks" yaml:"networks"`
	Selected     string          `json:"selected" yaml:"selected"`
	ExplorerKey  bool            `json:"explorerKey" yaml:"explorer_key"`
	ProviderSet  bool            `json:"providerOverride" yaml:"provider_override"`
	RecordLoaded bool            `json:"recordLoaded" yaml:"record_loaded"`
}

// NetworkStatus represents a network with the endpoint a run would use
type NetworkStatus struct {
	Name        string `json:"name" yaml:"name"`
	ChainID     uint64 `json:"chainId" yaml:"chain_id"`
	Endpoint    string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	ExplorerURL string `json:"explorerUrl,omitempty" yaml:"explorer_url,omitempty"`
	Local       bool   `json:"local" yaml:"local"`
	// MissingVar is the unset variable a networks.toml endpoint refers to
	MissingVar string `json:"missingVar,omitempty" yaml:"missing_var,omitempty"`
	Signers    int    `json:"signers" yaml:"signers"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
}

// ListNetworks is a use case for listing available networks
type ListNetworks struct {
	cfg      *config.RuntimeConfig
	store    ConfigStore
	resolver NetworkResolver
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(cfg *config.RuntimeConfig, store ConfigStore, resolver NetworkResolver) *ListNetworks {
	return &ListNetworks{cfg: cfg, store: store, resolver: resolver}
}

// Run executes the use case. A missing or broken record is not fatal here:
// endpoints are then resolved from the topology and environment alone.
func (uc *ListNetworks) Run(ctx context.Context) (*ListNetworksResult, error) {
	result := &ListNetworksResult{
		Selected:    uc.cfg.NetworkName,
		ExplorerKey: uc.cfg.EtherscanKey != "",
		ProviderSet: uc.cfg.Overrides.Provider != "",
	}

	record, err := uc.store.Load(ctx)
	if err == nil {
		result.RecordLoaded = true
	} else {
		record = &domain.ConfigRecord{}
	}

	for _, network := range uc.resolver.Networks(ctx) {
		status := NetworkStatus{
			Name:        network.Name,
			ChainID:     network.ChainID,
			ExplorerURL: network.ExplorerURL,
			Local:       network.Local,
			MissingVar:  uc.cfg.UnsetEndpointVars[network.Name],
		}

		profile, err := uc.resolver.Resolve(ctx, network.Name, record)
		if err != nil {
			status.Error = err.Error()
		} else {
			status.Endpoint = profile.Endpoint
			status.Signers = len(profile.Credentials)
		}

		result.Networks = append(result.Networks, status)
	}

	return result, nil
}
