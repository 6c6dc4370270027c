package network

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain/config"
	"github.com/rifaisiciliadao/nftree-contracts/internal/usecase"
	"github.com/sahilm/fuzzy"
)

// maxSuggestions bounds the "did you mean" list of an unknown network
const maxSuggestions = 3

// Resolver handles network profile resolution
type Resolver struct {
	topology  domain.Topology
	overrides domain.Overrides
}

// NewResolver creates a new network resolver
func NewResolver(cfg *config.RuntimeConfig) *Resolver {
	return &Resolver{
		topology:  cfg.Topology,
		overrides: cfg.Overrides,
	}
}

// Resolve resolves a network name to a per-run profile
func (r *Resolver) Resolve(_ context.Context, networkName string, record *domain.ConfigRecord) (*domain.NetworkProfile, error) {
	return Resolve(networkName, r.topology, record, r.overrides)
}

// Networks returns the topology sorted by name
func (r *Resolver) Networks(_ context.Context) []*domain.Network {
	names := r.topology.Names()
	sort.Strings(names)

	networks := make([]*domain.Network, 0, len(names))
	for _, name := range names {
		networks = append(networks, r.topology[name])
	}
	return networks
}

// Resolve builds a network profile from the static topology, the config record and the
// environment overrides. It performs no I/O.
func Resolve(networkName string, topology domain.Topology, record *domain.ConfigRecord, overrides domain.Overrides) (*domain.NetworkProfile, error) {
	if networkName == "" {
		return nil, &domain.NetworkResolutionError{Reason: "network not specified"}
	}

	network, known := lookup(topology, networkName)
	if !known {
		if overrides.Provider == "" {
			return nil, &domain.NetworkResolutionError{
				Network:     networkName,
				Reason:      "not in the network topology and PROVIDER is not set",
				Suggestions: suggest(networkName, topology.Names()),
			}
		}
		// ad-hoc network, its chain id is whatever the endpoint reports
		network = &domain.Network{Name: networkName}
	}

	profile := &domain.NetworkProfile{
		Name:        network.Name,
		ChainID:     network.ChainID,
		Local:       network.Local,
		ExplorerURL: network.ExplorerURL,
		Endpoint:    endpoint(network, record, overrides),
	}
	if profile.Endpoint == "" {
		return nil, &domain.NetworkResolutionError{Network: network.Name, Reason: "no endpoint configured"}
	}

	credentials, err := credentials(network, record, overrides)
	if err != nil {
		return nil, err
	}
	profile.Credentials = credentials

	return profile, nil
}

// endpoint applies PROVIDER > record provider > topology url. The local network
// only honours PROVIDER when explicitly allowed.
func endpoint(network *domain.Network, record *domain.ConfigRecord, overrides domain.Overrides) string {
	if overrides.Provider != "" && (!network.Local || overrides.OverrideLocal) {
		return overrides.Provider
	}
	if record != nil && record.Provider != "" && !network.Local {
		return record.Provider
	}
	return network.RPCURL
}

func credentials(network *domain.Network, record *domain.ConfigRecord, overrides domain.Overrides) ([]domain.Credential, error) {
	if len(overrides.Accounts) > 0 {
		creds := make([]domain.Credential, 0, len(overrides.Accounts))
		for i, raw := range overrides.Accounts {
			key, err := parseKey(raw)
			if err != nil {
				return nil, &domain.NetworkResolutionError{
					Network: network.Name,
					Reason:  fmt.Sprintf("ACCOUNTS entry %d is not a valid secret key", i),
					Err:     err,
				}
			}
			cred := domain.Credential{Key: key}
			if network.Local {
				cred.Balance = domain.LocalAccountBalance
			}
			creds = append(creds, cred)
		}
		return creds, nil
	}

	if record == nil {
		return nil, nil
	}

	var creds []domain.Credential
	for _, field := range []struct {
		name  string
		value string
	}{
		{"owner_key", record.OwnerKey},
		{"validator_key", record.ValidatorKey},
	} {
		if field.value == "" {
			continue
		}
		key, err := parseKey(field.value)
		if err != nil {
			return nil, &domain.NetworkResolutionError{
				Network: network.Name,
				Reason:  field.name + " is not a valid secret key",
				Err:     err,
			}
		}
		creds = append(creds, domain.Credential{Key: key})
	}
	return creds, nil
}

func parseKey(raw string) (*ecdsa.PrivateKey, error) {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "0x")
	return crypto.HexToECDSA(raw)
}

// lookup finds a network by exact, then case-insensitive, name
func lookup(topology domain.Topology, name string) (*domain.Network, bool) {
	if network, ok := topology[name]; ok {
		return network, true
	}
	for key, network := range topology {
		if strings.EqualFold(key, name) {
			return network, true
		}
	}
	return nil, false
}

// suggest returns candidates fuzzy-matching name in either direction, so both
// abbreviations ("base") and typos with extra letters ("amoyy") find a match.
func suggest(name string, candidates []string) []string {
	sort.Strings(candidates)
	name = strings.ToLower(name)

	seen := make(map[string]bool)
	suggestions := make([]string, 0, maxSuggestions)
	add := func(s string) {
		if !seen[s] && len(suggestions) < maxSuggestions {
			seen[s] = true
			suggestions = append(suggestions, s)
		}
	}

	for _, m := range fuzzy.Find(name, candidates) {
		add(m.Str)
	}
	for _, candidate := range candidates {
		if len(fuzzy.Find(candidate, []string{name})) > 0 {
			add(candidate)
		}
	}
	return suggestions
}

// Ensure Resolver implements NetworkResolver
var _ usecase.NetworkResolver = (*Resolver)(nil)
