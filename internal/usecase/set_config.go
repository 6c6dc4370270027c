package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rifaisiciliadao/nftree-contracts/internal/domain"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain/config"
	"github.com/samber/lo"
)

// SetConfigParams contains parameters for setting configuration
type SetConfigParams struct {
	Key   string
	Value string
}

// SetConfigResult contains the result of setting configuration
type SetConfigResult struct {
	UpdatedConfig *config.LocalConfig `json:"config" yaml:"config"`
	ConfigPath    string              `json:"path" yaml:"path"`
	Key           config.ConfigKey    `json:"key" yaml:"key"`
	Value         string              `json:"value" yaml:"value"`
	PreviousValue string              `json:"previousValue,omitempty" yaml:"previous_value,omitempty"`
}

// SetConfig is a use case for setting, reading and removing local preferences
type SetConfig struct {
	store    LocalConfigRepository
	resolver NetworkResolver
}

// NewSetConfig creates a new SetConfig use case
func NewSetConfig(store LocalConfigRepository, resolver NetworkResolver) *SetConfig {
	return &SetConfig{store: store, resolver: resolver}
}

// Run stores a value. Network names are checked against the topology.
func (uc *SetConfig) Run(ctx context.Context, params SetConfigParams) (*SetConfigResult, error) {
	key, err := normalizeKey(params.Key)
	if err != nil {
		return nil, err
	}

	if key == config.ConfigKeyNetwork && params.Value != "" {
		known := lo.Map(uc.resolver.Networks(ctx), func(n *domain.Network, _ int) string { return n.Name })
		if !lo.Contains(known, params.Value) {
			return nil, fmt.Errorf("unknown network: %s\nAvailable networks: %s", params.Value, strings.Join(known, ", "))
		}
	}

	return uc.update(ctx, key, params.Value)
}

// Get returns the stored value of a key
func (uc *SetConfig) Get(ctx context.Context, rawKey string) (*SetConfigResult, error) {
	key, err := normalizeKey(rawKey)
	if err != nil {
		return nil, err
	}
	cfg, err := uc.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &SetConfigResult{UpdatedConfig: cfg, ConfigPath: uc.store.GetPath(), Key: key, Value: cfg.Get(key)}, nil
}

// Remove clears a key
func (uc *SetConfig) Remove(ctx context.Context, rawKey string) (*SetConfigResult, error) {
	key, err := normalizeKey(rawKey)
	if err != nil {
		return nil, err
	}
	return uc.update(ctx, key, "")
}

func (uc *SetConfig) update(ctx context.Context, key config.ConfigKey, value string) (*SetConfigResult, error) {
	cfg, err := uc.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	previous := cfg.Get(key)
	cfg.Set(key, value)

	if err := uc.store.Save(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	return &SetConfigResult{
		UpdatedConfig: cfg,
		ConfigPath:    uc.store.GetPath(),
		Key:           key,
		Value:         value,
		PreviousValue: previous,
	}, nil
}

func normalizeKey(raw string) (config.ConfigKey, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if !config.IsValidConfigKey(key) {
		valid := lo.Map(config.ValidConfigKeys(), func(k config.ConfigKey, _ int) string { return string(k) })
		return "", fmt.Errorf("unknown config key: %s\nAvailable keys: %s", raw, strings.Join(valid, ", "))
	}
	return config.NormalizeKey(key), nil
}
