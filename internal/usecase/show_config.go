package usecase

import (
	"context"

	"github.com/rifaisiciliadao/nftree-contracts/internal/domain"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain/config"
)

// ShowConfigResult contains the configuration record and local preferences
type ShowConfigResult struct {
	Record     *domain.ConfigRecord `json:"record" yaml:"record"`
	RecordPath string               `json:"recordPath" yaml:"record_path"`
	Local      *config.LocalConfig  `json:"local" yaml:"local"`
	LocalPath  string               `json:"localPath" yaml:"local_path"`
}

// ShowConfig is a use case for showing configuration. Secrets are redacted.
type ShowConfig struct {
	store ConfigStore
	local LocalConfigRepository
}

// NewShowConfig creates a new ShowConfig use case
func NewShowConfig(store ConfigStore, local LocalConfigRepository) *ShowConfig {
	return &ShowConfig{store: store, local: local}
}

// Run executes the show config use case
func (uc *ShowConfig) Run(ctx context.Context) (*ShowConfigResult, error) {
	record, err := uc.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	local, err := uc.local.Load(ctx)
	if err != nil {
		return nil, err
	}

	return &ShowConfigResult{
		Record:     record.Redacted(),
		RecordPath: uc.store.Path(),
		Local:      local,
		LocalPath:  uc.local.GetPath(),
	}, nil
}
