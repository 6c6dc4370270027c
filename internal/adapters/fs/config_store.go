package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/rifaisiciliadao/nftree-contracts/internal/domain"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain/config"
	"github.com/rifaisiciliadao/nftree-contracts/internal/usecase"
)

// ConfigStoreAdapter implements ConfigStore on the JSON file named by CONFIG
type ConfigStoreAdapter struct {
	path string
}

// NewConfigStoreAdapter creates a new ConfigStoreAdapter
func NewConfigStoreAdapter(cfg *config.RuntimeConfig) *ConfigStoreAdapter {
	return &ConfigStoreAdapter{path: cfg.ConfigPath}
}

// Path returns the location of the config record
func (s *ConfigStoreAdapter) Path() string {
	return s.path
}

// Load reads and parses the config record. The record must carry an owner key.
func (s *ConfigStoreAdapter) Load(_ context.Context) (*domain.ConfigRecord, error) {
	if s.path == "" {
		return nil, &domain.ConfigLoadError{Err: errors.New("no config file given (set CONFIG or --config)")}
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &domain.ConfigLoadError{Path: s.path, Err: err}
	}

	var record domain.ConfigRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, &domain.ConfigLoadError{Path: s.path, Err: fmt.Errorf("malformed JSON: %w", err)}
	}

	if record.OwnerKey == "" {
		return nil, &domain.ConfigLoadError{Path: s.path, Err: errors.New("owner_key is missing")}
	}

	return &record, nil
}

// Persist replaces the config record on disk. The previous contents stay intact if the write fails.
func (s *ConfigStoreAdapter) Persist(_ context.Context, record *domain.ConfigRecord) error {
	if s.path == "" {
		return &domain.PersistenceError{Err: errors.New("no config file given")}
	}
	if err := writeJSONAtomic(s.path, record, "    ", fileMode(s.path, 0600)); err != nil {
		return &domain.PersistenceError{Path: s.path, Err: err}
	}
	return nil
}

// Ensure ConfigStoreAdapter implements ConfigStore
var _ usecase.ConfigStore = (*ConfigStoreAdapter)(nil)
