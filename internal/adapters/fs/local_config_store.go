package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	appconfig "github.com/rifaisiciliadao/nftree-contracts/internal/config"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain/config"
	"github.com/rifaisiciliadao/nftree-contracts/internal/usecase"
)

// LocalConfigFile is the preferences file inside the project data directory
const LocalConfigFile = "config.local.json"

// LocalConfigStoreAdapter keeps the per-project preferences (preferred network,
// artifacts directory) next to the contracts project. They are defaults only:
// flags and environment still win at startup.
type LocalConfigStoreAdapter struct {
	path string
}

func NewLocalConfigStoreAdapter(cfg *config.RuntimeConfig) *LocalConfigStoreAdapter {
	return &LocalConfigStoreAdapter{
		path: filepath.Join(cfg.ProjectRoot, appconfig.DataDirName, LocalConfigFile),
	}
}

// Load returns the stored preferences. A missing or empty file means no preferences.
func (s *LocalConfigStoreAdapter) Load(_ context.Context) (*config.LocalConfig, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return config.DefaultLocalConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read preferences %s: %w", s.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return config.DefaultLocalConfig(), nil
	}

	prefs := config.DefaultLocalConfig()
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(prefs); err != nil {
		return nil, fmt.Errorf("parse preferences %s (known keys: network, artifacts): %w", s.path, err)
	}
	return prefs, nil
}

// Save replaces the preferences file atomically
func (s *LocalConfigStoreAdapter) Save(_ context.Context, prefs *config.LocalConfig) error {
	if err := writeJSONAtomic(s.path, prefs, "  ", 0644); err != nil {
		return fmt.Errorf("write preferences %s: %w", s.path, err)
	}
	return nil
}

func (s *LocalConfigStoreAdapter) GetPath() string {
	return s.path
}

var _ usecase.LocalConfigRepository = (*LocalConfigStoreAdapter)(nil)
