package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain/config"
	"github.com/rifaisiciliadao/nftree-contracts/internal/usecase"
)

// ArtifactLoaderAdapter reads hardhat artifacts from the artifacts directory
type ArtifactLoaderAdapter struct {
	root string
}

// NewArtifactLoaderAdapter creates a new ArtifactLoaderAdapter
func NewArtifactLoaderAdapter(cfg *config.RuntimeConfig) *ArtifactLoaderAdapter {
	return &ArtifactLoaderAdapter{root: cfg.ArtifactsDir}
}

// Load returns the artifact of contractName. The conventional location
// contracts/<Name>.sol/<Name>.json is tried first, then the whole tree is searched.
func (l *ArtifactLoaderAdapter) Load(_ context.Context, contractName string) (*domain.Artifact, error) {
	path := filepath.Join(l.root, "contracts", contractName+".sol", contractName+".json")
	if _, err := os.Stat(path); err != nil {
		found, ferr := l.find(contractName)
		if ferr != nil {
			return nil, ferr
		}
		path = found
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}

	var artifact domain.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to parse artifact %s: %w", path, err)
	}
	if artifact.ContractName == "" {
		artifact.ContractName = contractName
	}

	if _, err := abi.JSON(bytes.NewReader(artifact.ABI)); err != nil {
		return nil, fmt.Errorf("artifact %s has an invalid ABI: %w", path, err)
	}

	return &artifact, nil
}

func (l *ArtifactLoaderAdapter) find(contractName string) (string, error) {
	target := contractName + ".json"
	var found string

	err := filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "build-info" {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() == target && !strings.HasSuffix(path, ".dbg.json") {
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to search artifacts in %s: %w", l.root, err)
	}
	if found == "" {
		return "", fmt.Errorf("artifact for %s not found under %s (compile the contracts first): %w", contractName, l.root, domain.ErrNotFound)
	}
	return found, nil
}

// Ensure ArtifactLoaderAdapter implements ArtifactLoader
var _ usecase.ArtifactLoader = (*ArtifactLoaderAdapter)(nil)
