package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/rifaisiciliadao/nftree-contracts/internal/domain"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain/config"
	"github.com/rifaisiciliadao/nftree-contracts/internal/usecase"
)

// JournalStoreAdapter implements PendingJournal as a JSON file kept next to the config record
type JournalStoreAdapter struct {
	path string
	mu   sync.Mutex
}

// NewJournalStoreAdapter creates a new JournalStoreAdapter
func NewJournalStoreAdapter(cfg *config.RuntimeConfig) *JournalStoreAdapter {
	return &JournalStoreAdapter{path: cfg.PendingPath()}
}

// Get returns the entry stored under key, or nil
func (s *JournalStoreAdapter) Get(_ context.Context, key string) (*domain.PendingEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	journal, err := s.load()
	if err != nil {
		return nil, err
	}
	return journal.Entries[key], nil
}

// Record stores entry under key, replacing any previous one
func (s *JournalStoreAdapter) Record(_ context.Context, key string, entry *domain.PendingEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	journal, err := s.load()
	if err != nil {
		return err
	}
	journal.Entries[key] = entry
	return s.save(journal)
}

// Clear removes the entry stored under key. The file is deleted once empty.
func (s *JournalStoreAdapter) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	journal, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := journal.Entries[key]; !ok {
		return nil
	}
	delete(journal.Entries, key)

	if len(journal.Entries) == 0 {
		if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete pending journal: %w", err)
		}
		return nil
	}
	return s.save(journal)
}

// load reads the journal from disk. Returns an empty journal if the file does not exist.
func (s *JournalStoreAdapter) load() (*domain.Journal, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.NewJournal(), nil
		}
		return nil, fmt.Errorf("failed to read pending journal: %w", err)
	}

	var journal domain.Journal
	if err := json.Unmarshal(data, &journal); err != nil {
		return nil, fmt.Errorf("failed to parse pending journal %s: %w", s.path, err)
	}
	if journal.Entries == nil {
		journal.Entries = make(map[string]*domain.PendingEntry)
	}
	return &journal, nil
}

func (s *JournalStoreAdapter) save(journal *domain.Journal) error {
	if err := writeJSONAtomic(s.path, journal, "  ", 0644); err != nil {
		return fmt.Errorf("failed to write pending journal: %w", err)
	}
	return nil
}

// Ensure JournalStoreAdapter implements PendingJournal
var _ usecase.PendingJournal = (*JournalStoreAdapter)(nil)
