// Package store implements a flat-file persistence adapter for tree cache
// snapshots. The in-memory cache stays authoritative; the file only lets
// geometry survive process restarts.
package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/incr/internal/core/domain"
	"go.trai.ch/incr/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.EntryStore = (*Store)(nil)

// Store implements ports.EntryStore using a single JSON file.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a store backed by the file at the given path. The file
// does not have to exist yet.
func NewStore(path string) *Store {
	return &Store{path: filepath.Clean(path)}
}

// Load reads the persisted entries. A missing or empty file yields an empty
// slice.
func (s *Store) Load() ([]domain.CacheEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read cache snapshot"), "path", s.path)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var entries []domain.CacheEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to unmarshal cache snapshot"), "path", s.path)
	}
	return entries, nil
}

// Save persists the entries, replacing any previous snapshot.
func (s *Store) Save(entries []domain.CacheEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal cache snapshot")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create snapshot directory"), "path", dir)
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write cache snapshot"), "path", s.path)
	}
	return nil
}
