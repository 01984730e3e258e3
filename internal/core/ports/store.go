package ports

import "go.trai.ch/incr/internal/core/domain"

// EntryStore defines the persistence boundary for tree cache entries. The
// in-memory cache is authoritative; a store only has to round-trip the entry
// fields without loss.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type EntryStore interface {
	// Load retrieves the persisted entries. A missing backing file yields an
	// empty slice, not an error.
	Load() ([]domain.CacheEntry, error)

	// Save persists the given entries, replacing any previous snapshot.
	Save(entries []domain.CacheEntry) error
}
