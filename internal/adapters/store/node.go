package store

import (
	"context"
	"os"
	"path/filepath"

	"github.com/grindlemire/graft"
	"go.trai.ch/incr/internal/core/ports"
)

const NodeID graft.ID = "adapter.entry_store"

// snapshotEnv overrides the default snapshot location.
const snapshotEnv = "INCR_SNAPSHOT"

func init() {
	graft.Register(graft.Node[ports.EntryStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.EntryStore, error) {
			path := os.Getenv(snapshotEnv)
			if path == "" {
				path = filepath.Join(".incr", "snapshot.json")
			}
			return NewStore(path), nil
		},
	})
}
