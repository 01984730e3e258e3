package layout

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/incr/internal/core/ports"
)

const NodeID graft.ID = "adapter.layout_engine"

func init() {
	graft.Register(graft.Node[ports.LayoutEngine]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.LayoutEngine, error) {
			return NewEngine(), nil
		},
	})
}
