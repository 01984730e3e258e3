// Package layout implements the reference box-model solver used as the
// cache's compute function. The cache treats it as an opaque pure function;
// any solver satisfying ports.LayoutEngine can replace it.
package layout

import (
	"go.trai.ch/incr/internal/core/domain"
	"go.trai.ch/incr/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.LayoutEngine = (*Engine)(nil)

// Engine computes node sizes bottom-up: a node's extent is its declared size
// or its children's combined extent plus padding, whichever is larger, plus
// its own margin. Positioning within the parent is the renderer's concern
// and is not resolved here, so X and Y stay zero.
type Engine struct{}

// NewEngine creates a layout engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Compute resolves the geometry of one node given its children's geometry,
// in child order.
func (e *Engine) Compute(node *domain.Descriptor, children []domain.Geometry) (domain.Geometry, error) {
	if node == nil {
		return domain.Geometry{}, zerr.New("nil descriptor")
	}
	if node.Width < 0 || node.Height < 0 {
		return domain.Geometry{}, zerr.With(zerr.New("negative dimension"), "node_id", node.ID)
	}

	var contentW, contentH int
	switch node.Direction {
	case domain.DirectionRow:
		for _, c := range children {
			contentW += c.Width
			contentH = max(contentH, c.Height)
		}
	default:
		for _, c := range children {
			contentH += c.Height
			contentW = max(contentW, c.Width)
		}
	}

	if len(children) > 0 {
		contentW += node.Padding.Horizontal()
		contentH += node.Padding.Vertical()
	}

	return domain.Geometry{
		Width:  max(node.Width, contentW) + node.Margin.Horizontal(),
		Height: max(node.Height, contentH) + node.Margin.Vertical(),
	}, nil
}
