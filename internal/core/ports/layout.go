package ports

import "go.trai.ch/incr/internal/core/domain"

// LayoutEngine is the external collaborator that turns one descriptor plus
// its children's computed geometry into this node's geometry. The cache
// treats it as an opaque pure function.
//
//go:generate go run go.uber.org/mock/mockgen -source=layout.go -destination=mocks/mock_layout.go -package=mocks
type LayoutEngine interface {
	Compute(node *domain.Descriptor, children []domain.Geometry) (domain.Geometry, error)
}
