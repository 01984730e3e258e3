package ports

import "go.trai.ch/incr/internal/core/domain"

// Fingerprinter computes deterministic content fingerprints for change
// detection.
//
//go:generate go run go.uber.org/mock/mockgen -source=fingerprinter.go -destination=mocks/mock_fingerprinter.go -package=mocks
type Fingerprinter interface {
	// Descriptor computes the fingerprint of a layout descriptor, recursing
	// depth-first over its children. Order of children is significant.
	Descriptor(d *domain.Descriptor) domain.Fingerprint

	// Node computes the fingerprint of a single node from its own scalar
	// fields plus already-computed child fingerprints, in order. Descriptor
	// is equivalent to applying Node bottom-up.
	Node(d *domain.Descriptor, children []domain.Fingerprint) domain.Fingerprint

	// Value computes the fingerprint of an arbitrary value using a
	// bounded-depth structural walk. It never fails: non-serializable or
	// too-deep values are hashed as opaque markers.
	Value(v any) domain.Fingerprint

	// Args computes a single fingerprint over an ordered argument list.
	Args(args []any) domain.Fingerprint

	// Dependencies resolves each dependency to its current value and folds
	// the values into one fingerprint, in order.
	Dependencies(deps []domain.Dependency) domain.Fingerprint
}
