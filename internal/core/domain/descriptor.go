// Package domain contains the core domain models for the incremental
// computation cache: layout descriptors, fingerprints, cache entries, and
// dependency values.
package domain

// Direction controls how a descriptor lays out its children.
type Direction string

const (
	// DirectionRow lays children out horizontally.
	DirectionRow Direction = "row"
	// DirectionColumn lays children out vertically.
	DirectionColumn Direction = "column"
)

// Align controls cross-axis placement of children.
type Align string

const (
	// AlignStart places children at the start of the cross axis.
	AlignStart Align = "start"
	// AlignCenter centers children on the cross axis.
	AlignCenter Align = "center"
	// AlignEnd places children at the end of the cross axis.
	AlignEnd Align = "end"
)

// Spacing is a per-edge inset (padding or margin).
type Spacing struct {
	Top    int `json:"top,omitzero"`
	Right  int `json:"right,omitzero"`
	Bottom int `json:"bottom,omitzero"`
	Left   int `json:"left,omitzero"`
}

// Horizontal returns the combined left and right inset.
func (s Spacing) Horizontal() int { return s.Left + s.Right }

// Vertical returns the combined top and bottom inset.
func (s Spacing) Vertical() int { return s.Top + s.Bottom }

// Descriptor is a node in an externally supplied layout tree. The cache never
// mutates a descriptor; callers must represent content changes as new
// descriptor values so that structural fingerprinting stays sound.
type Descriptor struct {
	// ID optionally pins a stable identifier for this node. When empty, the
	// cache derives an identifier from the parent's identifier and the child
	// index.
	ID string

	Width     int
	Height    int
	Padding   Spacing
	Margin    Spacing
	Direction Direction
	Align     Align
	// Grow marks the node as claiming leftover main-axis space.
	Grow bool

	// Children is the ordered sequence of child descriptors. Order is
	// significant for both layout and fingerprinting.
	Children []*Descriptor
}

// Geometry is the computed layout result for a single descriptor.
type Geometry struct {
	X      int `json:"x,omitzero"`
	Y      int `json:"y,omitzero"`
	Width  int `json:"width,omitzero"`
	Height int `json:"height,omitzero"`
}

// ComputeFunc is the externally supplied layout algorithm. It receives one
// descriptor plus the already-computed geometry of its children, in child
// order. It must be pure with respect to its inputs.
type ComputeFunc func(node *Descriptor, children []Geometry) (Geometry, error)
