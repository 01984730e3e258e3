package domain

// DirtySet is the transient set of node identifiers known to require
// recomputation in the current pass. It is populated when a fingerprint
// comparison fails and drained as each dirty node is recomputed.
type DirtySet struct {
	nodes map[InternedString]struct{}
}

// NewDirtySet creates an empty DirtySet.
func NewDirtySet() *DirtySet {
	return &DirtySet{nodes: make(map[InternedString]struct{})}
}

// Mark adds a node to the set.
func (s *DirtySet) Mark(id InternedString) {
	s.nodes[id] = struct{}{}
}

// Contains reports whether the node is marked dirty.
func (s *DirtySet) Contains(id InternedString) bool {
	_, ok := s.nodes[id]
	return ok
}

// Clear removes a node from the set, typically after it has been recomputed.
func (s *DirtySet) Clear(id InternedString) {
	delete(s.nodes, id)
}

// Len returns the number of dirty nodes.
func (s *DirtySet) Len() int {
	return len(s.nodes)
}
