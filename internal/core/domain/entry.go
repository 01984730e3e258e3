package domain

import "time"

// CacheEntry is the tree-layer record for a single descriptor node. It is
// owned exclusively by the tree cache.
type CacheEntry struct {
	// NodeID is the stable identifier of the node this entry belongs to.
	NodeID InternedString `json:"node_id"`
	// Fingerprint is the content fingerprint observed at the last
	// computation.
	Fingerprint Fingerprint `json:"fingerprint"`
	// Geometry is the computed layout result.
	Geometry Geometry `json:"geometry"`
	// DependencyKeys are the outgoing dependency edges registered when the
	// entry was written.
	DependencyKeys []string `json:"dependency_keys,omitzero"`
	// WrittenAt is the timestamp of the last write. Ceiling eviction orders
	// by this field.
	WrittenAt time.Time `json:"written_at"`
}

// MemoEntry is the generic-layer record for one memoized invocation, keyed by
// (function name, argument fingerprint, dependency fingerprint).
type MemoEntry struct {
	// Value is the computed result.
	Value any
	// Args retains the raw arguments so custom equality comparisons can
	// inspect more than a hash.
	Args []any
	// WrittenAt is the timestamp of the last write; TTL is checked against it
	// on every read.
	WrittenAt time.Time
	// AccessCount counts reads served from this entry.
	AccessCount int64
}

// Expired reports whether the entry is older than ttl at the given instant.
// A non-positive ttl never expires.
func (e *MemoEntry) Expired(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	return now.Sub(e.WrittenAt) > ttl
}
