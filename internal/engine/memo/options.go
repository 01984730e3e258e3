package memo

import (
	"time"

	"go.trai.ch/incr/internal/core/domain"
)

// EqualityFunc compares two argument lists. Supplied when argument types are
// not reliably fingerprintable; the cache then scans retained arguments
// instead of trusting the hash alone.
type EqualityFunc func(a, b []any) bool

// ShouldRecomputeFunc is consulted before the cache. Returning false opts
// out of strict freshness: the last stored result is returned even when its
// TTL has lapsed.
type ShouldRecomputeFunc func(args ...any) bool

// options collects per-function configuration.
type options struct {
	ttl             time.Duration
	deps            []domain.Dependency
	equality        EqualityFunc
	shouldRecompute ShouldRecomputeFunc
	maxEntries      int
}

// Option configures a memoized function.
type Option func(*options)

// WithTTL sets the entry time-to-live. A non-positive duration means entries
// never expire by age.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) { o.ttl = ttl }
}

// WithDependencies declares external values the function reads. Their
// resolved values are folded into the cache key and their keys registered in
// the dependency graph, so Invalidate on a dependency key evicts every entry
// this function cached.
func WithDependencies(deps ...domain.Dependency) Option {
	return func(o *options) { o.deps = append(o.deps, deps...) }
}

// WithEquality replaces fingerprint-based argument matching with a custom
// comparison over retained argument lists.
func WithEquality(eq EqualityFunc) Option {
	return func(o *options) { o.equality = eq }
}

// WithShouldRecompute installs a cheap external change signal consulted
// before the cache. See ShouldRecomputeFunc.
func WithShouldRecompute(fn ShouldRecomputeFunc) Option {
	return func(o *options) { o.shouldRecompute = fn }
}

// WithMaxEntries caps the number of entries retained for this function.
// Exceeding the cap evicts the least-recently-used entry.
func WithMaxEntries(n int) Option {
	return func(o *options) { o.maxEntries = n }
}
