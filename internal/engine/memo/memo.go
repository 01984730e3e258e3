// Package memo implements the generic memoization layer: a reusable cache
// wrapper for arbitrary computation functions with per-function TTL,
// least-recently-used eviction, custom argument equality, external
// dependency keys, and statistics.
package memo

import (
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jonboulle/clockwork"
	"go.trai.ch/incr/internal/core/domain"
	"go.trai.ch/incr/internal/core/ports"
	"go.trai.ch/incr/internal/engine/depgraph"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// keyPrefix namespaces memo entries in the shared dependency graph.
const keyPrefix = "memo:"

// ComputeFunc is an arbitrary computation to be memoized. It must be pure
// with respect to its arguments and declared dependencies.
type ComputeFunc func(args ...any) (any, error)

// Memoizer owns the memoized-function registry. It is the explicit context
// object replacing the source system's module-level cache maps: independent
// Memoizers never share state.
type Memoizer struct {
	fp    ports.Fingerprinter
	graph *depgraph.Graph
	clock clockwork.Clock
	cfg   domain.CacheConfig

	mu  sync.RWMutex
	fns map[string]*Fn
}

// NewMemoizer creates an empty registry. cfg supplies the fallback TTL and
// per-function entry cap.
func NewMemoizer(fp ports.Fingerprinter, graph *depgraph.Graph, clock clockwork.Clock, cfg domain.CacheConfig) *Memoizer {
	m := &Memoizer{
		fp:    fp,
		graph: graph,
		clock: clock,
		cfg:   cfg.Normalize(),
		fns:   make(map[string]*Fn),
	}
	graph.RegisterEvictor(m.evictKey)
	return m
}

// Memoize registers a computation under name and returns the cached wrapper.
// Registering the same name twice is an error.
func (m *Memoizer) Memoize(name string, compute ComputeFunc, opts ...Option) (*Fn, error) {
	o := options{
		ttl:        m.cfg.DefaultTTL,
		maxEntries: m.cfg.MemoMaxEntries,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxEntries <= 0 {
		o.maxEntries = m.cfg.MemoMaxEntries
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.fns[name]; exists {
		return nil, zerr.With(domain.ErrFunctionAlreadyRegistered, "function", name)
	}

	fn := &Fn{
		name:    name,
		compute: compute,
		opts:    o,
		fp:      m.fp,
		graph:   m.graph,
		clock:   m.clock,
	}
	store, err := lru.NewWithEvict(o.maxEntries, fn.onEvict)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create entry store")
	}
	fn.entries = store

	m.fns[name] = fn
	return fn, nil
}

// Fn returns the wrapper registered under name.
func (m *Memoizer) Fn(name string) (*Fn, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	fn, ok := m.fns[name]
	if !ok {
		return nil, zerr.With(domain.ErrFunctionNotRegistered, "function", name)
	}
	return fn, nil
}

// Invalidate evicts every cached entry transitively derived from the given
// dependency key, across all registered functions and the tree cache, and
// returns the eviction count. This is the externally triggered invalidation
// hook.
func (m *Memoizer) Invalidate(dependencyKey string) int {
	return m.graph.Invalidate(dependencyKey)
}

// Stats returns a snapshot of every registered function's counters, sorted
// by name at the caller's discretion (map order here).
func (m *Memoizer) Stats() []domain.FunctionStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.FunctionStats, 0, len(m.fns))
	for _, fn := range m.fns {
		out = append(out, fn.Stats())
	}
	return out
}

// SweepExpired removes every entry whose age exceeds its function's TTL and
// returns the number removed. Correctness never depends on this running:
// expired entries are also rejected at read time.
func (m *Memoizer) SweepExpired() int {
	m.mu.RLock()
	fns := make([]*Fn, 0, len(m.fns))
	for _, fn := range m.fns {
		fns = append(fns, fn)
	}
	m.mu.RUnlock()

	removed := 0
	for _, fn := range fns {
		removed += fn.sweepExpired()
	}
	return removed
}

// evictKey is the dependency-graph hook: it strips the namespace prefix and
// lets the owning function drop the entry.
func (m *Memoizer) evictKey(dependentKey string) bool {
	key, ok := strings.CutPrefix(dependentKey, keyPrefix)
	if !ok {
		return false
	}
	name, _, ok := strings.Cut(key, "(")
	if !ok {
		return false
	}

	m.mu.RLock()
	fn, registered := m.fns[name]
	m.mu.RUnlock()
	if !registered {
		return false
	}
	return fn.removeKey(key)
}

// Fn is a memoized function. Calls go through Call; the zero value is not
// usable.
type Fn struct {
	name    string
	compute ComputeFunc
	opts    options
	fp      ports.Fingerprinter
	graph   *depgraph.Graph
	clock   clockwork.Clock
	flight  singleflight.Group

	mu      sync.Mutex
	entries *lru.Cache[string, *domain.MemoEntry]
	// last is the most recently stored entry, kept for the shouldRecompute
	// short-circuit which returns stale results on purpose.
	last *domain.MemoEntry
	// silentRemove suppresses the eviction counter while the removal is an
	// expiry or explicit invalidation rather than capacity pressure.
	silentRemove bool

	calls        int64
	hits         int64
	misses       int64
	evictions    int64
	expirations  int64
	totalCompute time.Duration
	computes     int64
	totalRead    time.Duration
	reads        int64
}

// Name returns the registered function name.
func (f *Fn) Name() string { return f.name }

// onEvict is the LRU callback. It fires for capacity evictions and explicit
// removals; silentRemove tells the two apart for the counters. Either way
// the dependency edges of the removed entry are forgotten.
func (f *Fn) onEvict(key string, _ *domain.MemoEntry) {
	if !f.silentRemove {
		f.evictions++
	}
	f.graph.Forget(keyPrefix + key)
}

// Call invokes the memoized function. Behavior, in order: the
// shouldRecompute short-circuit, cache lookup with TTL check, then a
// deduplicated execution of the underlying computation on a miss.
func (f *Fn) Call(args ...any) (any, error) {
	f.mu.Lock()
	f.calls++

	// 1. Explicit opt-out of strict freshness: if the cheap external signal
	// says nothing changed and any previous result exists, return it even if
	// its TTL has lapsed.
	if f.opts.shouldRecompute != nil && f.last != nil {
		recompute := f.opts.shouldRecompute(args...)
		if !recompute {
			f.hits++
			f.last.AccessCount++
			value := f.last.Value
			f.mu.Unlock()
			return value, nil
		}
	}

	// 2. Cache key: serialized-argument hash plus current dependency values.
	key := f.cacheKey(args)

	// 3. Lookup with TTL check at read time.
	readStart := f.clock.Now()
	entry, ok := f.lookup(key, args)
	if ok {
		now := f.clock.Now()
		if entry.Expired(now, f.opts.ttl) {
			f.silentRemove = true
			f.entries.Remove(key)
			f.silentRemove = false
			f.expirations++
		} else {
			f.hits++
			entry.AccessCount++
			f.totalRead += now.Sub(readStart)
			f.reads++
			value := entry.Value
			f.mu.Unlock()
			return value, nil
		}
	}
	f.misses++
	f.mu.Unlock()

	// 4. Execute once per key even under concurrent identical calls; late
	// arrivals share the first computation's result.
	value, err, _ := f.flight.Do(key, func() (any, error) {
		start := f.clock.Now()
		v, err := f.compute(args...)
		elapsed := f.clock.Now().Sub(start)
		if err != nil {
			// No entry is written for a failed computation.
			return nil, zerr.With(zerr.Wrap(err, "memoized computation failed"),
				"function", f.name)
		}

		f.mu.Lock()
		f.totalCompute += elapsed
		f.computes++
		e := &domain.MemoEntry{
			Value:     v,
			Args:      args,
			WrittenAt: f.clock.Now(),
		}
		f.entries.Add(key, e)
		f.last = e
		f.mu.Unlock()

		for _, dep := range f.opts.deps {
			f.graph.Track(dep.Key, keyPrefix+key)
		}
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// lookup finds the entry for key. With a custom equality function the
// retained argument lists are scanned instead, so equal-but-differently-
// hashed arguments still hit. Callers hold f.mu.
func (f *Fn) lookup(key string, args []any) (*domain.MemoEntry, bool) {
	if f.opts.equality == nil {
		return f.entries.Get(key)
	}
	for _, k := range f.entries.Keys() {
		entry, ok := f.entries.Peek(k)
		if !ok {
			continue
		}
		if f.opts.equality(entry.Args, args) {
			// Promote recency for the matched key.
			_, _ = f.entries.Get(k)
			return entry, true
		}
	}
	return nil, false
}

// cacheKey combines the function name, the argument fingerprint, and the
// fingerprint of the current dependency values.
func (f *Fn) cacheKey(args []any) string {
	argFP := f.fp.Args(args)
	depFP := f.fp.Dependencies(f.opts.deps)
	return f.name + "(" + argFP.String() + "|" + depFP.String() + ")"
}

// Invalidate removes the entry for the given argument list. It returns
// ErrKeyNotFound when no entry matches.
func (f *Fn) Invalidate(args ...any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := f.cacheKey(args)
	if f.opts.equality != nil {
		for _, k := range f.entries.Keys() {
			entry, ok := f.entries.Peek(k)
			if ok && f.opts.equality(entry.Args, args) {
				key = k
				break
			}
		}
	}

	if !f.entries.Contains(key) {
		return zerr.With(domain.ErrKeyNotFound, "function", f.name)
	}
	f.silentRemove = true
	f.entries.Remove(key)
	f.silentRemove = false
	return nil
}

// Clear drops every cached entry and the shouldRecompute fallback result.
func (f *Fn) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.silentRemove = true
	f.entries.Purge()
	f.silentRemove = false
	f.last = nil
}

// removeKey drops a single entry by raw key. Used by dependency-graph
// invalidation; the eviction counter does count these.
func (f *Fn) removeKey(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.entries.Contains(key) {
		return false
	}
	f.entries.Remove(key)
	return true
}

// sweepExpired removes expired entries, returning the number removed.
func (f *Fn) sweepExpired() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.clock.Now()
	removed := 0
	for _, k := range f.entries.Keys() {
		entry, ok := f.entries.Peek(k)
		if !ok || !entry.Expired(now, f.opts.ttl) {
			continue
		}
		f.silentRemove = true
		f.entries.Remove(k)
		f.silentRemove = false
		f.expirations++
		removed++
	}
	return removed
}

// Stats returns a snapshot of the function's counters.
func (f *Fn) Stats() domain.FunctionStats {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := domain.FunctionStats{
		Name:        f.name,
		Calls:       f.calls,
		Hits:        f.hits,
		Misses:      f.misses,
		Evictions:   f.evictions,
		Expirations: f.expirations,
		Entries:     f.entries.Len(),
	}
	if f.computes > 0 {
		s.AvgCompute = f.totalCompute / time.Duration(f.computes)
	}
	if f.reads > 0 {
		s.AvgRead = f.totalRead / time.Duration(f.reads)
	}
	return s
}
