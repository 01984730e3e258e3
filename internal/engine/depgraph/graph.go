// Package depgraph maintains the bidirectional dependency graph used to
// propagate invalidation from changed external values to cached results.
package depgraph

import (
	"sync"
)

// Evictor removes the cache entry behind a dependent key. Each cache layer
// registers one so invalidation can reach entries it does not own.
type Evictor func(dependentKey string) bool

// Graph records directed edges from dependency keys to dependent cache keys.
// Edges are registered when an entry is written and consulted when a
// dependency is reported changed.
type Graph struct {
	mu sync.RWMutex
	// dependents maps a dependency key to the set of cache keys derived from
	// it.
	dependents map[string]map[string]struct{}
	// incoming maps a dependent cache key back to its dependency keys, so
	// edges can be unregistered when the entry goes away.
	incoming map[string]map[string]struct{}
	evictors []Evictor
}

// New creates an empty dependency graph.
func New() *Graph {
	return &Graph{
		dependents: make(map[string]map[string]struct{}),
		incoming:   make(map[string]map[string]struct{}),
	}
}

// RegisterEvictor adds a cache-layer eviction hook invoked for every
// dependent key reached during invalidation.
func (g *Graph) RegisterEvictor(e Evictor) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.evictors = append(g.evictors, e)
}

// Track registers the edge dependencyKey -> dependentKey. Tracking the same
// edge twice is a no-op.
func (g *Graph) Track(dependencyKey, dependentKey string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	deps, ok := g.dependents[dependencyKey]
	if !ok {
		deps = make(map[string]struct{})
		g.dependents[dependencyKey] = deps
	}
	deps[dependentKey] = struct{}{}

	in, ok := g.incoming[dependentKey]
	if !ok {
		in = make(map[string]struct{})
		g.incoming[dependentKey] = in
	}
	in[dependencyKey] = struct{}{}
}

// Forget removes every edge pointing at dependentKey. Called when the entry
// behind the key is removed for reasons other than invalidation.
func (g *Graph) Forget(dependentKey string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.forgetLocked(dependentKey)
}

func (g *Graph) forgetLocked(dependentKey string) {
	for dep := range g.incoming[dependentKey] {
		delete(g.dependents[dep], dependentKey)
		if len(g.dependents[dep]) == 0 {
			delete(g.dependents, dep)
		}
	}
	delete(g.incoming, dependentKey)
}

// Invalidate evicts every cache entry transitively reachable from
// dependencyKey via recorded edges and returns the number of entries
// evicted. Unknown keys evict nothing. Cycles are tolerated via a visited
// set.
func (g *Graph) Invalidate(dependencyKey string) int {
	g.mu.Lock()

	visited := make(map[string]struct{})
	queue := make([]string, 0, len(g.dependents[dependencyKey]))
	for dep := range g.dependents[dependencyKey] {
		queue = append(queue, dep)
	}

	var reached []string
	for len(queue) > 0 {
		key := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		if _, seen := visited[key]; seen {
			continue
		}
		visited[key] = struct{}{}
		reached = append(reached, key)

		// A dependent may itself be a dependency of further entries.
		for next := range g.dependents[key] {
			queue = append(queue, next)
		}
	}

	for _, key := range reached {
		g.forgetLocked(key)
	}
	evictors := g.evictors
	g.mu.Unlock()

	// Run evictors outside the graph lock; cache layers take their own locks
	// and may call back into Forget.
	count := 0
	for _, key := range reached {
		for _, evict := range evictors {
			if evict(key) {
				count++
			}
		}
	}
	return count
}

// Dependents returns the direct dependents of a dependency key. Used by
// diagnostics.
func (g *Graph) Dependents(dependencyKey string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]string, 0, len(g.dependents[dependencyKey]))
	for dep := range g.dependents[dependencyKey] {
		out = append(out, dep)
	}
	return out
}
