// Package treecache implements the tree-structured incremental cache: it
// stores per-node layout results and recomputes only the nodes whose
// fingerprints changed, plus their ancestors.
package treecache

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/incr/internal/core/domain"
	"go.trai.ch/incr/internal/core/ports"
	"go.trai.ch/incr/internal/engine/depgraph"
	"go.trai.ch/zerr"
)

// keyPrefix namespaces tree entries in the shared dependency graph so memo
// keys cannot collide with node identifiers.
const keyPrefix = "tree:"

// Cache caches computed geometry per descriptor node. All entries are owned
// exclusively by the cache; callers interact through ComputeIncremental and
// the invalidation entry points.
type Cache struct {
	fp         ports.Fingerprinter
	graph      *depgraph.Graph
	clock      clockwork.Clock
	maxEntries int

	mu      sync.RWMutex
	entries map[domain.InternedString]*domain.CacheEntry
	stats   domain.TreeStats
}

// New creates a tree cache wired to the given fingerprinter and dependency
// graph. maxEntries is the advisory global ceiling enforced by the
// maintenance sweep; zero falls back to the default.
func New(fp ports.Fingerprinter, graph *depgraph.Graph, clock clockwork.Clock, maxEntries int) *Cache {
	if maxEntries <= 0 {
		maxEntries = domain.DefaultTreeMaxEntries
	}
	c := &Cache{
		fp:         fp,
		graph:      graph,
		clock:      clock,
		maxEntries: maxEntries,
		entries:    make(map[domain.InternedString]*domain.CacheEntry),
	}
	graph.RegisterEvictor(c.evictKey)
	return c
}

// evictKey is the dependency-graph hook: it removes the entry behind a
// dependent key if this cache owns it.
func (c *Cache) evictKey(dependentKey string) bool {
	if len(dependentKey) <= len(keyPrefix) || dependentKey[:len(keyPrefix)] != keyPrefix {
		return false
	}
	id := domain.NewInternedString(dependentKey[len(keyPrefix):])

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[id]; !ok {
		return false
	}
	delete(c.entries, id)
	c.stats.Evictions++
	return true
}

// ComputeIncremental resolves the geometry for the whole tree rooted at
// root. Children are resolved strictly before their parent; a node is
// recomputed when its fingerprint changed or any of its children was
// recomputed this pass, and served from cache otherwise. deps are external
// values the computation reads: every node resolved this pass is registered
// as their dependent.
func (c *Cache) ComputeIncremental(
	ctx context.Context,
	rootID string,
	root *domain.Descriptor,
	compute domain.ComputeFunc,
	deps ...domain.Dependency,
) (domain.Geometry, error) {
	if root == nil {
		return domain.Geometry{}, zerr.New("nil root descriptor")
	}
	if err := ctx.Err(); err != nil {
		return domain.Geometry{}, err
	}

	pass := &passState{
		compute: compute,
		dirty:   domain.NewDirtySet(),
	}

	geom, _, _, err := c.resolveNode(ctx, pass, rootID, root)
	if err != nil {
		return domain.Geometry{}, err
	}

	if len(deps) > 0 {
		for _, dep := range deps {
			for _, id := range pass.visited {
				c.graph.Track(dep.Key, keyPrefix+id.String())
			}
		}

		// Record the keys on the entries as well, so a persisted snapshot can
		// rebuild the same edges on restore.
		depKeys := make([]string, len(deps))
		for i, dep := range deps {
			depKeys[i] = dep.Key
		}
		c.mu.Lock()
		for _, id := range pass.visited {
			if entry, ok := c.entries[id]; ok {
				entry.DependencyKeys = depKeys
			}
		}
		c.mu.Unlock()
	}

	return geom, nil
}

// passState carries per-pass bookkeeping. A pass has a single logical owner;
// the cache lock only guards the shared entry map.
type passState struct {
	compute domain.ComputeFunc
	dirty   *domain.DirtySet
	visited []domain.InternedString
}

// resolveNode returns the node's geometry, its fingerprint, and whether it
// was recomputed this pass.
func (c *Cache) resolveNode(
	ctx context.Context,
	pass *passState,
	id string,
	d *domain.Descriptor,
) (domain.Geometry, domain.Fingerprint, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.Geometry{}, domain.Fingerprint{}, false, err
	}

	nodeID := domain.NewInternedString(id)
	pass.visited = append(pass.visited, nodeID)

	// Children strictly first: parent geometry is commonly a function of
	// child geometry, and child fingerprints feed the node fingerprint.
	childGeoms := make([]domain.Geometry, len(d.Children))
	childFPs := make([]domain.Fingerprint, len(d.Children))
	childRecomputed := false
	for i, child := range d.Children {
		geom, cfp, recomputed, err := c.resolveNode(ctx, pass, childID(id, child, i), child)
		if err != nil {
			return domain.Geometry{}, domain.Fingerprint{}, false, err
		}
		childGeoms[i] = geom
		childFPs[i] = cfp
		childRecomputed = childRecomputed || recomputed
	}

	fp := c.fp.Node(d, childFPs)

	c.mu.RLock()
	entry, ok := c.entries[nodeID]
	c.mu.RUnlock()

	if ok && entry.Fingerprint == fp && !childRecomputed {
		c.mu.Lock()
		c.stats.Hits++
		c.mu.Unlock()
		return entry.Geometry, fp, false, nil
	}
	pass.dirty.Mark(nodeID)

	geom, err := pass.compute(d, childGeoms)
	if err != nil {
		// A failed computation writes nothing: the stale entry, if any, was
		// already rejected by the fingerprint comparison and the next call
		// will recompute again.
		return domain.Geometry{}, domain.Fingerprint{}, false,
			zerr.With(zerr.Wrap(err, "layout computation failed"), "node_id", id)
	}

	c.mu.Lock()
	c.entries[nodeID] = &domain.CacheEntry{
		NodeID:      nodeID,
		Fingerprint: fp,
		Geometry:    geom,
		WrittenAt:   c.clock.Now(),
	}
	c.stats.Recomputes++
	c.mu.Unlock()
	pass.dirty.Clear(nodeID)

	return geom, fp, true, nil
}

// childID derives a stable identifier for a child node: an explicit
// descriptor ID wins, otherwise the parent identifier plus the child index.
func childID(parentID string, child *domain.Descriptor, index int) string {
	if child.ID != "" {
		return child.ID
	}
	return parentID + "/" + strconv.Itoa(index)
}

// Invalidate removes the entry for a single node. It returns ErrKeyNotFound
// when the node has no entry.
func (c *Cache) Invalidate(nodeID string) error {
	id := domain.NewInternedString(nodeID)

	c.mu.Lock()
	_, ok := c.entries[id]
	if ok {
		delete(c.entries, id)
		c.stats.Evictions++
	}
	c.mu.Unlock()

	if !ok {
		return zerr.With(domain.ErrKeyNotFound, "node_id", nodeID)
	}
	c.graph.Forget(keyPrefix + nodeID)
	return nil
}

// Prune removes entries for nodes absent from the live identifier set,
// typically after a subtree was removed from the descriptor tree.
func (c *Cache) Prune(liveIDs []string) int {
	live := make(map[domain.InternedString]struct{}, len(liveIDs))
	for _, id := range liveIDs {
		live[domain.NewInternedString(id)] = struct{}{}
	}

	c.mu.Lock()
	var removed []domain.InternedString
	for id := range c.entries {
		if _, ok := live[id]; !ok {
			removed = append(removed, id)
			delete(c.entries, id)
		}
	}
	c.stats.Evictions += int64(len(removed))
	c.mu.Unlock()

	for _, id := range removed {
		c.graph.Forget(keyPrefix + id.String())
	}
	return len(removed)
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	ids := make([]domain.InternedString, 0, len(c.entries))
	for id := range c.entries {
		ids = append(ids, id)
	}
	c.entries = make(map[domain.InternedString]*domain.CacheEntry)
	c.mu.Unlock()

	for _, id := range ids {
		c.graph.Forget(keyPrefix + id.String())
	}
}

// EnforceLimit evicts the least-recently-written entries until the entry
// count is back under the ceiling. Tree entries are refreshed on every
// recomputation, so write order is the natural staleness order here. It
// returns the number of entries evicted.
func (c *Cache) EnforceLimit() int {
	c.mu.Lock()
	over := len(c.entries) - c.maxEntries
	if over <= 0 {
		c.mu.Unlock()
		return 0
	}

	all := make([]*domain.CacheEntry, 0, len(c.entries))
	for _, e := range c.entries {
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].WrittenAt.Before(all[j].WrittenAt) })

	evicted := all[:over]
	for _, e := range evicted {
		delete(c.entries, e.NodeID)
	}
	c.stats.Evictions += int64(len(evicted))
	c.mu.Unlock()

	for _, e := range evicted {
		c.graph.Forget(keyPrefix + e.NodeID.String())
	}
	return len(evicted)
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() domain.TreeStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := c.stats
	s.Entries = len(c.entries)
	return s
}

// Entries returns a copy of every entry, for persistence snapshots.
func (c *Cache) Entries() []domain.CacheEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.CacheEntry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, *e)
	}
	return out
}

// Restore seeds the cache from a persisted snapshot. Existing entries with
// the same node identifier are overwritten, and each entry's recorded
// dependency keys are re-registered so invalidation reaches restored entries
// exactly as it reached the originals.
func (c *Cache) Restore(entries []domain.CacheEntry) {
	c.mu.Lock()
	for i := range entries {
		e := entries[i]
		c.entries[e.NodeID] = &e
	}
	c.mu.Unlock()

	// Edge registration takes the graph lock; keep it outside ours.
	for _, e := range entries {
		for _, key := range e.DependencyKeys {
			c.graph.Track(key, keyPrefix+e.NodeID.String())
		}
	}
}
