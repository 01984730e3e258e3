// Package app implements the application layer: an explicit cache context
// that owns the fingerprinter, dependency graph, tree cache, memoizer, and
// sweeper. Multiple independent Apps in one process never share state.
package app

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/incr/internal/core/domain"
	"go.trai.ch/incr/internal/core/ports"
	"go.trai.ch/incr/internal/engine/depgraph"
	"go.trai.ch/incr/internal/engine/fingerprint"
	"go.trai.ch/incr/internal/engine/maintenance"
	"go.trai.ch/incr/internal/engine/memo"
	"go.trai.ch/incr/internal/engine/treecache"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// treeAreaFn is the name of the built-in memoized aggregate: total cell area
// of a computed tree.
const treeAreaFn = "tree-area"

// App wires the cache layers behind the CLI entry points.
type App struct {
	loader ports.ConfigLoader
	store  ports.EntryStore
	engine ports.LayoutEngine
	logger ports.Logger
	clock  clockwork.Clock

	mu     sync.Mutex
	caches *cacheSet
}

// cacheSet is built once the configuration is known.
type cacheSet struct {
	project *ports.Project
	fp      ports.Fingerprinter
	graph   *depgraph.Graph
	tree    *treecache.Cache
	memo    *memo.Memoizer
	sweeper *maintenance.Sweeper
	area    *memo.Fn
}

// New creates an App. Caches are constructed lazily on the first Run, once
// the configuration is loaded.
func New(
	loader ports.ConfigLoader,
	store ports.EntryStore,
	engine ports.LayoutEngine,
	logger ports.Logger,
	clock clockwork.Clock,
) *App {
	return &App{
		loader: loader,
		store:  store,
		engine: engine,
		logger: logger,
		clock:  clock,
	}
}

// ensureCaches loads the configuration and builds the cache layers on first
// use. Subsequent calls reuse the same set so fingerprints and statistics
// accumulate across runs.
func (a *App) ensureCaches(configPath string) (*cacheSet, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.caches != nil {
		return a.caches, nil
	}

	project, err := a.loader.Load(configPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	fp := fingerprint.New(project.Cache.MaxDepth)
	graph := depgraph.New()
	tree := treecache.New(fp, graph, a.clock, project.Cache.TreeMaxEntries)
	memoizer := memo.NewMemoizer(fp, graph, a.clock, project.Cache)
	sweeper := maintenance.New(tree, memoizer, a.clock, a.logger, project.Cache.SweepInterval)

	area, err := memoizer.Memoize(treeAreaFn, func(args ...any) (any, error) {
		geom, ok := args[0].(domain.Geometry)
		if !ok {
			return nil, zerr.New("expected geometry argument")
		}
		return geom.Width * geom.Height, nil
	})
	if err != nil {
		return nil, err
	}

	// Seed the tree cache from the previous snapshot, if any. A corrupt or
	// missing snapshot is not fatal; the cache just starts cold.
	if entries, err := a.store.Load(); err != nil {
		a.logger.Warn("cache snapshot not loaded: " + err.Error())
	} else if len(entries) > 0 {
		tree.Restore(entries)
		a.logger.Info(fmt.Sprintf("restored %d cached entries", len(entries)))
	}

	a.caches = &cacheSet{
		project: project,
		fp:      fp,
		graph:   graph,
		tree:    tree,
		memo:    memoizer,
		sweeper: sweeper,
		area:    area,
	}
	return a.caches, nil
}

// TreeResult is the outcome of computing one configured tree.
type TreeResult struct {
	Name     string
	Geometry domain.Geometry
	Area     int
}

// Run computes the named layout trees (all configured trees when names is
// empty) and persists the refreshed cache snapshot. Trees are independent
// and computed concurrently.
func (a *App) Run(ctx context.Context, configPath string, names []string) ([]TreeResult, error) {
	caches, err := a.ensureCaches(configPath)
	if err != nil {
		return nil, err
	}

	if len(names) == 0 {
		for name := range caches.project.Trees {
			names = append(names, name)
		}
		sort.Strings(names)
	}

	// Validate every name before any computation starts, so a bad name
	// cannot leave goroutines running behind an early return.
	roots := make([]*domain.Descriptor, len(names))
	for i, name := range names {
		root, ok := caches.project.Trees[name]
		if !ok {
			return nil, zerr.With(domain.ErrKeyNotFound, "tree", name)
		}
		roots[i] = root
	}

	results := make([]TreeResult, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, name := range names {
		root := roots[i]
		g.Go(func() error {
			geom, err := caches.tree.ComputeIncremental(ctx, rootID(name, root), root, a.engine.Compute, caches.project.Dependencies...)
			if err != nil {
				return zerr.With(err, "tree", name)
			}

			area, err := caches.area.Call(geom)
			if err != nil {
				return err
			}
			n, _ := area.(int)
			results[i] = TreeResult{Name: name, Geometry: geom, Area: n}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Snapshot persistence is best-effort; the in-memory cache stays
	// authoritative either way.
	if err := a.store.Save(caches.tree.Entries()); err != nil {
		a.logger.Warn("cache snapshot not saved: " + err.Error())
	}

	return results, nil
}

// rootID resolves the root cache key for a configured tree: an explicit
// descriptor ID wins over the tree's configured name.
func rootID(name string, root *domain.Descriptor) string {
	if root.ID != "" {
		return root.ID
	}
	return name
}

// Invalidate evicts every cached result derived from the given dependency
// key and returns the eviction count. This is the externally triggered
// invalidation hook for resize events and similar signals.
func (a *App) Invalidate(configPath, dependencyKey string) (int, error) {
	caches, err := a.ensureCaches(configPath)
	if err != nil {
		return 0, err
	}
	return caches.memo.Invalidate(dependencyKey), nil
}

// Report returns the cache-wide statistics report.
func (a *App) Report(configPath string) (domain.CacheReport, error) {
	caches, err := a.ensureCaches(configPath)
	if err != nil {
		return domain.CacheReport{}, err
	}
	report := caches.sweeper.Report()
	sort.Slice(report.Functions, func(i, j int) bool {
		return report.Functions[i].Name < report.Functions[j].Name
	})
	return report, nil
}

// StartMaintenance runs the periodic sweep until ctx is done. Intended to be
// launched on its own goroutine by long-lived hosts.
func (a *App) StartMaintenance(ctx context.Context, configPath string) error {
	caches, err := a.ensureCaches(configPath)
	if err != nil {
		return err
	}
	caches.sweeper.Run(ctx)
	return nil
}
