// Package maintenance runs the periodic cache sweep: expired-entry removal,
// capacity enforcement, and report aggregation. The sweep is advisory;
// read-time TTL checks keep the caches correct even if it never runs.
package maintenance

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/incr/internal/core/domain"
	"go.trai.ch/incr/internal/core/ports"
)

// TreeCache is the slice of the tree cache the sweeper needs.
type TreeCache interface {
	EnforceLimit() int
	Stats() domain.TreeStats
}

// MemoCache is the slice of the memo layer the sweeper needs.
type MemoCache interface {
	SweepExpired() int
	Stats() []domain.FunctionStats
}

// Sweeper periodically evicts expired and over-cap entries and aggregates a
// cache-wide report.
type Sweeper struct {
	tree     TreeCache
	memo     MemoCache
	clock    clockwork.Clock
	logger   ports.Logger
	interval time.Duration
}

// New creates a Sweeper. A non-positive interval falls back to the default.
func New(tree TreeCache, memo MemoCache, clock clockwork.Clock, logger ports.Logger, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = domain.DefaultSweepInterval
	}
	return &Sweeper{
		tree:     tree,
		memo:     memo,
		clock:    clock,
		logger:   logger,
		interval: interval,
	}
}

// Run sweeps on the configured interval until ctx is done. Sweep failures
// are logged and skipped; maintenance must not take down the host process.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			s.sweepOnce()
		}
	}
}

// sweepOnce performs a single pass, recovering from panics in cache hooks so
// a misbehaving eviction callback cannot kill the sweep loop.
func (s *Sweeper) sweepOnce() {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn(fmt.Sprintf("cache sweep skipped: %v", r))
		}
	}()

	expired := s.memo.SweepExpired()
	evicted := s.tree.EnforceLimit()
	if expired > 0 || evicted > 0 {
		s.logger.Info(fmt.Sprintf("cache sweep: %d expired, %d evicted", expired, evicted))
	}
}

// Report aggregates a point-in-time view of every cache's statistics, for
// operator-facing diagnostics only.
func (s *Sweeper) Report() domain.CacheReport {
	return domain.CacheReport{
		GeneratedAt: s.clock.Now(),
		Tree:        s.tree.Stats(),
		Functions:   s.memo.Stats(),
	}
}
