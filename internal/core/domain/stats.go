package domain

import "time"

// FunctionStats is a snapshot of one memoized function's counters. Snapshots
// are taken under the owning cache's lock; the struct itself carries no
// synchronization.
type FunctionStats struct {
	Name        string        `json:"name"`
	Calls       int64         `json:"calls"`
	Hits        int64         `json:"hits"`
	Misses      int64         `json:"misses"`
	Evictions   int64         `json:"evictions"`
	Expirations int64         `json:"expirations"`
	Entries     int           `json:"entries"`
	AvgCompute  time.Duration `json:"avg_compute"`
	AvgRead     time.Duration `json:"avg_read"`
}

// HitRate returns hits over total lookups, or 0 when nothing was looked up.
func (s FunctionStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// TreeStats is a snapshot of the tree cache's counters.
type TreeStats struct {
	Entries    int   `json:"entries"`
	Hits       int64 `json:"hits"`
	Recomputes int64 `json:"recomputes"`
	Evictions  int64 `json:"evictions"`
}

// HitRate returns hits over total node visits, or 0 when nothing was visited.
func (s TreeStats) HitRate() float64 {
	total := s.Hits + s.Recomputes
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// CacheReport aggregates every cache's statistics for operator-facing
// diagnostics. It is informational only and never drives control flow.
type CacheReport struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Tree        TreeStats       `json:"tree"`
	Functions   []FunctionStats `json:"functions,omitzero"`
}
