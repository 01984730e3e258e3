package domain

import (
	"time"

	"go.trai.ch/zerr"
)

const (
	// DefaultMaxDepth bounds the structural walk over arbitrary values during
	// fingerprinting. Anything deeper is hashed as an opaque marker.
	DefaultMaxDepth = 3

	// DefaultTTL is the memo-entry time-to-live applied when a function does
	// not configure its own.
	DefaultTTL = 5 * time.Minute

	// DefaultSweepInterval is how often the maintenance sweep runs.
	DefaultSweepInterval = 60 * time.Second

	// DefaultMemoMaxEntries is the per-function entry cap applied when a
	// function does not configure its own.
	DefaultMemoMaxEntries = 1024

	// DefaultTreeMaxEntries is the global ceiling on tree cache entries.
	DefaultTreeMaxEntries = 4096
)

// CacheConfig carries the tunables shared by the cache layers.
type CacheConfig struct {
	// MaxDepth bounds the fingerprinting walk over arbitrary values.
	MaxDepth int
	// DefaultTTL is the fallback memo-entry time-to-live.
	DefaultTTL time.Duration
	// SweepInterval is the maintenance sweep period.
	SweepInterval time.Duration
	// MemoMaxEntries is the fallback per-function entry cap.
	MemoMaxEntries int
	// TreeMaxEntries is the global ceiling on tree cache entries.
	TreeMaxEntries int
}

// Normalize fills zero fields with defaults and returns the result.
func (c CacheConfig) Normalize() CacheConfig {
	if c.MaxDepth == 0 {
		c.MaxDepth = DefaultMaxDepth
	}
	if c.DefaultTTL == 0 {
		c.DefaultTTL = DefaultTTL
	}
	if c.SweepInterval == 0 {
		c.SweepInterval = DefaultSweepInterval
	}
	if c.MemoMaxEntries == 0 {
		c.MemoMaxEntries = DefaultMemoMaxEntries
	}
	if c.TreeMaxEntries == 0 {
		c.TreeMaxEntries = DefaultTreeMaxEntries
	}
	return c
}

// Validate rejects configurations that cannot be normalized into something
// usable.
func (c CacheConfig) Validate() error {
	if c.MaxDepth < 0 {
		return zerr.With(ErrInvalidConfig, "field", "max_depth")
	}
	if c.DefaultTTL < 0 {
		return zerr.With(ErrInvalidConfig, "field", "default_ttl")
	}
	if c.SweepInterval < 0 {
		return zerr.With(ErrInvalidConfig, "field", "sweep_interval")
	}
	if c.MemoMaxEntries < 0 {
		return zerr.With(ErrInvalidConfig, "field", "memo_max_entries")
	}
	if c.TreeMaxEntries < 0 {
		return zerr.With(ErrInvalidConfig, "field", "tree_max_entries")
	}
	return nil
}
