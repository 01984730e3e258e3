package config

// Incrfile represents the structure of the incr.yaml configuration file.
type Incrfile struct {
	Version string             `yaml:"version"`
	Cache   CacheDTO           `yaml:"cache"`
	Trees   map[string]NodeDTO `yaml:"trees"`
	// Dependencies names environment variables (terminal size, locale) whose
	// values every tree computation depends on. Changing one and running
	// `incr invalidate env:<name>` evicts the affected entries.
	Dependencies []string `yaml:"dependencies"`
}

// CacheDTO carries cache tunables. Durations use Go duration syntax
// ("5m", "60s").
type CacheDTO struct {
	MaxDepth       int    `yaml:"maxDepth"`
	DefaultTTL     string `yaml:"defaultTTL"`
	SweepInterval  string `yaml:"sweepInterval"`
	MemoMaxEntries int    `yaml:"memoMaxEntries"`
	TreeMaxEntries int    `yaml:"treeMaxEntries"`
}

// NodeDTO represents one layout descriptor node in the configuration.
type NodeDTO struct {
	ID        string     `yaml:"id"`
	Width     int        `yaml:"width"`
	Height    int        `yaml:"height"`
	Padding   SpacingDTO `yaml:"padding"`
	Margin    SpacingDTO `yaml:"margin"`
	Direction string     `yaml:"direction"`
	Align     string     `yaml:"align"`
	Grow      bool       `yaml:"grow"`
	Children  []NodeDTO  `yaml:"children"`
}

// SpacingDTO represents a per-edge inset.
type SpacingDTO struct {
	Top    int `yaml:"top"`
	Right  int `yaml:"right"`
	Bottom int `yaml:"bottom"`
	Left   int `yaml:"left"`
}
