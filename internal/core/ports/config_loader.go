package ports

import "go.trai.ch/incr/internal/core/domain"

// Project is a loaded configuration: cache tunables, the named layout trees
// the CLI operates on, and the external dependencies every tree pass reads.
type Project struct {
	Cache domain.CacheConfig
	Trees map[string]*domain.Descriptor
	// Dependencies are registered against every computed node, so an
	// invalidation of any of their keys evicts the affected trees.
	Dependencies []domain.Dependency
}

// ConfigLoader defines the interface for loading configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration from the given path.
	Load(path string) (*Project, error)
}
