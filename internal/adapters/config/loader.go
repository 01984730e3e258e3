// Package config provides the configuration loader for incr.
package config

import (
	"os"
	"time"

	"go.trai.ch/incr/internal/core/domain"
	"go.trai.ch/incr/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*FileConfigLoader)(nil)

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct{}

// NewLoader creates a FileConfigLoader.
func NewLoader() *FileConfigLoader {
	return &FileConfigLoader{}
}

// Load reads the configuration file at the given path.
func (l *FileConfigLoader) Load(path string) (*ports.Project, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	var file Incrfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path)
	}

	cache, err := cacheConfig(file.Cache)
	if err != nil {
		return nil, err
	}

	trees := make(map[string]*domain.Descriptor, len(file.Trees))
	for name, dto := range file.Trees {
		desc, err := descriptor(dto, name)
		if err != nil {
			return nil, zerr.With(err, "tree", name)
		}
		trees[name] = desc
	}

	deps := make([]domain.Dependency, 0, len(file.Dependencies))
	for _, name := range file.Dependencies {
		if name == "" {
			return nil, zerr.With(zerr.New("empty dependency name"), "path", path)
		}
		deps = append(deps, domain.EnvKey(name))
	}

	return &ports.Project{Cache: cache, Trees: trees, Dependencies: deps}, nil
}

func cacheConfig(dto CacheDTO) (domain.CacheConfig, error) {
	cfg := domain.CacheConfig{
		MaxDepth:       dto.MaxDepth,
		MemoMaxEntries: dto.MemoMaxEntries,
		TreeMaxEntries: dto.TreeMaxEntries,
	}

	var err error
	if cfg.DefaultTTL, err = duration(dto.DefaultTTL, "defaultTTL"); err != nil {
		return domain.CacheConfig{}, err
	}
	if cfg.SweepInterval, err = duration(dto.SweepInterval, "sweepInterval"); err != nil {
		return domain.CacheConfig{}, err
	}

	if err := cfg.Validate(); err != nil {
		return domain.CacheConfig{}, err
	}
	return cfg.Normalize(), nil
}

func duration(s, field string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "invalid duration"), "field", field)
	}
	return d, nil
}

// descriptor converts a NodeDTO tree into a domain descriptor tree,
// validating enum fields as it goes.
func descriptor(dto NodeDTO, path string) (*domain.Descriptor, error) {
	direction := domain.Direction(dto.Direction)
	switch direction {
	case "", domain.DirectionRow, domain.DirectionColumn:
		if direction == "" {
			direction = domain.DirectionColumn
		}
	default:
		return nil, zerr.With(zerr.New("invalid direction"), "direction", dto.Direction)
	}

	align := domain.Align(dto.Align)
	switch align {
	case "", domain.AlignStart, domain.AlignCenter, domain.AlignEnd:
		if align == "" {
			align = domain.AlignStart
		}
	default:
		return nil, zerr.With(zerr.New("invalid align"), "align", dto.Align)
	}

	d := &domain.Descriptor{
		ID:        dto.ID,
		Width:     dto.Width,
		Height:    dto.Height,
		Padding:   spacing(dto.Padding),
		Margin:    spacing(dto.Margin),
		Direction: direction,
		Align:     align,
		Grow:      dto.Grow,
		Children:  make([]*domain.Descriptor, 0, len(dto.Children)),
	}

	for i, child := range dto.Children {
		c, err := descriptor(child, path)
		if err != nil {
			return nil, zerr.With(err, "child_index", i)
		}
		d.Children = append(d.Children, c)
	}
	return d, nil
}

func spacing(dto SpacingDTO) domain.Spacing {
	return domain.Spacing{Top: dto.Top, Right: dto.Right, Bottom: dto.Bottom, Left: dto.Left}
}
