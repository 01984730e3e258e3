package domain

import "os"

// DependencyKind discriminates the closed set of dependency value shapes.
type DependencyKind int

const (
	// DependencyLiteral wraps a plain value compared as-is.
	DependencyLiteral DependencyKind = iota
	// DependencyAccessor wraps a function consulted for the current value.
	DependencyAccessor
	// DependencyEnvKey names an environment variable whose value is read at
	// resolution time.
	DependencyEnvKey
)

// Dependency is an external value a cached computation depends on. It is a
// closed tagged variant: exactly one payload field is meaningful, selected by
// Kind. All variants resolve to a comparable value uniformly before hashing.
type Dependency struct {
	// Key identifies the dependency in the dependency graph and in
	// invalidation calls.
	Key string

	kind     DependencyKind
	literal  any
	accessor func() any
	envKey   string
}

// Literal creates a dependency on a plain value.
func Literal(key string, value any) Dependency {
	return Dependency{Key: key, kind: DependencyLiteral, literal: value}
}

// Accessor creates a dependency whose current value is produced by fn.
func Accessor(key string, fn func() any) Dependency {
	return Dependency{Key: key, kind: DependencyAccessor, accessor: fn}
}

// EnvKey creates a dependency on the named environment variable.
func EnvKey(name string) Dependency {
	return Dependency{Key: "env:" + name, kind: DependencyEnvKey, envKey: name}
}

// Kind returns the variant tag.
func (d Dependency) Kind() DependencyKind { return d.kind }

// Resolve returns the dependency's current value. A nil accessor resolves to
// nil rather than panicking.
func (d Dependency) Resolve() any {
	switch d.kind {
	case DependencyAccessor:
		if d.accessor == nil {
			return nil
		}
		return d.accessor()
	case DependencyEnvKey:
		return os.Getenv(d.envKey)
	default:
		return d.literal
	}
}
