package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.trai.ch/incr/internal/adapters/config"
	"go.trai.ch/incr/internal/core/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "incr.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
version: "1"
cache:
  maxDepth: 5
  defaultTTL: 2m
  sweepInterval: 30s
  memoMaxEntries: 64
  treeMaxEntries: 256
trees:
  dashboard:
    id: root
    width: 80
    height: 24
    direction: row
    align: center
    padding: {top: 1, left: 2}
    children:
      - width: 40
        grow: true
      - width: 40
`)

	project, err := config.NewLoader().Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if project.Cache.MaxDepth != 5 {
		t.Errorf("expected maxDepth 5, got %d", project.Cache.MaxDepth)
	}
	if project.Cache.DefaultTTL != 2*time.Minute {
		t.Errorf("expected defaultTTL 2m, got %v", project.Cache.DefaultTTL)
	}
	if project.Cache.SweepInterval != 30*time.Second {
		t.Errorf("expected sweepInterval 30s, got %v", project.Cache.SweepInterval)
	}

	tree, ok := project.Trees["dashboard"]
	if !ok {
		t.Fatal("expected dashboard tree")
	}
	if tree.ID != "root" || tree.Width != 80 || tree.Direction != domain.DirectionRow {
		t.Errorf("root descriptor not loaded correctly: %+v", tree)
	}
	if tree.Padding.Top != 1 || tree.Padding.Left != 2 {
		t.Errorf("padding not loaded correctly: %+v", tree.Padding)
	}
	if len(tree.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(tree.Children))
	}
	if !tree.Children[0].Grow {
		t.Error("expected first child to grow")
	}
}

func TestLoad_DefaultsApplied(t *testing.T) {
	path := writeConfig(t, `
version: "1"
trees:
  main:
    width: 10
    height: 10
`)

	project, err := config.NewLoader().Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if project.Cache.DefaultTTL != domain.DefaultTTL {
		t.Errorf("expected default TTL %v, got %v", domain.DefaultTTL, project.Cache.DefaultTTL)
	}
	if project.Cache.MaxDepth != domain.DefaultMaxDepth {
		t.Errorf("expected default depth %d, got %d", domain.DefaultMaxDepth, project.Cache.MaxDepth)
	}
	if project.Trees["main"].Direction != domain.DirectionColumn {
		t.Errorf("expected default direction column, got %q", project.Trees["main"].Direction)
	}
	if project.Trees["main"].Align != domain.AlignStart {
		t.Errorf("expected default align start, got %q", project.Trees["main"].Align)
	}
}

func TestLoad_Dependencies(t *testing.T) {
	path := writeConfig(t, `
version: "1"
trees:
  main:
    width: 10
dependencies:
  - COLUMNS
  - LINES
`)

	project, err := config.NewLoader().Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(project.Dependencies) != 2 {
		t.Fatalf("expected 2 dependencies, got %d", len(project.Dependencies))
	}
	if project.Dependencies[0].Key != "env:COLUMNS" {
		t.Errorf("expected key env:COLUMNS, got %q", project.Dependencies[0].Key)
	}
	if project.Dependencies[1].Kind() != domain.DependencyEnvKey {
		t.Errorf("expected env dependency, got kind %d", project.Dependencies[1].Kind())
	}
}

func TestLoad_EmptyDependencyName(t *testing.T) {
	path := writeConfig(t, `
trees:
  main:
    width: 10
dependencies:
  - ""
`)

	_, err := config.NewLoader().Load(path)
	if err == nil {
		t.Fatal("expected error for empty dependency name")
	}
}

func TestLoad_InvalidDirection(t *testing.T) {
	path := writeConfig(t, `
trees:
  bad:
    direction: diagonal
`)

	_, err := config.NewLoader().Load(path)
	if err == nil {
		t.Fatal("expected error for invalid direction")
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	path := writeConfig(t, `
cache:
  defaultTTL: soon
`)

	_, err := config.NewLoader().Load(path)
	if err == nil {
		t.Fatal("expected error for invalid duration")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.NewLoader().Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
