package depgraph_test

import (
	"testing"

	"go.trai.ch/incr/internal/engine/depgraph"
)

// recordingEvictor collects the dependent keys invalidation reached and
// reports success for each.
type recordingEvictor struct {
	evicted []string
}

func (r *recordingEvictor) evict(key string) bool {
	r.evicted = append(r.evicted, key)
	return true
}

func TestInvalidate_DirectDependents(t *testing.T) {
	g := depgraph.New()
	rec := &recordingEvictor{}
	g.RegisterEvictor(rec.evict)

	g.Track("env:LOCALE", "memo:format(a)")
	g.Track("env:LOCALE", "memo:format(b)")
	g.Track("env:TERM", "memo:render(x)")

	count := g.Invalidate("env:LOCALE")

	if count != 2 {
		t.Errorf("expected 2 evictions, got %d", count)
	}
	if len(rec.evicted) != 2 {
		t.Errorf("expected evictor to see 2 keys, got %v", rec.evicted)
	}
	for _, key := range rec.evicted {
		if key == "memo:render(x)" {
			t.Error("invalidation reached an unrelated dependent")
		}
	}
}

func TestInvalidate_Transitive(t *testing.T) {
	g := depgraph.New()
	rec := &recordingEvictor{}
	g.RegisterEvictor(rec.evict)

	// a -> b -> c: b is both a dependent and a dependency.
	g.Track("a", "b")
	g.Track("b", "c")

	if count := g.Invalidate("a"); count != 2 {
		t.Errorf("expected transitive invalidation to evict 2, got %d", count)
	}

	// Edges are gone: a second invalidation finds nothing.
	if count := g.Invalidate("a"); count != 0 {
		t.Errorf("expected no evictions after edges were removed, got %d", count)
	}
}

func TestInvalidate_CycleTerminates(t *testing.T) {
	g := depgraph.New()
	rec := &recordingEvictor{}
	g.RegisterEvictor(rec.evict)

	g.Track("a", "b")
	g.Track("b", "a")

	if count := g.Invalidate("a"); count != 2 {
		t.Errorf("expected both cycle members evicted once, got %d", count)
	}
}

func TestInvalidate_UnknownKey(t *testing.T) {
	g := depgraph.New()
	rec := &recordingEvictor{}
	g.RegisterEvictor(rec.evict)

	if count := g.Invalidate("never-tracked"); count != 0 {
		t.Errorf("expected 0 evictions for unknown key, got %d", count)
	}
	if len(rec.evicted) != 0 {
		t.Errorf("expected evictor not to run, saw %v", rec.evicted)
	}
}

func TestInvalidate_CountsOnlySuccessfulEvictions(t *testing.T) {
	g := depgraph.New()
	g.RegisterEvictor(func(string) bool { return false })

	g.Track("dep", "entry")

	if count := g.Invalidate("dep"); count != 0 {
		t.Errorf("expected 0 when no evictor owned the key, got %d", count)
	}
}

func TestForget_RemovesEdges(t *testing.T) {
	g := depgraph.New()
	rec := &recordingEvictor{}
	g.RegisterEvictor(rec.evict)

	g.Track("dep", "entry")
	g.Forget("entry")

	if count := g.Invalidate("dep"); count != 0 {
		t.Errorf("expected no evictions after Forget, got %d", count)
	}
}

func TestTrack_Idempotent(t *testing.T) {
	g := depgraph.New()

	g.Track("dep", "entry")
	g.Track("dep", "entry")

	if deps := g.Dependents("dep"); len(deps) != 1 {
		t.Errorf("expected a single dependent, got %v", deps)
	}
}
