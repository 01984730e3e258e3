package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"go.trai.ch/incr/internal/app"
	"go.trai.ch/incr/internal/core/domain"
	"go.trai.ch/incr/internal/core/ports"
	"go.trai.ch/incr/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func testProject() *ports.Project {
	return &ports.Project{
		Cache: domain.CacheConfig{}.Normalize(),
		Trees: map[string]*domain.Descriptor{
			"ui": {
				ID: "root",
				Children: []*domain.Descriptor{
					{ID: "header", Height: 1},
					{ID: "body", Height: 10},
				},
			},
		},
	}
}

func newTestApp(t *testing.T) (*app.App, *mocks.MockConfigLoader, *mocks.MockEntryStore, *mocks.MockLayoutEngine, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockStore := mocks.NewMockEntryStore(ctrl)
	mockEngine := mocks.NewMockLayoutEngine(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)

	a := app.New(mockLoader, mockStore, mockEngine, mockLogger, clockwork.NewFakeClock())
	return a, mockLoader, mockStore, mockEngine, mockLogger
}

func TestRun_ComputesAndCaches(t *testing.T) {
	a, mockLoader, mockStore, mockEngine, _ := newTestApp(t)

	mockLoader.EXPECT().Load("incr.yaml").Return(testProject(), nil).Times(1)
	mockStore.EXPECT().Load().Return(nil, nil).Times(1)
	mockEngine.EXPECT().Compute(gomock.Any(), gomock.Any()).
		Return(domain.Geometry{Width: 4, Height: 2}, nil).Times(3)
	mockStore.EXPECT().Save(gomock.Any()).Return(nil).Times(2)

	results, err := a.Run(context.Background(), "incr.yaml", nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "ui", results[0].Name)
	require.Equal(t, domain.Geometry{Width: 4, Height: 2}, results[0].Geometry)
	require.Equal(t, 8, results[0].Area)

	// Second run: nothing changed, the engine is never consulted again.
	results, err = a.Run(context.Background(), "incr.yaml", nil)
	require.NoError(t, err)
	require.Equal(t, 8, results[0].Area)
}

func TestRun_UnknownTree(t *testing.T) {
	a, mockLoader, mockStore, _, _ := newTestApp(t)

	mockLoader.EXPECT().Load("incr.yaml").Return(testProject(), nil).Times(1)
	mockStore.EXPECT().Load().Return(nil, nil).Times(1)

	_, err := a.Run(context.Background(), "incr.yaml", []string{"missing"})
	require.Error(t, err)
	require.Contains(t, err.Error(), domain.ErrKeyNotFound.Error())
}

func TestRun_UnknownTreeAmongValidNames(t *testing.T) {
	a, mockLoader, mockStore, _, _ := newTestApp(t)

	mockLoader.EXPECT().Load("incr.yaml").Return(testProject(), nil).Times(1)
	mockStore.EXPECT().Load().Return(nil, nil).Times(1)

	// No Compute expectation: a bad name anywhere in the list must fail
	// before any tree computation starts.
	_, err := a.Run(context.Background(), "incr.yaml", []string{"ui", "missing"})
	require.Error(t, err)
	require.Contains(t, err.Error(), domain.ErrKeyNotFound.Error())
}

func TestRun_ConfiguredDependencyInvalidation(t *testing.T) {
	a, mockLoader, mockStore, mockEngine, _ := newTestApp(t)

	project := testProject()
	project.Dependencies = []domain.Dependency{domain.EnvKey("COLUMNS")}

	mockLoader.EXPECT().Load("incr.yaml").Return(project, nil).Times(1)
	mockStore.EXPECT().Load().Return(nil, nil).Times(1)
	mockEngine.EXPECT().Compute(gomock.Any(), gomock.Any()).
		Return(domain.Geometry{Width: 4, Height: 2}, nil).Times(6)
	mockStore.EXPECT().Save(gomock.Any()).Return(nil).Times(2)

	_, err := a.Run(context.Background(), "incr.yaml", nil)
	require.NoError(t, err)

	// Every node of the pass was registered against the configured
	// dependency, so invalidating it forces a full recomputation.
	evicted, err := a.Invalidate("incr.yaml", "env:COLUMNS")
	require.NoError(t, err)
	require.Equal(t, 3, evicted)

	_, err = a.Run(context.Background(), "incr.yaml", nil)
	require.NoError(t, err)
}

func TestRun_ConfigError(t *testing.T) {
	a, mockLoader, _, _, _ := newTestApp(t)

	mockLoader.EXPECT().Load("broken.yaml").Return(nil, errors.New("parse failed")).Times(1)

	_, err := a.Run(context.Background(), "broken.yaml", nil)
	require.Error(t, err)
}

func TestRun_SnapshotLoadFailureIsNotFatal(t *testing.T) {
	a, mockLoader, mockStore, mockEngine, mockLogger := newTestApp(t)

	mockLoader.EXPECT().Load("incr.yaml").Return(testProject(), nil).Times(1)
	mockStore.EXPECT().Load().Return(nil, errors.New("corrupt snapshot")).Times(1)
	mockLogger.EXPECT().Warn(gomock.Any()).Times(1)
	mockEngine.EXPECT().Compute(gomock.Any(), gomock.Any()).
		Return(domain.Geometry{Width: 4, Height: 2}, nil).Times(3)
	mockStore.EXPECT().Save(gomock.Any()).Return(nil).Times(1)

	_, err := a.Run(context.Background(), "incr.yaml", nil)
	require.NoError(t, err)
}

func TestRun_SnapshotSaveFailureIsNotFatal(t *testing.T) {
	a, mockLoader, mockStore, mockEngine, mockLogger := newTestApp(t)

	mockLoader.EXPECT().Load("incr.yaml").Return(testProject(), nil).Times(1)
	mockStore.EXPECT().Load().Return(nil, nil).Times(1)
	mockEngine.EXPECT().Compute(gomock.Any(), gomock.Any()).
		Return(domain.Geometry{Width: 4, Height: 2}, nil).Times(3)
	mockStore.EXPECT().Save(gomock.Any()).Return(errors.New("disk full")).Times(1)
	mockLogger.EXPECT().Warn(gomock.Any()).Times(1)

	results, err := a.Run(context.Background(), "incr.yaml", nil)
	require.NoError(t, err, "the in-memory cache stays authoritative")
	require.Len(t, results, 1)
}

func TestRun_RestoresSnapshot(t *testing.T) {
	a, mockLoader, mockStore, mockEngine, mockLogger := newTestApp(t)

	snapshot := []domain.CacheEntry{
		{NodeID: domain.NewInternedString("stale"), Geometry: domain.Geometry{Width: 1, Height: 1}},
	}

	mockLoader.EXPECT().Load("incr.yaml").Return(testProject(), nil).Times(1)
	mockStore.EXPECT().Load().Return(snapshot, nil).Times(1)
	mockLogger.EXPECT().Info(gomock.Any()).Times(1)
	mockEngine.EXPECT().Compute(gomock.Any(), gomock.Any()).
		Return(domain.Geometry{Width: 4, Height: 2}, nil).Times(3)
	mockStore.EXPECT().Save(gomock.Any()).Return(nil).Times(1)

	_, err := a.Run(context.Background(), "incr.yaml", nil)
	require.NoError(t, err)
}

func TestRun_EngineErrorSurfaces(t *testing.T) {
	a, mockLoader, mockStore, mockEngine, _ := newTestApp(t)

	mockLoader.EXPECT().Load("incr.yaml").Return(testProject(), nil).Times(1)
	mockStore.EXPECT().Load().Return(nil, nil).Times(1)
	mockEngine.EXPECT().Compute(gomock.Any(), gomock.Any()).
		Return(domain.Geometry{}, errors.New("solver blew up")).MinTimes(1)

	_, err := a.Run(context.Background(), "incr.yaml", nil)
	require.Error(t, err)
}

func TestReport_IncludesBuiltinFunction(t *testing.T) {
	a, mockLoader, mockStore, mockEngine, _ := newTestApp(t)

	mockLoader.EXPECT().Load("incr.yaml").Return(testProject(), nil).Times(1)
	mockStore.EXPECT().Load().Return(nil, nil).Times(1)
	mockEngine.EXPECT().Compute(gomock.Any(), gomock.Any()).
		Return(domain.Geometry{Width: 4, Height: 2}, nil).Times(3)
	mockStore.EXPECT().Save(gomock.Any()).Return(nil).Times(1)

	_, err := a.Run(context.Background(), "incr.yaml", nil)
	require.NoError(t, err)

	report, err := a.Report("incr.yaml")
	require.NoError(t, err)
	require.Equal(t, 3, report.Tree.Entries)
	require.Len(t, report.Functions, 1)
	require.Equal(t, "tree-area", report.Functions[0].Name)
	require.Equal(t, int64(1), report.Functions[0].Calls)
}

func TestInvalidate_UntrackedKey(t *testing.T) {
	a, mockLoader, mockStore, _, _ := newTestApp(t)

	mockLoader.EXPECT().Load("incr.yaml").Return(testProject(), nil).Times(1)
	mockStore.EXPECT().Load().Return(nil, nil).Times(1)

	evicted, err := a.Invalidate("incr.yaml", "env:NEVER_SET")
	require.NoError(t, err)
	require.Equal(t, 0, evicted)
}
