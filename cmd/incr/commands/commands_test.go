package commands_test

import (
	"context"
	"testing"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/incr/cmd/incr/commands"
	"go.trai.ch/incr/internal/app"
	"go.trai.ch/incr/internal/core/domain"
	"go.trai.ch/incr/internal/core/ports"
	"go.trai.ch/incr/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newTestCLI(t *testing.T) (*commands.CLI, *mocks.MockConfigLoader, *mocks.MockEntryStore, *mocks.MockLayoutEngine) {
	t.Helper()
	ctrl := gomock.NewController(t)

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockStore := mocks.NewMockEntryStore(ctrl)
	mockEngine := mocks.NewMockLayoutEngine(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)

	a := app.New(mockLoader, mockStore, mockEngine, mockLogger, clockwork.NewFakeClock())
	return commands.New(a), mockLoader, mockStore, mockEngine
}

func TestCompute_Success(t *testing.T) {
	cli, mockLoader, mockStore, mockEngine := newTestCLI(t)

	project := &ports.Project{
		Cache: domain.CacheConfig{}.Normalize(),
		Trees: map[string]*domain.Descriptor{
			"main": {ID: "root", Width: 10, Height: 5},
		},
	}

	mockLoader.EXPECT().Load("incr.yaml").Return(project, nil).Times(1)
	mockStore.EXPECT().Load().Return(nil, nil).Times(1)
	mockEngine.EXPECT().Compute(gomock.Any(), gomock.Any()).
		Return(domain.Geometry{Width: 10, Height: 5}, nil).Times(1)
	mockStore.EXPECT().Save(gomock.Any()).Return(nil).Times(1)

	cli.SetArgs([]string{"compute", "main"})

	if err := cli.Execute(context.Background()); err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
}

func TestCompute_UnknownTree(t *testing.T) {
	cli, mockLoader, mockStore, _ := newTestCLI(t)

	project := &ports.Project{
		Cache: domain.CacheConfig{}.Normalize(),
		Trees: map[string]*domain.Descriptor{},
	}

	mockLoader.EXPECT().Load("incr.yaml").Return(project, nil).Times(1)
	mockStore.EXPECT().Load().Return(nil, nil).Times(1)

	cli.SetArgs([]string{"compute", "missing"})

	if err := cli.Execute(context.Background()); err == nil {
		t.Error("Expected error for unknown tree, got nil")
	}
}

func TestStats_Success(t *testing.T) {
	cli, mockLoader, mockStore, _ := newTestCLI(t)

	project := &ports.Project{
		Cache: domain.CacheConfig{}.Normalize(),
		Trees: map[string]*domain.Descriptor{},
	}

	mockLoader.EXPECT().Load("incr.yaml").Return(project, nil).Times(1)
	mockStore.EXPECT().Load().Return(nil, nil).Times(1)

	cli.SetArgs([]string{"stats"})

	if err := cli.Execute(context.Background()); err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
}

func TestVersion(t *testing.T) {
	cli, _, _, _ := newTestCLI(t)

	cli.SetArgs([]string{"version"})

	if err := cli.Execute(context.Background()); err != nil {
		t.Errorf("Expected no error for version, got: %v", err)
	}
}

func TestRoot_Help(t *testing.T) {
	cli, _, _, _ := newTestCLI(t)

	cli.SetArgs([]string{"--help"})

	if err := cli.Execute(context.Background()); err != nil {
		t.Errorf("Expected no error for help, got: %v", err)
	}
}
