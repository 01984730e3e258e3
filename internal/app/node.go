package app

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/jonboulle/clockwork"
	"go.trai.ch/incr/internal/adapters/config"
	"go.trai.ch/incr/internal/adapters/layout"
	"go.trai.ch/incr/internal/adapters/logger"
	"go.trai.ch/incr/internal/adapters/store"
	"go.trai.ch/incr/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components bundles the resolved application pieces for the CLI.
type Components struct {
	App    *App
	Logger ports.Logger
	Loader ports.ConfigLoader
	Store  ports.EntryStore
	Engine ports.LayoutEngine
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			store.NodeID,
			layout.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			config.NodeID,
			store.NodeID,
			layout.NodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	entryStore, err := graft.Dep[ports.EntryStore](ctx)
	if err != nil {
		return nil, err
	}
	engine, err := graft.Dep[ports.LayoutEngine](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, entryStore, engine, log, clockwork.NewRealClock()), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	application, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	entryStore, err := graft.Dep[ports.EntryStore](ctx)
	if err != nil {
		return nil, err
	}
	engine, err := graft.Dep[ports.LayoutEngine](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    application,
		Logger: log,
		Loader: loader,
		Store:  entryStore,
		Engine: engine,
	}, nil
}
