package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/stevedore/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/stevedore/internal/adapters/docker"    //nolint:depguard // Wired in app layer
	"go.trai.ch/stevedore/internal/adapters/env"       //nolint:depguard // Wired in app layer
	"go.trai.ch/stevedore/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/stevedore/internal/adapters/shell"     //nolint:depguard // Wired in app layer
	"go.trai.ch/stevedore/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/stevedore/internal/core/ports"
	"go.trai.ch/stevedore/internal/engine/exporter"
	"go.trai.ch/stevedore/internal/engine/reconciler"
	"go.trai.ch/stevedore/internal/tui"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			env.NodeID,
			reconciler.ImagesNodeID,
			reconciler.BuildersNodeID,
			exporter.NodeID,
			shell.NodeID,
			docker.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			tui.ViewNodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	environment, err := graft.Dep[ports.EnvironmentResolver](ctx)
	if err != nil {
		return nil, err
	}

	images, err := graft.Dep[*reconciler.Images](ctx)
	if err != nil {
		return nil, err
	}

	builders, err := graft.Dep[*reconciler.Builders](ctx)
	if err != nil {
		return nil, err
	}

	exp, err := graft.Dep[*exporter.Exporter](ctx)
	if err != nil {
		return nil, err
	}

	scripts, err := graft.Dep[ports.ScriptRunner](ctx)
	if err != nil {
		return nil, err
	}

	engine, err := graft.Dep[ports.Engine](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	view, err := graft.Dep[*tui.View](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, environment, images, builders, exp, scripts, engine, log, tracer).WithProgress(view), nil
}
