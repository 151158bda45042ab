package reconciler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/stevedore/internal/adapters/docker"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/stevedore/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/stevedore/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/stevedore/internal/core/ports"
)

const (
	// ImagesNodeID is the unique identifier for the image reconciler Graft node.
	ImagesNodeID graft.ID = "engine.reconciler.images"
	// BuildersNodeID is the unique identifier for the builder reconciler Graft node.
	BuildersNodeID graft.ID = "engine.reconciler.builders"
)

type deps struct {
	engine ports.Engine
	logger ports.Logger
	tracer ports.Tracer
}

func resolveDeps(ctx context.Context) (deps, error) {
	engine, err := graft.Dep[ports.Engine](ctx)
	if err != nil {
		return deps{}, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return deps{}, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return deps{}, err
	}

	return deps{engine: engine, logger: log, tracer: tracer}, nil
}

func init() {
	dependsOn := []graft.ID{docker.NodeID, logger.NodeID, telemetry.TracerNodeID}

	graft.Register(graft.Node[*Images]{
		ID:        ImagesNodeID,
		Cacheable: true,
		DependsOn: dependsOn,
		Run: func(ctx context.Context) (*Images, error) {
			d, err := resolveDeps(ctx)
			if err != nil {
				return nil, err
			}
			return NewImages(d.engine, d.logger, d.tracer), nil
		},
	})

	graft.Register(graft.Node[*Builders]{
		ID:        BuildersNodeID,
		Cacheable: true,
		DependsOn: dependsOn,
		Run: func(ctx context.Context) (*Builders, error) {
			d, err := resolveDeps(ctx)
			if err != nil {
				return nil, err
			}
			return NewBuilders(d.engine, d.logger, d.tracer), nil
		},
	})
}
