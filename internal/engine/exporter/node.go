package exporter

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/stevedore/internal/adapters/cas"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/stevedore/internal/adapters/docker" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/stevedore/internal/adapters/fs"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/stevedore/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/stevedore/internal/adapters/shell"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/stevedore/internal/core/ports"
)

// NodeID is the unique identifier for the exporter Graft node.
const NodeID graft.ID = "engine.exporter"

func init() {
	graft.Register(graft.Node[*Exporter]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			docker.NodeID,
			shell.NodeID,
			fs.WriterNodeID,
			fs.HasherNodeID,
			cas.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Exporter, error) {
			engine, err := graft.Dep[ports.Engine](ctx)
			if err != nil {
				return nil, err
			}

			scripts, err := graft.Dep[ports.ScriptRunner](ctx)
			if err != nil {
				return nil, err
			}

			writer, err := graft.Dep[ports.OutputWriter](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.ExportRecordStore](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewExporter(NewResolver(engine, scripts), writer, hasher, store, log), nil
		},
	})
}
