package docker

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/stevedore/internal/core/ports"
)

// NodeID is the unique identifier for the container engine Graft node.
const NodeID graft.ID = "adapter.engine"

func init() {
	graft.Register(graft.Node[ports.Engine]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Engine, error) {
			return NewEngine(), nil
		},
	})
}
