package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/stevedore/internal/core/domain"
	"go.trai.ch/stevedore/internal/core/ports"
)

// NodeID is the unique identifier for the export record store Graft node.
const NodeID graft.ID = "adapter.export_record_store"

func init() {
	graft.Register(graft.Node[ports.ExportRecordStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ExportRecordStore, error) {
			return NewStore(domain.DefaultStorePath())
		},
	})
}
