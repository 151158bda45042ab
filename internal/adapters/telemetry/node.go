package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/stevedore/internal/adapters/telemetry/progrock"
	"go.trai.ch/stevedore/internal/core/ports"
	"go.trai.ch/stevedore/internal/tui"
)

// TracerNodeID is the unique identifier for the Telemetry adapter Graft node.
const TracerNodeID graft.ID = "adapter.telemetry"

// instrumentationName names the OpenTelemetry tracer.
const instrumentationName = "go.trai.ch/stevedore"

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{tui.FeedNodeID},
		Run: func(ctx context.Context) (ports.Tracer, error) {
			feed, err := graft.Dep[*tui.Feed](ctx)
			if err != nil {
				return nil, err
			}

			tp := sdktrace.NewTracerProvider()
			otel.SetTracerProvider(tp)

			return NewMultiTracer(
				NewOTelTracerWithProvider(tp, instrumentationName),
				progrock.NewTracer(feed),
			), nil
		},
	})
}
