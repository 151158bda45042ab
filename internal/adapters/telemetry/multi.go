package telemetry

import (
	"context"
	"errors"

	"go.trai.ch/stevedore/internal/core/ports"
)

// MultiTracer fans every call out to several tracers.
type MultiTracer struct {
	tracers []ports.Tracer
}

// NewMultiTracer creates a tracer that forwards to all of tracers in order.
func NewMultiTracer(tracers ...ports.Tracer) *MultiTracer {
	return &MultiTracer{tracers: tracers}
}

// Start starts a span on every tracer. Each tracer sees the context returned by the previous one.
func (m *MultiTracer) Start(ctx context.Context, name string, opts ...ports.SpanOption) (context.Context, ports.Span) {
	spans := make(multiSpan, 0, len(m.tracers))
	for _, t := range m.tracers {
		var s ports.Span
		ctx, s = t.Start(ctx, name, opts...)
		spans = append(spans, s)
	}
	return ctx, spans
}

// EmitPlan forwards the plan to every tracer.
func (m *MultiTracer) EmitPlan(ctx context.Context, names []string) {
	for _, t := range m.tracers {
		t.EmitPlan(ctx, names)
	}
}

// Shutdown shuts down every tracer and joins their errors.
func (m *MultiTracer) Shutdown(ctx context.Context) error {
	var errs []error
	for _, t := range m.tracers {
		errs = append(errs, t.Shutdown(ctx))
	}
	return errors.Join(errs...)
}

type multiSpan []ports.Span

func (m multiSpan) Write(p []byte) (int, error) {
	for _, s := range m {
		if _, err := s.Write(p); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

func (m multiSpan) End() {
	for _, s := range m {
		s.End()
	}
}

func (m multiSpan) RecordError(err error) {
	for _, s := range m {
		s.RecordError(err)
	}
}

func (m multiSpan) SetAttribute(key string, value any) {
	for _, s := range m {
		s.SetAttribute(key, value)
	}
}

func (m multiSpan) MarkCached() {
	for _, s := range m {
		s.MarkCached()
	}
}
