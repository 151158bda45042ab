// Package progrock records pipeline progress as progrock vertices.
package progrock

import (
	"context"
	"sync"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/stevedore/internal/core/ports"
)

// Tracer implements ports.Tracer on a progrock recorder, one vertex per span.
type Tracer struct {
	w   progrock.Writer
	rec *progrock.Recorder
}

// New creates a new Tracer recording to an in-memory tape.
func New() *Tracer {
	return NewTracer(progrock.NewTape())
}

// NewTracer creates a new Tracer with the given writer.
func NewTracer(w progrock.Writer) *Tracer {
	return &Tracer{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Start records a new vertex named after the span.
func (t *Tracer) Start(ctx context.Context, name string, _ ...ports.SpanOption) (context.Context, ports.Span) {
	v := t.rec.Vertex(digest.FromString(name), name)
	return ctx, &Span{vertex: v}
}

// EmitPlan does nothing; vertices appear as their spans start.
func (t *Tracer) EmitPlan(_ context.Context, _ []string) {}

// Shutdown closes the underlying writer.
func (t *Tracer) Shutdown(_ context.Context) error {
	if c, ok := t.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// Span implements ports.Span wrapping *progrock.VertexRecorder.
type Span struct {
	vertex *progrock.VertexRecorder

	mu     sync.Mutex
	err    error
	cached bool
}

// Write records output on the vertex's stdout stream.
func (s *Span) Write(p []byte) (int, error) {
	return s.vertex.Stdout().Write(p)
}

// RecordError remembers err as the vertex's outcome.
func (s *Span) RecordError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// SetAttribute does nothing; progrock vertices carry no attributes.
func (s *Span) SetAttribute(_ string, _ any) {}

// MarkCached marks the vertex as a cache hit.
func (s *Span) MarkCached() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = true
}

// End completes the vertex with the recorded outcome.
func (s *Span) End() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached && s.err == nil {
		s.vertex.Cached()
	}
	s.vertex.Done(s.err)
}
