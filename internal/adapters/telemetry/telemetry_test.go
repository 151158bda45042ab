package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/stevedore/internal/adapters/telemetry"
	"go.trai.ch/stevedore/internal/core/ports"
	"go.trai.ch/stevedore/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestInterfaceSatisfaction(_ *testing.T) {
	var _ ports.Tracer = (*telemetry.OTelTracer)(nil)
	var _ ports.Span = (*telemetry.OTelSpan)(nil)
	var _ ports.Tracer = (*telemetry.NoOpTracer)(nil)
	var _ ports.Span = (*telemetry.NoOpSpan)(nil)
	var _ ports.Tracer = (*telemetry.MultiTracer)(nil)
}

func newRecordingTracer(t *testing.T) (*telemetry.OTelTracer, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	return telemetry.NewOTelTracerWithProvider(tp, "test"), recorder
}

func TestOTelTracer_RecordsSpan(t *testing.T) {
	tracer, recorder := newRecordingTracer(t)
	ctx := context.Background()

	_, span := tracer.Start(ctx, "acme_base", ports.WithAttribute("image", "acme_base"))
	span.SetAttribute("state", "present")
	span.MarkCached()
	n, err := span.Write([]byte("log line"))
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "acme_base", ended[0].Name())

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range ended[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, "acme_base", attrs["image"].AsString())
	assert.Equal(t, "present", attrs["state"].AsString())
	assert.True(t, attrs["cached"].AsBool())

	require.Len(t, ended[0].Events(), 1)
	assert.Equal(t, "log", ended[0].Events()[0].Name)

	require.NoError(t, tracer.Shutdown(ctx))
}

func TestOTelTracer_RecordError(t *testing.T) {
	tracer, recorder := newRecordingTracer(t)

	_, span := tracer.Start(context.Background(), "acme_compile")
	span.RecordError(errors.New("exit 2"))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "exit 2", ended[0].Status().Description)
}

func TestOTelTracer_EmitPlan(t *testing.T) {
	tracer, recorder := newRecordingTracer(t)

	ctx, span := tracer.Start(context.Background(), "images")
	tracer.EmitPlan(ctx, []string{"acme_a", "acme_b"})
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	require.Len(t, ended[0].Events(), 1)
	assert.Equal(t, "plan_emitted", ended[0].Events()[0].Name)
}

func TestNoOpTracer(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()
	ctx := context.Background()

	newCtx, span := tracer.Start(ctx, "test-span")
	assert.Equal(t, ctx, newCtx)

	span.SetAttribute("key", "value")
	span.RecordError(errors.New("boom"))
	span.MarkCached()
	n, err := span.Write([]byte("test log"))
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	span.End()

	tracer.EmitPlan(ctx, []string{"a"})
	assert.NoError(t, tracer.Shutdown(ctx))
}

func TestMultiTracer_Forwards(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	spanA := mocks.NewMockSpan(ctrl)
	spanB := mocks.NewMockSpan(ctrl)
	a := mocks.NewMockTracer(ctrl)
	b := mocks.NewMockTracer(ctrl)

	a.EXPECT().Start(ctx, "acme_base").Return(ctx, spanA)
	b.EXPECT().Start(ctx, "acme_base").Return(ctx, spanB)
	a.EXPECT().EmitPlan(ctx, []string{"acme_base"})
	b.EXPECT().EmitPlan(ctx, []string{"acme_base"})

	for _, s := range []*mocks.MockSpan{spanA, spanB} {
		s.EXPECT().Write([]byte("x")).Return(1, nil)
		s.EXPECT().SetAttribute("k", "v")
		s.EXPECT().MarkCached()
		s.EXPECT().RecordError(gomock.Any())
		s.EXPECT().End()
	}

	shutdownErr := errors.New("flush failed")
	a.EXPECT().Shutdown(ctx).Return(nil)
	b.EXPECT().Shutdown(ctx).Return(shutdownErr)

	m := telemetry.NewMultiTracer(a, b)
	m.EmitPlan(ctx, []string{"acme_base"})

	_, span := m.Start(ctx, "acme_base")
	_, err := span.Write([]byte("x"))
	require.NoError(t, err)
	span.SetAttribute("k", "v")
	span.MarkCached()
	span.RecordError(errors.New("boom"))
	span.End()

	assert.ErrorIs(t, m.Shutdown(ctx), shutdownErr)
}
