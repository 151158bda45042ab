package reconciler_test

import (
	"context"

	"go.trai.ch/stevedore/internal/core/ports"
	"go.trai.ch/stevedore/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// quietTelemetry returns a logger and tracer that accept any call.
func quietTelemetry(ctrl *gomock.Controller) (*mocks.MockLogger, *mocks.MockTracer, *mocks.MockSpan) {
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	span := mocks.NewMockSpan(ctrl)
	span.EXPECT().Write(gomock.Any()).DoAndReturn(func(p []byte) (int, error) { return len(p), nil }).AnyTimes()
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).AnyTimes()
	span.EXPECT().End().AnyTimes()

	tracer := mocks.NewMockTracer(ctrl)
	tracer.EXPECT().EmitPlan(gomock.Any(), gomock.Any()).AnyTimes()
	tracer.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, span
		}).AnyTimes()

	return logger, tracer, span
}

// unwrapAll flattens an error tree depth-first.
func unwrapAll(err error) []error {
	if err == nil {
		return nil
	}
	out := []error{err}
	switch e := err.(type) {
	case interface{ Unwrap() []error }:
		for _, inner := range e.Unwrap() {
			out = append(out, unwrapAll(inner)...)
		}
	case interface{ Unwrap() error }:
		out = append(out, unwrapAll(e.Unwrap())...)
	}
	return out
}
