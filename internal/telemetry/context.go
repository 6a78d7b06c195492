package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

type contextKey string

const tracerContextKey contextKey = "telemetry.tracer"

// ContextWithTracer returns a context carrying the given tracer.
func ContextWithTracer(ctx context.Context, tracer trace.Tracer) context.Context {
	return context.WithValue(ctx, tracerContextKey, tracer)
}

// TracerFromContext extracts the tracer previously attached with
// ContextWithTracer, falling back to the default global tracer.
//
//nolint:ireturn
func TracerFromContext(ctx context.Context) trace.Tracer {
	if tracer, ok := ctx.Value(tracerContextKey).(trace.Tracer); ok && tracer != nil {
		return tracer
	}

	return Tracer("default")
}
