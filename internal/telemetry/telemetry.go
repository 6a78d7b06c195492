// Package telemetry wraps go.opentelemetry.io/otel for the coordinator's
// tracing needs: one TracerProvider per process, started at boot and
// flushed at shutdown, plus span helpers: HandleSpanError, which handlers
// and repository methods call on their error paths, and
// SetSpanAttributesFromStruct, which nothing in the tree calls.
package telemetry

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// Telemetry owns the process-wide TracerProvider and its shutdown hook.
type Telemetry struct {
	ServiceName               string
	ServiceVersion             string
	DeploymentEnv             string
	CollectorExporterEndpoint string

	TracerProvider *sdktrace.TracerProvider
	shutdown       func(context.Context) error
}

func (t *Telemetry) newResource() (*sdkresource.Resource, error) {
	return sdkresource.Merge(
		sdkresource.Default(),
		sdkresource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(t.ServiceName),
			semconv.ServiceVersion(t.ServiceVersion),
			semconv.DeploymentEnvironment(t.DeploymentEnv),
		),
	)
}

// Start builds the TracerProvider, registers it globally, and sets the
// W3C trace-context + baggage propagator. Call Shutdown when done.
func (t *Telemetry) Start(ctx context.Context) error {
	res, err := t.newResource()
	if err != nil {
		return fmt.Errorf("telemetry: build resource: %w", err)
	}

	exp, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(t.CollectorExporterEndpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return fmt.Errorf("telemetry: build exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))

	t.TracerProvider = tp
	t.shutdown = func(shutdownCtx context.Context) error {
		if err := exp.Shutdown(shutdownCtx); err != nil {
			return err
		}

		return tp.Shutdown(shutdownCtx)
	}

	return nil
}

// Shutdown flushes and closes the exporter and provider.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t.shutdown == nil {
		return nil
	}

	return t.shutdown(ctx)
}

// Tracer returns a named tracer off the global provider.
//
//nolint:ireturn
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}

// HandleSpanError records err on span and marks the span as failed.
func HandleSpanError(span *trace.Span, message string, err error) {
	if err == nil {
		return
	}

	(*span).SetStatus(codes.Error, message+": "+err.Error())
	(*span).RecordError(err)
}

// SetSpanAttributesFromStruct stringifies valueStruct as JSON and attaches
// it to span under key, for structured request/response logging on traces.
func SetSpanAttributesFromStruct(span *trace.Span, key string, valueStruct any) error {
	data, err := json.Marshal(valueStruct)
	if err != nil {
		return fmt.Errorf("telemetry: marshal span attribute %q: %w", key, err)
	}

	(*span).SetAttributes(attribute.KeyValue{
		Key:   attribute.Key(key),
		Value: attribute.StringValue(string(data)),
	})

	return nil
}
