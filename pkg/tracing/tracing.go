// Package tracing configures OpenTelemetry tracing for the seed command and
// exposes small helpers for recording stage spans.
package tracing

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const tracerName = "github.com/JaimeStill/agno-seed"

// ShutdownFunc flushes and stops the installed tracer provider.
type ShutdownFunc func(context.Context) error

// Setup installs the global tracer provider described by cfg.
// Spans from the stdout exporter are written to w.
// When tracing is disabled a noop provider is installed.
func Setup(cfg *Config, w io.Writer) (ShutdownFunc, error) {
	noopShutdown := func(context.Context) error { return nil }

	if !cfg.Enabled || cfg.Exporter == ExporterNoop {
		otel.SetTracerProvider(noop.NewTracerProvider())
		return noopShutdown, nil
	}

	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(w),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return nil, fmt.Errorf("create stdout exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}

// StartSpan starts a named span from the global tracer provider.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, name, trace.WithAttributes(attrs...))
}

// End records err on the span, sets the status, and ends it.
func End(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
