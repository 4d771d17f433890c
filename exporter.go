package glideotel

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// buildTraceProcessor constructs the batch span processor for the selected
// backend. Every backend flushes on the same caller-supplied interval.
// Installation into global state is the caller's responsibility.
func buildTraceProcessor(ctx context.Context, flushInterval time.Duration, exporter SignalsExporter) (sdktrace.SpanProcessor, error) {
	spanExporter, err := buildSpanExporter(ctx, exporter)
	if err != nil {
		return nil, fmt.Errorf("build span exporter: %w", err)
	}

	return sdktrace.NewBatchSpanProcessor(spanExporter,
		sdktrace.WithBatchTimeout(flushInterval),
	), nil
}

func buildSpanExporter(ctx context.Context, exporter SignalsExporter) (sdktrace.SpanExporter, error) {
	switch exporter.kind {
	case exporterFile:
		return newFileSpanExporter(exporter.directory), nil
	case exporterHTTP:
		// OTLP over HTTP with the binary protobuf sub-protocol. The selector
		// carries a local collector address, hence no TLS.
		return otlptrace.New(ctx, otlptracehttp.NewClient(
			otlptracehttp.WithEndpoint(exporter.endpoint),
			otlptracehttp.WithInsecure(),
		))
	case exporterGrpc:
		return otlptrace.New(ctx, otlptracegrpc.NewClient(
			otlptracegrpc.WithEndpoint(exporter.endpoint),
			otlptracegrpc.WithInsecure(),
		))
	default:
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	}
}

// buildMetricReader constructs the periodic reader for the selected backend,
// flushing on the caller-supplied interval.
func buildMetricReader(ctx context.Context, flushInterval time.Duration, exporter SignalsExporter) (sdkmetric.Reader, error) {
	metricExporter, err := buildMetricExporter(ctx, exporter)
	if err != nil {
		return nil, fmt.Errorf("build metric exporter: %w", err)
	}

	return sdkmetric.NewPeriodicReader(metricExporter,
		sdkmetric.WithInterval(flushInterval),
	), nil
}

func buildMetricExporter(ctx context.Context, exporter SignalsExporter) (sdkmetric.Exporter, error) {
	switch exporter.kind {
	case exporterFile:
		return newFileMetricExporter(exporter.directory), nil
	case exporterHTTP:
		return otlpmetrichttp.New(ctx,
			otlpmetrichttp.WithEndpoint(exporter.endpoint),
			otlpmetrichttp.WithInsecure(),
		)
	case exporterGrpc:
		return otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(exporter.endpoint),
			otlpmetricgrpc.WithInsecure(),
		)
	default:
		return stdoutmetric.New(stdoutmetric.WithPrettyPrint())
	}
}
