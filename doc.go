// Package glideotel provides the OpenTelemetry tracing and metrics facade
// for the glide client library.
//
// # Overview
//
// The package wraps the official OTel SDK behind a small surface:
//   - Endpoint-driven backend selection (OTLP/gRPC, OTLP/HTTP, local file,
//     console) with batched, time-delayed flushing
//   - Clonable, thread-safe span handles with event, status and child-link
//     recording
//   - A process-wide timeout-error counter
//   - W3C TraceContext propagation helpers for HTTP headers and gRPC metadata
//
// # Quick Start
//
// Initialise the pipelines once, early in the process:
//
//	cfg := glideotel.NewConfigBuilder().
//		WithFlushInterval(100 * time.Millisecond).
//		WithTraceExporter(glideotel.GrpcExporter("localhost:4317")).
//		Build()
//	if err := glideotel.Initialise(ctx, cfg); err != nil {
//	    log.Fatal(err)
//	}
//	defer glideotel.Shutdown(ctx)
//
// Instrument call sites with span handles:
//
//	span := glideotel.NewSpan("Send_Command")
//	_ = span.AddEvent("request queued")
//	child, _ := span.AddSpan("Network_Span")
//	// ... perform the network round trip ...
//	_ = child.End()
//	_ = span.SetStatus(glideotel.StatusOk())
//	_ = span.End()
//
// Handles may be copied freely; all copies share the same underlying span
// and may be used concurrently from multiple goroutines.
//
// # Backends
//
// ParseEndpoint maps collector URLs onto backends: "http"/"https" select
// OTLP over HTTP, "grpc" selects OTLP over gRPC. The file backend writes
// newline-delimited JSON records under a directory and stands in for a local
// collector; it is also the default.
//
// # Configuration
//
// Besides the builder, LoadConfig and ParseConfig read a Settings document
// from YAML or JSON, with environment overrides:
//
//	flushIntervalMs: 1000
//	traceEndpoint: "grpc://otel-collector:4317"  # GLIDE_OTEL_TRACE_ENDPOINT
//	metricsEndpoint: "https://otel-collector:4318"
//
// Telemetry failures degrade silently from the perspective of instrumented
// business logic: every operation returns an error to its immediate caller
// and nothing is retried or escalated.
package glideotel
