package glideotel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arloliu/glideotel/internal/registry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// timeoutErrorMetric is the counter incremented by RecordTimeoutError.
const timeoutErrorMetric = "glide.timeout_errors"

// Initialise wires the process-wide telemetry pipelines from config: it
// builds the batched trace pipeline and the periodic metrics pipeline,
// installs them as the global tracer and meter providers along with a W3C
// TraceContext propagator, and creates the timeout counter.
//
// Call it once per process, before any Span or counter operation. It is
// fail-fast: the first error aborts the call without rolling back global
// state already installed. Re-invocation is not guarded; it silently
// replaces the previously installed providers (last writer wins).
func Initialise(ctx context.Context, cfg Config) error {
	tp, err := initTraceProvider(ctx, cfg.FlushInterval(), cfg.TraceExporter())
	if err != nil {
		return fmt.Errorf("glideotel: initialise trace exporter: %w", err)
	}

	mp, err := initMeterProvider(ctx, cfg.FlushInterval(), cfg.MetricsExporter())
	if err != nil {
		return fmt.Errorf("glideotel: initialise metrics exporter: %w", err)
	}

	registry.SetProviders(&registry.Providers{Tracer: tp, Meter: mp})

	return initMetrics()
}

func initTraceProvider(ctx context.Context, flushInterval time.Duration, exporter SignalsExporter) (*sdktrace.TracerProvider, error) {
	processor, err := buildTraceProcessor(ctx, flushInterval, exporter)
	if err != nil {
		return nil, err
	}

	otel.SetTextMapPropagator(propagation.TraceContext{})

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(processor),
	)
	otel.SetTracerProvider(tp)

	return tp, nil
}

func initMeterProvider(ctx context.Context, flushInterval time.Duration, exporter SignalsExporter) (*sdkmetric.MeterProvider, error) {
	reader, err := buildMetricReader(ctx, flushInterval, exporter)
	if err != nil {
		return nil, err
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
	)
	otel.SetMeterProvider(mp)

	return mp, nil
}

// initMetrics creates the named counters from the installed meter provider
// and stores them in the registry.
func initMetrics() error {
	meter := otel.Meter(traceScope)
	counter, err := meter.Int64Counter(timeoutErrorMetric,
		metric.WithDescription("Number of timeout errors encountered"),
	)
	if err != nil {
		return fmt.Errorf("glideotel: create timeout counter: %w", err)
	}
	registry.SetTimeoutCounter(counter)

	return nil
}

// RecordTimeoutError increments the timeout counter by one, with no
// attributes. It returns ErrTimeoutCounterNotInitialized when called before
// Initialise has populated the registry.
func RecordTimeoutError(ctx context.Context) error {
	if err := registry.AddTimeout(ctx); err != nil {
		if errors.Is(err, registry.ErrCounterNotInitialized) {
			return ErrTimeoutCounterNotInitialized
		}

		return fmt.Errorf("glideotel: record timeout error: %w", err)
	}

	return nil
}

// Shutdown flushes and drains the installed pipelines. Best-effort: per-call
// errors are not reported. Call it once, late in process shutdown.
func Shutdown(ctx context.Context) {
	p := registry.InstalledProviders()
	if p == nil {
		return
	}

	if p.Tracer != nil {
		_ = p.Tracer.ForceFlush(ctx)
		_ = p.Tracer.Shutdown(ctx)
	}
	if p.Meter != nil {
		_ = p.Meter.Shutdown(ctx)
	}
}
