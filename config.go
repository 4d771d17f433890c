package glideotel

import (
	"os"
	"time"
)

// DefaultFlushInterval is the default delay between two consecutive exports
// of collected telemetry data.
const DefaultFlushInterval = 5000 * time.Millisecond

// Config configures the telemetry system. Build it with ConfigBuilder:
//
//	cfg := glideotel.NewConfigBuilder().
//		WithFlushInterval(100 * time.Millisecond).
//		WithTraceExporter(glideotel.FileExporter("/tmp")).
//		Build()
//	err := glideotel.Initialise(ctx, cfg)
//
// Config is immutable once built. Selectors are not validated here; an
// invalid endpoint only surfaces when Initialise constructs the exporters.
type Config struct {
	flushInterval   time.Duration
	traceExporter   SignalsExporter
	metricsExporter SignalsExporter
}

// FlushInterval returns the delay between two consecutive exports.
func (c Config) FlushInterval() time.Duration { return c.flushInterval }

// TraceExporter returns the backend selector for traces.
func (c Config) TraceExporter() SignalsExporter { return c.traceExporter }

// MetricsExporter returns the backend selector for metrics.
func (c Config) MetricsExporter() SignalsExporter { return c.metricsExporter }

// ConfigBuilder builds a Config. The zero value is not usable; obtain one
// from NewConfigBuilder.
type ConfigBuilder struct {
	flushInterval   time.Duration
	traceExporter   SignalsExporter
	metricsExporter SignalsExporter
}

// NewConfigBuilder returns a builder with defaults: a flush interval of
// DefaultFlushInterval and both signals exported to files in the process
// temp directory.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		flushInterval:   DefaultFlushInterval,
		traceExporter:   FileExporter(os.TempDir()),
		metricsExporter: FileExporter(os.TempDir()),
	}
}

// WithFlushInterval sets the delay between two consecutive exports.
func (b *ConfigBuilder) WithFlushInterval(d time.Duration) *ConfigBuilder {
	b.flushInterval = d
	return b
}

// WithTraceExporter sets the backend selector for traces.
func (b *ConfigBuilder) WithTraceExporter(e SignalsExporter) *ConfigBuilder {
	b.traceExporter = e
	return b
}

// WithMetricsExporter sets the backend selector for metrics.
func (b *ConfigBuilder) WithMetricsExporter(e SignalsExporter) *ConfigBuilder {
	b.metricsExporter = e
	return b
}

// Build produces the immutable Config.
func (b *ConfigBuilder) Build() Config {
	return Config{
		flushInterval:   b.flushInterval,
		traceExporter:   b.traceExporter,
		metricsExporter: b.metricsExporter,
	}
}
