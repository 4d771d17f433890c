package glideotel

import (
	"time"

	"github.com/arloliu/fuda"
)

// Settings is the file/env form of Config.
// Endpoint fields are URLs understood by ParseEndpoint; leaving one empty
// keeps the default file backend in the process temp directory.
type Settings struct {
	// FlushIntervalMs is the delay in milliseconds between two consecutive
	// exports of collected telemetry data.
	FlushIntervalMs int `yaml:"flushIntervalMs" env:"GLIDE_OTEL_FLUSH_INTERVAL_MS" default:"5000" validate:"gt=0"`

	// TraceEndpoint selects the trace collector, e.g. "grpc://otel:4317",
	// "https://otel:4318".
	TraceEndpoint string `yaml:"traceEndpoint,omitempty" env:"GLIDE_OTEL_TRACE_ENDPOINT"`

	// MetricsEndpoint selects the metrics collector.
	MetricsEndpoint string `yaml:"metricsEndpoint,omitempty" env:"GLIDE_OTEL_METRICS_ENDPOINT"`
}

// LoadConfig loads a Config from a YAML or JSON file.
// Environment variables override file values.
func LoadConfig(path string) (Config, error) {
	var settings Settings
	// fuda.LoadFile handles reading, parsing, env vars, defaults, and validation
	if err := fuda.LoadFile(path, &settings); err != nil {
		return Config{}, err
	}

	return settings.Resolve()
}

// ParseConfig parses a Config from a byte slice.
// It supports YAML and JSON formats (auto-detected).
// Environment variables override parsed values.
func ParseConfig(data []byte) (Config, error) {
	var settings Settings
	// fuda.LoadBytes handles parsing, env vars, defaults, and validation
	if err := fuda.LoadBytes(data, &settings); err != nil {
		return Config{}, err
	}

	return settings.Resolve()
}

// Resolve converts Settings into a Config, parsing endpoint URLs.
func (s Settings) Resolve() (Config, error) {
	builder := NewConfigBuilder()
	if s.FlushIntervalMs > 0 {
		builder.WithFlushInterval(time.Duration(s.FlushIntervalMs) * time.Millisecond)
	}
	if s.TraceEndpoint != "" {
		exporter, err := ParseEndpoint(s.TraceEndpoint)
		if err != nil {
			return Config{}, err
		}
		builder.WithTraceExporter(exporter)
	}
	if s.MetricsEndpoint != "" {
		exporter, err := ParseEndpoint(s.MetricsEndpoint)
		if err != nil {
			return Config{}, err
		}
		builder.WithMetricsExporter(exporter)
	}

	return builder.Build(), nil
}
