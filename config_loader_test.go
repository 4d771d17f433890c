package glideotel

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	content := []byte(`
flushIntervalMs: 1000
traceEndpoint: "grpc://collector:4317"
metricsEndpoint: "https://collector:4318"
`)
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "config.yaml")
	err := os.WriteFile(tmpFile, content, 0o644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.FlushInterval())
	assert.Equal(t, GrpcExporter("collector:4317"), cfg.TraceExporter())
	assert.Equal(t, HTTPExporter("collector:4318"), cfg.MetricsExporter())

	// Environment overrides file values
	t.Setenv("GLIDE_OTEL_TRACE_ENDPOINT", "http://override:4318")
	cfg, err = LoadConfig(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, HTTPExporter("override:4318"), cfg.TraceExporter())
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`flushIntervalMs: 250`))
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.FlushInterval())
	// Endpoints left empty keep the file default
	assert.Equal(t, FileExporter(os.TempDir()), cfg.TraceExporter())
	assert.Equal(t, FileExporter(os.TempDir()), cfg.MetricsExporter())
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("{}"))
	require.NoError(t, err)
	assert.Equal(t, DefaultFlushInterval, cfg.FlushInterval())
}

func TestParseConfigBadEndpoint(t *testing.T) {
	_, err := ParseConfig([]byte(`traceEndpoint: "udp://collector:4317"`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedScheme)
}
