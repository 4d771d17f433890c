package glideotel

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/arloliu/glideotel/internal/registry"
)

func TestInitialiseFileBackendEndToEnd(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	cfg := NewConfigBuilder().
		WithFlushInterval(100 * time.Millisecond).
		WithTraceExporter(FileExporter(dir)).
		WithMetricsExporter(FileExporter(dir)).
		Build()
	require.NoError(t, Initialise(ctx, cfg))

	root := NewSpan("Root_Span_1")
	require.NoError(t, root.AddEvent("Event1"))
	require.NoError(t, root.SetStatus(StatusOk()))

	child, err := root.AddSpan("Network_Span")
	require.NoError(t, err)
	childID, err := child.ID()
	require.NoError(t, err)

	// The child ends first; a full flush interval passes before the root
	// ends, so the child reaches the file in an earlier batch.
	time.Sleep(150 * time.Millisecond)
	require.NoError(t, child.End())
	time.Sleep(150 * time.Millisecond)
	require.NoError(t, root.End())

	require.NoError(t, RecordTimeoutError(ctx))

	Shutdown(ctx)

	data, err := os.ReadFile(filepath.Join(dir, spansFileName))
	require.NoError(t, err)
	lines := nonEmptyLines(string(data))
	require.Len(t, lines, 2)

	var childRecord, rootRecord map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &childRecord))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &rootRecord))

	// Export order: the child flushed before the root.
	assert.Equal(t, "Network_Span", childRecord["name"])
	assert.Equal(t, "Root_Span_1", rootRecord["name"])
	assert.Equal(t, childID, childRecord["span_id"])

	// The parent carries exactly one link, pointing at the child.
	links := rootRecord["links"].([]any)
	require.Len(t, links, 1)
	assert.Equal(t, childID, links[0].(map[string]any)["span_id"])

	childStart := microsValue(t, childRecord, "start_time")
	childEnd := microsValue(t, childRecord, "end_time")
	rootStart := microsValue(t, rootRecord, "start_time")
	rootEnd := microsValue(t, rootRecord, "end_time")

	// The child started after its parent and the parent outlived the child
	// by at least the sleep between the two End calls.
	assert.GreaterOrEqual(t, childStart, rootStart)
	assert.GreaterOrEqual(t, childEnd-childStart, int64(100_000))
	assert.GreaterOrEqual(t, rootEnd-childEnd, int64(100_000))

	status := rootRecord["status"].(map[string]any)
	assert.Equal(t, "Ok", status["code"])

	events := rootRecord["events"].([]any)
	require.Len(t, events, 1)
	assert.Equal(t, "Event1", events[0].(map[string]any)["name"])

	// The metrics pipeline drained into its own file on shutdown.
	metricsData, err := os.ReadFile(filepath.Join(dir, metricsFileName))
	require.NoError(t, err)
	assert.Contains(t, string(metricsData), timeoutErrorMetric)
}

func microsValue(t *testing.T, record map[string]any, key string) int64 {
	t.Helper()

	raw, ok := record[key].(string)
	require.True(t, ok, "property %q is not a string", key)
	v, err := strconv.ParseInt(raw, 10, 64)
	require.NoError(t, err)

	return v
}

func TestInitialiseReplacesPreviousProviders(t *testing.T) {
	ctx := context.Background()
	first := t.TempDir()
	second := t.TempDir()

	build := func(dir string) Config {
		return NewConfigBuilder().
			WithFlushInterval(50 * time.Millisecond).
			WithTraceExporter(FileExporter(dir)).
			WithMetricsExporter(FileExporter(dir)).
			Build()
	}

	require.NoError(t, Initialise(ctx, build(first)))
	require.NoError(t, Initialise(ctx, build(second)))

	span := NewSpan("Root_Span_1")
	require.NoError(t, span.End())
	Shutdown(ctx)

	// Last writer wins: spans land in the second directory only.
	_, err := os.Stat(filepath.Join(first, spansFileName))
	assert.True(t, os.IsNotExist(err))
	data, err := os.ReadFile(filepath.Join(second, spansFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Root_Span_1")
}

func TestRecordTimeoutErrorBeforeInitialise(t *testing.T) {
	registry.Reset()

	err := RecordTimeoutError(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeoutCounterNotInitialized)
}

func TestRecordTimeoutErrorConcurrent(t *testing.T) {
	ctx := context.Background()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(mp)
	t.Cleanup(func() { _ = mp.Shutdown(ctx) })

	require.NoError(t, initMetrics())

	const calls = 50
	errs := make([]error, calls)

	var wg sync.WaitGroup
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			errs[n] = RecordTimeoutError(ctx)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	total := int64(0)
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != timeoutErrorMetric {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			assert.True(t, sum.IsMonotonic)
			for _, dp := range sum.DataPoints {
				// Increments carry no attributes.
				assert.Zero(t, dp.Attributes.Len())
				total += dp.Value
			}
		}
	}
	assert.Equal(t, int64(calls), total)
}

func TestShutdownWithoutInitialise(t *testing.T) {
	registry.SetProviders(nil)

	// Best-effort: shutting down before initialise is a no-op.
	Shutdown(context.Background())
}
