package glideotel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	spansFileName   = "spans.json"
	metricsFileName = "metrics.json"
)

// spanRecord is one exported span, written as a single JSON line.
// Timestamps are microseconds since epoch, encoded as strings.
type spanRecord struct {
	Name         string        `json:"name"`
	SpanID       string        `json:"span_id"`
	TraceID      string        `json:"trace_id"`
	ParentSpanID string        `json:"parent_span_id,omitempty"`
	Kind         string        `json:"kind"`
	StartTime    string        `json:"start_time"`
	EndTime      string        `json:"end_time"`
	Status       statusRecord  `json:"status"`
	Events       []eventRecord `json:"events,omitempty"`
	Links        []linkRecord  `json:"links"`
}

type statusRecord struct {
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
}

type eventRecord struct {
	Name       string            `json:"name"`
	Timestamp  string            `json:"timestamp"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

type linkRecord struct {
	SpanID  string `json:"span_id"`
	TraceID string `json:"trace_id"`
}

// fileSpanExporter writes completed spans as newline-delimited JSON to
// spans.json in the configured directory. It is the local substitute for a
// collector used by the file backend.
type fileSpanExporter struct {
	mu   sync.Mutex
	path string
}

func newFileSpanExporter(dir string) *fileSpanExporter {
	return &fileSpanExporter{path: filepath.Join(dir, spansFileName)}
}

// ExportSpans appends one JSON line per span, in export order.
func (e *fileSpanExporter) ExportSpans(_ context.Context, spans []sdktrace.ReadOnlySpan) error {
	if len(spans) == 0 {
		return nil
	}

	var buf bytes.Buffer
	for _, s := range spans {
		line, err := json.Marshal(makeSpanRecord(s))
		if err != nil {
			return fmt.Errorf("encode span record: %w", err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	f, err := os.OpenFile(e.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open span export file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write span export file: %w", err)
	}

	return nil
}

func (e *fileSpanExporter) Shutdown(_ context.Context) error { return nil }

func makeSpanRecord(s sdktrace.ReadOnlySpan) spanRecord {
	rec := spanRecord{
		Name:      s.Name(),
		SpanID:    s.SpanContext().SpanID().String(),
		TraceID:   s.SpanContext().TraceID().String(),
		Kind:      s.SpanKind().String(),
		StartTime: microsString(s.StartTime()),
		EndTime:   microsString(s.EndTime()),
		Status: statusRecord{
			Code:        s.Status().Code.String(),
			Description: s.Status().Description,
		},
		Links: make([]linkRecord, 0, len(s.Links())),
	}
	if s.Parent().HasSpanID() {
		rec.ParentSpanID = s.Parent().SpanID().String()
	}
	for _, event := range s.Events() {
		rec.Events = append(rec.Events, eventRecord{
			Name:       event.Name,
			Timestamp:  microsString(event.Time),
			Attributes: attributesMap(event.Attributes),
		})
	}
	for _, link := range s.Links() {
		rec.Links = append(rec.Links, linkRecord{
			SpanID:  link.SpanContext.SpanID().String(),
			TraceID: link.SpanContext.TraceID().String(),
		})
	}

	return rec
}

func microsString(t time.Time) string {
	return strconv.FormatInt(t.UnixMicro(), 10)
}

func attributesMap(attrs []attribute.KeyValue) map[string]string {
	if len(attrs) == 0 {
		return nil
	}
	m := make(map[string]string, len(attrs))
	for _, kv := range attrs {
		m[string(kv.Key)] = kv.Value.Emit()
	}

	return m
}

// metricRecord is one exported metric data point, written as a single JSON
// line. The timestamp is microseconds since epoch, encoded as a string.
type metricRecord struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Unit        string  `json:"unit,omitempty"`
	Timestamp   string  `json:"timestamp"`
	Value       float64 `json:"value"`
}

// fileMetricExporter writes metric data points as newline-delimited JSON to
// metrics.json in the configured directory.
type fileMetricExporter struct {
	mu   sync.Mutex
	path string
}

func newFileMetricExporter(dir string) *fileMetricExporter {
	return &fileMetricExporter{path: filepath.Join(dir, metricsFileName)}
}

func (e *fileMetricExporter) Temporality(k sdkmetric.InstrumentKind) metricdata.Temporality {
	return sdkmetric.DefaultTemporalitySelector(k)
}

func (e *fileMetricExporter) Aggregation(k sdkmetric.InstrumentKind) sdkmetric.Aggregation {
	return sdkmetric.DefaultAggregationSelector(k)
}

// Export appends one JSON line per data point, in export order.
func (e *fileMetricExporter) Export(_ context.Context, rm *metricdata.ResourceMetrics) error {
	var buf bytes.Buffer
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			for _, rec := range makeMetricRecords(m) {
				line, err := json.Marshal(rec)
				if err != nil {
					return fmt.Errorf("encode metric record: %w", err)
				}
				buf.Write(line)
				buf.WriteByte('\n')
			}
		}
	}
	if buf.Len() == 0 {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	f, err := os.OpenFile(e.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open metric export file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write metric export file: %w", err)
	}

	return nil
}

func (e *fileMetricExporter) ForceFlush(_ context.Context) error { return nil }
func (e *fileMetricExporter) Shutdown(_ context.Context) error   { return nil }

func makeMetricRecords(m metricdata.Metrics) []metricRecord {
	base := metricRecord{Name: m.Name, Description: m.Description, Unit: m.Unit}

	var records []metricRecord
	switch data := m.Data.(type) {
	case metricdata.Sum[int64]:
		for _, dp := range data.DataPoints {
			rec := base
			rec.Timestamp = microsString(dp.Time)
			rec.Value = float64(dp.Value)
			records = append(records, rec)
		}
	case metricdata.Sum[float64]:
		for _, dp := range data.DataPoints {
			rec := base
			rec.Timestamp = microsString(dp.Time)
			rec.Value = dp.Value
			records = append(records, rec)
		}
	case metricdata.Gauge[int64]:
		for _, dp := range data.DataPoints {
			rec := base
			rec.Timestamp = microsString(dp.Time)
			rec.Value = float64(dp.Value)
			records = append(records, rec)
		}
	case metricdata.Gauge[float64]:
		for _, dp := range data.DataPoints {
			rec := base
			rec.Timestamp = microsString(dp.Time)
			rec.Value = dp.Value
			records = append(records, rec)
		}
	case metricdata.Histogram[int64]:
		for _, dp := range data.DataPoints {
			rec := base
			rec.Timestamp = microsString(dp.Time)
			rec.Value = float64(dp.Sum)
			records = append(records, rec)
		}
	case metricdata.Histogram[float64]:
		for _, dp := range data.DataPoints {
			rec := base
			rec.Timestamp = microsString(dp.Time)
			rec.Value = dp.Sum
			records = append(records, rec)
		}
	}

	return records
}
