package glideotel

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// traceScope is the instrumentation scope for every span and meter created
// by this package.
const traceScope = "valkey_glide"

// SpanStatus is the status applied to a span: Ok, or Error with a
// description.
type SpanStatus struct {
	code        codes.Code
	description string
}

// StatusOk returns the Ok span status.
func StatusOk() SpanStatus { return SpanStatus{code: codes.Ok} }

// StatusError returns an Error span status carrying description.
func StatusError(description string) SpanStatus {
	return SpanStatus{code: codes.Error, description: description}
}

// spanInner guards one underlying span. All copies of a Span share the same
// spanInner: mutation takes the write lock, inspection the read lock.
type spanInner struct {
	mu   sync.RWMutex
	span trace.Span
}

// snapshotContext returns the span context at call time.
func (i *spanInner) snapshotContext() trace.SpanContext {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return i.span.SpanContext()
}

// Span is a shared-ownership handle over one client-kind span. Copies are
// cheap and share the underlying span; any copy may mutate it from any
// goroutine. The span lives until the last holder lets go of it.
//
// After End the span is logically closed; further mutation is a caller
// error and is not guarded here.
type Span struct {
	inner *spanInner
}

// NewSpan creates a root span with the given name, kind client, using the
// process-wide tracer installed by Initialise.
func NewSpan(name string) Span {
	tracer := otel.Tracer(traceScope)
	_, span := tracer.Start(context.Background(), name,
		trace.WithSpanKind(trace.SpanKindClient),
	)

	return Span{inner: &spanInner{span: span}}
}

// newSpanWithParent creates a span as a child of parent. The child is linked
// to a remote-context snapshot of the parent taken at call time, not to the
// live parent object; reading the snapshot needs only shared access.
func newSpanWithParent(name string, parent *spanInner) Span {
	parentCtx := trace.ContextWithRemoteSpanContext(
		context.Background(),
		parent.snapshotContext(),
	)

	tracer := otel.Tracer(traceScope)
	_, span := tracer.Start(parentCtx, name,
		trace.WithSpanKind(trace.SpanKindClient),
	)

	return Span{inner: &spanInner{span: span}}
}

// AddSpan creates a child span and records a link to it on this span.
// The exported parent carries one link per child created over its lifetime;
// this is a link list, not a strict nested-span tree.
func (s Span) AddSpan(name string) (Span, error) {
	if s.inner == nil {
		return Span{}, ErrSpanNotInitialized
	}

	child := newSpanWithParent(name, s.inner)
	childCtx := child.inner.snapshotContext()

	s.inner.mu.Lock()
	s.inner.span.AddLink(trace.Link{SpanContext: childCtx})
	s.inner.mu.Unlock()

	return child, nil
}

// AddEvent appends an event with the given name and attributes to the span,
// timestamped at call time.
func (s Span) AddEvent(name string, attrs ...attribute.KeyValue) error {
	if s.inner == nil {
		return ErrSpanNotInitialized
	}

	s.inner.mu.Lock()
	defer s.inner.mu.Unlock()

	s.inner.span.AddEvent(name,
		trace.WithTimestamp(time.Now()),
		trace.WithAttributes(attrs...),
	)

	return nil
}

// SetStatus sets the span status. Last write wins; no history is retained.
func (s Span) SetStatus(status SpanStatus) error {
	if s.inner == nil {
		return ErrSpanNotInitialized
	}

	s.inner.mu.Lock()
	defer s.inner.mu.Unlock()

	s.inner.span.SetStatus(status.code, status.description)

	return nil
}

// ID returns the span id as a string. Safe to call concurrently with other
// reads; it does not block other readers.
func (s Span) ID() (string, error) {
	if s.inner == nil {
		return "", ErrSpanNotInitialized
	}

	return s.inner.snapshotContext().SpanID().String(), nil
}

// End finishes the span and hands it to the export pipeline's batching
// queue. Ending a span twice is a caller error and is not guarded here.
func (s Span) End() error {
	if s.inner == nil {
		return ErrSpanNotInitialized
	}

	s.inner.mu.Lock()
	defer s.inner.mu.Unlock()

	s.inner.span.End()

	return nil
}
