// Package registry holds the process-wide telemetry state: the installed
// providers and the named counters populated during initialisation.
package registry

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// ErrCounterNotInitialized is returned when a counter is used before the
// registry has been populated.
var ErrCounterNotInitialized = errors.New("timeout counter not initialized")

var (
	mu             sync.Mutex
	timeoutCounter metric.Int64Counter
)

// SetTimeoutCounter stores the timeout counter. Called once during
// initialisation; a later call replaces the previous counter.
func SetTimeoutCounter(c metric.Int64Counter) {
	mu.Lock()
	timeoutCounter = c
	mu.Unlock()
}

// AddTimeout increments the timeout counter by one, with no attributes.
func AddTimeout(ctx context.Context) error {
	mu.Lock()
	defer mu.Unlock()

	if timeoutCounter == nil {
		return ErrCounterNotInitialized
	}
	timeoutCounter.Add(ctx, 1)

	return nil
}

// Reset clears the counter registry. Intended for tests.
func Reset() {
	mu.Lock()
	timeoutCounter = nil
	mu.Unlock()
}

// Providers are the process-wide installed provider handles, kept so a final
// shutdown can flush and drain them.
type Providers struct {
	Tracer *sdktrace.TracerProvider
	Meter  *sdkmetric.MeterProvider
}

var installed atomic.Pointer[Providers]

// SetProviders records the installed providers. Last writer wins.
func SetProviders(p *Providers) {
	installed.Store(p)
}

// InstalledProviders returns the most recently installed providers, or nil if
// initialisation has not run.
func InstalledProviders() *Providers {
	return installed.Load()
}
