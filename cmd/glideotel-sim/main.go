// Package main provides the glideotel-sim CLI tool for smoke testing
// telemetry backends with sample glide spans and metrics.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arloliu/glideotel"
)

type simConfig struct {
	Endpoint string
	Dir      string
	Flush    time.Duration
	Count    int
	Timeouts int
	Console  bool
}

func main() {
	cfg := simConfig{
		Flush:    500 * time.Millisecond,
		Count:    10,
		Timeouts: 3,
	}

	fs := flag.NewFlagSet("glideotel-sim", flag.ExitOnError)
	fs.StringVar(&cfg.Endpoint, "endpoint", "", "Collector endpoint URL (grpc://, http://, https://); empty selects the file backend")
	fs.StringVar(&cfg.Dir, "dir", os.TempDir(), "Directory for the file backend")
	fs.DurationVar(&cfg.Flush, "flush", cfg.Flush, "Flush interval for both pipelines")
	fs.IntVar(&cfg.Count, "count", cfg.Count, "Number of root spans to emit")
	fs.IntVar(&cfg.Timeouts, "timeouts", cfg.Timeouts, "Number of timeout errors to record")
	fs.BoolVar(&cfg.Console, "console", false, "Pretty-print signals to stdout instead of exporting")

	if err := fs.Parse(os.Args[1:]); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg simConfig) error {
	exporter, err := selectExporter(cfg)
	if err != nil {
		return err
	}

	conf := glideotel.NewConfigBuilder().
		WithFlushInterval(cfg.Flush).
		WithTraceExporter(exporter).
		WithMetricsExporter(exporter).
		Build()

	if err := glideotel.Initialise(ctx, conf); err != nil {
		return err
	}
	defer glideotel.Shutdown(ctx)

	for i := 0; i < cfg.Count; i++ {
		if ctx.Err() != nil {
			break
		}
		if err := emitTrace(i); err != nil {
			return err
		}
	}

	for i := 0; i < cfg.Timeouts; i++ {
		if err := glideotel.RecordTimeoutError(ctx); err != nil {
			return err
		}
	}

	// Let the batchers run at least one scheduled flush before shutdown.
	select {
	case <-ctx.Done():
	case <-time.After(cfg.Flush + 100*time.Millisecond):
	}

	fmt.Printf("emitted %d traces and %d timeout errors via %s\n", cfg.Count, cfg.Timeouts, exporter)

	return nil
}

func selectExporter(cfg simConfig) (glideotel.SignalsExporter, error) {
	if cfg.Console {
		return glideotel.ConsoleExporter(), nil
	}
	if cfg.Endpoint != "" {
		return glideotel.ParseEndpoint(cfg.Endpoint)
	}

	return glideotel.FileExporter(cfg.Dir), nil
}

func emitTrace(n int) error {
	root := glideotel.NewSpan(fmt.Sprintf("Send_Command_%d", n))
	if err := root.AddEvent("request queued"); err != nil {
		return err
	}

	child, err := root.AddSpan("Network_Span")
	if err != nil {
		return err
	}

	time.Sleep(10 * time.Millisecond)
	if err := child.End(); err != nil {
		return err
	}

	if err := root.SetStatus(glideotel.StatusOk()); err != nil {
		return err
	}

	return root.End()
}
