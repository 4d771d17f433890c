package glideotel

import "errors"

// ErrInvalidEndpoint is returned when an endpoint string cannot be parsed as a URL.
var ErrInvalidEndpoint = errors.New("glideotel: invalid endpoint")

// ErrUnsupportedScheme is returned when an endpoint URL uses a scheme other
// than http, https or grpc.
var ErrUnsupportedScheme = errors.New("glideotel: unsupported endpoint scheme")

// ErrSpanNotInitialized is returned when an operation is invoked on a
// zero-value Span handle.
var ErrSpanNotInitialized = errors.New("glideotel: span handle is not initialized")

// ErrTimeoutCounterNotInitialized is returned when RecordTimeoutError is
// called before Initialise has populated the counter registry.
var ErrTimeoutCounterNotInitialized = errors.New("glideotel: timeout counter not initialized")
