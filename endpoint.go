package glideotel

import (
	"fmt"
	"net/url"
)

// exporterKind selects how collected signals leave the process.
type exporterKind int

const (
	exporterGrpc exporterKind = iota
	exporterHTTP
	exporterFile
	exporterConsole
)

// SignalsExporter describes the connection between the exporter and the
// collector: gRPC or HTTP against a collector endpoint, or a local substitute
// that writes the collected signals to files in a directory. The console kind
// pretty-prints to stdout and exists for debugging only; it is never produced
// by ParseEndpoint.
type SignalsExporter struct {
	kind      exporterKind
	endpoint  string // host:port for grpc and http
	directory string // target directory for file
}

// GrpcExporter returns a selector for a collector listening on gRPC at
// endpoint ("host:port").
func GrpcExporter(endpoint string) SignalsExporter {
	return SignalsExporter{kind: exporterGrpc, endpoint: endpoint}
}

// HTTPExporter returns a selector for a collector listening on HTTP at
// endpoint ("host:port").
func HTTPExporter(endpoint string) SignalsExporter {
	return SignalsExporter{kind: exporterHTTP, endpoint: endpoint}
}

// FileExporter returns a selector that writes collected signals to files
// under dir instead of connecting to a collector.
func FileExporter(dir string) SignalsExporter {
	return SignalsExporter{kind: exporterFile, directory: dir}
}

// ConsoleExporter returns a selector that pretty-prints collected signals to
// stdout. Intended for local debugging.
func ConsoleExporter() SignalsExporter {
	return SignalsExporter{kind: exporterConsole}
}

// Endpoint returns the collector endpoint for gRPC and HTTP selectors, empty
// otherwise.
func (e SignalsExporter) Endpoint() string { return e.endpoint }

// Directory returns the target directory for file selectors, empty otherwise.
func (e SignalsExporter) Directory() string { return e.directory }

func (e SignalsExporter) String() string {
	switch e.kind {
	case exporterGrpc:
		return "grpc(" + e.endpoint + ")"
	case exporterHTTP:
		return "http(" + e.endpoint + ")"
	case exporterFile:
		return "file(" + e.directory + ")"
	default:
		return "console"
	}
}

// ParseEndpoint parses an endpoint URL into a SignalsExporter.
//
// Supported schemes are http (default port 80), https (default port 443) and
// grpc (default port 80); the host defaults to 127.0.0.1 when absent. Both
// http and https map to the HTTP selector carrying "host:port" — the TLS
// distinction is lost at this layer and exporter construction does not
// renegotiate transport security from it.
func ParseEndpoint(endpoint string) (SignalsExporter, error) {
	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" {
		return SignalsExporter{}, fmt.Errorf("%w: %q", ErrInvalidEndpoint, endpoint)
	}

	switch u.Scheme {
	case "http":
		return HTTPExporter(hostPort(u, "80")), nil
	case "https":
		return HTTPExporter(hostPort(u, "443")), nil
	case "grpc":
		return GrpcExporter(hostPort(u, "80")), nil
	default:
		return SignalsExporter{}, fmt.Errorf("%w: %q", ErrUnsupportedScheme, endpoint)
	}
}

// hostPort joins the URL host and port, substituting 127.0.0.1 and the
// scheme's default port when absent.
func hostPort(u *url.URL, defaultPort string) string {
	host := u.Hostname()
	if host == "" {
		host = "127.0.0.1"
	}
	port := u.Port()
	if port == "" {
		port = defaultPort
	}

	return host + ":" + port
}
