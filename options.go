package dwaplatform

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"github.com/dwaplatform/client-go/internal/api"
)

// Transport performs the network I/O for a registration. Implementations
// must call done exactly once per Submit, from any goroutine.
type Transport = api.Transport

// TransportFunc adapts a function to the Transport interface.
type TransportFunc = api.TransportFunc

// Request is the transport-agnostic description of an outbound call.
type Request = api.Request

// Delivery is the single outcome a Transport reports for a Request.
type Delivery = api.Delivery

// HostResolver maps the configured host name and sandbox flag to a base
// address for the built-in HTTP transport.
type HostResolver = api.HostResolver

// DefaultTimeout is the round-trip timeout of the built-in HTTP transport.
const DefaultTimeout = api.DefaultTimeout

// clientConfig holds configuration for the client.
type clientConfig struct {
	transport      Transport
	httpClient     *http.Client
	timeout        time.Duration
	hostResolver   HostResolver
	userAgent      string
	logger         *slog.Logger
	registerer     prometheus.Registerer
	tracerProvider trace.TracerProvider
}

// Option configures the client.
type Option func(*clientConfig)

func newClientConfig(opts []Option) *clientConfig {
	cfg := &clientConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return cfg
}

// buildTransport returns the configured transport or the HTTP transport
// built from the HTTP options.
func (c *clientConfig) buildTransport() Transport {
	if c.transport != nil {
		return c.transport
	}

	var opts []api.Option
	if c.httpClient != nil {
		opts = append(opts, api.WithHTTPClient(c.httpClient))
	}
	if c.timeout > 0 {
		opts = append(opts, api.WithTimeout(c.timeout))
	}
	if c.hostResolver != nil {
		opts = append(opts, api.WithHostResolver(c.hostResolver))
	}
	if c.userAgent != "" {
		opts = append(opts, api.WithUserAgent(c.userAgent))
	}
	return api.NewHTTPTransport(opts...)
}

// WithTransport replaces the built-in HTTP transport. The HTTP options
// (WithHTTPClient, WithTimeout, WithHostResolver, WithUserAgent) are ignored
// when a transport is set.
func WithTransport(t Transport) Option {
	return func(c *clientConfig) {
		c.transport = t
	}
}

// WithHTTPClient sets a custom HTTP client for the built-in transport.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the round-trip timeout of the built-in transport. A client
// set with WithHTTPClient is copied, never modified.
// Timeouts are delivered as *NetworkError.
// Default: 30 seconds
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithHostResolver sets how the built-in transport turns the configured
// host name and sandbox flag into a base address. The default uses
// https://{hostName} and leaves sandbox routing to the host itself.
func WithHostResolver(resolve HostResolver) Option {
	return func(c *clientConfig) {
		c.hostResolver = resolve
	}
}

// WithUserAgent sets the User-Agent header of the built-in transport.
func WithUserAgent(ua string) Option {
	return func(c *clientConfig) {
		c.userAgent = ua
	}
}

// WithLogger sets the structured logger. Card numbers, CVVs and tokens are
// never logged; only a masked number and a fingerprint are.
// Default: discard
func WithLogger(logger *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithMetrics registers registration counters, an in-flight gauge and a
// latency histogram with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *clientConfig) {
		c.registerer = reg
	}
}

// WithTracerProvider sets the OpenTelemetry tracer provider used for one
// client span per registration.
// Default: the global provider
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *clientConfig) {
		c.tracerProvider = tp
	}
}
