package api

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	// DefaultTimeout bounds a single registration round trip.
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent is sent when no other user agent is configured.
	DefaultUserAgent = "dwaplatform-client-go"

	// maxBodySize caps how much of a reply is read into memory.
	maxBodySize = 1 << 20
)

// HostResolver turns the configured host name and sandbox flag into a base
// address such as "https://api.example.com".
type HostResolver func(host string, sandbox bool) string

// DefaultHostResolver uses https unless host already carries a scheme.
// The sandbox flag is treated as an opaque routing parameter and does not
// change the address; environments that route sandbox traffic elsewhere
// supply their own resolver.
func DefaultHostResolver(host string, _ bool) string {
	host = strings.TrimRight(host, "/")
	if strings.Contains(host, "://") {
		return host
	}
	return "https://" + host
}

// HTTPTransport is the net/http Transport.
type HTTPTransport struct {
	httpClient *http.Client
	timeout    time.Duration
	resolve    HostResolver
	userAgent  string
}

// Option configures the HTTP transport.
type Option func(*HTTPTransport)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(t *HTTPTransport) {
		if client != nil {
			t.httpClient = client
		}
	}
}

// WithTimeout sets the round-trip timeout. A client passed with WithHTTPClient
// is copied before the timeout is applied; the caller's client is not modified.
func WithTimeout(timeout time.Duration) Option {
	return func(t *HTTPTransport) {
		if timeout > 0 {
			t.timeout = timeout
		}
	}
}

// WithHostResolver replaces DefaultHostResolver.
func WithHostResolver(resolve HostResolver) Option {
	return func(t *HTTPTransport) {
		if resolve != nil {
			t.resolve = resolve
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(t *HTTPTransport) {
		if ua != "" {
			t.userAgent = ua
		}
	}
}

// NewHTTPTransport creates an HTTP transport.
func NewHTTPTransport(opts ...Option) *HTTPTransport {
	t := &HTTPTransport{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		resolve:   DefaultHostResolver,
		userAgent: DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.timeout > 0 && t.httpClient.Timeout != t.timeout {
		cp := *t.httpClient
		cp.Timeout = t.timeout
		t.httpClient = &cp
	}

	return t
}

// Submit sends req on a new goroutine and calls done with the result.
func (t *HTTPTransport) Submit(req *Request, done func(Delivery)) {
	go func() {
		done(t.roundTrip(req))
	}()
}

func (t *HTTPTransport) roundTrip(req *Request) Delivery {
	target := t.resolve(req.Host, req.Sandbox) + req.Path

	httpReq, err := http.NewRequest(req.Method, target, bytes.NewReader(req.Body))
	if err != nil {
		return Delivery{Err: errors.Wrap(err, "failed to create request"), URL: target}
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", t.userAgent)
	if req.RequestID != "" {
		httpReq.Header.Set("X-Request-ID", req.RequestID)
	}

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return Delivery{Err: errors.Wrapf(err, "%s %s", req.Method, req.Path), URL: target}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return Delivery{Err: errors.Wrap(err, "failed to read response body"), URL: target}
	}

	return Delivery{
		StatusCode: resp.StatusCode,
		Body:       body,
		URL:        target,
		RequestID:  resp.Header.Get("X-Request-ID"),
	}
}
