package crm

// Functional options that configure a Backend during construction.
// Options are applied before the authentication wrapper is installed, so
// transport-related options end up underneath it.

import (
	"fmt"
	"net/http"
	"time"
)

// Option configures a Backend during construction in NewBackend.
type Option func(*Backend) error

// WithHTTPTimeout bounds the total time spent on a single backend
// request. There is no per-operation retry or cancellation beyond what
// the transport provides, so this is the only client-side time limit.
func WithHTTPTimeout(d time.Duration) Option {
	return func(b *Backend) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		b.http.Timeout = d
		return nil
	}
}

// WithHTTPClient replaces the underlying http.Client. The authentication
// wrapper is still installed on top of its transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(b *Backend) error {
		if hc == nil {
			return fmt.Errorf("http client must not be nil")
		}
		b.http = hc
		return nil
	}
}

// WithDebugLogging wraps the transport so each request and response is
// dumped to the log. Not for production; bodies include tokens and
// customer data.
func WithDebugLogging(enabled bool) Option {
	return func(b *Backend) error {
		if enabled {
			base := b.http.Transport
			if base == nil {
				base = http.DefaultTransport
			}
			b.http.Transport = &debugTransport{base: base}
		}
		return nil
	}
}
