// Package crm is the data-access SDK for the GietCRM field-sales
// application. It wraps the hosted backend's table API and identity
// provider behind typed operations; everything rendered on screen comes
// through here.
package crm

import (
	"net/http"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/carlosyadil/giettenerife-crm/internal/authapi"
)

// Config holds the connection parameters. Environment variables carry
// the GIETCRM_ prefix, e.g. GIETCRM_SUPABASE_URL.
type Config struct {
	SupabaseURL     string        `envconfig:"SUPABASE_URL" default:""`
	SupabaseAnonKey string        `envconfig:"SUPABASE_ANON_KEY" default:""`
	HTTPTimeout     time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
}

// Backend is the single shared connection to the hosted backend. It is
// constructed once at startup and handed to the Store and the Session;
// there is no implicit global handle.
//
// A Backend built from missing parameters is valid but unconfigured:
// Configured reports false and every operation fails fast with
// ErrNotConfigured instead of touching the network. That state is
// terminal until the environment is fixed.
type Backend struct {
	baseURL string
	anonKey string
	http    *http.Client
	auth    *authapi.Client

	mu    sync.RWMutex
	token string // user JWT once signed in, empty otherwise
}

// NewBackend constructs a Backend for the given project URL and anon key.
// Additional options can be provided via functional arguments.
func NewBackend(baseURL, anonKey string, opts ...Option) (*Backend, error) {
	b := &Backend{
		baseURL: baseURL,
		anonKey: anonKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}

	if b.Configured() {
		b.wrapTransport()
		b.auth = authapi.New(b.baseURL, b.anonKey, b.http.Timeout)
	}
	return b, nil
}

// NewBackendFromEnv builds a Backend from GIETCRM_-prefixed environment
// variables. Missing connection parameters are not an error; they leave
// the Backend unconfigured so the caller can show its instructional
// screen instead of a functional one.
func NewBackendFromEnv(opts ...Option) (*Backend, error) {
	var cfg Config
	if err := envconfig.Process("GIETCRM", &cfg); err != nil {
		return nil, err
	}
	opts = append([]Option{WithHTTPTimeout(cfg.HTTPTimeout)}, opts...)
	return NewBackend(cfg.SupabaseURL, cfg.SupabaseAnonKey, opts...)
}

// Configured reports whether both connection parameters are present.
// It never touches the network.
func (b *Backend) Configured() bool {
	return b.baseURL != "" && b.anonKey != ""
}

// wrapTransport installs the header wrapper that authenticates every
// table-API request: the apikey header always carries the anon key and
// the Authorization bearer is the signed-in user's JWT when present,
// the anon key otherwise.
func (b *Backend) wrapTransport() {
	base := b.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	b.http.Transport = &authTransport{
		base:    base,
		anonKey: b.anonKey,
		bearer:  b.bearerToken,
	}
}

func (b *Backend) setToken(tok string) {
	b.mu.Lock()
	b.token = tok
	b.mu.Unlock()
}

func (b *Backend) clearToken() { b.setToken("") }

func (b *Backend) bearerToken() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.token != "" {
		return b.token
	}
	return b.anonKey
}

// authTransport wraps an http.RoundTripper to add the backend's
// authentication headers to every request.
type authTransport struct {
	base    http.RoundTripper
	anonKey string
	bearer  func() string
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	cloned := req.Clone(req.Context())
	cloned.Header.Set("apikey", t.anonKey)
	cloned.Header.Set("Authorization", "Bearer "+t.bearer())
	return t.base.RoundTrip(cloned)
}
