package crm

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// SessionState is where the gateway stands in its lifecycle:
// Unconfigured until the environment provides connection parameters,
// then SignedOut until a sign-in succeeds, back to SignedOut on sign-out
// or expiry. Unconfigured is terminal for the process.
type SessionState string

const (
	StateUnconfigured SessionState = "unconfigured"
	StateSignedOut    SessionState = "signed_out"
	StateSignedIn     SessionState = "signed_in"
)

// Session is the gateway to the hosted identity provider. On successful
// sign-in it installs the user's access token on the Backend so the data
// plane acts under the user's row-level permissions.
type Session struct {
	b *Backend

	mu    sync.Mutex
	user  *User
	token string
}

// NewSession builds a Session on an explicitly constructed Backend.
func NewSession(b *Backend) *Session {
	return &Session{b: b}
}

// IsConfigured reports whether the backend's connection parameters are
// present. Pure check, no network access.
func (s *Session) IsConfigured() bool { return s.b.Configured() }

// State reports the gateway's current lifecycle state.
func (s *Session) State() SessionState {
	if !s.b.Configured() {
		return StateUnconfigured
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user != nil {
		return StateSignedIn
	}
	return StateSignedOut
}

// CurrentUser returns the signed-in user's identity. Absence is a normal
// result, reported by the second return value rather than an error.
func (s *Session) CurrentUser() (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

// SignIn authenticates with email and password. Invalid credentials come
// back as an AuthError value and leave the session signed out; nothing
// is retried.
func (s *Session) SignIn(ctx context.Context, email, password string) (User, error) {
	if !s.b.Configured() {
		return User{}, ErrNotConfigured
	}
	tok, err := s.b.auth.SignIn(ctx, email, password)
	if err != nil {
		return User{}, err
	}
	u := User{ID: tok.User.ID, Email: tok.User.Email}

	s.mu.Lock()
	s.user = &u
	s.token = tok.AccessToken
	s.mu.Unlock()

	s.b.setToken(tok.AccessToken)
	log.Debug().Str("user", u.Email).Msg("signed in")
	return u, nil
}

// Verify re-resolves the current token against the identity provider.
// A stale or revoked token clears the local session, so a subsequent
// State reports SignedOut. Verifying while signed out returns ErrNoSession.
func (s *Session) Verify(ctx context.Context) (User, error) {
	if !s.b.Configured() {
		return User{}, ErrNotConfigured
	}
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()
	if token == "" {
		return User{}, ErrNoSession
	}

	u, err := s.b.auth.GetUser(ctx, token)
	if err != nil {
		if IsAuth(err) {
			s.mu.Lock()
			s.user = nil
			s.token = ""
			s.mu.Unlock()
			s.b.clearToken()
			log.Debug().Msg("token no longer valid; session cleared")
		}
		return User{}, err
	}

	s.mu.Lock()
	s.user = &User{ID: u.ID, Email: u.Email}
	s.mu.Unlock()
	return *u, nil
}

// SignOut invalidates the local session and best-effort revokes the
// token on the provider side. Idempotent: signing out while signed out
// is a no-op.
func (s *Session) SignOut(ctx context.Context) error {
	if !s.b.Configured() {
		return nil
	}

	s.mu.Lock()
	token := s.token
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	s.b.clearToken()

	if token == "" {
		return nil
	}
	if err := s.b.auth.SignOut(ctx, token); err != nil {
		// The local session is gone either way; a failed revoke is
		// not actionable for the caller.
		log.Warn().Err(err).Msg("remote sign-out failed")
	}
	return nil
}
