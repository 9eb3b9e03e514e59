package types

import (
	"errors"
	"fmt"
)

// ------------------------------
// Shared Errors
// ------------------------------

// ErrNotConfigured is returned by operations attempted against a backend
// whose connection parameters are missing. The condition is terminal until
// the environment is fixed.
var ErrNotConfigured = errors.New("backend not configured")

// ErrNotFound is returned when no row matches the requested id.
var ErrNotFound = errors.New("record not found")

// ErrNoSession is returned when a mutating operation runs without an
// authenticated actor.
var ErrNoSession = errors.New("no authenticated session")

// ValidationError reports a required field missing from a create request.
// It is raised before any network I/O happens.
type ValidationError struct {
	Entity string
	Field  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: required field %q is missing", e.Entity, e.Field)
}

// AuthError reports a rejected sign-in or an expired session. Invalid
// credentials are a normal result, carried as a value rather than a panic.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "authentication failed"
	}
	return "authentication failed: " + e.Message
}

// StatusError wraps any other backend failure with its HTTP status.
// Read paths swallow it; write paths surface it to the caller.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
}

// ErrorFromStatus maps a non-success table-API status onto the error
// taxonomy. 401/403 mean the backend rejected the bearer, 404 means the
// target row or route does not exist, anything else stays a StatusError.
func ErrorFromStatus(op string, status int, body string) error {
	switch status {
	case 401, 403:
		return &AuthError{Message: fmt.Sprintf("%s rejected with status %d", op, status)}
	case 404:
		return ErrNotFound
	default:
		return &StatusError{Op: op, StatusCode: status, Body: body}
	}
}
