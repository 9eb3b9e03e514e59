package crm

import (
	"errors"

	"github.com/carlosyadil/giettenerife-crm/internal/types"
)

// Re-export shared SDK errors so callers compare against a single symbol.
var (
	// ErrNotConfigured: connection parameters are missing. Fatal at
	// startup; callers show the instructional screen and retry nothing.
	ErrNotConfigured = types.ErrNotConfigured

	// ErrNotFound: the referenced id has no row.
	ErrNotFound = types.ErrNotFound

	// ErrNoSession: a mutating operation ran without an authenticated
	// actor.
	ErrNoSession = types.ErrNoSession
)

// ValidationError reports a required field missing from a create
// request, caught before any network dispatch.
type ValidationError = types.ValidationError

// AuthError reports a rejected sign-in or an expired session.
type AuthError = types.AuthError

// StatusError carries any other backend failure with its HTTP status.
type StatusError = types.StatusError

// IsNotFound reports whether err is the not-found signal.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsValidation reports whether err is a required-field failure.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// IsAuth reports whether err is an authentication failure.
func IsAuth(err error) bool {
	var aerr *AuthError
	return errors.As(err, &aerr)
}
