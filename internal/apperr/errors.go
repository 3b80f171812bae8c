// Package apperr defines the application error taxonomy shared by all
// services: sentinels for not-found/auth/conflict conditions, a typed
// validation error carrying the offending field, and a gateway error
// wrapping failures of the external persistence service.
package apperr

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrAuthRequired = errors.New("authentication required")
	ErrForbidden    = errors.New("permission denied")
)

// ValidationError indicates a locally rejected input: the request never
// reached the gateway.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// Validationf builds a ValidationError for a single field.
func Validationf(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// GatewayError wraps a failure of the persistence gateway or blob store.
// Op names the failed operation for logging; the underlying error is
// preserved for errors.Is/As.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return "gateway: " + e.Op + ": " + e.Err.Error()
}

func (e *GatewayError) Unwrap() error { return e.Err }

// Gateway wraps err as a GatewayError, passing nil through untouched.
// ErrNotFound is never wrapped so callers can match it directly.
func Gateway(op string, err error) error {
	if err == nil || errors.Is(err, ErrNotFound) {
		return err
	}
	return &GatewayError{Op: op, Err: err}
}
