package helpers

import (
	"errors"
	"fmt"
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type ObserverError struct {
	Message string
	Cause   error
}

func (e *ObserverError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ObserverError) Unwrap() error {
	return e.Cause
}

// Distinct error types, one per failure class the request handler maps
// to an HTTP status.
type ConfigError struct{ ObserverError }           // missing/invalid credential or config, fatal at startup
type AuthError struct{ ObserverError }             // upstream rejected the bearer token
type TransportError struct{ ObserverError }        // network or upstream protocol failure
type InsufficientDataError struct{ ObserverError } // upstream answered but lacks the data we need
type ValidationError struct{ ObserverError }       // bad inbound request

// -----------------------------------------------------------------------------
// Constructors
// -----------------------------------------------------------------------------

func NewConfigError(msg string) error {
	return &ConfigError{ObserverError{Message: msg}}
}

func NewAuthError(msg string, cause error) error {
	return &AuthError{ObserverError{Message: msg, Cause: cause}}
}

func NewTransportError(msg string, cause error) error {
	return &TransportError{ObserverError{Message: msg, Cause: cause}}
}

func NewInsufficientDataError(msg string) error {
	return &InsufficientDataError{ObserverError{Message: msg}}
}

func NewValidationError(msg string) error {
	return &ValidationError{ObserverError{Message: msg}}
}

// -----------------------------------------------------------------------------
// Classification helpers
// -----------------------------------------------------------------------------

func IsAuthError(err error) bool {
	var e *AuthError
	return errors.As(err, &e)
}

func IsTransportError(err error) bool {
	var e *TransportError
	return errors.As(err, &e)
}

func IsInsufficientDataError(err error) bool {
	var e *InsufficientDataError
	return errors.As(err, &e)
}

func IsValidationError(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}
