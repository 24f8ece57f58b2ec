package services

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a service matches exactly one of these
// through errors.Is, which is how handlers pick a status code.
var (
	ErrValidation           = errors.New("validation failed")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrNotFound             = errors.New("not found")
	ErrConflict             = errors.New("conflict")
	ErrInvalidState         = errors.New("invalid state")
	ErrSignatureMismatch    = errors.New("signature mismatch")
	ErrUpstream             = errors.New("upstream failure")
	ErrGatewayNotConfigured = errors.New("payment gateway is not configured")
)

var (
	ErrEmailTaken         = newError(ErrConflict, "email already registered")
	ErrInvalidCredentials = newError(ErrUnauthorized, "invalid email or password")
	ErrInvalidToken       = newError(ErrUnauthorized, "invalid or expired token")
	ErrPasswordTooShort   = newError(ErrValidation, "password too short")
	ErrPasswordTooLong    = newError(ErrValidation, "password too long")
	ErrInvalidRole        = newError(ErrValidation, "role must be donor or volunteer")
	ErrUserNotFound       = newError(ErrNotFound, "user not found")

	ErrDonationNotFound    = newError(ErrNotFound, "donation not found")
	ErrDonationNotPending  = newError(ErrInvalidState, "donation is no longer pending")
	ErrDonationNotAccepted = newError(ErrInvalidState, "donation is not accepted by this volunteer")

	ErrHungerSpotNotFound = newError(ErrNotFound, "hunger spot not found")
	ErrVolunteerNotFound  = newError(ErrValidation, "volunteer not found")

	ErrInvalidAmount = newError(ErrValidation, "amount must be a positive number")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

func newError(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

func validationError(format string, args ...interface{}) error {
	return newError(ErrValidation, fmt.Sprintf(format, args...))
}

func invalidStateError(format string, args ...interface{}) error {
	return newError(ErrInvalidState, fmt.Sprintf(format, args...))
}

// upstreamError wraps a store or gateway failure. The cause stays reachable
// through errors.Is.
func upstreamError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUpstream, op, err)
}
