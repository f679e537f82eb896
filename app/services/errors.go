// Package services implements the marketplace business logic on top of the
// repositories. Services take the store dependencies as small interfaces so
// tests can substitute in-memory fakes.
package services

import "errors"

// Error taxonomy. Controllers map these onto HTTP statuses; everything
// else that escapes a service is treated as an internal failure.
var (
	// ErrEmailTaken is returned on signup with an already-registered email.
	ErrEmailTaken = errors.New("user already exists")

	// ErrInvalidCredentials covers both unknown-email and wrong-password
	// login failures, with one indistinguishable message.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidOTP covers a missing, expired, or mismatched reset code.
	ErrInvalidOTP = errors.New("invalid or expired OTP")

	// ErrAlreadyReviewed is returned when a (user, vendor) review exists.
	ErrAlreadyReviewed = errors.New("you have already reviewed this vendor")

	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when a caller acts on another user's data.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError carries a user-facing message for a malformed input the
// struct-tag validator cannot express (cross-field or format rules).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validation builds a ValidationError.
func Validation(msg string) error { return &ValidationError{Msg: msg} }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
