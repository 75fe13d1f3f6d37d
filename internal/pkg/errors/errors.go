package errors

import "errors"

// Shared application errors. Services wrap these with %w and handlers
// translate them to HTTP statuses.
var (
	// ErrNotFound is returned when a record or resource does not exist.
	// "No active quiz" is an expected state and is also reported through it.
	ErrNotFound = errors.New("record not found")

	// ErrValidation is returned for invalid input (incomplete answer set,
	// value outside the question's declared type domain).
	ErrValidation = errors.New("validation failed")

	// ErrConflict is returned for state conflicts, most importantly a second
	// check-in submission for the same (user, quiz, day).
	ErrConflict = errors.New("resource state conflict")

	// ErrUnauthorized is returned for authorization failures (missing or
	// invalid token).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the authenticated user lacks the required
	// role for an action.
	ErrForbidden = errors.New("forbidden")
)
