package services

import "errors"

// Error kinds surfaced to the calling layer. None of the services retry
// internally; the caller decides between retry and surfacing.
var (
	// ErrInvalidInput marks a caller error: malformed or missing
	// required fields. Not retriable.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNoLocation means the user has no registered coordinates,
	// which geo matching requires.
	ErrNoLocation = errors.New("user has no registered location")

	// ErrNotAvailable is a valid empty outcome (e.g. a dish with no
	// delivery offers), distinct from a failure.
	ErrNotAvailable = errors.New("not available")

	// ErrTimeout means the alternative search exceeded its bound.
	// Safe for the caller to retry.
	ErrTimeout = errors.New("search timed out")

	// ErrStoreUnavailable wraps catalog/user/log store failures.
	// Retried by the caller with backoff, never swallowed.
	ErrStoreUnavailable = errors.New("store unavailable")
)
