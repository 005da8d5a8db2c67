package types

import "errors"

// Sentinel errors crossing component boundaries. Handlers map these to
// HTTP statuses with errors.Is; everything else is an internal fault.
var (
	// ErrSessionNotFound covers both unknown and expired session ids.
	ErrSessionNotFound = errors.New("session not found or expired")

	// ErrStorageUnavailable signals the session store itself is
	// unreachable. Distinct from not-found so callers may retry.
	ErrStorageUnavailable = errors.New("session storage unavailable")

	// ErrGenerationFailed is the single opaque failure surfaced when
	// itinerary assembly hits an unexpected internal fault.
	ErrGenerationFailed = errors.New("itinerary generation failed")

	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrTripNotFound       = errors.New("trip not found")
)
