// Package services defines the business logic for purchase records. This
// file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler/controller layer.
package services

import "errors"

// Purchase-related errors.
var (
	// ErrPurchaseNotFound indicates that the requested purchase does not
	// exist.
	ErrPurchaseNotFound = errors.New("purchase not found")

	// ErrInvalidRequest is returned when a creation or full-update payload
	// is missing required fields or carries out-of-range values.
	ErrInvalidRequest = errors.New("invalid purchase request")

	// ErrMalformedPatch is returned when a merge-patch document is not valid
	// JSON, or when applying it produces a document that no longer
	// deserializes into a valid purchase (wrong types, cleared required
	// fields, unknown members).
	ErrMalformedPatch = errors.New("malformed merge patch")

	// ErrInvalidTransition is returned when an update would move a purchase
	// between lifecycle states the transition table forbids (for example
	// CANCELLED back to CONFIRMED).
	ErrInvalidTransition = errors.New("status transition not allowed")
)
