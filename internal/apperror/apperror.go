// Package apperror defines the sentinel errors shared across the service.
// Callers classify failures with errors.Is; handlers map them to HTTP
// status codes, the reminder scheduler uses them to decide what to skip.
package apperror

import "errors"

var (
	// ErrNotFound means a referenced user or habit does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput means a value was rejected at a construction or
	// update boundary (weekday out of range, XP reward out of bounds,
	// malformed reminder time).
	ErrInvalidInput = errors.New("invalid input")

	// ErrDeliveryUnavailable means notifications cannot be delivered
	// right now (no subscriptions, missing VAPID keys). Evaluation
	// continues; delivery is skipped, never retried.
	ErrDeliveryUnavailable = errors.New("notification delivery unavailable")

	// ErrInvalidCurve means the configured leveling curve produced a
	// non-positive XP requirement.
	ErrInvalidCurve = errors.New("leveling curve produced non-positive requirement")
)
