package domain

import "errors"

// Failure classes of the planning engine. Only ErrInsufficientData and
// ErrInvalidRequest propagate to callers; route failures are absorbed by
// the composer via estimated legs, and budget infeasibility is reported as
// a warning on the itinerary rather than an error.
var (
	// ErrInsufficientData signals that a destination produced zero candidates.
	ErrInsufficientData = errors.New("insufficient data: no candidates for destination")

	// ErrRouteUnavailable signals that the provider found no path for the
	// requested mode between two points.
	ErrRouteUnavailable = errors.New("route unavailable")

	// ErrInvalidRequest signals a malformed day count, budget or coordinate.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrTripNotFound signals a lookup for an unknown itinerary id.
	ErrTripNotFound = errors.New("trip not found")
)
