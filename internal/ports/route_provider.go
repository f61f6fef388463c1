package ports

import (
	"context"

	"trip-planner-service/internal/domain"
)

// RouteResult is the provider's answer for one origin/destination/mode
// lookup: distance, duration, monetary cost and a path encoding.
type RouteResult struct {
	DistanceMeters  int
	DurationSeconds int
	Cost            float64
	Polyline        string
	Lines           []string // transit line names, empty for other modes
	Transfers       int
}

// Contract for the external geo-routing capability. Implementations return
// domain.ErrRouteUnavailable (wrapped) when no path exists for the mode.
type RouteProvider interface {
	// Route computes a path between two coordinates for a transport mode.
	// Strategy selects a provider-specific variant (cheapest, fastest,
	// fewest transfers); pass a negative value for the provider default.
	Route(ctx context.Context, origin, destination domain.Coordinates, mode domain.Mode, strategy int) (RouteResult, error)
}

// Geocoder resolves a free-form place name to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, place string) (domain.Coordinates, error)
}
