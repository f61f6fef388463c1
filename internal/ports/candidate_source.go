package ports

import (
	"context"

	"trip-planner-service/internal/domain"
)

// Port: a boundary for retrieving attraction and lodging candidates from an
// external search service. Results are raw and unranked; scoring and capping
// happen in the candidate pool builder.
type CandidateSource interface {
	// SearchAttractions returns up to limit attractions for a destination,
	// optionally biased by free-form preference tags.
	SearchAttractions(ctx context.Context, destination string, preferences []string, limit int) ([]domain.Attraction, error)

	// SearchLodging returns up to limit lodging candidates near a point.
	SearchLodging(ctx context.Context, destination string, near domain.Coordinates, limit int) ([]domain.Lodging, error)
}
