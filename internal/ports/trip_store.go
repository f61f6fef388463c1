package ports

import (
	"context"

	"trip-planner-service/internal/domain"
)

// Port: the trip storage collaborator. Itineraries are versioned by full
// replacement; there is no partial update operation by design of the
// itinerary lifecycle.
type TripStore interface {
	// Save persists a new itinerary and returns its assigned id.
	Save(ctx context.Context, it *domain.Itinerary) (string, error)

	// Load returns the stored itinerary or domain.ErrTripNotFound.
	Load(ctx context.Context, id string) (*domain.Itinerary, error)

	// List returns stored itineraries, newest first, optionally filtered by
	// destination.
	List(ctx context.Context, destination string, limit, offset int) ([]*domain.Itinerary, error)

	// Replace overwrites the stored itinerary wholesale.
	Replace(ctx context.Context, id string, it *domain.Itinerary) error

	// Delete removes the stored itinerary or returns domain.ErrTripNotFound.
	Delete(ctx context.Context, id string) error
}
