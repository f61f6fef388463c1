package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

// Candidate pool scoring weights. Rating dominates; preference-tag matches
// and proximity to the destination centroid spread the field apart.
const (
	ratingWeight    = 2.0
	tagMatchWeight  = 1.5
	proximityWeight = 1.0

	basePoolSize    = 12
	poolPerDay      = 4
	lodgingPoolSize = 10
)

// ScoredAttraction pairs a candidate with its pool score. The composer
// consumes the score for selection; the attraction itself stays read-only.
type ScoredAttraction struct {
	domain.Attraction
	Score float64
}

// BuildCandidates assembles the ranked candidate pool for a destination:
// attractions scored by rating, preference matches and centroid proximity,
// plus lodging candidates anchored to the pool centroid. The pool is capped
// so downstream composition stays tractable; the cap scales with dayCount.
//
// Returns domain.ErrInsufficientData when the destination yields zero
// attractions. That is terminal for the caller, never retried here.
func BuildCandidates(
	ctx context.Context,
	src ports.CandidateSource,
	destination string,
	preferences []string,
	dayCount int,
	budget float64,
) ([]ScoredAttraction, []domain.Lodging, error) {
	if strings.TrimSpace(destination) == "" {
		return nil, nil, fmt.Errorf("%w: destination must be non-empty", domain.ErrInvalidRequest)
	}
	if dayCount < 1 {
		return nil, nil, fmt.Errorf("%w: day count must be >= 1, got %d", domain.ErrInvalidRequest, dayCount)
	}
	if budget < 0 {
		return nil, nil, fmt.Errorf("%w: budget must be >= 0, got %.2f", domain.ErrInvalidRequest, budget)
	}

	limit := basePoolSize + poolPerDay*dayCount

	attractions, err := src.SearchAttractions(ctx, destination, preferences, limit*2)
	if err != nil {
		return nil, nil, fmt.Errorf("build candidates: search attractions: %w", err)
	}
	if len(attractions) == 0 {
		return nil, nil, fmt.Errorf("%w: %q", domain.ErrInsufficientData, destination)
	}

	coords := make([]domain.Coordinates, 0, len(attractions))
	for _, a := range attractions {
		coords = append(coords, a.Location)
	}
	centroid := domain.Centroid(coords)

	scored := make([]ScoredAttraction, 0, len(attractions))
	for _, a := range attractions {
		scored = append(scored, ScoredAttraction{
			Attraction: a,
			Score:      scoreAttraction(a, preferences, centroid),
		})
	}

	// Rank best-first; ties break on lexicographic id for determinism.
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].ID < scored[j].ID
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}

	lodgings, err := src.SearchLodging(ctx, destination, centroid, lodgingPoolSize)
	if err != nil {
		return nil, nil, fmt.Errorf("build candidates: search lodging: %w", err)
	}

	return scored, lodgings, nil
}

// scoreAttraction combines rating, preference-tag match count and inverse
// distance from the destination centroid into a single ranking score.
func scoreAttraction(a domain.Attraction, preferences []string, centroid domain.Coordinates) float64 {
	score := ratingWeight * a.Rating

	matches := 0
	for _, p := range preferences {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if strings.Contains(strings.ToLower(a.Category), p) || strings.Contains(strings.ToLower(a.Name), p) {
			matches++
		}
	}
	score += tagMatchWeight * float64(matches)

	// Inverse distance: 1.0 at the centroid, decaying with distance out.
	km := domain.HaversineMeters(a.Location, centroid) / 1000
	score += proximityWeight / (1 + km/5)

	return score
}

// poolCentroid computes the geographic center of a scored pool.
func poolCentroid(pool []ScoredAttraction) domain.Coordinates {
	coords := make([]domain.Coordinates, 0, len(pool))
	for _, a := range pool {
		coords = append(coords, a.Location)
	}
	return domain.Centroid(coords)
}
