package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

// RecommendHotels returns lodging candidates near a central location within
// a nightly budget, cheapest and closest first. When nothing fits the
// budget the full ranked list is returned so the caller still sees options.
func RecommendHotels(
	ctx context.Context,
	src ports.CandidateSource,
	geo ports.Geocoder,
	destination, centralLocation string,
	budgetPerNight float64,
	nights int,
) ([]domain.Lodging, error) {
	if nights < 1 {
		return nil, fmt.Errorf("%w: nights must be >= 1, got %d", domain.ErrInvalidRequest, nights)
	}
	if budgetPerNight < 0 {
		return nil, fmt.Errorf("%w: budget per night must be >= 0", domain.ErrInvalidRequest)
	}

	anchor := strings.TrimSpace(centralLocation)
	if anchor == "" {
		anchor = destination
	}

	center, err := geo.Geocode(ctx, anchor)
	if err != nil && anchor != destination {
		// An unresolvable landmark falls back to the destination itself.
		center, err = geo.Geocode(ctx, destination)
	}
	if err != nil {
		return nil, fmt.Errorf("recommend hotels: geocode %q: %w", anchor, err)
	}

	lodgings, err := src.SearchLodging(ctx, destination, center, lodgingPoolSize)
	if err != nil {
		return nil, fmt.Errorf("recommend hotels: search lodging: %w", err)
	}
	if len(lodgings) == 0 {
		return nil, fmt.Errorf("%w: no lodging near %q", domain.ErrInsufficientData, anchor)
	}

	within := make([]domain.Lodging, 0, len(lodgings))
	for _, l := range lodgings {
		if l.PricePerNight <= budgetPerNight {
			within = append(within, l)
		}
	}
	if len(within) == 0 {
		within = lodgings
	}

	sort.Slice(within, func(i, j int) bool {
		if within[i].PricePerNight != within[j].PricePerNight {
			return within[i].PricePerNight < within[j].PricePerNight
		}
		di := domain.HaversineMeters(within[i].Location, center)
		dj := domain.HaversineMeters(within[j].Location, center)
		if di != dj {
			return di < dj
		}
		return within[i].ID < within[j].ID
	})

	out := make([]domain.Lodging, len(within))
	for i, l := range within {
		if l.Reason == "" {
			km := domain.HaversineMeters(l.Location, center) / 1000
			l.Reason = fmt.Sprintf("%.1f km from %s at %.0f per night", km, anchor, l.PricePerNight)
		}
		out[i] = l
	}

	return out, nil
}
