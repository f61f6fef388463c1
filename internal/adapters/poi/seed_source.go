package poi

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"trip-planner-service/internal/domain"
)

// SeedSource serves candidates from a JSON seed file, keyed by destination.
// It backs demos, offline runs and tests.
type SeedSource struct {
	destinations map[string]seedDestination
}

type seedDestination struct {
	Attractions []domain.Attraction `json:"attractions"`
	Lodgings    []domain.Lodging    `json:"lodgings"`
}

// LoadSeed reads a seed file of the form {"<destination>": {"attractions":
// [...], "lodgings": [...]}}.
func LoadSeed(path string) (*SeedSource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file %s: %w", path, err)
	}

	var byCity map[string]seedDestination
	if err := json.Unmarshal(raw, &byCity); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}

	dests := make(map[string]seedDestination, len(byCity))
	for city, d := range byCity {
		dests[normalizeCity(city)] = d
	}
	return &SeedSource{destinations: dests}, nil
}

// NewSeedSource builds a source directly from in-memory data.
func NewSeedSource(byCity map[string]struct {
	Attractions []domain.Attraction
	Lodgings    []domain.Lodging
}) *SeedSource {
	dests := make(map[string]seedDestination, len(byCity))
	for city, d := range byCity {
		dests[normalizeCity(city)] = seedDestination{Attractions: d.Attractions, Lodgings: d.Lodgings}
	}
	return &SeedSource{destinations: dests}
}

func (s *SeedSource) SearchAttractions(ctx context.Context, destination string, preferences []string, limit int) ([]domain.Attraction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d, ok := s.destinations[normalizeCity(destination)]
	if !ok {
		return nil, nil
	}

	out := make([]domain.Attraction, 0, len(d.Attractions))
	if len(preferences) > 0 {
		// Preferred categories first, everything else after.
		prefSet := map[string]bool{}
		for _, p := range preferences {
			prefSet[strings.ToLower(p)] = true
		}
		var rest []domain.Attraction
		for _, a := range d.Attractions {
			if prefSet[strings.ToLower(a.Category)] {
				out = append(out, a)
			} else {
				rest = append(rest, a)
			}
		}
		out = append(out, rest...)
	} else {
		out = append(out, d.Attractions...)
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *SeedSource) SearchLodging(ctx context.Context, destination string, near domain.Coordinates, limit int) ([]domain.Lodging, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d, ok := s.destinations[normalizeCity(destination)]
	if !ok {
		return nil, nil
	}

	out := make([]domain.Lodging, len(d.Lodgings))
	copy(out, d.Lodgings)

	if near.Valid() {
		sort.Slice(out, func(i, j int) bool {
			di := domain.HaversineMeters(out[i].Location, near)
			dj := domain.HaversineMeters(out[j].Location, near)
			if math.Abs(di-dj) > 1 {
				return di < dj
			}
			return out[i].ID < out[j].ID
		})
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func normalizeCity(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
