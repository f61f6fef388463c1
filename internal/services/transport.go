package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

// SuggestTransportation proposes intercity legs between two cities, one per
// viable mode, cheapest first. Modes the provider cannot serve are skipped;
// if none can be served an estimated driving leg is returned so the caller
// always gets at least one option.
func SuggestTransportation(
	ctx context.Context,
	geo ports.Geocoder,
	provider ports.RouteProvider,
	fromCity, toCity, date string,
	budget float64,
) ([]domain.TransportLeg, error) {
	if strings.TrimSpace(fromCity) == "" || strings.TrimSpace(toCity) == "" {
		return nil, fmt.Errorf("%w: both cities must be non-empty", domain.ErrInvalidRequest)
	}
	if budget < 0 {
		return nil, fmt.Errorf("%w: budget must be >= 0", domain.ErrInvalidRequest)
	}

	origin, err := geo.Geocode(ctx, fromCity)
	if err != nil {
		return nil, fmt.Errorf("suggest transportation: geocode %q: %w", fromCity, err)
	}
	dest, err := geo.Geocode(ctx, toCity)
	if err != nil {
		return nil, fmt.Errorf("suggest transportation: geocode %q: %w", toCity, err)
	}

	attempts := []struct {
		mode     domain.Mode
		strategy int
	}{
		{domain.ModeTransit, domain.TransitCheapest},
		{domain.ModeTransit, domain.TransitFewestTransfers},
		{domain.ModeDriving, domain.DrivingDefault},
	}

	var legs []domain.TransportLeg
	seen := map[string]bool{}
	for _, at := range attempts {
		res, rerr := provider.Route(ctx, origin, dest, at.mode, at.strategy)
		if rerr != nil {
			log.Debug().Err(rerr).Str("mode", string(at.mode)).
				Str("from", fromCity).Str("to", toCity).
				Msg("intercity route attempt failed")
			continue
		}

		// Strategies often collapse to the same plan; keep one per shape.
		key := fmt.Sprintf("%s|%d|%d", at.mode, res.DistanceMeters, res.DurationSeconds)
		if seen[key] {
			continue
		}
		seen[key] = true

		leg := domain.TransportLeg{
			Mode:            at.mode,
			FromName:        fromCity,
			ToName:          toCity,
			From:            origin,
			To:              dest,
			DistanceMeters:  res.DistanceMeters,
			DurationSeconds: res.DurationSeconds,
			Cost:            res.Cost,
			Polyline:        res.Polyline,
		}
		if len(res.Lines) > 0 {
			leg.Transit = &domain.TransitSummary{Lines: res.Lines, Transfers: res.Transfers}
		}
		legs = append(legs, leg)
	}

	if len(legs) == 0 {
		straight := domain.HaversineMeters(origin, dest)
		legs = append(legs, estimatedLeg(legRequest{
			fromName: fromCity,
			toName:   toCity,
			from:     origin,
			to:       dest,
		}, domain.ModeDriving, straight))
	}

	sort.Slice(legs, func(i, j int) bool {
		if legs[i].Cost != legs[j].Cost {
			return legs[i].Cost < legs[j].Cost
		}
		return legs[i].DurationSeconds < legs[j].DurationSeconds
	})

	return legs, nil
}
