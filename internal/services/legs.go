package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
)

// Leg construction constants. Walking speed matches the provider's own
// fallback assumption; driving estimates apply a road-curvature factor over
// the straight line.
const (
	walkingThresholdMeters = 1500.0
	walkingSpeedMps        = 1.2
	drivingSpeedMps        = 10.0 // ~36 km/h urban average
	roadCurvatureFactor    = 1.3
	taxiCostPerKm          = 2.5
)

// legRequest identifies one origin/destination hop to resolve.
type legRequest struct {
	fromName string
	toName   string
	from     domain.Coordinates
	to       domain.Coordinates
}

// buildLegs resolves hops through the route provider with bounded fan-out.
// Requests for distinct pairs are independent; a failed pair degrades to a
// straight-line estimated leg instead of failing the batch. Only context
// cancellation aborts the whole build.
func (c *Composer) buildLegs(ctx context.Context, reqs []legRequest) (_ []domain.TransportLeg, err error) {
	defer obs.Time(ctx, "compose.legs")(&err)

	legs := make([]domain.TransportLeg, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency())

	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			legs[i] = c.legFor(gctx, req)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build legs: %w", err)
	}

	return legs, nil
}

// legFor resolves a single hop: walking below the short-distance threshold,
// driving otherwise, with transit as the second choice when no drivable
// path exists. Any provider failure falls back to an estimated leg.
func (c *Composer) legFor(ctx context.Context, req legRequest) domain.TransportLeg {
	straight := domain.HaversineMeters(req.from, req.to)
	if straight == 0 {
		// Co-located stops need no leg; callers drop zero-value legs.
		return domain.TransportLeg{}
	}

	mode := domain.ModeDriving
	if straight < walkingThresholdMeters {
		mode = domain.ModeWalking
	}

	rctx, cancel := context.WithTimeout(ctx, c.routeTimeout())
	defer cancel()

	res, err := c.Provider.Route(rctx, req.from, req.to, mode, -1)
	if err != nil && mode == domain.ModeDriving {
		// No drivable path; transit may still connect the pair.
		if tr, terr := c.Provider.Route(rctx, req.from, req.to, domain.ModeTransit, domain.TransitRecommend); terr == nil {
			res, err = tr, nil
			mode = domain.ModeTransit
		}
	}
	if err != nil {
		c.Logger.Warn().Err(err).
			Str("from", req.fromName).Str("to", req.toName).
			Msg("route lookup failed, using estimated leg")
		obs.EstimatedLegs.Inc()
		return estimatedLeg(req, mode, straight)
	}

	leg := domain.TransportLeg{
		Mode:            mode,
		FromName:        req.fromName,
		ToName:          req.toName,
		From:            req.from,
		To:              req.to,
		DistanceMeters:  res.DistanceMeters,
		DurationSeconds: res.DurationSeconds,
		Cost:            res.Cost,
		Polyline:        res.Polyline,
	}
	if len(res.Lines) > 0 {
		leg.Transit = &domain.TransitSummary{Lines: res.Lines, Transfers: res.Transfers}
	}

	return leg
}

// estimatedLeg builds a flagged straight-line fallback when the provider
// cannot serve a pair.
func estimatedLeg(req legRequest, mode domain.Mode, straightMeters float64) domain.TransportLeg {
	meters := straightMeters
	var seconds, cost float64

	switch mode {
	case domain.ModeWalking:
		seconds = meters / walkingSpeedMps
	default:
		mode = domain.ModeDriving
		meters *= roadCurvatureFactor
		seconds = meters / drivingSpeedMps
		cost = roundMoney(meters / 1000 * taxiCostPerKm)
	}

	return domain.TransportLeg{
		Mode:            mode,
		FromName:        req.fromName,
		ToName:          req.toName,
		From:            req.from,
		To:              req.to,
		DistanceMeters:  int(meters),
		DurationSeconds: int(seconds),
		Cost:            cost,
		Estimated:       true,
	}
}
