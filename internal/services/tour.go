package services

import (
	"math"

	"trip-planner-service/internal/domain"
)

// tourMetric scores one candidate hop during the in-day ordering.
type tourMetric func(from domain.Coordinates, to ScoredAttraction) float64

// metricDistance orders by straight-line distance (composer default).
func metricDistance(from domain.Coordinates, to ScoredAttraction) float64 {
	return domain.HaversineMeters(from, to.Location)
}

// metricDuration orders by estimated travel duration, accounting for the
// mode a leg over that hop would use. Used when re-optimizing for travel
// time.
func metricDuration(from domain.Coordinates, to ScoredAttraction) float64 {
	m := domain.HaversineMeters(from, to.Location)
	if m < walkingThresholdMeters {
		return m / walkingSpeedMps
	}
	return (m * roadCurvatureFactor) / drivingSpeedMps
}

// orderStops produces a greedy nearest-neighbor tour over one day's bucket,
// starting from the day's lodging (or the destination centroid when none is
// assigned yet). This is a heuristic, not an exact TSP solve. Ties break on
// smaller attraction id.
func orderStops(bucket []ScoredAttraction, start domain.Coordinates, metric tourMetric) []ScoredAttraction {
	if len(bucket) < 2 {
		out := make([]ScoredAttraction, len(bucket))
		copy(out, bucket)
		return out
	}

	remaining := make([]ScoredAttraction, len(bucket))
	copy(remaining, bucket)

	ordered := make([]ScoredAttraction, 0, len(bucket))
	current := start

	for len(remaining) > 0 {
		best := 0
		bestCost := math.MaxFloat64
		for i, a := range remaining {
			c := metric(current, a)
			if c < bestCost || (c == bestCost && a.ID < remaining[best].ID) {
				best = i
				bestCost = c
			}
		}

		ordered = append(ordered, remaining[best])
		current = remaining[best].Location
		remaining = append(remaining[:best], remaining[best+1:]...)
	}

	return ordered
}
