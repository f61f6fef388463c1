package services

import (
	"context"
	"errors"
	"fmt"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
)

// Optimizer revises a composed itinerary toward a stated goal, reusing the
// composer's selection and feasibility machinery. It never returns a plan
// worse than its input on the targeted metric: when no improving
// rearrangement exists, the input comes back unchanged.
type Optimizer struct {
	Composer *Composer
	Source   ports.CandidateSource // enables reselection goals; may be nil
}

// Optimize produces a revised itinerary for the goal, or the input itself
// when no improvement was found.
func (o *Optimizer) Optimize(ctx context.Context, it *domain.Itinerary, goal domain.Goal) (_ *domain.Itinerary, err error) {
	defer obs.Time(ctx, "optimize")(&err)

	if _, err := domain.ParseGoal(string(goal)); err != nil {
		return nil, err
	}
	if it == nil || len(it.Schedule) == 0 {
		return it, nil
	}

	var cand *domain.Itinerary
	switch goal {
	case domain.GoalMinimizeTravelTime:
		cand, err = o.reorderForTravelTime(ctx, it)
	default:
		cand, err = o.recompose(ctx, it, goal)
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		// A degraded optimization pass is not fatal: the input plan is
		// already valid, so keep it.
		o.Composer.Logger.Warn().Err(err).Str("goal", string(goal)).
			Msg("optimization pass failed, keeping original itinerary")
		return it, nil
	}

	if cand != nil && improves(it, cand, goal) {
		return cand, nil
	}
	return it, nil
}

// recompose rebuilds the candidate pool and re-runs selection with a
// goal-biased weight, keeping the day count and budget envelope fixed.
func (o *Optimizer) recompose(ctx context.Context, it *domain.Itinerary, goal domain.Goal) (*domain.Itinerary, error) {
	if o.Source == nil {
		return nil, fmt.Errorf("optimize %s: no candidate source configured", goal)
	}

	pool, lodgings, err := BuildCandidates(ctx, o.Source, it.Destination, nil, it.Days, it.Budget)
	if err != nil {
		return nil, fmt.Errorf("optimize %s: rebuild candidates: %w", goal, err)
	}

	out, err := o.Composer.Compose(ctx, ComposeRequest{
		Destination:     it.Destination,
		Days:            it.Days,
		Budget:          it.Budget,
		StartDate:       it.StartDate,
		Attractions:     pool,
		Lodgings:        lodgings,
		SelectionWeight: weightFor(goal),
	})
	if err != nil {
		return nil, fmt.Errorf("optimize %s: recompose: %w", goal, err)
	}

	out.ID = it.ID
	return out, nil
}

// weightFor biases greedy selection toward the optimization goal.
func weightFor(goal domain.Goal) func(ScoredAttraction) float64 {
	switch goal {
	case domain.GoalMinimizeCost:
		// Cost efficiency: score per unit cost.
		return func(a ScoredAttraction) float64 { return a.Score / (1 + a.Cost) }
	case domain.GoalMaximizeAttractions:
		// Shorter and cheaper stops pack more visits into the envelope.
		return func(a ScoredAttraction) float64 { return 1 / (visitHours(a) * (1 + a.Cost/100)) }
	case domain.GoalMaximizeRating:
		return func(a ScoredAttraction) float64 { return a.Rating }
	}
	return nil
}

// reorderForTravelTime re-runs the within-day ordering using estimated leg
// duration as the tour metric, then rebuilds legs and visit times. Day
// boundaries, hotels and meals budgets stay fixed.
func (o *Optimizer) reorderForTravelTime(ctx context.Context, it *domain.Itinerary) (*domain.Itinerary, error) {
	var coords []domain.Coordinates
	for _, d := range it.Schedule {
		for _, s := range d.Stops {
			coords = append(coords, s.Attraction.Location)
		}
	}
	centroid := domain.Centroid(coords)

	ordered := make([][]ScoredAttraction, len(it.Schedule))
	var reqs []legRequest
	for i, d := range it.Schedule {
		bucket := make([]ScoredAttraction, 0, len(d.Stops))
		for _, s := range d.Stops {
			bucket = append(bucket, ScoredAttraction{Attraction: s.Attraction})
		}

		start := centroid
		if d.Hotel != nil {
			start = d.Hotel.Location
		}
		ordered[i] = orderStops(bucket, start, metricDuration)

		for j := 0; j+1 < len(ordered[i]); j++ {
			reqs = append(reqs, legRequest{
				fromName: ordered[i][j].Name,
				toName:   ordered[i][j+1].Name,
				from:     ordered[i][j].Location,
				to:       ordered[i][j+1].Location,
			})
		}
	}

	legs, err := o.Composer.buildLegs(ctx, reqs)
	if err != nil {
		return nil, err
	}

	schedule := make([]domain.DaySchedule, len(it.Schedule))
	li := 0
	for i, d := range it.Schedule {
		n := 0
		if len(ordered[i]) > 1 {
			n = len(ordered[i]) - 1
		}
		nd := buildDay(d.Day, it.StartDate, ordered[i], legs[li:li+n])
		li += n

		nd.Hotel = d.Hotel
		nd.MealsBudget = d.MealsBudget
		schedule[i] = nd
	}

	if err := o.Composer.addHotelLegs(ctx, schedule); err != nil {
		return nil, err
	}

	out := *it
	out.Schedule = schedule
	out.Costs = Aggregate(&out)
	return &out, nil
}

// improves applies the per-goal monotonic-improvement guarantee.
func improves(orig, cand *domain.Itinerary, goal domain.Goal) bool {
	switch goal {
	case domain.GoalMinimizeCost:
		return cand.Costs.Total < orig.Costs.Total
	case domain.GoalMinimizeTravelTime:
		return cand.TravelSeconds() < orig.TravelSeconds()
	case domain.GoalMaximizeAttractions:
		return cand.StopCount() > orig.StopCount()
	case domain.GoalMaximizeRating:
		return cand.AverageRating() > orig.AverageRating()
	}
	return false
}
