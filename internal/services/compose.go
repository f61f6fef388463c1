package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
)

// Daily touring envelope and budget policy.
const (
	dayStartMinute     = 9 * 60 // stops begin at 09:00
	touringHoursPerDay = 8.0
	mealsFraction      = 0.30
	maxTrimIterations  = 10

	defaultConcurrency  = 5
	defaultRouteTimeout = 8 * time.Second
)

// Composer is the scheduling core: it partitions candidates across days,
// orders stops within each day, inserts transportation legs, assigns
// lodging and allocates a meals budget, all inside the days/budget/time
// envelope. Each Compose call operates on its own state; a Composer is safe
// for concurrent use.
type Composer struct {
	Provider     ports.RouteProvider
	Concurrency  int
	RouteTimeout time.Duration
	Logger       zerolog.Logger
}

func (c *Composer) concurrency() int {
	if c.Concurrency > 0 {
		return c.Concurrency
	}
	return defaultConcurrency
}

func (c *Composer) routeTimeout() time.Duration {
	if c.RouteTimeout > 0 {
		return c.RouteTimeout
	}
	return defaultRouteTimeout
}

// ComposeRequest carries one planning call's inputs. Attractions come
// pre-scored from BuildCandidates.
type ComposeRequest struct {
	Destination string
	Days        int
	Budget      float64
	StartDate   string // YYYY-MM-DD, optional

	Attractions []ScoredAttraction
	Lodgings    []domain.Lodging

	// SelectionWeight overrides the default score-per-hour greedy weight.
	// The optimizer uses this to bias reselection toward its goal.
	SelectionWeight func(ScoredAttraction) float64
}

// Compose builds a complete itinerary. Budget infeasibility is never an
// error: after a bounded number of trim iterations the itinerary is
// returned with a feasibility warning and a negative remaining figure.
func (c *Composer) Compose(ctx context.Context, req ComposeRequest) (_ *domain.Itinerary, err error) {
	defer obs.Time(ctx, "compose")(&err)

	if req.Days < 1 {
		return nil, fmt.Errorf("%w: day count must be >= 1, got %d", domain.ErrInvalidRequest, req.Days)
	}
	if req.Budget < 0 {
		return nil, fmt.Errorf("%w: budget must be >= 0, got %.2f", domain.ErrInvalidRequest, req.Budget)
	}
	if len(req.Attractions) == 0 {
		return nil, fmt.Errorf("%w: empty candidate pool", domain.ErrInsufficientData)
	}
	for _, a := range req.Attractions {
		if !a.Location.Valid() {
			return nil, fmt.Errorf("%w: attraction %q has out-of-range coordinates", domain.ErrInvalidRequest, a.ID)
		}
	}

	selected := selectGreedy(req.Attractions, req.Days, req.SelectionWeight)
	centroid := poolCentroid(req.Attractions)

	buckets := partitionDays(selected, req.Days, centroid)
	for i := range buckets {
		buckets[i] = orderStops(buckets[i], centroid, metricDistance)
	}

	it, err := c.assemble(ctx, req, buckets)
	if err != nil {
		return nil, err
	}

	// Feasibility loop: shed the lowest score-per-cost stop and recompose
	// until the plan fits the budget or the iteration bound is hit.
	for iter := 0; iter < maxTrimIterations && it.Costs.Total > req.Budget; iter++ {
		day, idx, ok := worstValueStop(buckets)
		if !ok {
			break
		}

		buckets[day] = append(buckets[day][:idx], buckets[day][idx+1:]...)
		buckets[day] = orderStops(buckets[day], centroid, metricDistance)

		it, err = c.assemble(ctx, req, buckets)
		if err != nil {
			return nil, err
		}
	}

	feasible := it.Costs.Total <= req.Budget
	if !feasible {
		it.Warnings = append(it.Warnings, fmt.Sprintf(
			"projected cost %.2f exceeds budget %.2f; consider fewer stops or a higher budget",
			it.Costs.Total, req.Budget,
		))
	}
	obs.ItinerariesComposed.WithLabelValues(fmt.Sprintf("%t", feasible)).Inc()

	// Opening windows only push starts later, so a visit can still run past
	// closing. That is surfaced, not rescheduled.
	for _, d := range it.Schedule {
		for _, s := range d.Stops {
			if s.Attraction.Open != nil && !s.Attraction.Open.Fits(s.StartMinute, s.Hours) {
				it.Warnings = append(it.Warnings, fmt.Sprintf(
					"%s visit on day %d runs outside its opening hours", s.Attraction.Name, d.Day))
			}
		}
	}

	it.PackingList = packingList(it)
	it.TravelTips = travelTips(it)

	return it, nil
}

// assemble materializes the current buckets into a full itinerary:
// stop-to-stop legs, visit times, lodging, hotel legs, meals, costs.
func (c *Composer) assemble(ctx context.Context, req ComposeRequest, buckets [][]ScoredAttraction) (*domain.Itinerary, error) {
	// One bounded fan-out covers every stop pair across all days.
	var reqs []legRequest
	for _, bucket := range buckets {
		for i := 0; i+1 < len(bucket); i++ {
			reqs = append(reqs, legRequest{
				fromName: bucket[i].Name,
				toName:   bucket[i+1].Name,
				from:     bucket[i].Location,
				to:       bucket[i+1].Location,
			})
		}
	}

	legs, err := c.buildLegs(ctx, reqs)
	if err != nil {
		return nil, err
	}

	schedule := make([]domain.DaySchedule, len(buckets))
	li := 0
	for day, bucket := range buckets {
		n := 0
		if len(bucket) > 1 {
			n = len(bucket) - 1
		}
		schedule[day] = buildDay(day+1, req.StartDate, bucket, legs[li:li+n])
		li += n
	}

	assignLodging(schedule, req.Lodgings, req.Budget)

	if err := c.addHotelLegs(ctx, schedule); err != nil {
		return nil, err
	}

	for i := range schedule {
		schedule[i].MealsBudget = mealsFor(schedule[i], req.Budget, req.Days)
	}

	it := &domain.Itinerary{
		Destination: req.Destination,
		Days:        req.Days,
		Budget:      req.Budget,
		StartDate:   req.StartDate,
		Schedule:    schedule,
	}
	it.Costs = Aggregate(it)

	return it, nil
}

// selectGreedy fills the trip's touring-hours budget greedily by weight
// (score per visit hour by default) until the budget is filled or the pool
// is exhausted.
func selectGreedy(pool []ScoredAttraction, days int, weight func(ScoredAttraction) float64) []ScoredAttraction {
	if weight == nil {
		weight = func(a ScoredAttraction) float64 {
			return a.Score / visitHours(a)
		}
	}

	ranked := make([]ScoredAttraction, len(pool))
	copy(ranked, pool)
	sort.Slice(ranked, func(i, j int) bool {
		wi, wj := weight(ranked[i]), weight(ranked[j])
		if wi != wj {
			return wi > wj
		}
		return ranked[i].ID < ranked[j].ID
	})

	hoursBudget := touringHoursPerDay * float64(days)
	var used float64
	var out []ScoredAttraction

	for _, a := range ranked {
		h := visitHours(a)
		if used+h > hoursBudget {
			continue
		}
		out = append(out, a)
		used += h
	}

	return out
}

func visitHours(a ScoredAttraction) float64 {
	if a.VisitHours > 0 {
		return a.VisitHours
	}
	return 1
}

// buildDay lays stops onto the clock: the first begins at 09:00, each next
// after the preceding visit plus its travel leg. Opening windows push a
// start later, never earlier, so start times stay strictly increasing.
func buildDay(dayNum int, startDate string, bucket []ScoredAttraction, rawLegs []domain.TransportLeg) domain.DaySchedule {
	d := domain.DaySchedule{Day: dayNum, Stops: make([]domain.StopVisit, 0, len(bucket))}

	if startDate != "" {
		if t, err := time.Parse("2006-01-02", startDate); err == nil {
			d.Date = t.AddDate(0, 0, dayNum-1).Format("2006-01-02")
		}
	}

	minute := dayStartMinute
	for i, a := range bucket {
		if i > 0 {
			leg := rawLegs[i-1]
			// Zero-value legs mark co-located pairs and are dropped.
			if leg.DurationSeconds > 0 || leg.DistanceMeters > 0 {
				d.Legs = append(d.Legs, leg)
				minute += (leg.DurationSeconds + 59) / 60
			}
		}

		if a.Open != nil && minute < a.Open.OpenMinute {
			minute = a.Open.OpenMinute
		}

		h := visitHours(a)
		d.Stops = append(d.Stops, domain.StopVisit{
			Attraction:  a.Attraction,
			StartMinute: minute,
			Hours:       h,
		})
		minute += int(h * 60)
	}

	return d
}

// assignLodging picks one hotel per night, minimizing total distance to the
// day's stops within the nightly-price ceiling implied by the remaining
// budget. The checkout day carries no hotel; single-day trips get none.
// When no candidate fits the ceiling, the cheapest is reused for all nights
// and the feasibility loop deals with the overage.
func assignLodging(schedule []domain.DaySchedule, lodgings []domain.Lodging, budget float64) {
	nights := len(schedule) - 1
	if nights < 1 || len(lodgings) == 0 {
		return
	}

	var spent float64
	for _, d := range schedule {
		for _, s := range d.Stops {
			spent += s.Attraction.Cost
		}
		for _, l := range d.Legs {
			spent += l.Cost
		}
	}

	var ceiling float64
	if rem := budget - spent; rem > 0 {
		ceiling = rem / float64(nights)
	}

	eligible := make([]domain.Lodging, 0, len(lodgings))
	for _, l := range lodgings {
		if l.PricePerNight <= ceiling {
			eligible = append(eligible, l)
		}
	}
	if len(eligible) == 0 {
		cheapest := lodgings[0]
		for _, l := range lodgings[1:] {
			if l.PricePerNight < cheapest.PricePerNight ||
				(l.PricePerNight == cheapest.PricePerNight && l.ID < cheapest.ID) {
				cheapest = l
			}
		}
		eligible = []domain.Lodging{cheapest}
	}

	for i := 0; i < nights; i++ {
		pick := eligible[0]
		best := lodgingDistance(eligible[0], schedule[i])
		for _, l := range eligible[1:] {
			d := lodgingDistance(l, schedule[i])
			if d < best || (d == best && l.ID < pick.ID) {
				pick = l
				best = d
			}
		}

		h := pick
		schedule[i].Hotel = &h
	}
}

func lodgingDistance(l domain.Lodging, day domain.DaySchedule) float64 {
	var sum float64
	for _, s := range day.Stops {
		sum += domain.HaversineMeters(l.Location, s.Attraction.Location)
	}
	return sum
}

// addHotelLegs appends the evening hop from each day's last stop to its
// assigned hotel.
func (c *Composer) addHotelLegs(ctx context.Context, schedule []domain.DaySchedule) error {
	var reqs []legRequest
	var days []int

	for i := range schedule {
		d := &schedule[i]
		if d.Hotel == nil || len(d.Stops) == 0 {
			continue
		}
		last := d.Stops[len(d.Stops)-1]
		reqs = append(reqs, legRequest{
			fromName: last.Attraction.Name,
			toName:   d.Hotel.Name,
			from:     last.Attraction.Location,
			to:       d.Hotel.Location,
		})
		days = append(days, i)
	}
	if len(reqs) == 0 {
		return nil
	}

	legs, err := c.buildLegs(ctx, reqs)
	if err != nil {
		return err
	}

	for j, di := range days {
		if legs[j].DurationSeconds > 0 || legs[j].DistanceMeters > 0 {
			schedule[di].Legs = append(schedule[di].Legs, legs[j])
		}
	}

	return nil
}

// mealsFor allocates a fixed fraction of the day's residual budget after
// attractions, transport and lodging.
func mealsFor(d domain.DaySchedule, budget float64, days int) float64 {
	if days < 1 {
		return 0
	}
	perDay := budget / float64(days)

	var dayCost float64
	for _, s := range d.Stops {
		dayCost += s.Attraction.Cost
	}
	for _, l := range d.Legs {
		dayCost += l.Cost
	}
	if d.Hotel != nil {
		dayCost += d.Hotel.PricePerNight
	}

	residual := perDay - dayCost
	if residual <= 0 {
		return 0
	}
	return roundMoney(mealsFraction * residual)
}

// worstValueStop locates the stop with the lowest score-per-cost across all
// buckets. Free stops never get shed, and days are not trimmed below one
// stop.
func worstValueStop(buckets [][]ScoredAttraction) (day, idx int, ok bool) {
	worst := 0.0
	for bi, bucket := range buckets {
		if len(bucket) < 2 {
			continue
		}
		for i, a := range bucket {
			if a.Cost <= 0 {
				continue
			}
			v := a.Score / a.Cost
			if !ok || v < worst || (v == worst && a.ID < buckets[day][idx].ID) {
				day, idx, ok = bi, i, true
				worst = v
			}
		}
	}
	return day, idx, ok
}
