package domain

import (
	"fmt"
	"time"
)

// StopVisit schedules one attraction within a day.
type StopVisit struct {
	Attraction  Attraction `json:"attraction"`
	StartMinute int        `json:"start_minute"` // minutes from midnight
	Hours       float64    `json:"duration_hours"`
}

// StartClock formats the start time as HH:MM.
func (s StopVisit) StartClock() string {
	return fmt.Sprintf("%02d:%02d", s.StartMinute/60, s.StartMinute%60)
}

// EndMinute is the minute the visit finishes.
func (s StopVisit) EndMinute() int {
	return s.StartMinute + int(s.Hours*60)
}

// DaySchedule is one calendar day of the plan: ordered stops, the legs
// connecting them, an optional hotel and a meals budget.
//
// Invariant: stop start times are strictly increasing and non-overlapping,
// and every adjacent stop pair is connected by exactly one leg (zero when
// the stops are co-located).
type DaySchedule struct {
	Day         int            `json:"day"`
	Date        string         `json:"date,omitempty"`
	Stops       []StopVisit    `json:"attractions"`
	Hotel       *Lodging       `json:"hotel,omitempty"`
	Legs        []TransportLeg `json:"transportation"`
	MealsBudget float64        `json:"meals_budget"`
}

// TravelSeconds sums the day's leg durations.
func (d DaySchedule) TravelSeconds() int {
	total := 0
	for _, l := range d.Legs {
		total += l.DurationSeconds
	}
	return total
}

// CostBreakdown aggregates itinerary costs.
//
// Invariant: Total = Attractions + Hotels + Transportation + Meals and
// Remaining = budget - Total. Remaining may go negative, signaling an
// over-budget plan.
type CostBreakdown struct {
	Attractions    float64 `json:"attractions"`
	Hotels         float64 `json:"hotels"`
	Transportation float64 `json:"transportation"`
	Meals          float64 `json:"meals"`
	Total          float64 `json:"total"`
	Remaining      float64 `json:"remaining"`
}

// Itinerary is a complete multi-day plan. It is versioned by full
// replacement, never partial mutation, so the per-day invariants survive
// storage round-trips.
type Itinerary struct {
	ID          string        `json:"id,omitempty"`
	Destination string        `json:"destination"`
	Days        int           `json:"days"`
	Budget      float64       `json:"budget"`
	StartDate   string        `json:"start_date,omitempty"`
	Schedule    []DaySchedule `json:"daily_schedule"`
	Costs       CostBreakdown `json:"cost_breakdown"`
	PackingList []string      `json:"packing_list"`
	TravelTips  string        `json:"travel_tips"`
	Warnings    []string      `json:"warnings,omitempty"`
	CreatedAt   time.Time     `json:"created_at,omitempty"`
	UpdatedAt   time.Time     `json:"updated_at,omitempty"`
}

// StopCount returns the number of scheduled attraction visits.
func (it *Itinerary) StopCount() int {
	n := 0
	for _, d := range it.Schedule {
		n += len(d.Stops)
	}
	return n
}

// TravelSeconds sums leg durations across all days.
func (it *Itinerary) TravelSeconds() int {
	total := 0
	for _, d := range it.Schedule {
		total += d.TravelSeconds()
	}
	return total
}

// AverageRating returns the mean rating over all scheduled stops, or zero
// for an empty plan.
func (it *Itinerary) AverageRating() float64 {
	n := it.StopCount()
	if n == 0 {
		return 0
	}
	var sum float64
	for _, d := range it.Schedule {
		for _, s := range d.Stops {
			sum += s.Attraction.Rating
		}
	}
	return sum / float64(n)
}

// Goal is an enumerated optimization target for an existing itinerary.
type Goal string

const (
	GoalMinimizeCost        Goal = "minimize_cost"
	GoalMinimizeTravelTime  Goal = "minimize_travel_time"
	GoalMaximizeAttractions Goal = "maximize_attractions"
	GoalMaximizeRating      Goal = "maximize_rating"
)

// ParseGoal validates a client-supplied goal string.
func ParseGoal(s string) (Goal, error) {
	switch Goal(s) {
	case GoalMinimizeCost, GoalMinimizeTravelTime, GoalMaximizeAttractions, GoalMaximizeRating:
		return Goal(s), nil
	}
	return "", fmt.Errorf("%w: unknown goal %q", ErrInvalidRequest, s)
}
