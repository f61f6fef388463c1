package services

import (
	"math"

	"trip-planner-service/internal/domain"
)

// Aggregate recomputes the cost breakdown from the itinerary's stops, legs,
// lodging assignments and meals figures alone. Pure and idempotent: it runs
// after composition and again after optimization, and must agree with the
// itinerary's embedded state both times.
func Aggregate(it *domain.Itinerary) domain.CostBreakdown {
	var b domain.CostBreakdown

	for _, d := range it.Schedule {
		for _, s := range d.Stops {
			b.Attractions += s.Attraction.Cost
		}
		if d.Hotel != nil {
			b.Hotels += d.Hotel.PricePerNight
		}
		for _, l := range d.Legs {
			b.Transportation += l.Cost
		}
		b.Meals += d.MealsBudget
	}

	b.Attractions = roundMoney(b.Attractions)
	b.Hotels = roundMoney(b.Hotels)
	b.Transportation = roundMoney(b.Transportation)
	b.Meals = roundMoney(b.Meals)

	// Total and Remaining are derived without further rounding so the
	// breakdown identities hold exactly.
	b.Total = b.Attractions + b.Hotels + b.Transportation + b.Meals
	b.Remaining = it.Budget - b.Total

	return b
}

// roundMoney keeps currency math stable at two decimal places.
func roundMoney(v float64) float64 { return math.Round(v*100) / 100 }
