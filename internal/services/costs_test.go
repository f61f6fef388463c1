package services

import (
	"testing"

	"trip-planner-service/internal/domain"
)

func TestAggregateIdentitiesHoldExactly(t *testing.T) {
	it := &domain.Itinerary{
		Budget: 1000,
		Schedule: []domain.DaySchedule{
			{
				Stops: []domain.StopVisit{
					{Attraction: domain.Attraction{Cost: 33.5}},
					{Attraction: domain.Attraction{Cost: 19.999}},
				},
				Legs:        []domain.TransportLeg{{Cost: 12.3}},
				Hotel:       &domain.Lodging{PricePerNight: 299.99},
				MealsBudget: 45.5,
			},
			{
				Stops:       []domain.StopVisit{{Attraction: domain.Attraction{Cost: 80}}},
				MealsBudget: 30.25,
			},
		},
	}

	b := Aggregate(it)

	if b.Attractions != 133.5 {
		t.Errorf("attractions = %v, want 133.5", b.Attractions)
	}
	if b.Hotels != 299.99 {
		t.Errorf("hotels = %v, want 299.99", b.Hotels)
	}
	if b.Transportation != 12.3 {
		t.Errorf("transportation = %v, want 12.3", b.Transportation)
	}
	if b.Meals != 75.75 {
		t.Errorf("meals = %v, want 75.75", b.Meals)
	}

	// The identities must hold to the last bit, not within a tolerance.
	if b.Total != b.Attractions+b.Hotels+b.Transportation+b.Meals {
		t.Errorf("total identity broken: %v", b)
	}
	if b.Remaining != it.Budget-b.Total {
		t.Errorf("remaining identity broken: %v", b)
	}
}

func TestAggregateIsIdempotent(t *testing.T) {
	it := &domain.Itinerary{
		Budget: 500,
		Schedule: []domain.DaySchedule{{
			Stops:       []domain.StopVisit{{Attraction: domain.Attraction{Cost: 42.42}}},
			Legs:        []domain.TransportLeg{{Cost: 7.77}},
			MealsBudget: 20,
		}},
	}

	first := Aggregate(it)
	it.Costs = first
	second := Aggregate(it)

	if first != second {
		t.Errorf("aggregate not idempotent: %v then %v", first, second)
	}
}

func TestAggregateEmptyItinerary(t *testing.T) {
	it := &domain.Itinerary{Budget: 250}
	b := Aggregate(it)

	if b.Total != 0 {
		t.Errorf("empty plan total = %v", b.Total)
	}
	if b.Remaining != 250 {
		t.Errorf("empty plan remaining = %v, want 250", b.Remaining)
	}
}
