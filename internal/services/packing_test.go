package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trip-planner-service/internal/domain"
)

func TestPackingListReactsToTripShape(t *testing.T) {
	short := &domain.Itinerary{Days: 2}
	assert.NotContains(t, packingList(short), "laundry bag")

	long := &domain.Itinerary{Days: 5}
	assert.Contains(t, packingList(long), "laundry bag")

	outdoors := &domain.Itinerary{
		Days: 2,
		Schedule: []domain.DaySchedule{{
			Stops: []domain.StopVisit{{Attraction: domain.Attraction{Category: "Nature"}}},
		}},
	}
	list := packingList(outdoors)
	assert.Contains(t, list, "sunscreen")
	assert.Contains(t, list, "rain jacket")
}

func TestTravelTipsMentionEstimatedLegs(t *testing.T) {
	it := &domain.Itinerary{
		Days:        1,
		Destination: "Beijing",
		Schedule: []domain.DaySchedule{{
			Stops: []domain.StopVisit{{}, {}},
			Legs: []domain.TransportLeg{
				{Mode: domain.ModeWalking, DistanceMeters: 1200},
				{Mode: domain.ModeDriving, DistanceMeters: 5000, Estimated: true},
			},
		}},
	}

	tips := travelTips(it)
	assert.Contains(t, tips, "Beijing")
	assert.Contains(t, tips, "1.2 km")
	assert.Contains(t, tips, "straight-line estimates")

	clean := &domain.Itinerary{Days: 1, Destination: "Beijing"}
	assert.NotContains(t, travelTips(clean), "straight-line")
}
