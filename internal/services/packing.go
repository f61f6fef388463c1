package services

import (
	"fmt"
	"strings"

	"trip-planner-service/internal/domain"
)

// packingList derives an advisory list from trip length and the categories
// on the schedule. Advisory only; nothing downstream depends on it.
func packingList(it *domain.Itinerary) []string {
	items := []string{
		"ID documents",
		"comfortable walking shoes",
		"phone charger and power bank",
	}

	if it.Days >= 4 {
		items = append(items, "laundry bag")
	}

	categories := map[string]bool{}
	for _, d := range it.Schedule {
		for _, s := range d.Stops {
			categories[strings.ToLower(s.Attraction.Category)] = true
		}
	}

	if categories["nature"] || categories["park"] || categories["hiking"] {
		items = append(items, "sunscreen", "rain jacket")
	}
	if categories["beach"] {
		items = append(items, "swimwear")
	}
	if categories["temple"] || categories["religious"] {
		items = append(items, "modest clothing for religious sites")
	}

	return items
}

// travelTips composes a short free-text summary for the traveler.
func travelTips(it *domain.Itinerary) string {
	walkKm := 0.0
	estimated := 0
	for _, d := range it.Schedule {
		for _, l := range d.Legs {
			if l.Mode == domain.ModeWalking {
				walkKm += float64(l.DistanceMeters) / 1000
			}
			if l.Estimated {
				estimated++
			}
		}
	}

	tips := fmt.Sprintf(
		"A %d-day plan for %s with %d stops. Expect roughly %.1f km on foot between nearby attractions; keep transit apps handy for the longer hops.",
		it.Days, it.Destination, it.StopCount(), walkKm,
	)
	if estimated > 0 {
		tips += fmt.Sprintf(" %d route(s) could not be confirmed with the routing service and use straight-line estimates.", estimated)
	}
	return tips
}
