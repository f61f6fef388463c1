package dto

import "trip-planner-service/internal/domain"

// TripSummary is the list-view projection of a stored itinerary.
type TripSummary struct {
	ID          string  `json:"id"`
	Destination string  `json:"destination"`
	Days        int     `json:"days"`
	Budget      float64 `json:"budget"`
	Total       float64 `json:"total_cost"`
	StopCount   int     `json:"stop_count"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

type TripListResponse struct {
	Trips []TripSummary `json:"trips"`
}

func SummarizeTrip(it *domain.Itinerary) TripSummary {
	return TripSummary{
		ID:          it.ID,
		Destination: it.Destination,
		Days:        it.Days,
		Budget:      it.Budget,
		Total:       it.Costs.Total,
		StopCount:   it.StopCount(),
		CreatedAt:   it.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:   it.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
