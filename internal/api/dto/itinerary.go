// Package dto defines the request and response shapes of the HTTP API.
package dto

import "trip-planner-service/internal/domain"

// GenerateRequest asks for a complete itinerary.
type GenerateRequest struct {
	Destination string   `json:"destination"`
	Days        int      `json:"days"`
	Budget      float64  `json:"budget"`
	StartDate   string   `json:"start_date,omitempty"`
	Preferences []string `json:"preferences,omitempty"`
	Save        bool     `json:"save,omitempty"`
}

// OptimizeRequest revises an itinerary toward a goal. Either the full plan
// or the id of a stored one must be given.
type OptimizeRequest struct {
	Goal      string            `json:"goal"`
	TripID    string            `json:"trip_id,omitempty"`
	Itinerary *domain.Itinerary `json:"itinerary,omitempty"`
}

// HotelsRequest asks for lodging recommendations near a central location.
type HotelsRequest struct {
	Destination     string  `json:"destination"`
	CentralLocation string  `json:"central_location,omitempty"`
	BudgetPerNight  float64 `json:"budget_per_night"`
	Nights          int     `json:"nights"`
}

type HotelsResponse struct {
	Hotels []domain.Lodging `json:"hotels"`
}

// TransportRequest asks for intercity transport options.
type TransportRequest struct {
	From   string  `json:"from_city"`
	To     string  `json:"to_city"`
	Date   string  `json:"date,omitempty"`
	Budget float64 `json:"budget"`
}

type TransportResponse struct {
	Options []domain.TransportLeg `json:"options"`
}
