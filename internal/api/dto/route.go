package dto

import "trip-planner-service/internal/domain"

// RoutePlanRequest asks for one point-to-point route.
type RoutePlanRequest struct {
	Origin      domain.Coordinates `json:"origin"`
	Destination domain.Coordinates `json:"destination"`
	Mode        string             `json:"mode"`
	Strategy    *int               `json:"strategy,omitempty"`
}

type RoutePlanResponse struct {
	Mode            string                 `json:"mode"`
	DistanceMeters  int                    `json:"distance_meters"`
	DurationSeconds int                    `json:"duration_seconds"`
	Cost            float64                `json:"cost"`
	Polyline        string                 `json:"polyline,omitempty"`
	Transit         *domain.TransitSummary `json:"transit,omitempty"`
}

// StrategyInfo describes one provider routing strategy.
type StrategyInfo struct {
	Code int    `json:"code"`
	Name string `json:"name"`
}

type StrategiesResponse struct {
	Driving []StrategyInfo `json:"driving"`
	Transit []StrategyInfo `json:"transit"`
}
