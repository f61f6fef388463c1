package handlers

import (
	"net/http"

	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

// RouteHandler exposes point-to-point routing directly.
type RouteHandler struct {
	Provider ports.RouteProvider
}

// Plan computes one route between two coordinates for a given mode and
// optional strategy.
func (h *RouteHandler) Plan(w http.ResponseWriter, r *http.Request) {
	var req dto.RoutePlanRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	mode, err := domain.ParseMode(req.Mode)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	strategy := -1
	if req.Strategy != nil {
		strategy = *req.Strategy
	}

	res, err := h.Provider.Route(r.Context(), req.Origin, req.Destination, mode, strategy)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	out := dto.RoutePlanResponse{
		Mode:            string(mode),
		DistanceMeters:  res.DistanceMeters,
		DurationSeconds: res.DurationSeconds,
		Cost:            res.Cost,
		Polyline:        res.Polyline,
	}
	if len(res.Lines) > 0 {
		out.Transit = &domain.TransitSummary{Lines: res.Lines, Transfers: res.Transfers}
	}

	writeJSON(w, r, http.StatusOK, out)
}

// Strategies lists the provider strategy codes the planner accepts.
func (h *RouteHandler) Strategies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, dto.StrategiesResponse{
		Driving: []dto.StrategyInfo{
			{Code: domain.DrivingSpeedPriority, Name: "speed priority"},
			{Code: domain.DrivingFeePriority, Name: "fee priority"},
			{Code: domain.DrivingDefault, Name: "default"},
			{Code: domain.DrivingAvoidCongestion, Name: "avoid congestion"},
			{Code: domain.DrivingNoHighway, Name: "no highway"},
		},
		Transit: []dto.StrategyInfo{
			{Code: domain.TransitRecommend, Name: "recommended"},
			{Code: domain.TransitCheapest, Name: "cheapest"},
			{Code: domain.TransitFewestTransfers, Name: "fewest transfers"},
			{Code: domain.TransitLeastWalking, Name: "least walking"},
		},
	})
}
