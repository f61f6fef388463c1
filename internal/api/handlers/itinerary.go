package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"
)

// ItineraryHandler serves itinerary generation, optimization and the
// destination advisory endpoints.
type ItineraryHandler struct {
	Source    ports.CandidateSource
	Geo       ports.Geocoder
	Provider  ports.RouteProvider
	Composer  *services.Composer
	Optimizer *services.Optimizer
	Store     ports.TripStore
}

// Generate builds a complete itinerary from a destination, day count and
// budget. With save=true the plan is also persisted and returned with an id.
func (h *ItineraryHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req dto.GenerateRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	pool, lodgings, err := services.BuildCandidates(r.Context(), h.Source, req.Destination, req.Preferences, req.Days, req.Budget)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	it, err := h.Composer.Compose(r.Context(), services.ComposeRequest{
		Destination: req.Destination,
		Days:        req.Days,
		Budget:      req.Budget,
		StartDate:   req.StartDate,
		Attractions: pool,
		Lodgings:    lodgings,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	if req.Save && h.Store != nil {
		if _, err := h.Store.Save(r.Context(), it); err != nil {
			writeDomainError(w, r, err)
			return
		}
	}

	writeJSON(w, r, http.StatusOK, it)
}

// Optimize revises a plan toward a goal. The plan comes inline or, when
// trip_id is set, from the store; a stored plan is updated in place.
func (h *ItineraryHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	var req dto.OptimizeRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	goal, err := domain.ParseGoal(req.Goal)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	it := req.Itinerary
	fromStore := false
	if it == nil {
		if req.TripID == "" || h.Store == nil {
			writeError(w, r, http.StatusBadRequest, "either itinerary or trip_id is required")
			return
		}
		it, err = h.Store.Load(r.Context(), req.TripID)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		fromStore = true
	}

	out, err := h.Optimizer.Optimize(r.Context(), it, goal)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	if fromStore {
		if err := h.Store.Replace(r.Context(), req.TripID, out); err != nil {
			writeDomainError(w, r, err)
			return
		}
	}

	writeJSON(w, r, http.StatusOK, out)
}

// Hotels recommends lodging near a central location within a nightly budget.
func (h *ItineraryHandler) Hotels(w http.ResponseWriter, r *http.Request) {
	var req dto.HotelsRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	hotels, err := services.RecommendHotels(r.Context(), h.Source, h.Geo,
		req.Destination, req.CentralLocation, req.BudgetPerNight, req.Nights)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.HotelsResponse{Hotels: hotels})
}

// Transportation suggests intercity options between two cities.
func (h *ItineraryHandler) Transportation(w http.ResponseWriter, r *http.Request) {
	var req dto.TransportRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	options, err := services.SuggestTransportation(r.Context(), h.Geo, h.Provider,
		req.From, req.To, req.Date, req.Budget)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.TransportResponse{Options: options})
}

// Preview summarizes a destination before any itinerary is composed.
func (h *ItineraryHandler) Preview(w http.ResponseWriter, r *http.Request) {
	destination := strings.TrimSpace(chi.URLParam(r, "destination"))
	if destination == "" {
		writeError(w, r, http.StatusBadRequest, "destination is required")
		return
	}

	preview, err := services.PreviewDestination(r.Context(), h.Source, destination)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, preview)
}
