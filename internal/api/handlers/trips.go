package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

// TripHandler serves CRUD over stored itineraries.
type TripHandler struct {
	Store ports.TripStore
}

// Create stores a client-supplied itinerary and returns it with an id.
func (h *TripHandler) Create(w http.ResponseWriter, r *http.Request) {
	var it domain.Itinerary
	if err := decodeStrict(r, &it); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if it.Destination == "" || it.Days < 1 {
		writeError(w, r, http.StatusBadRequest, "destination and days are required")
		return
	}

	if _, err := h.Store.Save(r.Context(), &it); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, &it)
}

// List returns stored trips, newest first. Supports destination, limit and
// offset query parameters.
func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	items, err := h.Store.List(r.Context(), q.Get("destination"), limit, offset)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.TripListResponse{Trips: make([]dto.TripSummary, 0, len(items))}
	for _, it := range items {
		res.Trips = append(res.Trips, dto.SummarizeTrip(it))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *TripHandler) Get(w http.ResponseWriter, r *http.Request) {
	it, err := h.Store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, it)
}

// Update replaces a stored itinerary wholesale.
func (h *TripHandler) Update(w http.ResponseWriter, r *http.Request) {
	var it domain.Itinerary
	if err := decodeStrict(r, &it); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.Store.Replace(r.Context(), id, &it); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, &it)
}

func (h *TripHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
