// Package api wires HTTP handlers with their dependencies.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"trip-planner-service/internal/api/handlers"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"
)

// Deps carries everything the router needs. Handlers stay unaware of
// concrete adapters.
type Deps struct {
	Source    ports.CandidateSource
	Geo       ports.Geocoder
	Provider  ports.RouteProvider
	Composer  *services.Composer
	Optimizer *services.Optimizer
	Store     ports.TripStore
	Logger    zerolog.Logger
	Registry  *prometheus.Registry
}

// NewRouter is the API composition root.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(d.Logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))

	itin := &handlers.ItineraryHandler{
		Source:    d.Source,
		Geo:       d.Geo,
		Provider:  d.Provider,
		Composer:  d.Composer,
		Optimizer: d.Optimizer,
		Store:     d.Store,
	}
	route := &handlers.RouteHandler{Provider: d.Provider}
	trip := &handlers.TripHandler{Store: d.Store}

	r.Get("/health", handlers.Health)
	if d.Registry != nil {
		r.Method(http.MethodGet, "/metrics", obs.MetricsHandler(d.Registry))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/itinerary", func(r chi.Router) {
			r.Post("/generate/complete", itin.Generate)
			r.Post("/optimize", itin.Optimize)
			r.Post("/hotels/recommend", itin.Hotels)
			r.Post("/transportation/suggest", itin.Transportation)
			r.Get("/preview/{destination}", itin.Preview)
		})

		r.Post("/route/plan", route.Plan)
		r.Get("/route/strategies", route.Strategies)

		r.Route("/trips", func(r chi.Router) {
			r.Post("/", trip.Create)
			r.Get("/", trip.List)
			r.Get("/{id}", trip.Get)
			r.Put("/{id}", trip.Update)
			r.Delete("/{id}", trip.Delete)
		})
	})

	return r
}
