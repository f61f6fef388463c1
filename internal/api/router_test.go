package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"trip-planner-service/internal/adapters/geo"
	"trip-planner-service/internal/adapters/poi"
	"trip-planner-service/internal/adapters/trips"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/services"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()

	provider := geo.NewStaticProvider()
	provider.SetPlace("Beijing", domain.Coordinates{Lng: 116.40, Lat: 39.90})
	provider.SetPlace("Tianjin", domain.Coordinates{Lng: 117.20, Lat: 39.08})

	var attractions []domain.Attraction
	for i := 0; i < 8; i++ {
		attractions = append(attractions, domain.Attraction{
			ID:         fmt.Sprintf("a%02d", i),
			Name:       fmt.Sprintf("Sight %d", i),
			Category:   "history",
			Rating:     4.0 + float64(i%3)*0.2,
			VisitHours: 2,
			Cost:       40,
			Location:   domain.Coordinates{Lng: 116.40 + float64(i)*0.008, Lat: 39.90},
		})
	}
	source := poi.NewSeedSource(map[string]struct {
		Attractions []domain.Attraction
		Lodgings    []domain.Lodging
	}{
		"Beijing": {
			Attractions: attractions,
			Lodgings: []domain.Lodging{
				{ID: "h1", Name: "Inn", Location: domain.Coordinates{Lng: 116.42, Lat: 39.90}, PricePerNight: 250},
			},
		},
	})

	composer := &services.Composer{Provider: provider, Logger: zerolog.Nop()}

	return NewRouter(Deps{
		Source:    source,
		Geo:       provider,
		Provider:  provider,
		Composer:  composer,
		Optimizer: &services.Optimizer{Composer: composer, Source: source},
		Store:     trips.NewMemoryStore(),
		Logger:    zerolog.Nop(),
	})
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response: %v (body: %s)", err, rec.Body.String())
	}
	return v
}

func TestHealthEndpoint(t *testing.T) {
	rec := doJSON(t, testRouter(t), http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := decode[map[string]string](t, rec); got["status"] != "ok" {
		t.Errorf("body = %v", got)
	}
}

func TestGenerateCompleteItinerary(t *testing.T) {
	h := testRouter(t)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/itinerary/generate/complete", map[string]any{
		"destination": "Beijing",
		"days":        3,
		"budget":      3000,
		"start_date":  "2026-05-01",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	it := decode[domain.Itinerary](t, rec)
	if len(it.Schedule) != 3 {
		t.Fatalf("expected 3 days, got %d", len(it.Schedule))
	}
	for _, d := range it.Schedule {
		if len(d.Stops) < 1 {
			t.Errorf("day %d has no stops", d.Day)
		}
	}
	if it.Costs.Total != it.Costs.Attractions+it.Costs.Hotels+it.Costs.Transportation+it.Costs.Meals {
		t.Error("cost identity broken in response")
	}
	if len(it.PackingList) == 0 {
		t.Error("packing list missing")
	}
}

func TestGenerateRejectsBadRequests(t *testing.T) {
	h := testRouter(t)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/itinerary/generate/complete", map[string]any{
		"destination": "Beijing", "days": 3, "budget": 3000, "surprise": true,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown field: status = %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/v1/itinerary/generate/complete", map[string]any{
		"destination": "Beijing", "days": 0, "budget": 3000,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("zero days: status = %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/v1/itinerary/generate/complete", map[string]any{
		"destination": "Atlantis", "days": 2, "budget": 3000,
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("unknown destination: status = %d", rec.Code)
	}
}

func TestOptimizeStoredTrip(t *testing.T) {
	h := testRouter(t)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/itinerary/generate/complete", map[string]any{
		"destination": "Beijing", "days": 2, "budget": 3000, "save": true,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("generate: status = %d", rec.Code)
	}
	saved := decode[domain.Itinerary](t, rec)
	if saved.ID == "" {
		t.Fatal("save=true must assign an id")
	}

	rec = doJSON(t, h, http.MethodPost, "/api/v1/itinerary/optimize", map[string]any{
		"goal": "minimize_travel_time", "trip_id": saved.ID,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("optimize: status = %d, body = %s", rec.Code, rec.Body.String())
	}

	out := decode[domain.Itinerary](t, rec)
	if out.TravelSeconds() > saved.TravelSeconds() {
		t.Errorf("travel time regressed: %d -> %d", saved.TravelSeconds(), out.TravelSeconds())
	}

	rec = doJSON(t, h, http.MethodPost, "/api/v1/itinerary/optimize", map[string]any{"goal": "fly"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad goal: status = %d", rec.Code)
	}
}

func TestHotelsAndTransportEndpoints(t *testing.T) {
	h := testRouter(t)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/itinerary/hotels/recommend", map[string]any{
		"destination": "Beijing", "budget_per_night": 400, "nights": 2,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("hotels: status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodPost, "/api/v1/itinerary/transportation/suggest", map[string]any{
		"from_city": "Beijing", "to_city": "Tianjin", "budget": 500,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("transportation: status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestPreviewEndpoint(t *testing.T) {
	h := testRouter(t)

	rec := doJSON(t, h, http.MethodGet, "/api/v1/itinerary/preview/Beijing", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	preview := decode[services.DestinationPreview](t, rec)
	if preview.RecommendedDays < 1 || preview.TopAttractionsCount != 8 {
		t.Errorf("preview out of shape: %+v", preview)
	}
}

func TestRouteEndpoints(t *testing.T) {
	h := testRouter(t)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/route/plan", map[string]any{
		"origin":      map[string]float64{"lng": 116.40, "lat": 39.90},
		"destination": map[string]float64{"lng": 116.45, "lat": 39.92},
		"mode":        "driving",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("plan: status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodPost, "/api/v1/route/plan", map[string]any{
		"origin":      map[string]float64{"lng": 116.40, "lat": 39.90},
		"destination": map[string]float64{"lng": 116.45, "lat": 39.92},
		"mode":        "hovercraft",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad mode: status = %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/route/strategies", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("strategies: status = %d", rec.Code)
	}
	body := decode[map[string][]map[string]any](t, rec)
	if len(body["driving"]) != 5 || len(body["transit"]) != 4 {
		t.Errorf("strategy lists out of shape: %v", body)
	}
}

func TestTripCRUD(t *testing.T) {
	h := testRouter(t)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/trips", &domain.Itinerary{
		Destination: "Beijing", Days: 2, Budget: 1500,
		Schedule: []domain.DaySchedule{{Day: 1}, {Day: 2}},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body = %s", rec.Code, rec.Body.String())
	}
	created := decode[domain.Itinerary](t, rec)
	if created.ID == "" {
		t.Fatal("create must assign an id")
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/trips", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status = %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/trips/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: status = %d", rec.Code)
	}

	created.Budget = 1800
	rec = doJSON(t, h, http.MethodPut, "/api/v1/trips/"+created.ID, &created)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodDelete, "/api/v1/trips/"+created.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: status = %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/trips/"+created.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete: status = %d", rec.Code)
	}
}
