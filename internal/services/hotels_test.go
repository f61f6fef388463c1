package services

import (
	"context"
	"errors"
	"testing"

	"trip-planner-service/internal/domain"
)

func hotelFixtures() []domain.Lodging {
	return []domain.Lodging{
		{ID: "h1", Name: "Budget Stay", Location: domain.Coordinates{Lng: 116.41, Lat: 39.90}, PricePerNight: 180},
		{ID: "h2", Name: "Plaza", Location: domain.Coordinates{Lng: 116.40, Lat: 39.90}, PricePerNight: 620},
		{ID: "h3", Name: "Mid Inn", Location: domain.Coordinates{Lng: 116.43, Lat: 39.90}, PricePerNight: 350},
	}
}

func TestRecommendHotelsWithinBudget(t *testing.T) {
	p := newFakeProvider()
	p.places["Beijing"] = domain.Coordinates{Lng: 116.40, Lat: 39.90}
	src := &stubSource{lodgings: hotelFixtures()}

	hotels, err := RecommendHotels(context.Background(), src, p, "Beijing", "", 400, 2)
	if err != nil {
		t.Fatalf("RecommendHotels failed: %v", err)
	}

	if len(hotels) != 2 {
		t.Fatalf("expected 2 hotels within budget, got %d", len(hotels))
	}
	if hotels[0].ID != "h1" {
		t.Errorf("cheapest should rank first, got %q", hotels[0].ID)
	}
	for _, h := range hotels {
		if h.PricePerNight > 400 {
			t.Errorf("hotel %q over budget at %.0f", h.ID, h.PricePerNight)
		}
		if h.Reason == "" {
			t.Errorf("hotel %q missing recommendation reason", h.ID)
		}
	}
}

func TestRecommendHotelsFallsBackWhenNoneFit(t *testing.T) {
	p := newFakeProvider()
	p.places["Beijing"] = domain.Coordinates{Lng: 116.40, Lat: 39.90}
	src := &stubSource{lodgings: hotelFixtures()}

	hotels, err := RecommendHotels(context.Background(), src, p, "Beijing", "", 50, 1)
	if err != nil {
		t.Fatalf("RecommendHotels failed: %v", err)
	}

	// Nothing fits 50/night; the full ranked list still comes back.
	if len(hotels) != 3 {
		t.Fatalf("expected full list fallback, got %d", len(hotels))
	}
	if hotels[0].ID != "h1" {
		t.Errorf("cheapest should still rank first, got %q", hotels[0].ID)
	}
}

func TestRecommendHotelsLandmarkFallsBackToDestination(t *testing.T) {
	p := newFakeProvider()
	p.places["Beijing"] = domain.Coordinates{Lng: 116.40, Lat: 39.90}
	src := &stubSource{lodgings: hotelFixtures()}

	// "Unknown Square" cannot be geocoded but the destination can.
	hotels, err := RecommendHotels(context.Background(), src, p, "Beijing", "Unknown Square", 400, 1)
	if err != nil {
		t.Fatalf("RecommendHotels failed: %v", err)
	}
	if len(hotels) == 0 {
		t.Error("expected recommendations via destination fallback")
	}
}

func TestRecommendHotelsErrors(t *testing.T) {
	p := newFakeProvider()
	p.places["Beijing"] = domain.Coordinates{Lng: 116.40, Lat: 39.90}
	ctx := context.Background()

	if _, err := RecommendHotels(ctx, &stubSource{}, p, "Beijing", "", 100, 0); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("zero nights: got %v", err)
	}
	if _, err := RecommendHotels(ctx, &stubSource{}, p, "Beijing", "", -1, 1); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("negative budget: got %v", err)
	}
	if _, err := RecommendHotels(ctx, &stubSource{}, p, "Beijing", "", 100, 1); !errors.Is(err, domain.ErrInsufficientData) {
		t.Errorf("no lodging: got %v", err)
	}
}
