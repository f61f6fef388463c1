package poi

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"trip-planner-service/internal/domain"
)

func seedFixture() *SeedSource {
	return NewSeedSource(map[string]struct {
		Attractions []domain.Attraction
		Lodgings    []domain.Lodging
	}{
		"Beijing": {
			Attractions: []domain.Attraction{
				{ID: "a1", Name: "Palace", Category: "history", Location: domain.Coordinates{Lng: 116.40, Lat: 39.92}},
				{ID: "a2", Name: "Market", Category: "shopping", Location: domain.Coordinates{Lng: 116.41, Lat: 39.90}},
				{ID: "a3", Name: "Temple", Category: "history", Location: domain.Coordinates{Lng: 116.39, Lat: 39.89}},
			},
			Lodgings: []domain.Lodging{
				{ID: "h1", Name: "Near Inn", Location: domain.Coordinates{Lng: 116.40, Lat: 39.91}, PricePerNight: 200},
				{ID: "h2", Name: "Far Inn", Location: domain.Coordinates{Lng: 116.55, Lat: 39.80}, PricePerNight: 150},
			},
		},
	})
}

func TestSeedSourcePreferenceOrdering(t *testing.T) {
	src := seedFixture()

	got, err := src.SearchAttractions(context.Background(), "beijing", []string{"history"}, 0)
	if err != nil {
		t.Fatalf("SearchAttractions failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 attractions, got %d", len(got))
	}
	if got[0].Category != "history" || got[1].Category != "history" {
		t.Errorf("preferred categories must come first: %v", got)
	}
}

func TestSeedSourceLimitAndUnknownCity(t *testing.T) {
	src := seedFixture()
	ctx := context.Background()

	got, err := src.SearchAttractions(ctx, "Beijing", nil, 2)
	if err != nil {
		t.Fatalf("SearchAttractions failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("limit not applied: got %d", len(got))
	}

	none, err := src.SearchAttractions(ctx, "Atlantis", nil, 0)
	if err != nil {
		t.Fatalf("SearchAttractions failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("unknown city should yield nothing, got %d", len(none))
	}
}

func TestSeedSourceLodgingSortsByDistance(t *testing.T) {
	src := seedFixture()

	got, err := src.SearchLodging(context.Background(), "Beijing", domain.Coordinates{Lng: 116.40, Lat: 39.91}, 0)
	if err != nil {
		t.Fatalf("SearchLodging failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 lodgings, got %d", len(got))
	}
	if got[0].ID != "h1" {
		t.Errorf("nearest lodging should come first, got %q", got[0].ID)
	}
}

func TestLoadSeedFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pois.json")

	raw := `{
		"Hangzhou": {
			"attractions": [
				{"id": "w1", "name": "West Lake", "category": "nature",
				 "rating": 4.9, "visit_hours": 3, "cost": 0,
				 "location": {"lng": 120.15, "lat": 30.25}}
			],
			"lodgings": [
				{"id": "h1", "name": "Lakeside", "price_per_night": 420,
				 "location": {"lng": 120.16, "lat": 30.25}}
			]
		}
	}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	src, err := LoadSeed(path)
	if err != nil {
		t.Fatalf("LoadSeed failed: %v", err)
	}

	got, err := src.SearchAttractions(context.Background(), "hangzhou", nil, 0)
	if err != nil {
		t.Fatalf("SearchAttractions failed: %v", err)
	}
	if len(got) != 1 || got[0].Name != "West Lake" {
		t.Errorf("seed content mismatch: %v", got)
	}

	if _, err := LoadSeed(filepath.Join(dir, "absent.json")); err == nil {
		t.Error("missing file must fail")
	}
}
