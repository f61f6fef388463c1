package geo

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

func TestStaticProviderPinnedRoute(t *testing.T) {
	p := NewStaticProvider()
	from := domain.Coordinates{Lng: 116.40, Lat: 39.90}
	to := domain.Coordinates{Lng: 116.45, Lat: 39.92}

	want := ports.RouteResult{DistanceMeters: 7000, DurationSeconds: 1200, Cost: 18}
	p.SetRoute(from, to, domain.ModeDriving, want)

	got, err := p.Route(context.Background(), from, to, domain.ModeDriving, -1)
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}
	if got.DistanceMeters != want.DistanceMeters || got.Cost != want.Cost {
		t.Errorf("pinned route mismatch: %+v", got)
	}
}

func TestStaticProviderEstimatesUnknownPairs(t *testing.T) {
	p := NewStaticProvider()
	from := domain.Coordinates{Lng: 116.40, Lat: 39.90}
	to := domain.Coordinates{Lng: 116.42, Lat: 39.90}

	walk, err := p.Route(context.Background(), from, to, domain.ModeWalking, -1)
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}
	if walk.DistanceMeters <= 0 || walk.DurationSeconds <= 0 {
		t.Errorf("walking estimate not populated: %+v", walk)
	}
	if walk.Cost != 0 {
		t.Errorf("walking must be free, got %.2f", walk.Cost)
	}

	drive, err := p.Route(context.Background(), from, to, domain.ModeDriving, -1)
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}
	if drive.DurationSeconds >= walk.DurationSeconds {
		t.Error("driving should be faster than walking")
	}
	if drive.Cost <= 0 {
		t.Error("driving estimate should carry a cost")
	}

	// Same inputs, same outputs.
	repeat, _ := p.Route(context.Background(), from, to, domain.ModeDriving, -1)
	if !reflect.DeepEqual(repeat, drive) {
		t.Errorf("estimates must be deterministic: %+v vs %+v", repeat, drive)
	}
}

func TestStaticProviderUnreachable(t *testing.T) {
	p := NewStaticProvider()
	from := domain.Coordinates{Lng: 116.40, Lat: 39.90}
	to := domain.Coordinates{Lng: 116.42, Lat: 39.90}
	p.MarkUnreachable(from, to, domain.ModeTransit)

	if _, err := p.Route(context.Background(), from, to, domain.ModeTransit, -1); !errors.Is(err, domain.ErrRouteUnavailable) {
		t.Errorf("got %v, want ErrRouteUnavailable", err)
	}

	// Other modes stay reachable.
	if _, err := p.Route(context.Background(), from, to, domain.ModeDriving, -1); err != nil {
		t.Errorf("driving should still work: %v", err)
	}
}

func TestStaticProviderGeocode(t *testing.T) {
	p := NewStaticProvider()
	p.SetPlace("Beijing", domain.Coordinates{Lng: 116.40, Lat: 39.90})

	c, err := p.Geocode(context.Background(), "Beijing")
	if err != nil {
		t.Fatalf("Geocode failed: %v", err)
	}
	if c.Lng != 116.40 {
		t.Errorf("unexpected coordinates: %+v", c)
	}

	if _, err := p.Geocode(context.Background(), "Atlantis"); !errors.Is(err, domain.ErrInsufficientData) {
		t.Errorf("unknown place: got %v", err)
	}
}
