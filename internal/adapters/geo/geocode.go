package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
)

type geocodeResponse struct {
	Results []struct {
		Name     string `json:"name"`
		Location struct {
			Lng float64 `json:"lng"`
			Lat float64 `json:"lat"`
		} `json:"location"`
	} `json:"results"`
}

// Geocode resolves a place name to coordinates via the directions service's
// geocoding endpoint. The first result wins.
func (p *Provider) Geocode(ctx context.Context, place string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "geo.Geocode")(&err)

	if place == "" {
		return domain.Coordinates{}, fmt.Errorf("%w: place name is empty", domain.ErrInvalidRequest)
	}

	key := "geocode:" + place
	if p.cache != nil {
		var cached domain.Coordinates
		hit, cerr := p.cache.Get(ctx, key, &cached)
		if cerr == nil && hit {
			return cached, nil
		}
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode: rate limit wait: %w", err)
	}

	start := time.Now()
	resp, err := p.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := p.newRequest(ctx, http.MethodGet, p.baseURL+"/geocode/geo", nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("address", place)
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		obs.ObserveProvider("geocode", statusOf(err), time.Since(start))
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", place, err)
	}
	defer resp.Body.Close()
	obs.ObserveProvider("geocode", resp.StatusCode, time.Since(start))

	var gr geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode: decode response: %w", err)
	}

	if len(gr.Results) == 0 {
		return domain.Coordinates{}, fmt.Errorf("%w: no match for %q", domain.ErrInsufficientData, place)
	}

	coords := domain.Coordinates{Lng: gr.Results[0].Location.Lng, Lat: gr.Results[0].Location.Lat}
	if !coords.Valid() {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: result out of range", place)
	}

	if p.cache != nil {
		// Geocodes are stable; cache them for a full day.
		_ = p.cache.Set(ctx, key, coords, 24*time.Hour)
	}

	return coords, nil
}
