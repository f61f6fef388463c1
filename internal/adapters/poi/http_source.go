// Package poi supplies attraction and lodging candidates, either from an
// external place-search service or from a local seed file.
package poi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
)

// HTTPSource queries an external place-search service for attractions and
// lodging around a destination.
type HTTPSource struct {
	session *http.Client
	baseURL string
	apiKey  string
}

func NewHTTPSource(baseURL, apiKey string) (*HTTPSource, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("poi base url is empty")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("poi api key is empty")
	}
	return &HTTPSource{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
		apiKey:  apiKey,
	}, nil
}

type placeSearchResponse struct {
	Places []struct {
		ID       string  `json:"id"`
		Name     string  `json:"name"`
		Category string  `json:"category"`
		Rating   float64 `json:"rating"`
		Cost     float64 `json:"cost"`
		Hours    float64 `json:"visit_hours"`
		Location struct {
			Lng float64 `json:"lng"`
			Lat float64 `json:"lat"`
		} `json:"location"`
		OpenMinute  *int `json:"open_minute"`
		CloseMinute *int `json:"close_minute"`
	} `json:"places"`
}

func (s *HTTPSource) SearchAttractions(ctx context.Context, destination string, preferences []string, limit int) ([]domain.Attraction, error) {
	q := map[string]string{
		"city":  destination,
		"kind":  "attraction",
		"limit": fmt.Sprintf("%d", limit),
	}
	if len(preferences) > 0 {
		q["tags"] = strings.Join(preferences, ",")
	}

	var pr placeSearchResponse
	if err := s.getJSON(ctx, "/places/search", q, &pr); err != nil {
		return nil, fmt.Errorf("search attractions %q: %w", destination, err)
	}

	out := make([]domain.Attraction, 0, len(pr.Places))
	for _, p := range pr.Places {
		a := domain.Attraction{
			ID:         p.ID,
			Name:       p.Name,
			Location:   domain.Coordinates{Lng: p.Location.Lng, Lat: p.Location.Lat},
			Category:   p.Category,
			Rating:     p.Rating,
			VisitHours: p.Hours,
			Cost:       p.Cost,
		}
		if p.OpenMinute != nil && p.CloseMinute != nil {
			a.Open = &domain.TimeWindow{OpenMinute: *p.OpenMinute, CloseMinute: *p.CloseMinute}
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *HTTPSource) SearchLodging(ctx context.Context, destination string, near domain.Coordinates, limit int) ([]domain.Lodging, error) {
	q := map[string]string{
		"city":  destination,
		"kind":  "lodging",
		"limit": fmt.Sprintf("%d", limit),
	}
	if near.Valid() {
		q["near"] = fmt.Sprintf("%f,%f", near.Lng, near.Lat)
	}

	var pr placeSearchResponse
	if err := s.getJSON(ctx, "/places/search", q, &pr); err != nil {
		return nil, fmt.Errorf("search lodging %q: %w", destination, err)
	}

	out := make([]domain.Lodging, 0, len(pr.Places))
	for _, p := range pr.Places {
		out = append(out, domain.Lodging{
			ID:            p.ID,
			Name:          p.Name,
			Location:      domain.Coordinates{Lng: p.Location.Lng, Lat: p.Location.Lat},
			PricePerNight: p.Cost,
		})
	}
	return out, nil
}

func (s *HTTPSource) getJSON(ctx context.Context, path string, params map[string]string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	q := req.URL.Query()
	q.Set("key", s.apiKey)
	for k, v := range params {
		q.Set(k, v)
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := s.session.Do(req)
	if err != nil {
		obs.ObserveProvider("places", 0, time.Since(start))
		return err
	}
	defer resp.Body.Close()
	obs.ObserveProvider("places", resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("place service returned %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode place response: %w", err)
	}
	return nil
}
