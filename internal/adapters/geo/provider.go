// Package geo implements the route-provider and geocoder ports against an
// external directions service.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
)

// Provider talks to the external directions service.
//
// It coordinates:
//   - TTL route caching (optional, Redis-backed)
//   - A client-side rate limit respecting the provider's quota
//   - External API calls with retry/backoff
//
// The provider is safe for concurrent use.
type Provider struct {
	session *http.Client
	apiKey  string
	baseURL string
	limiter *rate.Limiter
	cache   ports.RouteCache
	ttl     time.Duration
}

func NewProvider(baseURL, apiKey string, rps int, cache ports.RouteCache, ttl time.Duration) (*Provider, error) {
	if apiKey == "" {
		return nil, errors.New("geo api key is empty")
	}
	if baseURL == "" {
		return nil, errors.New("geo base url is empty")
	}
	if rps <= 0 {
		rps = 20
	}

	return &Provider{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: baseURL,
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
		cache:   cache,
		ttl:     ttl,
	}, nil
}

type directionsResponse struct {
	Routes []struct {
		DistanceMeters  int      `json:"distance"`
		DurationSeconds int      `json:"duration"`
		Cost            float64  `json:"cost"`
		Polyline        string   `json:"polyline"`
		Lines           []string `json:"lines,omitempty"`
		Transfers       int      `json:"transfers,omitempty"`
	} `json:"routes"`
}

// Route fetches one origin/destination/mode path, consulting the TTL cache
// first. A response with no routes maps to domain.ErrRouteUnavailable.
func (p *Provider) Route(
	ctx context.Context,
	origin, destination domain.Coordinates,
	mode domain.Mode,
	strategy int,
) (_ ports.RouteResult, err error) {
	defer obs.Time(ctx, "geo.Route")(&err)

	if !origin.Valid() || !destination.Valid() {
		return ports.RouteResult{}, fmt.Errorf("%w: coordinates out of range", domain.ErrInvalidRequest)
	}

	key := cacheKey(origin, destination, mode, strategy)
	if p.cache != nil {
		var cached ports.RouteResult
		hit, cerr := p.cache.Get(ctx, key, &cached)
		if cerr != nil {
			log.Warn().Err(cerr).Msg("route cache read failed")
		} else if hit {
			return cached, nil
		}
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return ports.RouteResult{}, fmt.Errorf("geo route: rate limit wait: %w", err)
	}

	endpoint := p.baseURL + modePath(mode)
	start := time.Now()

	resp, err := p.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := p.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("origin", fmt.Sprintf("%f,%f", origin.Lng, origin.Lat))
		q.Set("destination", fmt.Sprintf("%f,%f", destination.Lng, destination.Lat))
		if strategy >= 0 {
			q.Set("strategy", fmt.Sprintf("%d", strategy))
		}
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		obs.ObserveProvider("directions", statusOf(err), time.Since(start))
		return ports.RouteResult{}, fmt.Errorf("geo route %s: %w", mode, err)
	}
	defer resp.Body.Close()
	obs.ObserveProvider("directions", resp.StatusCode, time.Since(start))

	var dr directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return ports.RouteResult{}, fmt.Errorf("geo route: decode directions response: %w", err)
	}

	if len(dr.Routes) == 0 {
		return ports.RouteResult{}, fmt.Errorf("%w: no %s path between points", domain.ErrRouteUnavailable, mode)
	}

	r := dr.Routes[0]
	out := ports.RouteResult{
		DistanceMeters:  r.DistanceMeters,
		DurationSeconds: r.DurationSeconds,
		Cost:            r.Cost,
		Polyline:        r.Polyline,
		Lines:           r.Lines,
		Transfers:       r.Transfers,
	}

	if p.cache != nil {
		if cerr := p.cache.Set(ctx, key, out, p.ttl); cerr != nil {
			log.Warn().Err(cerr).Msg("route cache write failed")
		}
	}

	return out, nil
}

// modePath maps a domain mode onto the provider's endpoint layout.
func modePath(mode domain.Mode) string {
	switch mode {
	case domain.ModeTransit:
		return "/direction/transit/integrated"
	case domain.ModeCycling:
		return "/direction/bicycling"
	default:
		return "/direction/" + string(mode)
	}
}

func cacheKey(origin, destination domain.Coordinates, mode domain.Mode, strategy int) string {
	return fmt.Sprintf("route:%.6f,%.6f|%.6f,%.6f|%s|%d",
		origin.Lng, origin.Lat, destination.Lng, destination.Lat, mode, strategy)
}

func statusOf(err error) int {
	var he *httpStatusError
	if errors.As(err, &he) {
		return he.Code
	}
	return 0
}
