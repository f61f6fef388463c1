package obs

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "planner", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "planner", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	ProviderRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "planner", Name: "provider_requests_total", Help: "Outbound geo-provider requests."},
		[]string{"endpoint", "status"},
	)
	ProviderLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "planner", Name: "provider_request_duration_seconds",
			Help:    "Outbound geo-provider request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "planner", Name: "cache_events_total", Help: "Cache hits/misses/sets."},
		[]string{"cache", "event"}, // event: hit|miss|set
	)
	ItinerariesComposed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "planner", Name: "itineraries_composed_total", Help: "Itineraries composed, by feasibility."},
		[]string{"feasible"},
	)
	EstimatedLegs = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "planner", Name: "estimated_legs_total", Help: "Legs built from straight-line fallback."},
	)
)

// InitRegistry registers all planner collectors on a fresh registry.
func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, ProviderRequests, ProviderLatency, CacheEvents, ItinerariesComposed, EstimatedLegs)
	return reg
}

// MetricsHandler serves the registry on /metrics.
func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveProvider(endpoint string, status int, dur time.Duration) {
	ProviderRequests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	ProviderLatency.WithLabelValues(endpoint).Observe(dur.Seconds())
}

func ObserveCache(cache, event string) {
	CacheEvents.WithLabelValues(cache, event).Inc()
}
