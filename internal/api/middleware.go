package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"trip-planner-service/internal/platform/obs"
)

// statusWriter captures the final HTTP status code and number of bytes
// written, distinguishing "handler returned" from "client received".
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Record implicit 200 responses when handlers write without calling WriteHeader.
func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// requestLogger logs end-to-end request duration and feeds the HTTP metrics.
func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w}

			next.ServeHTTP(sw, r)

			dur := time.Since(start)
			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = r.URL.Path
			}

			obs.ObserveHTTP(route, r.Method, sw.status, dur)
			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.RequestURI()).
				Str("request_id", chimw.GetReqID(r.Context())).
				Int("status", sw.status).
				Int("bytes", sw.bytes).
				Dur("dur", dur).
				Msg("request")
		})
	}
}
