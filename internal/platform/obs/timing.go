package obs

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// Time logs the duration (and error, if any) of an operation when the
// returned func is deferred. Usage:
//
//	defer obs.Time(ctx, "compose.legs")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()
	reqID := middleware.GetReqID(ctx)

	return func(errp *error) {
		dur := time.Since(start)

		ev := log.Debug()
		if errp != nil && *errp != nil {
			ev = log.Warn().Err(*errp)
		}
		ev.Str("req_id", reqID).Str("op", name).Dur("duration", dur).Msg("op")
	}
}
