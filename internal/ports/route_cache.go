package ports

import (
	"context"
	"time"
)

// RouteCache memoizes provider responses for identical
// origin/destination/mode lookups within a planning session's TTL.
type RouteCache interface {
	// Get unmarshals the cached value into dst and reports whether it existed.
	Get(ctx context.Context, key string, dst any) (bool, error)

	// Set stores v under key for ttl.
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
}
