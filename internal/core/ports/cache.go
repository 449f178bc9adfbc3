package ports

import (
	"context"
	"time"
)

// Cache is a shared key-value store with per-key expiry. It backs the
// cached read views and the rate limiter.
type Cache interface {
	// Get returns found=false on a miss or an expired entry.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes the listed keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
}
