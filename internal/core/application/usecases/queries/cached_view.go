// Package queries contains the read side: lock-free SQL reads over GORM
// that return flat read models. History and detail views are served
// through the shared cache and expire on their TTL unless a command
// invalidates them first.
package queries

import (
	"context"
	"encoding/json"
	"time"

	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/metrics"
)

// readThrough returns the cached value under key, or loads it and caches
// the result for ttl. The cache is advisory: read failures and undecodable
// entries fall back to load, and write failures are ignored.
func readThrough[T any](
	ctx context.Context,
	cache ports.Cache,
	view, key string,
	ttl time.Duration,
	load func(context.Context) (T, error),
) (T, error) {
	raw, found, err := cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.CacheLookupsTotal.WithLabelValues(view, "error").Inc()
	case found:
		var cached T
		if json.Unmarshal(raw, &cached) == nil {
			metrics.CacheLookupsTotal.WithLabelValues(view, "hit").Inc()
			return cached, nil
		}
		metrics.CacheLookupsTotal.WithLabelValues(view, "error").Inc()
	default:
		metrics.CacheLookupsTotal.WithLabelValues(view, "miss").Inc()
	}

	value, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if encoded, encErr := json.Marshal(value); encErr == nil {
		_ = cache.Set(ctx, key, encoded, ttl)
	}
	return value, nil
}
