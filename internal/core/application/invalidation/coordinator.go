// Package invalidation removes cached read views after the writes that
// made them stale have committed. Keys are always named explicitly.
package invalidation

import (
	"context"
	"log/slog"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/metrics"
)

func OrderHistoryKey(customerID kernel.UUID) string {
	return "order_history:" + customerID.String()
}

func AgentKey(agentID kernel.UUID) string {
	return "agent:" + agentID.String()
}

func RestaurantKey(restaurantID kernel.UUID) string {
	return "restaurant:" + restaurantID.String()
}

// KeysFor maps written aggregates to the view keys they affect, without
// duplicates. Customers map to nothing: no cached view shows them.
func KeysFor(aggregates ...any) []string {
	seen := make(map[string]struct{}, len(aggregates))
	keys := make([]string, 0, len(aggregates))
	add := func(key string) {
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}

	for _, a := range aggregates {
		switch v := a.(type) {
		case *order.Order:
			add(OrderHistoryKey(v.CustomerID()))
		case *user.User:
			if v.IsDeliveryAgent() {
				add(AgentKey(v.ID()))
			}
		case *restaurant.Restaurant:
			add(RestaurantKey(v.ID()))
		}
	}
	return keys
}

// Coordinator deletes keys on a best-effort basis. A failed delete is
// logged and counted; the entry then lives until its TTL.
type Coordinator struct {
	cache  ports.Cache
	logger *slog.Logger
}

func NewCoordinator(cache ports.Cache, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		cache:  cache,
		logger: logger.With("component", "cache_invalidation"),
	}
}

// Invalidate must be called only after the writing transaction committed.
func (c *Coordinator) Invalidate(ctx context.Context, aggregates ...any) {
	keys := KeysFor(aggregates...)
	if len(keys) == 0 {
		return
	}

	if err := c.cache.Delete(ctx, keys...); err != nil {
		metrics.CacheInvalidationFailuresTotal.Add(float64(len(keys)))
		c.logger.WarnContext(ctx, "cache invalidation failed",
			"keys", keys,
			"error", err,
		)
		return
	}
	c.logger.DebugContext(ctx, "cache keys invalidated", "keys", keys)
}
