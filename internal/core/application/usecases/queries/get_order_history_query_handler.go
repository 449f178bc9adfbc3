package queries

import (
	"context"
	"time"

	"fooddelivery/internal/core/application/invalidation"
	"fooddelivery/internal/core/ports"

	"gorm.io/gorm"
)

const (
	OrderHistoryTTL = 60 * time.Second

	orderHistoryView = "order_history"
)

// GetOrderHistoryQueryHandler serves a customer's history through the cache.
// An unknown customer has an empty history, which is cached like any other.
type GetOrderHistoryQueryHandler struct {
	db    *gorm.DB
	cache ports.Cache
	ttl   time.Duration
}

// NewGetOrderHistoryQueryHandler uses OrderHistoryTTL when ttl is zero.
func NewGetOrderHistoryQueryHandler(db *gorm.DB, cache ports.Cache, ttl time.Duration) GetOrderHistoryQueryHandler {
	if ttl <= 0 {
		ttl = OrderHistoryTTL
	}
	return GetOrderHistoryQueryHandler{db: db, cache: cache, ttl: ttl}
}

func (h GetOrderHistoryQueryHandler) Handle(ctx context.Context, query GetOrderHistoryQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	customerID := query.CustomerID()
	return readThrough(ctx, h.cache, orderHistoryView, invalidation.OrderHistoryKey(customerID), h.ttl,
		func(ctx context.Context) ([]OrderView, error) {
			return loadOrderViews(ctx, h.db,
				"WHERE o.customer_id = ? ORDER BY o.created_at DESC, o.id", customerID.Bytes())
		},
	)
}
