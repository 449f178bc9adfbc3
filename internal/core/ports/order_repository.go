package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates together with their items.
type OrderRepository interface {
	// Add inserts the order and all of its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes status and agent. Items are immutable after creation.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get reads an order and its items without locking.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate reads an order and holds its row lock until the
	// transaction ends. Lifecycle transitions lock the order before the
	// agent, always in that sequence.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
