package queries

import (
	"context"

	"fooddelivery/internal/adapters/out/postgres/pgerr"

	"gorm.io/gorm"
)

type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).
		Table("orders AS o").
		Select("o.id::text AS id, c.name AS customer, r.name AS restaurant, a.name AS agent, o.status AS status").
		Joins("JOIN users c ON c.id = o.customer_id").
		Joins("JOIN restaurants r ON r.id = o.restaurant_id").
		Joins("LEFT JOIN users a ON a.id = o.agent_id")
	if s := query.Status(); s != nil {
		tx = tx.Where("o.status = ?", s.String())
	}

	summaries := make([]OrderSummary, 0)
	err := tx.
		Order("o.created_at DESC").
		Order("o.id").
		Limit(query.Limit()).
		Offset(query.Offset()).
		Scan(&summaries).Error
	if err != nil {
		return nil, pgerr.Classify("list orders", err)
	}
	return summaries, nil
}
