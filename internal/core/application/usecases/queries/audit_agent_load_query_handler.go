package queries

import (
	"context"

	"fooddelivery/internal/adapters/out/postgres/pgerr"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/user"

	"gorm.io/gorm"
)

type AuditAgentLoadQueryHandler struct {
	db *gorm.DB
}

func NewAuditAgentLoadQueryHandler(db *gorm.DB) AuditAgentLoadQueryHandler {
	return AuditAgentLoadQueryHandler{db: db}
}

// Handle reads without locks, so a transaction in flight can show up as a
// transient mismatch.
func (h AuditAgentLoadQueryHandler) Handle(ctx context.Context, query AuditAgentLoadQuery) ([]LoadMismatch, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	mismatches := make([]LoadMismatch, 0)
	err := h.db.WithContext(ctx).Raw(`
		SELECT u.id::text AS agent_id, u.name, u.current_load, COUNT(o.id) AS held_orders
		FROM users u
		LEFT JOIN orders o ON o.agent_id = u.id AND o.status <> ?
		WHERE u.user_type = ?
		GROUP BY u.id, u.name, u.current_load
		HAVING u.current_load <> COUNT(o.id)
		ORDER BY u.name, u.id
	`, order.Delivered.String(), user.DeliveryAgent.String()).Scan(&mismatches).Error
	if err != nil {
		return nil, pgerr.Classify("audit agent load", err)
	}
	return mismatches, nil
}
