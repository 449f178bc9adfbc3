package queries

import (
	"context"

	"fooddelivery/internal/adapters/out/postgres/pgerr"
	"fooddelivery/internal/core/domain/model/user"

	"gorm.io/gorm"
)

type ListAgentsQueryHandler struct {
	db *gorm.DB
}

func NewListAgentsQueryHandler(db *gorm.DB) ListAgentsQueryHandler {
	return ListAgentsQueryHandler{db: db}
}

func (h ListAgentsQueryHandler) Handle(ctx context.Context, query ListAgentsQuery) ([]AgentView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).
		Table("users").
		Select(agentColumns).
		Where("user_type = ?", user.DeliveryAgent.String())
	if query.OnlyAvailable() {
		tx = tx.Where("current_load < max_load")
	}

	var rows []agentRow
	if err := tx.Order("name").Order("id").Scan(&rows).Error; err != nil {
		return nil, pgerr.Classify("list agents", err)
	}

	agents := make([]AgentView, 0, len(rows))
	for _, r := range rows {
		v, err := r.view()
		if err != nil {
			return nil, err
		}
		agents = append(agents, v)
	}
	return agents, nil
}
