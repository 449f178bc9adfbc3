package queries

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/adapters/out/postgres/pgerr"
	"fooddelivery/internal/core/application/invalidation"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

const (
	DetailTTL = 300 * time.Second

	agentDetailView      = "agent"
	restaurantDetailView = "restaurant"
)

// GetAgentDetailQueryHandler serves an agent profile through the cache.
// The cached load may lag by up to the TTL, since load changes alone do not
// invalidate it.
type GetAgentDetailQueryHandler struct {
	db    *gorm.DB
	cache ports.Cache
	ttl   time.Duration
}

// NewGetAgentDetailQueryHandler uses DetailTTL when ttl is zero.
func NewGetAgentDetailQueryHandler(db *gorm.DB, cache ports.Cache, ttl time.Duration) GetAgentDetailQueryHandler {
	if ttl <= 0 {
		ttl = DetailTTL
	}
	return GetAgentDetailQueryHandler{db: db, cache: cache, ttl: ttl}
}

func (h GetAgentDetailQueryHandler) Handle(ctx context.Context, query GetAgentDetailQuery) (AgentView, error) {
	if err := query.Validate(); err != nil {
		return AgentView{}, err
	}

	agentID := query.AgentID()
	return readThrough(ctx, h.cache, agentDetailView, invalidation.AgentKey(agentID), h.ttl,
		func(ctx context.Context) (AgentView, error) {
			var row agentRow
			err := h.db.WithContext(ctx).
				Table("users").
				Select(agentColumns).
				Where("id = ? AND user_type = ?", agentID.Bytes(), user.DeliveryAgent.String()).
				Take(&row).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return AgentView{}, errs.NewObjectNotFoundError("agentId", agentID.String())
			}
			if err != nil {
				return AgentView{}, pgerr.Classify("read agent", err)
			}
			return row.view()
		},
	)
}
