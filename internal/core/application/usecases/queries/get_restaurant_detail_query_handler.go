package queries

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/adapters/out/postgres/pgerr"
	"fooddelivery/internal/core/application/invalidation"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetRestaurantDetailQueryHandler struct {
	db    *gorm.DB
	cache ports.Cache
	ttl   time.Duration
}

// NewGetRestaurantDetailQueryHandler uses DetailTTL when ttl is zero.
func NewGetRestaurantDetailQueryHandler(db *gorm.DB, cache ports.Cache, ttl time.Duration) GetRestaurantDetailQueryHandler {
	if ttl <= 0 {
		ttl = DetailTTL
	}
	return GetRestaurantDetailQueryHandler{db: db, cache: cache, ttl: ttl}
}

func (h GetRestaurantDetailQueryHandler) Handle(
	ctx context.Context,
	query GetRestaurantDetailQuery,
) (RestaurantView, error) {
	if err := query.Validate(); err != nil {
		return RestaurantView{}, err
	}

	restaurantID := query.RestaurantID()
	return readThrough(ctx, h.cache, restaurantDetailView, invalidation.RestaurantKey(restaurantID), h.ttl,
		func(ctx context.Context) (RestaurantView, error) {
			var row struct {
				ID       uuid.UUID
				Name     string
				Location string
				Rating   float64
			}
			err := h.db.WithContext(ctx).
				Table("restaurants").
				Select("id, name, location, rating").
				Where("id = ?", restaurantID.Bytes()).
				Take(&row).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return RestaurantView{}, errs.NewObjectNotFoundError("restaurantId", restaurantID.String())
			}
			if err != nil {
				return RestaurantView{}, pgerr.Classify("read restaurant", err)
			}

			id, err := kernel.UUIDFromBytes(row.ID[:])
			if err != nil {
				return RestaurantView{}, err
			}
			return RestaurantView{ID: id, Name: row.Name, Location: row.Location, Rating: row.Rating}, nil
		},
	)
}
