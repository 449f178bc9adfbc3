package userrepo

import (
	"context"
	"errors"

	"fooddelivery/internal/adapters/out/postgres/pgerr"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository implements ports.UserRepository using GORM.
type GormUserRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormUserRepository(db *gorm.DB, tracker aggregateTracker) *GormUserRepository {
	return &GormUserRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new user.
func (r *GormUserRepository) Add(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Classify("add user", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateProfile writes the descriptive columns only.
func (r *GormUserRepository) UpdateProfile(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&UserDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Updates(map[string]any{
			"name":   aggregate.Name(),
			"mobile": aggregate.Mobile(),
			"email":  aggregate.Email(),
		})
	if result.Error != nil {
		return pgerr.Classify("update user profile", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("userId", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get reads a user without locking.
func (r *GormUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	return r.take(r.db.WithContext(ctx), id)
}

// GetForUpdate reads a user under a blocking row lock.
func (r *GormUserRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*user.User, error) {
	return r.take(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// ReserveCandidate issues
//
//	SELECT ... FROM users
//	WHERE user_type = 'delivery_agent' AND current_load < max_load
//	ORDER BY current_load, id LIMIT 1
//	FOR UPDATE SKIP LOCKED
func (r *GormUserRepository) ReserveCandidate(ctx context.Context) (*user.User, error) {
	var dto UserDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("user_type = ? AND current_load < max_load", user.DeliveryAgent.String()).
		Order("current_load ASC").
		Order("id ASC").
		Take(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("agent", "with spare capacity")
	}
	if err != nil {
		return nil, pgerr.Classify("reserve agent", err)
	}

	return toDomain(dto)
}

// IncrementLoad runs current_load = current_load + 1 guarded by the
// capacity predicate, so concurrent increments can never overshoot.
func (r *GormUserRepository) IncrementLoad(ctx context.Context, id kernel.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&UserDTO{}).
		Where("id = ? AND user_type = ? AND current_load < max_load", id.Bytes(), user.DeliveryAgent.String()).
		UpdateColumn("current_load", gorm.Expr("current_load + 1"))
	if result.Error != nil {
		return pgerr.Classify("increment agent load", result.Error)
	}
	if result.RowsAffected == 0 {
		return r.explainMiss(ctx, id, errs.NewConflictError("agent", "at full capacity"))
	}
	return nil
}

// DecrementLoad runs current_load = current_load - 1 guarded by
// current_load > 0.
func (r *GormUserRepository) DecrementLoad(ctx context.Context, id kernel.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&UserDTO{}).
		Where("id = ? AND current_load > 0", id.Bytes()).
		UpdateColumn("current_load", gorm.Expr("current_load - 1"))
	if result.Error != nil {
		return pgerr.Classify("decrement agent load", result.Error)
	}
	if result.RowsAffected == 0 {
		return r.explainMiss(ctx, id, ports.ErrLoadUnderflow)
	}
	return nil
}

// explainMiss tells a missing or non-agent user apart from a failed guard.
func (r *GormUserRepository) explainMiss(ctx context.Context, id kernel.UUID, guardErr error) error {
	u, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if !u.IsDeliveryAgent() {
		return errs.NewObjectNotFoundError("agentId", id.String())
	}
	return guardErr
}

func (r *GormUserRepository) take(db *gorm.DB, id kernel.UUID) (*user.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto UserDTO
	if err := db.Take(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("userId", id.String())
		}
		return nil, pgerr.Classify("get user", err)
	}

	return toDomain(dto)
}
