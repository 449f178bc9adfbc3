// Package userrepo persists customers and delivery agents, and implements
// the agent pool primitives used by dispatch.
package userrepo

import (
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// UserDTO is the users table. The (user_type, current_load) index serves
// candidate reservation; the check constraints keep the load bounds even
// against writers that bypass this package.
type UserDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(100);not null;index"`
	Mobile      string    `gorm:"type:varchar(15);not null;uniqueIndex"`
	Email       string    `gorm:"type:varchar(254);not null;uniqueIndex"`
	UserType    string    `gorm:"type:varchar(20);not null;index:idx_users_type_load,priority:1"`
	CurrentLoad int       `gorm:"not null;default:0;index:idx_users_type_load,priority:2;check:chk_users_current_load,current_load >= 0 AND current_load <= max_load"`
	MaxLoad     int       `gorm:"not null;default:3;check:chk_users_max_load,max_load > 0"`
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	return UserDTO{
		ID:          u.ID().Bytes(),
		Name:        u.Name(),
		Mobile:      u.Mobile(),
		Email:       u.Email(),
		UserType:    u.Type().String(),
		CurrentLoad: u.CurrentLoad(),
		MaxLoad:     u.MaxLoad(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userType, err := user.ParseType(dto.UserType)
	if err != nil {
		return nil, err
	}

	return user.RestoreUser(id, dto.Name, dto.Mobile, dto.Email, userType, dto.CurrentLoad, dto.MaxLoad)
}
