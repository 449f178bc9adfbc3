// Package orderrepo persists order aggregates and their items.
package orderrepo

import (
	"time"

	"fooddelivery/internal/adapters/out/postgres/restaurantrepo"
	"fooddelivery/internal/adapters/out/postgres/userrepo"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders table. The composite indexes serve the list and
// history reads (status, customer, restaurant, each with created_at).
// The belongs-to fields exist only to declare foreign keys and are never
// loaded.
type OrderDTO struct {
	ID           uuid.UUID                     `gorm:"type:uuid;primaryKey"`
	CustomerID   uuid.UUID                     `gorm:"type:uuid;not null;index:idx_orders_customer_created,priority:1"`
	Customer     *userrepo.UserDTO             `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	RestaurantID uuid.UUID                     `gorm:"type:uuid;not null;index:idx_orders_restaurant_created,priority:1"`
	Restaurant   *restaurantrepo.RestaurantDTO `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
	AgentID      *uuid.UUID                    `gorm:"type:uuid;index"`
	Agent        *userrepo.UserDTO             `gorm:"foreignKey:AgentID;constraint:OnDelete:SET NULL"`
	Status       string                        `gorm:"type:varchar(20);not null;index:idx_orders_status_created,priority:1"`
	TotalPrice   decimal.Decimal               `gorm:"type:numeric(10,2);not null"`
	CreatedAt    time.Time                     `gorm:"not null;index:idx_orders_status_created,priority:2;index:idx_orders_customer_created,priority:2;index:idx_orders_restaurant_created,priority:2"`
	Items        []OrderItemDTO                `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is a line of an order. Position keeps the order in which the
// items were supplied.
type OrderItemDTO struct {
	ID       int64           `gorm:"primaryKey;autoIncrement"`
	OrderID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position int             `gorm:"not null"`
	ItemName string          `gorm:"type:varchar(100);not null"`
	Price    decimal.Decimal `gorm:"type:numeric(8,2);not null"`
	Quantity int             `gorm:"not null;check:chk_order_items_quantity,quantity > 0"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	var agentID *uuid.UUID
	if id := o.AgentID(); id != nil {
		raw := id.Bytes()
		agentID = &raw
	}

	items := make([]OrderItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, OrderItemDTO{
			OrderID:  o.ID().Bytes(),
			Position: i,
			ItemName: item.Name(),
			Price:    item.UnitPrice().Decimal(),
			Quantity: item.Quantity(),
		})
	}

	return OrderDTO{
		ID:           o.ID().Bytes(),
		CustomerID:   o.CustomerID().Bytes(),
		RestaurantID: o.RestaurantID().Bytes(),
		AgentID:      agentID,
		Status:       o.Status().String(),
		TotalPrice:   o.TotalPrice().Decimal(),
		CreatedAt:    o.CreatedAt(),
		Items:        items,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	var agentID *kernel.UUID
	if dto.AgentID != nil {
		aID, agentErr := kernel.UUIDFromBytes((*dto.AgentID)[:])
		if agentErr != nil {
			return nil, agentErr
		}
		agentID = &aID
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	totalPrice, err := kernel.NewMoney(dto.TotalPrice)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		price, priceErr := kernel.NewMoney(itemDTO.Price)
		if priceErr != nil {
			return nil, priceErr
		}
		item, itemErr := order.NewItem(itemDTO.ItemName, price, itemDTO.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(id, customerID, restaurantID, agentID, status, totalPrice, items, dto.CreatedAt)
}
