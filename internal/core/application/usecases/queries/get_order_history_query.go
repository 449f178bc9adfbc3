package queries

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
	"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
)

// GetOrderHistoryQuery lists every order of one customer, newest first.
type GetOrderHistoryQuery struct {
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderHistoryQuery(customerID kernel.UUID) (GetOrderHistoryQuery, error) {
	if err := customerID.Validate(); err != nil {
		return GetOrderHistoryQuery{}, err
	}
	return GetOrderHistoryQuery{customerID: customerID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

func (q GetOrderHistoryQuery) CustomerID() kernel.UUID {
	return q.customerID
}
