package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrPickUpOrderCommandIsNotConstructed = errors.New(
	"PickUpOrderCommand must be created via NewPickUpOrderCommand constructor",
)

// PickUpOrderCommand marks an accepted order as collected from the
// restaurant.
type PickUpOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewPickUpOrderCommand(orderID kernel.UUID) (PickUpOrderCommand, error) {
	cmd := PickUpOrderCommand{guard: guard.NewConstructorGuard()}
	if err := setID(&cmd.orderID, orderID); err != nil {
		return PickUpOrderCommand{}, err
	}
	return cmd, nil
}

func (c PickUpOrderCommand) Validate() error {
	return c.guard.Validate(ErrPickUpOrderCommandIsNotConstructed)
}

func (c PickUpOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
