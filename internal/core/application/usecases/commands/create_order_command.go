package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
)

// ItemInput is one requested line of a new order.
type ItemInput struct {
	Name      string
	UnitPrice kernel.Money
	Quantity  int
}

// CreateOrderCommand places an order for a customer at a restaurant.
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), customerID, restaurantID,
//	    kernel.MustMoney("12.50"), []ItemInput{{Name: "ramen", UnitPrice: kernel.MustMoney("12.50"), Quantity: 1}})
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	customerID   kernel.UUID
	restaurantID kernel.UUID
	totalPrice   kernel.Money
	items        []order.Item

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates every field and every item and reports
// all problems at once.
func NewCreateOrderCommand(
	orderID, customerID, restaurantID kernel.UUID,
	totalPrice kernel.Money,
	items []ItemInput,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		totalPrice: totalPrice,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setID(&cmd.orderID, orderID),
		setID(&cmd.customerID, customerID),
		setID(&cmd.restaurantID, restaurantID),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c CreateOrderCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

func (c CreateOrderCommand) TotalPrice() kernel.Money {
	return c.totalPrice
}

func (c CreateOrderCommand) Items() []order.Item {
	out := make([]order.Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *CreateOrderCommand) setItems(inputs []ItemInput) error {
	if len(inputs) == 0 {
		return ErrItemsAreRequired
	}

	items := make([]order.Item, 0, len(inputs))
	var problems []error
	for _, in := range inputs {
		item, err := order.NewItem(in.Name, in.UnitPrice, in.Quantity)
		if err != nil {
			problems = append(problems, err)
			continue
		}
		items = append(items, item)
	}
	if len(problems) > 0 {
		return errors.Join(problems...)
	}

	c.items = items
	return nil
}

func setID(dst *kernel.UUID, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	*dst = id
	return nil
}
