package order

import (
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const maxItemNameLength = 100

// MaxItemPrice is the largest unit price a numeric(8,2) column can hold.
var MaxItemPrice = decimal.RequireFromString("999999.99")

var ErrItemNameIsRequired = errs.NewValueIsRequiredError("item_name")

// Item is a line of an order. It has no identity or lifecycle of its own
// and is created and stored together with its order.
type Item struct {
	name      string
	unitPrice kernel.Money
	quantity  int
}

func NewItem(name string, unitPrice kernel.Money, quantity int) (Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Item{}, ErrItemNameIsRequired
	}
	if len(name) > maxItemNameLength {
		return Item{}, errs.NewValueIsOutOfRangeError("item_name length", len(name), 1, maxItemNameLength)
	}
	if unitPrice.Decimal().GreaterThan(MaxItemPrice) {
		return Item{}, errs.NewValueIsOutOfRangeError("price", unitPrice.String(), "0.00", MaxItemPrice.String())
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	return Item{name: name, unitPrice: unitPrice, quantity: quantity}, nil
}

func (i Item) Name() string {
	return i.name
}

func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

func (i Item) Quantity() int {
	return i.quantity
}
