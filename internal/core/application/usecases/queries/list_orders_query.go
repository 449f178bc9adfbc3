package queries

import (
	"errors"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery pages through orders, newest first, optionally keeping
// only one status.
type ListOrdersQuery struct {
	status *order.Status
	limit  int
	offset int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery accepts an empty status for "any". A zero limit means
// DefaultListLimit.
func NewListOrdersQuery(status string, limit, offset int) (ListOrdersQuery, error) {
	q := ListOrdersQuery{guard: guard.NewConstructorGuard()}

	if status != "" {
		s, err := order.ParseStatus(status)
		if err != nil {
			return ListOrdersQuery{}, err
		}
		q.status = &s
	}

	switch {
	case limit == 0:
		q.limit = DefaultListLimit
	case limit < 0 || limit > MaxListLimit:
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxListLimit)
	default:
		q.limit = limit
	}

	if offset < 0 {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded")
	}
	q.offset = offset

	return q, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Status is nil when every status is listed.
func (q ListOrdersQuery) Status() *order.Status {
	return q.status
}

func (q ListOrdersQuery) Limit() int {
	return q.limit
}

func (q ListOrdersQuery) Offset() int {
	return q.offset
}

type OrderSummary struct {
	ID         string  `json:"id"`
	Customer   string  `json:"customer"`
	Restaurant string  `json:"restaurant"`
	Agent      *string `json:"agent"`
	Status     string  `json:"status"`
}
