package order

import (
	"errors"
	"slices"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned for an Order that did not come from
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
)

// Order is the aggregate root of the order lifecycle.
//
// Invariants:
//   - customer, restaurant and at least one item are present
//   - status is valid and only moves forward (see Status)
//   - every status after Pending has an agent
//   - once set, the agent never changes
type Order struct {
	id           kernel.UUID
	customerID   kernel.UUID
	restaurantID kernel.UUID

	// agentID is nil until the order is pre-assigned or accepted.
	agentID *kernel.UUID

	status     Status
	totalPrice kernel.Money
	items      []Item
	createdAt  time.Time

	isConstructed bool
}

// NewOrder creates a pending, unassigned order. totalPrice is taken as
// supplied by the caller.
func NewOrder(
	id, customerID, restaurantID kernel.UUID,
	totalPrice kernel.Money,
	items []Item,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		totalPrice:    totalPrice,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setIDs(id, customerID, restaurantID),
		o.setItems(items),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order read from storage.
func RestoreOrder(
	id, customerID, restaurantID kernel.UUID,
	agentID *kernel.UUID,
	status Status,
	totalPrice kernel.Money,
	items []Item,
	createdAt time.Time,
) (*Order, error) {
	o, err := NewOrder(id, customerID, restaurantID, totalPrice, items, createdAt)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	if agentID != nil {
		if err = agentID.Validate(); err != nil {
			return nil, err
		}
	}
	if err = status.ValidateCanHaveAgent(agentID != nil); err != nil {
		return nil, err
	}

	o.status = status
	o.agentID = agentID
	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// AgentID returns nil for an unassigned order.
func (o *Order) AgentID() *kernel.UUID {
	if o.agentID == nil {
		return nil
	}
	id := *o.agentID
	return &id
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) TotalPrice() kernel.Money {
	return o.totalPrice
}

func (o *Order) Items() []Item {
	return slices.Clone(o.items)
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// OccupiesAgent reports whether the order currently counts towards its
// agent's load: it has an agent and has not been delivered.
func (o *Order) OccupiesAgent() bool {
	return o.agentID != nil && !o.status.IsTerminal()
}

// PreAssign binds a pending, unassigned order to the agent reserved for it
// at creation time.
func (o *Order) PreAssign(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}
	if o.status != Pending {
		return transitionConflict(o.status, Pending)
	}
	if o.agentID != nil {
		return errs.NewConflictError("order", "already assigned to an agent")
	}

	o.agentID = &agentID
	return nil
}

// Accept moves a pending order to Accepted on behalf of agentID.
//
// An order pre-assigned to another agent is rejected. needsSlot reports
// whether the agent still has to be charged one unit of load: true when the
// order had no agent, false when agentID already held it from creation.
func (o *Order) Accept(agentID kernel.UUID) (needsSlot bool, err error) {
	if err = agentID.Validate(); err != nil {
		return false, err
	}

	next, err := o.status.Accept()
	if err != nil {
		return false, err
	}

	if o.agentID != nil && !o.agentID.IsEqual(agentID) {
		return false, errs.NewConflictError("order", "already assigned to another agent")
	}

	needsSlot = o.agentID == nil
	o.status = next
	o.agentID = &agentID
	return needsSlot, nil
}

// StartTransit marks an accepted order as picked up.
func (o *Order) StartTransit() error {
	next, err := o.status.StartTransit()
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

// Deliver completes an accepted or in-transit order. Delivering twice is a
// conflict, so the agent's load is released exactly once.
func (o *Order) Deliver() error {
	next, err := o.status.Deliver()
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

func (o *Order) setIDs(id, customerID, restaurantID kernel.UUID) error {
	if err := errors.Join(id.Validate(), customerID.Validate(), restaurantID.Validate()); err != nil {
		return err
	}
	o.id, o.customerID, o.restaurantID = id, customerID, restaurantID
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	for _, item := range items {
		if item.quantity <= 0 || item.name == "" {
			return errs.NewValueIsInvalidError("items")
		}
	}
	o.items = slices.Clone(items)
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created_at")
	}
	o.createdAt = createdAt.UTC().Truncate(time.Microsecond)
	return nil
}
