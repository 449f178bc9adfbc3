package order

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// Status is the lifecycle state of an order. Transitions only move forward:
//
//	Pending ──> Accepted ──> InTransit ──> Delivered
//	               │                          ▲
//	               └──────────────────────────┘
//
// Delivered is terminal. The string form is what is stored in orders.status.
type Status int

const (
	// Unknown is the zero value and never valid.
	Unknown Status = iota
	Pending
	Accepted
	InTransit
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Accepted:  "accepted",
		InTransit: "in_transit",
		Delivered: "delivered",
	}
}

// ParseStatus accepts the stored string form of a valid status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if s < Pending || s > Delivered {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered
}

// ValidateCanHaveAgent checks status against agent assignment. A pending
// order may or may not be pre-assigned; every later status requires an agent.
func (s Status) ValidateCanHaveAgent(hasAgent bool) error {
	if !hasAgent && s != Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status for an order without an agent", s),
		)
	}
	return nil
}

// Accept transitions Pending to Accepted.
func (s Status) Accept() (Status, error) {
	if s != Pending {
		return Unknown, transitionConflict(s, Accepted)
	}
	return Accepted, nil
}

// StartTransit transitions Accepted to InTransit.
func (s Status) StartTransit() (Status, error) {
	if s != Accepted {
		return Unknown, transitionConflict(s, InTransit)
	}
	return InTransit, nil
}

// Deliver transitions Accepted or InTransit to Delivered.
func (s Status) Deliver() (Status, error) {
	if s != Accepted && s != InTransit {
		return Unknown, transitionConflict(s, Delivered)
	}
	return Delivered, nil
}

func transitionConflict(from, to Status) error {
	return errs.NewConflictError("order", fmt.Sprintf("cannot move from %s to %s", from, to))
}
