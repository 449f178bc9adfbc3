package user

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// Type distinguishes customers from delivery agents. Its string form is the
// value stored in users.user_type.
type Type string

const (
	Customer      Type = "customer"
	DeliveryAgent Type = "delivery_agent"
)

// ParseType accepts the stored string form.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

func (t Type) Validate() error {
	switch t {
	case Customer, DeliveryAgent:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("user_type", fmt.Errorf("%q is not a known user type", string(t)))
	}
}

func (t Type) String() string {
	return string(t)
}
