package user

import (
	"errors"
	"net/mail"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

const (
	// DefaultMaxLoad is the capacity given to agents registered without one.
	DefaultMaxLoad = 3

	maxNameLength   = 100
	maxMobileLength = 15
)

var (
	ErrNameIsRequired   = errs.NewValueIsRequiredError("name")
	ErrMobileIsRequired = errs.NewValueIsRequiredError("mobile")
	ErrEmailIsRequired  = errs.NewValueIsRequiredError("email")

	ErrUserIsNotConstructed = errors.New("User must be created via NewCustomer, NewDeliveryAgent or RestoreUser")
)

// User is the aggregate root for customers and delivery agents.
//
// Invariants:
//   - name, mobile and email are present and well formed
//   - maxLoad > 0
//   - 0 <= currentLoad <= maxLoad
//   - customers never hold load
type User struct {
	id          kernel.UUID
	name        string
	mobile      string
	email       string
	userType    Type
	currentLoad int
	maxLoad     int

	guard guard.ConstructorGuard
}

// NewCustomer registers a customer. Customers carry no load.
func NewCustomer(id kernel.UUID, name, mobile, email string) (*User, error) {
	return newUser(id, name, mobile, email, Customer, 0, DefaultMaxLoad)
}

// NewDeliveryAgent registers an idle agent able to hold maxLoad orders.
func NewDeliveryAgent(id kernel.UUID, name, mobile, email string, maxLoad int) (*User, error) {
	return newUser(id, name, mobile, email, DeliveryAgent, 0, maxLoad)
}

// RestoreUser rebuilds a user read from storage. The same invariants as for
// registration apply, so a row that violates the load bounds is reported
// instead of being loaded.
func RestoreUser(
	id kernel.UUID,
	name, mobile, email string,
	userType Type,
	currentLoad, maxLoad int,
) (*User, error) {
	return newUser(id, name, mobile, email, userType, currentLoad, maxLoad)
}

func newUser(
	id kernel.UUID,
	name, mobile, email string,
	userType Type,
	currentLoad, maxLoad int,
) (*User, error) {
	u := &User{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		u.setID(id),
		u.setName(name),
		u.setMobile(mobile),
		u.setEmail(email),
		u.setType(userType),
		u.setLoad(currentLoad, maxLoad),
	); err != nil {
		return nil, err
	}

	return u, nil
}

func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

func (u *User) ID() kernel.UUID {
	return u.id
}

func (u *User) Name() string {
	return u.name
}

func (u *User) Mobile() string {
	return u.mobile
}

func (u *User) Email() string {
	return u.email
}

func (u *User) Type() Type {
	return u.userType
}

// CurrentLoad is the number of orders the agent held when it was read.
func (u *User) CurrentLoad() int {
	return u.currentLoad
}

func (u *User) MaxLoad() int {
	return u.maxLoad
}

func (u *User) IsDeliveryAgent() bool {
	return u.userType == DeliveryAgent
}

// HasCapacity reports whether the agent can take one more order, as of the
// moment the aggregate was read.
func (u *User) HasCapacity() bool {
	return u.IsDeliveryAgent() && u.currentLoad < u.maxLoad
}

// UpdateProfile replaces the descriptive attributes. The load counters are
// untouched.
func (u *User) UpdateProfile(name, mobile, email string) error {
	candidate := *u
	if err := errors.Join(
		candidate.setName(name),
		candidate.setMobile(mobile),
		candidate.setEmail(email),
	); err != nil {
		return err
	}

	u.name, u.mobile, u.email = candidate.name, candidate.mobile, candidate.email
	return nil
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	if len(name) > maxNameLength {
		return errs.NewValueIsOutOfRangeError("name length", len(name), 1, maxNameLength)
	}
	u.name = name
	return nil
}

func (u *User) setMobile(mobile string) error {
	mobile = strings.TrimSpace(mobile)
	if mobile == "" {
		return ErrMobileIsRequired
	}
	if len(mobile) > maxMobileLength {
		return errs.NewValueIsOutOfRangeError("mobile length", len(mobile), 1, maxMobileLength)
	}
	u.mobile = mobile
	return nil
}

func (u *User) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailIsRequired
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	u.email = email
	return nil
}

func (u *User) setType(userType Type) error {
	if err := userType.Validate(); err != nil {
		return err
	}
	u.userType = userType
	return nil
}

func (u *User) setLoad(currentLoad, maxLoad int) error {
	if maxLoad <= 0 {
		return errs.NewValueIsOutOfRangeError("max_load", maxLoad, 1, "unbounded")
	}
	if currentLoad < 0 || currentLoad > maxLoad {
		return errs.NewValueIsOutOfRangeError("current_load", currentLoad, 0, maxLoad)
	}
	if u.userType == Customer && currentLoad != 0 {
		return errs.NewValueIsOutOfRangeError("current_load", currentLoad, 0, 0)
	}
	u.currentLoad = currentLoad
	u.maxLoad = maxLoad
	return nil
}
