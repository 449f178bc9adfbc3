package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrRegisterUserCommandIsNotConstructed = errors.New(
	"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
)

// RegisterUserCommand registers a customer or a delivery agent. Profile
// fields are checked by the user aggregate itself.
type RegisterUserCommand struct { //nolint:recvcheck //using for validation
	userID   kernel.UUID
	name     string
	mobile   string
	email    string
	userType user.Type
	maxLoad  int

	guard guard.ConstructorGuard
}

// NewRegisterUserCommand treats maxLoad 0 as user.DefaultMaxLoad. maxLoad
// is ignored for customers.
func NewRegisterUserCommand(
	userID kernel.UUID,
	name, mobile, email string,
	userType user.Type,
	maxLoad int,
) (RegisterUserCommand, error) {
	cmd := RegisterUserCommand{
		name:   name,
		mobile: mobile,
		email:  email,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setID(&cmd.userID, userID),
		cmd.setUserType(userType),
		cmd.setMaxLoad(maxLoad),
	); err != nil {
		return RegisterUserCommand{}, err
	}

	return cmd, nil
}

func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

func (c RegisterUserCommand) UserID() kernel.UUID {
	return c.userID
}

func (c RegisterUserCommand) Name() string {
	return c.name
}

func (c RegisterUserCommand) Mobile() string {
	return c.mobile
}

func (c RegisterUserCommand) Email() string {
	return c.email
}

func (c RegisterUserCommand) UserType() user.Type {
	return c.userType
}

func (c RegisterUserCommand) MaxLoad() int {
	return c.maxLoad
}

func (c *RegisterUserCommand) setUserType(t user.Type) error {
	if err := t.Validate(); err != nil {
		return err
	}
	c.userType = t
	return nil
}

func (c *RegisterUserCommand) setMaxLoad(maxLoad int) error {
	switch {
	case maxLoad < 0:
		return errs.NewValueIsOutOfRangeError("max_load", maxLoad, 1, "unbounded")
	case maxLoad == 0:
		c.maxLoad = user.DefaultMaxLoad
	default:
		c.maxLoad = maxLoad
	}
	return nil
}
