package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrDeleteOrderCommandIsNotConstructed = errors.New(
		"DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
	)
	ErrAdminIsRequired = errors.New("only admins can delete orders")
)

// DeleteOrderCommand removes an order row for data cleanup. Customers and
// restaurants cancel instead.
type DeleteOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.ID
	admin   kernel.Actor

	guard guard.ConstructorGuard
}

func NewDeleteOrderCommand(orderID kernel.ID, admin kernel.Actor) (DeleteOrderCommand, error) {
	command := DeleteOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setAdmin(admin),
	); err != nil {
		return DeleteOrderCommand{}, err
	}

	return command, nil
}

func (c DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}

func (c DeleteOrderCommand) OrderID() kernel.ID {
	return c.orderID
}

func (c DeleteOrderCommand) Admin() kernel.Actor {
	return c.admin
}

func (c *DeleteOrderCommand) setOrderID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.orderID = id
	return nil
}

func (c *DeleteOrderCommand) setAdmin(admin kernel.Actor) error {
	if err := admin.Validate(); err != nil {
		return err
	}
	if !admin.Is(kernel.RoleAdmin) {
		return ErrAdminIsRequired
	}

	c.admin = admin
	return nil
}
