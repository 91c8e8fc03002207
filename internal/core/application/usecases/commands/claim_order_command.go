package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrClaimOrderCommandIsNotConstructed = errors.New(
		"ClaimOrderCommand must be created via NewClaimOrderCommand constructor",
	)
	ErrRiderIsRequired = errors.New("actor must be a rider")
)

// ClaimOrderCommand represents a rider taking an unassigned order.
type ClaimOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.ID
	rider   kernel.Actor

	guard guard.ConstructorGuard
}

func NewClaimOrderCommand(orderID kernel.ID, rider kernel.Actor) (ClaimOrderCommand, error) {
	command := ClaimOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setRider(rider),
	); err != nil {
		return ClaimOrderCommand{}, err
	}

	return command, nil
}

func (c ClaimOrderCommand) Validate() error {
	return c.guard.Validate(ErrClaimOrderCommandIsNotConstructed)
}

func (c ClaimOrderCommand) OrderID() kernel.ID {
	return c.orderID
}

func (c ClaimOrderCommand) Rider() kernel.Actor {
	return c.rider
}

func (c *ClaimOrderCommand) setOrderID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.orderID = id
	return nil
}

func (c *ClaimOrderCommand) setRider(rider kernel.Actor) error {
	if err := rider.Validate(); err != nil {
		return err
	}
	if !rider.Is(kernel.RoleRider) {
		return ErrRiderIsRequired
	}

	c.rider = rider
	return nil
}
