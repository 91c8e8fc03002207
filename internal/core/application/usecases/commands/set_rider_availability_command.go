package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrSetRiderAvailabilityCommandIsNotConstructed = errors.New(
	"SetRiderAvailabilityCommand must be created via NewSetRiderAvailabilityCommand constructor",
)

// SetRiderAvailabilityCommand switches a rider on or off duty. A nil
// available flips the current state.
type SetRiderAvailabilityCommand struct { //nolint:recvcheck //using for validation
	rider     kernel.Actor
	available *bool

	guard guard.ConstructorGuard
}

func NewSetRiderAvailabilityCommand(rider kernel.Actor, available *bool) (SetRiderAvailabilityCommand, error) {
	command := SetRiderAvailabilityCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setRider(rider); err != nil {
		return SetRiderAvailabilityCommand{}, err
	}
	if available != nil {
		value := *available
		command.available = &value
	}

	return command, nil
}

func (c SetRiderAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetRiderAvailabilityCommandIsNotConstructed)
}

func (c SetRiderAvailabilityCommand) Rider() kernel.Actor {
	return c.rider
}

// Available returns the requested state and false when the command toggles.
func (c SetRiderAvailabilityCommand) Available() (bool, bool) {
	if c.available == nil {
		return false, false
	}
	return *c.available, true
}

func (c *SetRiderAvailabilityCommand) setRider(rider kernel.Actor) error {
	if err := rider.Validate(); err != nil {
		return err
	}
	if !rider.Is(kernel.RoleRider) {
		return ErrRiderIsRequired
	}

	c.rider = rider
	return nil
}
