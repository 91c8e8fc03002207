package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrRecordEarningCommandIsNotConstructed = errors.New(
	"RecordEarningCommand must be created via NewRecordEarningCommand constructor",
)

// RecordEarningCommand is a rider's payout claim for a delivered order.
// expectedTotal, when set, is cross-checked against the order total.
type RecordEarningCommand struct { //nolint:recvcheck //using for validation
	rider         kernel.Actor
	orderID       kernel.ID
	amount        decimal.Decimal
	expectedTotal *decimal.Decimal

	guard guard.ConstructorGuard
}

func NewRecordEarningCommand(
	rider kernel.Actor,
	orderID kernel.ID,
	amount decimal.Decimal,
	expectedTotal *decimal.Decimal,
) (RecordEarningCommand, error) {
	command := RecordEarningCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setRider(rider),
		command.setOrderID(orderID),
		command.setAmount(amount),
	); err != nil {
		return RecordEarningCommand{}, err
	}

	if expectedTotal != nil {
		total := *expectedTotal
		command.expectedTotal = &total
	}

	return command, nil
}

func (c RecordEarningCommand) Validate() error {
	return c.guard.Validate(ErrRecordEarningCommandIsNotConstructed)
}

func (c RecordEarningCommand) Rider() kernel.Actor {
	return c.rider
}

func (c RecordEarningCommand) OrderID() kernel.ID {
	return c.orderID
}

func (c RecordEarningCommand) Amount() decimal.Decimal {
	return c.amount
}

func (c RecordEarningCommand) ExpectedTotal() *decimal.Decimal {
	return c.expectedTotal
}

func (c *RecordEarningCommand) setRider(rider kernel.Actor) error {
	if err := rider.Validate(); err != nil {
		return err
	}
	if !rider.Is(kernel.RoleRider) {
		return ErrRiderIsRequired
	}

	c.rider = rider
	return nil
}

func (c *RecordEarningCommand) setOrderID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.orderID = id
	return nil
}

func (c *RecordEarningCommand) setAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errs.NewValueIsOutOfRangeError("amount", amount, 0, "unbounded")
	}

	c.amount = amount
	return nil
}
