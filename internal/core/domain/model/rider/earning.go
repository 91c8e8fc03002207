package rider

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	ErrEarningsMismatch       = errors.New("earning amount does not match the order")
	ErrEarningAlreadyRecorded = errors.New("earning already recorded for the order")
	ErrOrderNotDelivered      = errors.New("order is not delivered")
)

// EarningsMismatchError is returned when a client-supplied figure differs from
// what the order says.
type EarningsMismatchError struct {
	OrderID  kernel.ID
	Field    string
	Expected decimal.Decimal
	Actual   decimal.Decimal
}

func NewEarningsMismatchError(orderID kernel.ID, field string, expected, actual decimal.Decimal) *EarningsMismatchError {
	return &EarningsMismatchError{OrderID: orderID, Field: field, Expected: expected, Actual: actual}
}

func (e *EarningsMismatchError) Error() string {
	return fmt.Sprintf("%s: %s of order %s is %s, got %s", ErrEarningsMismatch, e.Field, e.OrderID, e.Expected, e.Actual)
}

func (e *EarningsMismatchError) Unwrap() error {
	return ErrEarningsMismatch
}

// Earning is one immutable ledger row: what a rider earned for one delivery.
type Earning struct {
	id       kernel.ID
	riderID  kernel.ID
	orderID  kernel.ID
	amount   decimal.Decimal
	earnedAt time.Time
}

// NewEarning validates a payout claim against the delivered order.
//
// The rider must be the order's rider and amount must equal the order's rider
// fee. When expectedTotal is set it must equal the order total. Only
// delivered orders pay out.
func NewEarning(
	riderID kernel.ID,
	o *order.Order,
	amount decimal.Decimal,
	expectedTotal *decimal.Decimal,
	earnedAt time.Time,
) (Earning, error) {
	if err := errors.Join(riderID.Validate(), o.Validate()); err != nil {
		return Earning{}, err
	}

	assigned := o.RiderID()
	if assigned == nil || *assigned != riderID {
		actor, _ := kernel.NewActor(riderID, kernel.RoleRider)
		return Earning{}, order.NewUnauthorizedActorError(o.ID(), actor, "rider did not deliver the order")
	}
	if !amount.Equal(o.Fees().Rider) {
		return Earning{}, NewEarningsMismatchError(o.ID(), "rider_fee", o.Fees().Rider, amount)
	}
	if expectedTotal != nil && !expectedTotal.Equal(o.TotalAmount()) {
		return Earning{}, NewEarningsMismatchError(o.ID(), "total_amount", o.TotalAmount(), *expectedTotal)
	}
	if o.Status() != order.Delivered {
		return Earning{}, fmt.Errorf("%w: order %s is %s", ErrOrderNotDelivered, o.ID(), o.Status())
	}
	if earnedAt.IsZero() {
		return Earning{}, errs.NewValueIsRequiredError("earned_at")
	}

	return Earning{riderID: riderID, orderID: o.ID(), amount: amount, earnedAt: earnedAt}, nil
}

func RestoreEarning(id, riderID, orderID kernel.ID, amount decimal.Decimal, earnedAt time.Time) (Earning, error) {
	if err := errors.Join(id.Validate(), riderID.Validate(), orderID.Validate()); err != nil {
		return Earning{}, err
	}
	return Earning{id: id, riderID: riderID, orderID: orderID, amount: amount, earnedAt: earnedAt}, nil
}

func (e Earning) ID() kernel.ID {
	return e.id
}

func (e Earning) RiderID() kernel.ID {
	return e.riderID
}

func (e Earning) OrderID() kernel.ID {
	return e.orderID
}

func (e Earning) Amount() decimal.Decimal {
	return e.amount
}

func (e Earning) EarnedAt() time.Time {
	return e.earnedAt
}
