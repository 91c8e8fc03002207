package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/rider"
)

// RecordEarningCommandHandler appends one ledger row for a delivered order.
// The unique order_id in the ledger rejects a second payout for the same order.
type RecordEarningCommandHandler struct {
	uowFactory EarningsUoWFactory
	now        func() time.Time
}

func NewRecordEarningCommandHandler(uowFactory EarningsUoWFactory) RecordEarningCommandHandler {
	return RecordEarningCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle returns the stored ledger row.
//
// Returns:
//   - errs.ErrObjectNotFound when the order does not exist
//   - *order.UnauthorizedActorError when the rider did not deliver the order
//   - *rider.EarningsMismatchError when amount or expected total disagree with the order
//   - rider.ErrOrderNotDelivered when the order is not delivered yet
//   - rider.ErrEarningAlreadyRecorded on a second payout for the order
func (h RecordEarningCommandHandler) Handle(ctx context.Context, cmd RecordEarningCommand) (rider.Earning, error) {
	if err := cmd.Validate(); err != nil {
		return rider.Earning{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return rider.Earning{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return rider.Earning{}, err
	}

	earning, err := rider.NewEarning(cmd.Rider().ID(), o, cmd.Amount(), cmd.ExpectedTotal(), h.now().UTC())
	if err != nil {
		return rider.Earning{}, err
	}

	stored, err := uow.EarningsRepository().Add(ctx, earning)
	if err != nil {
		return rider.Earning{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return rider.Earning{}, err
	}

	return stored, nil
}
