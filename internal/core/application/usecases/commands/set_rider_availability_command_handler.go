package commands

import (
	"context"

	"marketplace/internal/core/domain/model/rider"
)

// SetRiderAvailabilityCommandHandler toggles the on/off duty flag. The flag is
// independent of assignments: an on-duty rider may hold any number of orders.
type SetRiderAvailabilityCommandHandler struct {
	uowFactory RiderUoWFactory
}

func NewSetRiderAvailabilityCommandHandler(uowFactory RiderUoWFactory) SetRiderAvailabilityCommandHandler {
	return SetRiderAvailabilityCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h SetRiderAvailabilityCommandHandler) Handle(ctx context.Context, cmd SetRiderAvailabilityCommand) (*rider.Rider, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.RiderRepository()
	r, err := repo.Get(ctx, cmd.Rider().ID())
	if err != nil {
		return nil, err
	}

	if available, ok := cmd.Available(); ok {
		r.SetAvailable(available)
	} else {
		r.ToggleAvailability()
	}

	if err = repo.Update(ctx, r); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return r, nil
}
