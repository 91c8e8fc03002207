package commands

import (
	"context"

	"marketplace/internal/core/domain/model/rider"
)

// RegisterRiderCommandHandler creates a rider profile, off duty until toggled.
type RegisterRiderCommandHandler struct {
	uowFactory RiderUoWFactory
}

func NewRegisterRiderCommandHandler(uowFactory RiderUoWFactory) RegisterRiderCommandHandler {
	return RegisterRiderCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h RegisterRiderCommandHandler) Handle(ctx context.Context, cmd RegisterRiderCommand) (*rider.Rider, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	r, err := rider.NewRider(cmd.Rider().ID(), cmd.VehicleType(), cmd.LicenseNumber(), cmd.Phone())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.RiderRepository().Add(ctx, r); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return r, nil
}
