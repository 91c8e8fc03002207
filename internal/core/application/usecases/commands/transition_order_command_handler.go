package commands

import (
	"context"

	"marketplace/internal/core/domain/model/order"
)

// TransitionOrderCommandHandler applies one status change under a row lock.
//
// The order is read with SELECT ... FOR UPDATE, so two transitions of the same
// order serialize and the second one is checked against the first one's
// result. A rider asking for Assigned goes through the claim rules.
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewTransitionOrderCommandHandler(uowFactory OrderUoWFactory) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the order in its new status.
//
// Returns:
//   - errs.ErrObjectNotFound when the order does not exist
//   - *order.UnauthorizedActorError when the actor may not drive this order
//   - *order.InvalidTransitionError when the edge is not legal
func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (*order.Order, error) {
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

	repo := uow.OrderRepository()
	o, err := repo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = o.Transition(cmd.Actor(), cmd.Target()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
