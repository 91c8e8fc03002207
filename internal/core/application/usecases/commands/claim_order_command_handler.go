package commands

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
)

// ClaimOrderCommandHandler attaches a rider to an order, first come first served.
//
// The domain decides whether the claim is legal on the order as read, and the
// store writes it only if the row is still unassigned and claimable. When the
// guarded write misses, another request changed the order in between: the
// order is read again and the claim rules run on the fresh state, so the
// loser of a race gets *order.AlreadyClaimedError.
//
// Example:
//
//	o, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, order.ErrAlreadyClaimed) {
//	    // another rider was faster
//	}
type ClaimOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewClaimOrderCommandHandler(uowFactory OrderUoWFactory) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) (*order.Order, error) {
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
	o, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = o.Claim(cmd.Rider()); err != nil {
		return nil, err
	}

	err = repo.Claim(ctx, o)
	if errors.Is(err, ports.ErrConditionalWriteMissed) {
		return nil, h.explainMiss(ctx, repo, cmd, err)
	}
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

func (h ClaimOrderCommandHandler) explainMiss(
	ctx context.Context,
	repo ports.OrderRepository,
	cmd ClaimOrderCommand,
	missed error,
) error {
	current, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if err = current.Claim(cmd.Rider()); err != nil {
		return err
	}
	return fmt.Errorf("claim order %s: %w", cmd.OrderID(), missed)
}
