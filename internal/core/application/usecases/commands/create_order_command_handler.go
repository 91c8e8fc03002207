package commands

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// DefaultTokenAttempts bounds how many tokens are tried before giving up.
const DefaultTokenAttempts = 5

// CreateOrderCommandHandler turns a customer's cart into a pending order.
//
// Parties are resolved, the cart is priced, the order is inserted under a
// fresh token and the cart rows are cleared, all in one transaction. A token
// collision only undoes the insert itself; the handler retries with a new
// token up to maxAttempts times.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, pricer, order.NewRandomTokenGenerator(), 5)
//	o, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, order.ErrEmptyCart):
//	    // nothing to check out
//	case errors.Is(err, order.ErrTokenGeneration):
//	    // retry later
//	}
type CreateOrderCommandHandler struct {
	uowFactory  CheckoutUoWFactory
	pricer      *services.OrderPricer
	tokens      order.TokenGenerator
	maxAttempts int
	now         func() time.Time
}

// NewCreateOrderCommandHandler creates a handler for checkout. A maxAttempts
// below one falls back to DefaultTokenAttempts.
func NewCreateOrderCommandHandler(
	uowFactory CheckoutUoWFactory,
	pricer *services.OrderPricer,
	tokens order.TokenGenerator,
	maxAttempts int,
) CreateOrderCommandHandler {
	if maxAttempts < 1 {
		maxAttempts = DefaultTokenAttempts
	}
	return CreateOrderCommandHandler{
		uowFactory:  uowFactory,
		pricer:      pricer,
		tokens:      tokens,
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
}

// Handle places the order and returns it with its id and token bound.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
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

	customerID := cmd.Customer().ID()
	restaurantID := cmd.RestaurantID()

	parties := uow.PartyDirectory()
	if err := ensureParty(ctx, parties, kernel.RoleCustomer, customerID); err != nil {
		return nil, err
	}
	if err := ensureParty(ctx, parties, kernel.RoleRestaurant, restaurantID); err != nil {
		return nil, err
	}

	cart := uow.CartRepository()
	items, err := cart.Items(ctx, customerID, restaurantID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, order.NewEmptyCartError(customerID, restaurantID)
	}

	quote, err := h.pricer.Price(items)
	if err != nil {
		return nil, err
	}

	payment, err := order.NewPayment(cmd.PaymentMethod(), cmd.PaymentStatus(), cmd.PaymentIntentID(), "")
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(customerID, restaurantID, quote.Lines, quote.Fees, quote.Total, payment, h.now().UTC())
	if err != nil {
		return nil, err
	}

	if err = h.insertWithFreshToken(ctx, uow.OrderRepository(), o); err != nil {
		return nil, err
	}

	if err = cart.Clear(ctx, customerID, restaurantID); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

func (h CreateOrderCommandHandler) insertWithFreshToken(ctx context.Context, repo ports.OrderRepository, o *order.Order) error {
	var lastErr error
	for range h.maxAttempts {
		token, err := h.tokens.NewToken()
		if err != nil {
			return err
		}
		if err = o.AssignToken(token); err != nil {
			return err
		}

		err = repo.Add(ctx, o)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ports.ErrTokenTaken) {
			return err
		}
		lastErr = err
	}

	return order.NewTokenGenerationError(h.maxAttempts, lastErr)
}

func ensureParty(ctx context.Context, parties ports.PartyDirectory, role kernel.Role, id kernel.ID) error {
	ok, err := parties.HasRole(ctx, id, role)
	if err != nil {
		return err
	}
	if !ok {
		return order.NewPartyNotFoundError(role, id)
	}
	return nil
}
