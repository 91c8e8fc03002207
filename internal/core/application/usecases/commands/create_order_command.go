package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrCustomerIsRequired = errors.New("only customers can place orders")
)

// CreateOrderCommand represents a checkout of the customer's cart for one restaurant.
//
// Example:
//
//	customer := kernel.MustNewActor(1, kernel.RoleCustomer)
//	cmd, err := NewCreateOrderCommand(customer, 2, "COD", "", order.PaymentUnknown)
//	if err != nil {
//	    return fmt.Errorf("invalid checkout: %w", err)
//	}
//
//	o, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
//	fmt.Printf("Order %s placed with token %s", o.ID(), o.Token())
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customer        kernel.Actor
	restaurantID    kernel.ID
	paymentMethod   string
	paymentIntentID string
	paymentStatus   order.PaymentStatus

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the checkout request. An empty payment
// method means cash on delivery and an unknown payment status means pending.
func NewCreateOrderCommand(
	customer kernel.Actor,
	restaurantID kernel.ID,
	paymentMethod, paymentIntentID string,
	paymentStatus order.PaymentStatus,
) (CreateOrderCommand, error) {
	command := CreateOrderCommand{
		paymentMethod:   paymentMethod,
		paymentIntentID: paymentIntentID,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setCustomer(customer),
		command.setRestaurantID(restaurantID),
		command.setPaymentStatus(paymentStatus),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Customer() kernel.Actor {
	return c.customer
}

func (c CreateOrderCommand) RestaurantID() kernel.ID {
	return c.restaurantID
}

func (c CreateOrderCommand) PaymentMethod() string {
	return c.paymentMethod
}

func (c CreateOrderCommand) PaymentIntentID() string {
	return c.paymentIntentID
}

func (c CreateOrderCommand) PaymentStatus() order.PaymentStatus {
	return c.paymentStatus
}

func (c *CreateOrderCommand) setCustomer(customer kernel.Actor) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	if !customer.Is(kernel.RoleCustomer) {
		return ErrCustomerIsRequired
	}

	c.customer = customer
	return nil
}

func (c *CreateOrderCommand) setRestaurantID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.restaurantID = id
	return nil
}

func (c *CreateOrderCommand) setPaymentStatus(status order.PaymentStatus) error {
	if status != order.PaymentUnknown {
		if err := status.Validate(); err != nil {
			return err
		}
	}

	c.paymentStatus = status
	return nil
}
