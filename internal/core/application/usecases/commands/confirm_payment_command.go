package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrConfirmPaymentCommandIsNotConstructed = errors.New(
	"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
)

// ConfirmPaymentCommand carries a payment collaborator's verdict keyed by its
// own payment intent id.
type ConfirmPaymentCommand struct { //nolint:recvcheck //using for validation
	paymentIntentID string
	status          order.PaymentStatus
	chargeID        string

	guard guard.ConstructorGuard
}

func NewConfirmPaymentCommand(paymentIntentID string, status order.PaymentStatus, chargeID string) (ConfirmPaymentCommand, error) {
	command := ConfirmPaymentCommand{
		chargeID: strings.TrimSpace(chargeID),
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setPaymentIntentID(paymentIntentID),
		command.setStatus(status),
	); err != nil {
		return ConfirmPaymentCommand{}, err
	}

	return command, nil
}

func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

func (c ConfirmPaymentCommand) PaymentIntentID() string {
	return c.paymentIntentID
}

func (c ConfirmPaymentCommand) Status() order.PaymentStatus {
	return c.status
}

func (c ConfirmPaymentCommand) ChargeID() string {
	return c.chargeID
}

func (c *ConfirmPaymentCommand) setPaymentIntentID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errs.NewValueIsRequiredError("payment_intent_id")
	}

	c.paymentIntentID = id
	return nil
}

func (c *ConfirmPaymentCommand) setStatus(status order.PaymentStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.status = status
	return nil
}
