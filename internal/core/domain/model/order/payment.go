package order

import (
	"fmt"
	"slices"
	"strings"

	"marketplace/internal/pkg/errs"
)

// DefaultPaymentMethod is cash on delivery.
const DefaultPaymentMethod = "COD"

const maxPaymentMethodLength = 20

// PaymentStatus mirrors what the payment collaborator last reported.
type PaymentStatus int

const (
	PaymentUnknown PaymentStatus = iota
	PaymentPending
	PaymentSucceeded
	PaymentFailed
	PaymentCancelled
	PaymentRefunded
)

var paymentStatusNames = map[PaymentStatus]string{
	PaymentPending:   "pending",
	PaymentSucceeded: "succeeded",
	PaymentFailed:    "failed",
	PaymentCancelled: "cancelled",
	PaymentRefunded:  "refunded",
}

var paymentEdges = map[PaymentStatus][]PaymentStatus{
	PaymentPending:   {PaymentSucceeded, PaymentFailed, PaymentCancelled},
	PaymentFailed:    {PaymentSucceeded, PaymentCancelled},
	PaymentSucceeded: {PaymentRefunded},
}

func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	for status, name := range paymentStatusNames {
		if name == raw {
			return status, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payment_status", fmt.Errorf("%q is not a valid payment status", raw))
}

func (s PaymentStatus) Validate() error {
	if _, ok := paymentStatusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment_status", fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

func (s PaymentStatus) String() string {
	if name, ok := paymentStatusNames[s]; ok {
		return name
	}
	return "unknown"
}

// CanBecome reports whether a payment report may move s to next. Repeating
// the current status is allowed so webhook redeliveries are harmless.
func (s PaymentStatus) CanBecome(next PaymentStatus) bool {
	return s == next || slices.Contains(paymentEdges[s], next)
}

// Payment groups the payment fields fixed at order creation.
type Payment struct {
	Method   string
	Status   PaymentStatus
	IntentID string
	ChargeID string
}

// NewPayment normalizes an empty method to cash on delivery and an unset
// status to pending.
func NewPayment(method string, status PaymentStatus, intentID, chargeID string) (Payment, error) {
	method = strings.TrimSpace(method)
	if method == "" {
		method = DefaultPaymentMethod
	}
	if len(method) > maxPaymentMethodLength {
		return Payment{}, errs.NewValueIsOutOfRangeError("payment_method", len(method), 1, maxPaymentMethodLength)
	}
	if status == PaymentUnknown {
		status = PaymentPending
	}
	if err := status.Validate(); err != nil {
		return Payment{}, err
	}
	return Payment{
		Method:   method,
		Status:   status,
		IntentID: strings.TrimSpace(intentID),
		ChargeID: strings.TrimSpace(chargeID),
	}, nil
}
