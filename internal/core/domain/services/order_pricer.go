package services

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Quote is the priced form of a cart, ready to become an order.
type Quote struct {
	Lines []order.Line
	Fees  order.Fees
	Total decimal.Decimal
}

// OrderPricer computes line subtotals and order totals. Fees are fixed per
// deployment and applied to every order.
type OrderPricer struct {
	fees order.Fees
}

func NewOrderPricer(fees order.Fees) (*OrderPricer, error) {
	if fees.Rider.IsNegative() || fees.SmallOrder.IsNegative() {
		return nil, errs.NewValueIsInvalidErrorWithCause("fees", fmt.Errorf("fees must not be negative: %+v", fees))
	}
	return &OrderPricer{fees: fees}, nil
}

// Fees returns the surcharges applied by the pricer.
func (p *OrderPricer) Fees() order.Fees {
	return p.fees
}

// Price builds one line per cart item and returns
// total = sum(unit price × quantity) + rider fee + small order fee.
func (p *OrderPricer) Price(items []order.CartItem) (Quote, error) {
	if len(items) == 0 {
		return Quote{}, errs.NewValueIsRequiredError("cart items")
	}

	lines := make([]order.Line, 0, len(items))
	var lineErrs []error
	for i, item := range items {
		line, err := order.NewLine(item.ProductID, item.Quantity, item.UnitPrice)
		if err != nil {
			lineErrs = append(lineErrs, fmt.Errorf("item %d: %w", i, err))
			continue
		}
		lines = append(lines, line)
	}
	if err := errors.Join(lineErrs...); err != nil {
		return Quote{}, err
	}

	total := order.SumSubtotals(lines).Add(p.fees.Rider).Add(p.fees.SmallOrder)
	return Quote{Lines: lines, Fees: p.fees, Total: total}, nil
}
