package order

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Line is one product row of an order. The subtotal is frozen at creation so
// later catalog price changes never alter a historical order.
type Line struct {
	id        kernel.ID
	productID kernel.ID
	quantity  int
	subtotal  decimal.Decimal
}

// NewLine prices quantity units of a product at unitPrice.
func NewLine(productID kernel.ID, quantity int, unitPrice decimal.Decimal) (Line, error) {
	if err := errors.Join(productID.Validate(), validateQuantity(quantity), validateAmount("unit_price", unitPrice)); err != nil {
		return Line{}, err
	}
	return Line{
		productID: productID,
		quantity:  quantity,
		subtotal:  unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}, nil
}

// RestoreLine rebuilds a persisted line without repricing it.
func RestoreLine(id, productID kernel.ID, quantity int, subtotal decimal.Decimal) (Line, error) {
	if err := errors.Join(
		id.Validate(),
		productID.Validate(),
		validateQuantity(quantity),
		validateAmount("subtotal", subtotal),
	); err != nil {
		return Line{}, err
	}
	return Line{id: id, productID: productID, quantity: quantity, subtotal: subtotal}, nil
}

func (l Line) ID() kernel.ID {
	return l.id
}

func (l Line) ProductID() kernel.ID {
	return l.productID
}

func (l Line) Quantity() int {
	return l.quantity
}

func (l Line) Subtotal() decimal.Decimal {
	return l.subtotal
}

func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidError("quantity")
	}
	return nil
}

func validateAmount(name string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errs.NewValueIsInvalidError(name)
	}
	return nil
}

// SumSubtotals adds up the line subtotals.
func SumSubtotals(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.subtotal)
	}
	return sum
}

// CartItem is a cart row joined with the catalog price at checkout time.
type CartItem struct {
	ProductID kernel.ID
	Quantity  int
	UnitPrice decimal.Decimal
}
