package services_test

import (
	"testing"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultFees() order.Fees {
	return order.Fees{Rider: decimal.Zero, SmallOrder: decimal.NewFromInt(29)}
}

func TestOrderPricer_Price(t *testing.T) {
	t.Run("should add subtotals and fees", func(t *testing.T) {
		pricer, err := services.NewOrderPricer(defaultFees())
		require.NoError(t, err)

		quote, err := pricer.Price([]order.CartItem{
			{ProductID: 1, Quantity: 2, UnitPrice: decimal.RequireFromString("50.00")},
			{ProductID: 2, Quantity: 1, UnitPrice: decimal.RequireFromString("30.00")},
		})
		require.NoError(t, err)

		require.Len(t, quote.Lines, 2)
		assert.True(t, decimal.RequireFromString("100.00").Equal(quote.Lines[0].Subtotal()))
		assert.True(t, decimal.RequireFromString("30.00").Equal(quote.Lines[1].Subtotal()))
		assert.True(t, decimal.RequireFromString("159.00").Equal(quote.Total), quote.Total.String())
	})

	t.Run("should reconcile lines and fees with the total", func(t *testing.T) {
		pricer, err := services.NewOrderPricer(order.Fees{Rider: decimal.RequireFromString("19.50"), SmallOrder: decimal.NewFromInt(29)})
		require.NoError(t, err)

		quote, err := pricer.Price([]order.CartItem{
			{ProductID: 1, Quantity: 3, UnitPrice: decimal.RequireFromString("9.99")},
		})
		require.NoError(t, err)

		reconciled := order.SumSubtotals(quote.Lines).Add(quote.Fees.Rider).Add(quote.Fees.SmallOrder)
		assert.True(t, reconciled.Equal(quote.Total))
	})

	t.Run("should reject empty carts and invalid items", func(t *testing.T) {
		pricer, err := services.NewOrderPricer(defaultFees())
		require.NoError(t, err)

		_, err = pricer.Price(nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = pricer.Price([]order.CartItem{{ProductID: 1, Quantity: 0, UnitPrice: decimal.NewFromInt(1)}})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "item 0")
	})
}

func TestNewOrderPricer_RejectsNegativeFees(t *testing.T) {
	_, err := services.NewOrderPricer(order.Fees{Rider: decimal.NewFromInt(-1)})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
