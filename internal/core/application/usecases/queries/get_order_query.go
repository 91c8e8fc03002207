package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads one order for one of its parties.
type GetOrderQuery struct {
	orderID kernel.ID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.ID, actor kernel.Actor) (GetOrderQuery, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.ID {
	return q.orderID
}

func (q GetOrderQuery) Actor() kernel.Actor {
	return q.actor
}

type GetOrderQueryLine struct {
	ProductID kernel.ID
	Quantity  int
	Subtotal  decimal.Decimal
}

type GetOrderQueryResponse struct {
	ID              kernel.ID
	Token           string
	CustomerID      kernel.ID
	RestaurantID    kernel.ID
	RiderID         *kernel.ID
	Status          order.Status
	TotalAmount     decimal.Decimal
	RiderFee        decimal.Decimal
	SmallOrderFee   decimal.Decimal
	PaymentMethod   string
	PaymentStatus   order.PaymentStatus
	PaymentIntentID string
	CreatedAt       time.Time
	Lines           []GetOrderQueryLine
}
