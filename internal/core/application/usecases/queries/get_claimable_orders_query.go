// Package queries holds the read side: handlers run SQL directly against the
// database and return flat response structs, bypassing the aggregates.
package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetClaimableOrdersQueryIsNotConstructed = errors.New(
		"GetClaimableOrdersQuery must be created via NewGetClaimableOrdersQuery constructor",
	)
	ErrGetClaimableOrdersCountQueryIsNotConstructed = errors.New(
		"GetClaimableOrdersCountQuery must be created via NewGetClaimableOrdersCountQuery constructor",
	)
)

// GetClaimableOrdersQuery lists the orders a rider could claim right now:
// no rider attached and a status in order.ClaimableStatuses.
//
// Example:
//
//	query := NewGetClaimableOrdersQuery()
//	handler := NewGetClaimableOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list claimable orders: %w", err)
//	}
//	for _, o := range orders {
//	    fmt.Printf("%s from restaurant %s pays %s\n", o.Token, o.RestaurantID, o.RiderFee)
//	}
type GetClaimableOrdersQuery struct {
	guard guard.ConstructorGuard
}

func NewGetClaimableOrdersQuery() GetClaimableOrdersQuery {
	return GetClaimableOrdersQuery{guard: guard.NewConstructorGuard()}
}

func (q GetClaimableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetClaimableOrdersQueryIsNotConstructed)
}

// GetClaimableOrdersQueryResponse is one row of the rider's pickup list.
type GetClaimableOrdersQueryResponse struct {
	ID           kernel.ID
	Token        string
	RestaurantID kernel.ID
	Status       order.Status
	TotalAmount  decimal.Decimal
	RiderFee     decimal.Decimal
	CreatedAt    time.Time
}

// GetClaimableOrdersCountQuery counts the same set as GetClaimableOrdersQuery.
// It is the number broadcast to rider sockets.
type GetClaimableOrdersCountQuery struct {
	guard guard.ConstructorGuard
}

func NewGetClaimableOrdersCountQuery() GetClaimableOrdersCountQuery {
	return GetClaimableOrdersCountQuery{guard: guard.NewConstructorGuard()}
}

func (q GetClaimableOrdersCountQuery) Validate() error {
	return q.guard.Validate(ErrGetClaimableOrdersCountQueryIsNotConstructed)
}
