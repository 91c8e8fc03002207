// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// Every handler validates its command, opens a unit of work, loads and mutates
// aggregates through the domain model and commits.
package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

// Unit of Work interfaces give each handler only the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// RiderRepoFactory provides access to rider profiles within a transaction.
	RiderRepoFactory interface {
		RiderRepository() ports.RiderRepository
	}

	// EarningsRepoFactory provides access to the earnings ledger within a transaction.
	EarningsRepoFactory interface {
		EarningsRepository() ports.EarningsRepository
	}

	// CheckoutRepoFactory provides the cart and identity collaborators.
	CheckoutRepoFactory interface {
		CartRepository() ports.CartRepository
		PartyDirectory() ports.PartyDirectory
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CheckoutUoW covers order creation: the order insert and the cart clear
	// commit together or not at all.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   items, err := uow.CartRepository().Items(ctx, customerID, restaurantID)
	//   // ... price and build the order
	//   err = uow.OrderRepository().Add(ctx, o)
	//   err = uow.CartRepository().Clear(ctx, customerID, restaurantID)
	//
	//   err = uow.Commit(ctx)
	CheckoutUoW interface {
		TxManager
		OrderRepoFactory
		CheckoutRepoFactory
	}

	// CheckoutUoWFactory creates new checkout unit of work instances.
	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}

	// RiderUoW manages transactions for rider profile operations.
	RiderUoW interface {
		TxManager
		RiderRepoFactory
	}

	// RiderUoWFactory creates new rider unit of work instances.
	RiderUoWFactory interface {
		Create() RiderUoW
	}

	// EarningsUoW reads the delivered order and appends the ledger row.
	EarningsUoW interface {
		TxManager
		OrderRepoFactory
		EarningsRepoFactory
	}

	// EarningsUoWFactory creates new earnings unit of work instances.
	EarningsUoWFactory interface {
		Create() EarningsUoW
	}
)
