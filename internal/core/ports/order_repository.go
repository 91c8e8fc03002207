package ports

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

var (
	// ErrTokenTaken is returned by Add when the order token collides with an
	// existing one. The insert is undone and the caller may retry with a new token.
	ErrTokenTaken = errors.New("order token already taken")

	// ErrConditionalWriteMissed is returned when a guarded write matched no row
	// because the stored state changed since it was read.
	ErrConditionalWriteMissed = errors.New("order changed concurrently")
)

// OrderRepository persists order aggregates with their lines and audit trail.
type OrderRepository interface {
	// Add inserts a new order and its lines and binds the generated id.
	Add(ctx context.Context, o *order.Order) error

	Get(ctx context.Context, id kernel.ID) (*order.Order, error)

	// GetForUpdate reads the order and locks its row until the surrounding
	// transaction ends.
	GetForUpdate(ctx context.Context, id kernel.ID) (*order.Order, error)

	GetByPaymentIntent(ctx context.Context, intentID string) (*order.Order, error)

	// Update writes status, rider and payment fields and the pending status changes.
	Update(ctx context.Context, o *order.Order) error

	// Claim writes the rider attachment only if the stored order is still
	// unassigned and claimable, returning ErrConditionalWriteMissed otherwise.
	Claim(ctx context.Context, o *order.Order) error

	Delete(ctx context.Context, id kernel.ID) error
}

// OrderChangeListener is told after a committed unit of work touched orders.
// Implementations must return quickly.
type OrderChangeListener interface {
	OrdersChanged(ctx context.Context)
}
