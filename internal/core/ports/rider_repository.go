package ports

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/rider"

	"github.com/shopspring/decimal"
)

// ErrRiderAlreadyRegistered is returned by Add when a profile exists for the user.
var ErrRiderAlreadyRegistered = errors.New("rider already registered")

type RiderRepository interface {
	Add(ctx context.Context, r *rider.Rider) error
	Get(ctx context.Context, userID kernel.ID) (*rider.Rider, error)
	Update(ctx context.Context, r *rider.Rider) error
}

// EarningsRepository is the append-only rider ledger.
type EarningsRepository interface {
	// Add returns rider.ErrEarningAlreadyRecorded when the order already paid out.
	Add(ctx context.Context, e rider.Earning) (rider.Earning, error)

	// Sum totals the rider's rows earned at or after since; a nil since sums everything.
	Sum(ctx context.Context, riderID kernel.ID, since *time.Time) (decimal.Decimal, error)
}
