package queries

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/rider"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrGetRiderEarningsQueryIsNotConstructed = errors.New(
	"GetRiderEarningsQuery must be created via NewGetRiderEarningsQuery constructor",
)

// GetRiderEarningsQuery totals a rider's ledger over every window at once.
//
// Example:
//
//	query, _ := NewGetRiderEarningsQuery(riderID)
//	totals, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("today %s, this week %s\n", totals.Today, totals.Total(rider.WindowWeek))
type GetRiderEarningsQuery struct {
	riderID kernel.ID

	guard guard.ConstructorGuard
}

func NewGetRiderEarningsQuery(riderID kernel.ID) (GetRiderEarningsQuery, error) {
	if err := riderID.Validate(); err != nil {
		return GetRiderEarningsQuery{}, err
	}
	return GetRiderEarningsQuery{riderID: riderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetRiderEarningsQuery) Validate() error {
	return q.guard.Validate(ErrGetRiderEarningsQueryIsNotConstructed)
}

type GetRiderEarningsQueryResponse struct {
	RiderID kernel.ID
	All     decimal.Decimal
	Today   decimal.Decimal
	Week    decimal.Decimal
	Month   decimal.Decimal
}

// Total returns the sum for one window; unknown windows yield zero.
func (r GetRiderEarningsQueryResponse) Total(w rider.Window) decimal.Decimal {
	switch w {
	case rider.WindowAll:
		return r.All
	case rider.WindowToday:
		return r.Today
	case rider.WindowWeek:
		return r.Week
	case rider.WindowMonth:
		return r.Month
	case rider.WindowUnknown:
		return decimal.Zero
	}
	return decimal.Zero
}

// GetRiderEarningsQueryHandler sums the ledger. Window bounds are midnights in
// the configured location.
type GetRiderEarningsQueryHandler struct {
	db       *gorm.DB
	location *time.Location
	now      func() time.Time
}

// NewGetRiderEarningsQueryHandler uses UTC when location is nil.
func NewGetRiderEarningsQueryHandler(db *gorm.DB, location *time.Location) GetRiderEarningsQueryHandler {
	if location == nil {
		location = time.UTC
	}
	return GetRiderEarningsQueryHandler{db: db, location: location, now: time.Now}
}

// WithClock returns a copy of the handler reading the current time from now.
func (h GetRiderEarningsQueryHandler) WithClock(now func() time.Time) GetRiderEarningsQueryHandler {
	h.now = now
	return h
}

func (h GetRiderEarningsQueryHandler) Handle(
	ctx context.Context,
	query GetRiderEarningsQuery,
) (GetRiderEarningsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRiderEarningsQueryResponse{}, err
	}

	now := h.now().In(h.location)
	today, _ := rider.WindowToday.Start(now)
	week, _ := rider.WindowWeek.Start(now)
	month, _ := rider.WindowMonth.Start(now)

	response := GetRiderEarningsQueryResponse{RiderID: query.riderID}
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(amount), 0),
			COALESCE(SUM(amount) FILTER (WHERE earned_at >= ?), 0),
			COALESCE(SUM(amount) FILTER (WHERE earned_at >= ?), 0),
			COALESCE(SUM(amount) FILTER (WHERE earned_at >= ?), 0)
		FROM rider_earnings
		WHERE rider_id = ?
	`, today, week, month, query.riderID.Int64()).
		Row().
		Scan(&response.All, &response.Today, &response.Week, &response.Month)
	if err != nil {
		return GetRiderEarningsQueryResponse{}, err
	}

	return response, nil
}
