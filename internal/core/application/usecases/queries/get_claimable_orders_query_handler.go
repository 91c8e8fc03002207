package queries

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetClaimableOrdersQueryHandler reads the rider pickup list, oldest first.
type GetClaimableOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetClaimableOrdersQueryHandler(db *gorm.DB) GetClaimableOrdersQueryHandler {
	return GetClaimableOrdersQueryHandler{db: db}
}

func (h GetClaimableOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetClaimableOrdersQuery,
) ([]GetClaimableOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetClaimableOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			token_number,
			restaurant_id,
			status,
			total_amount,
			rider_fee,
			created_at
		FROM orders
		WHERE rider_id IS NULL AND status IN ?
		ORDER BY created_at, id
	`, claimableStatusNames()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id, restaurantID      int64
			token, status         string
			totalAmount, riderFee decimal.Decimal
			createdAt             time.Time
		)
		if err = rows.Scan(&id, &token, &restaurantID, &status, &totalAmount, &riderFee, &createdAt); err != nil {
			return nil, err
		}

		parsed, statusErr := order.ParseStatus(status)
		if statusErr != nil {
			return nil, statusErr
		}

		orders = append(orders, GetClaimableOrdersQueryResponse{
			ID:           kernel.ID(id),
			Token:        token,
			RestaurantID: kernel.ID(restaurantID),
			Status:       parsed,
			TotalAmount:  totalAmount,
			RiderFee:     riderFee,
			CreatedAt:    createdAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

// GetClaimableOrdersCountQueryHandler runs the availability count.
type GetClaimableOrdersCountQueryHandler struct {
	db *gorm.DB
}

func NewGetClaimableOrdersCountQueryHandler(db *gorm.DB) GetClaimableOrdersCountQueryHandler {
	return GetClaimableOrdersCountQueryHandler{db: db}
}

func (h GetClaimableOrdersCountQueryHandler) Handle(ctx context.Context, query GetClaimableOrdersCountQuery) (int64, error) {
	if err := query.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM orders
		WHERE rider_id IS NULL AND status IN ?
	`, claimableStatusNames()).Scan(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// CountAvailable adapts the handler to the availability notifier's counter.
func (h GetClaimableOrdersCountQueryHandler) CountAvailable(ctx context.Context) (int64, error) {
	return h.Handle(ctx, NewGetClaimableOrdersCountQuery())
}

func claimableStatusNames() []string {
	statuses := order.ClaimableStatuses()
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, s.String())
	}
	return names
}
