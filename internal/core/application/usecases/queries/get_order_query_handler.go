package queries

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler returns an order with its lines. Only the customer,
// the restaurant, the attached rider and admins may read it.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

type orderRow struct {
	ID              int64
	TokenNumber     string
	CustomerID      int64
	RestaurantID    int64
	RiderID         *int64
	Status          string
	TotalAmount     decimal.Decimal
	RiderFee        decimal.Decimal
	SmallOrderFee   decimal.Decimal
	PaymentMethod   string
	PaymentStatus   string
	PaymentIntentID *string
	CreatedAt       time.Time
}

// Handle returns errs.ErrObjectNotFound for an unknown id and
// *order.UnauthorizedActorError when the actor is not a party of the order.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)

	var row orderRow
	result := db.Raw(`
		SELECT
			id, token_number, customer_id, restaurant_id, rider_id, status,
			total_amount, rider_fee, small_order_fee,
			payment_method, payment_status, payment_intent_id, created_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Int64()).Scan(&row)
	if result.Error != nil {
		return GetOrderQueryResponse{}, result.Error
	}
	if result.RowsAffected == 0 {
		return GetOrderQueryResponse{}, order.NewOrderNotFoundError(query.OrderID())
	}

	if !isParty(row, query.Actor()) {
		return GetOrderQueryResponse{}, order.NewUnauthorizedActorError(query.OrderID(), query.Actor(), "not a party of the order")
	}

	response, err := row.toResponse()
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	var lines []struct {
		ProductID int64
		Quantity  int
		Subtotal  decimal.Decimal
	}
	if err = db.Raw(`
		SELECT product_id, quantity, subtotal
		FROM order_lines
		WHERE order_id = ?
		ORDER BY id
	`, row.ID).Scan(&lines).Error; err != nil {
		return GetOrderQueryResponse{}, err
	}

	response.Lines = make([]GetOrderQueryLine, 0, len(lines))
	for _, l := range lines {
		response.Lines = append(response.Lines, GetOrderQueryLine{
			ProductID: kernel.ID(l.ProductID),
			Quantity:  l.Quantity,
			Subtotal:  l.Subtotal,
		})
	}

	return response, nil
}

func isParty(row orderRow, actor kernel.Actor) bool {
	id := actor.ID().Int64()
	switch actor.Role() {
	case kernel.RoleCustomer:
		return row.CustomerID == id
	case kernel.RoleRestaurant:
		return row.RestaurantID == id
	case kernel.RoleRider:
		return row.RiderID != nil && *row.RiderID == id
	case kernel.RoleAdmin:
		return true
	case kernel.RoleUnknown:
		return false
	}
	return false
}

func (r orderRow) toResponse() (GetOrderQueryResponse, error) {
	status, err := order.ParseStatus(r.Status)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	paymentStatus, err := order.ParsePaymentStatus(r.PaymentStatus)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	response := GetOrderQueryResponse{
		ID:            kernel.ID(r.ID),
		Token:         r.TokenNumber,
		CustomerID:    kernel.ID(r.CustomerID),
		RestaurantID:  kernel.ID(r.RestaurantID),
		Status:        status,
		TotalAmount:   r.TotalAmount,
		RiderFee:      r.RiderFee,
		SmallOrderFee: r.SmallOrderFee,
		PaymentMethod: r.PaymentMethod,
		PaymentStatus: paymentStatus,
		CreatedAt:     r.CreatedAt,
	}
	if r.RiderID != nil {
		riderID := kernel.ID(*r.RiderID)
		response.RiderID = &riderID
	}
	if r.PaymentIntentID != nil {
		response.PaymentIntentID = *r.PaymentIntentID
	}
	return response, nil
}
