package http

import (
	"time"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/rider"

	"github.com/shopspring/decimal"
)

type CreateOrderRequest struct {
	RestaurantID    int64  `json:"restaurant_id"`
	PaymentMethod   string `json:"payment_method"`
	PaymentIntentID string `json:"payment_intent_id"`
	PaymentStatus   string `json:"payment_status"`
}

type TransitionOrderRequest struct {
	Status string `json:"status"`
}

type ConfirmPaymentRequest struct {
	PaymentIntentID string `json:"payment_intent_id"`
	Status          string `json:"status"`
	ChargeID        string `json:"charge_id"`
}

type RegisterRiderRequest struct {
	VehicleType   string `json:"vehicle_type"`
	LicenseNumber string `json:"license_number"`
	Phone         string `json:"phone"`
}

// SetAvailabilityRequest toggles the duty flag when IsAvailable is omitted.
type SetAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available"`
}

type RecordEarningRequest struct {
	OrderID     int64            `json:"order_id"`
	Amount      decimal.Decimal  `json:"amount"`
	TotalAmount *decimal.Decimal `json:"total_amount,omitempty"`
}

type OrderLine struct {
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type Order struct {
	ID              int64           `json:"id"`
	Token           string          `json:"token_number"`
	CustomerID      int64           `json:"customer_id"`
	RestaurantID    int64           `json:"restaurant_id"`
	RiderID         *int64          `json:"rider_id"`
	Status          string          `json:"status"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	RiderFee        decimal.Decimal `json:"rider_fee"`
	SmallOrderFee   decimal.Decimal `json:"small_order_fee"`
	PaymentMethod   string          `json:"payment_method"`
	PaymentStatus   string          `json:"payment_status"`
	PaymentIntentID string          `json:"payment_intent_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	Lines           []OrderLine     `json:"items"`
}

type ClaimableOrder struct {
	ID           int64           `json:"id"`
	Token        string          `json:"token_number"`
	RestaurantID int64           `json:"restaurant_id"`
	Status       string          `json:"status"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	RiderFee     decimal.Decimal `json:"rider_fee"`
	CreatedAt    time.Time       `json:"created_at"`
}

type Count struct {
	Count int64 `json:"count"`
}

type Rider struct {
	UserID        int64  `json:"user_id"`
	VehicleType   string `json:"vehicle_type"`
	LicenseNumber string `json:"license_number"`
	Phone         string `json:"phone"`
	IsAvailable   bool   `json:"is_available"`
}

type Earning struct {
	ID       int64           `json:"id"`
	RiderID  int64           `json:"rider_id"`
	OrderID  int64           `json:"order_id"`
	Amount   decimal.Decimal `json:"amount"`
	EarnedAt time.Time       `json:"earned_at"`
}

// Earnings always carries every window; Window and Total echo the window
// asked for with ?window=.
type Earnings struct {
	RiderID int64            `json:"rider_id"`
	Window  string           `json:"window,omitempty"`
	Total   *decimal.Decimal `json:"total,omitempty"`
	All     decimal.Decimal  `json:"all"`
	Today   decimal.Decimal  `json:"today"`
	Week    decimal.Decimal  `json:"week"`
	Month   decimal.Decimal  `json:"month"`
}

func orderFromDomain(o *order.Order) Order {
	payment := o.Payment()
	fees := o.Fees()
	response := Order{
		ID:              o.ID().Int64(),
		Token:           o.Token(),
		CustomerID:      o.CustomerID().Int64(),
		RestaurantID:    o.RestaurantID().Int64(),
		RiderID:         optionalID(o.RiderID()),
		Status:          o.Status().String(),
		TotalAmount:     o.TotalAmount(),
		RiderFee:        fees.Rider,
		SmallOrderFee:   fees.SmallOrder,
		PaymentMethod:   payment.Method,
		PaymentStatus:   payment.Status.String(),
		PaymentIntentID: payment.IntentID,
		CreatedAt:       o.CreatedAt(),
		Lines:           make([]OrderLine, 0, len(o.Lines())),
	}
	for _, l := range o.Lines() {
		response.Lines = append(response.Lines, OrderLine{
			ProductID: l.ProductID().Int64(),
			Quantity:  l.Quantity(),
			Subtotal:  l.Subtotal(),
		})
	}
	return response
}

func orderFromView(v queries.GetOrderQueryResponse) Order {
	response := Order{
		ID:              v.ID.Int64(),
		Token:           v.Token,
		CustomerID:      v.CustomerID.Int64(),
		RestaurantID:    v.RestaurantID.Int64(),
		RiderID:         optionalID(v.RiderID),
		Status:          v.Status.String(),
		TotalAmount:     v.TotalAmount,
		RiderFee:        v.RiderFee,
		SmallOrderFee:   v.SmallOrderFee,
		PaymentMethod:   v.PaymentMethod,
		PaymentStatus:   v.PaymentStatus.String(),
		PaymentIntentID: v.PaymentIntentID,
		CreatedAt:       v.CreatedAt,
		Lines:           make([]OrderLine, 0, len(v.Lines)),
	}
	for _, l := range v.Lines {
		response.Lines = append(response.Lines, OrderLine{
			ProductID: l.ProductID.Int64(),
			Quantity:  l.Quantity,
			Subtotal:  l.Subtotal,
		})
	}
	return response
}

func claimableFromView(views []queries.GetClaimableOrdersQueryResponse) []ClaimableOrder {
	response := make([]ClaimableOrder, 0, len(views))
	for _, v := range views {
		response = append(response, ClaimableOrder{
			ID:           v.ID.Int64(),
			Token:        v.Token,
			RestaurantID: v.RestaurantID.Int64(),
			Status:       v.Status.String(),
			TotalAmount:  v.TotalAmount,
			RiderFee:     v.RiderFee,
			CreatedAt:    v.CreatedAt,
		})
	}
	return response
}

func riderFromDomain(r *rider.Rider) Rider {
	return Rider{
		UserID:        r.UserID().Int64(),
		VehicleType:   r.VehicleType(),
		LicenseNumber: r.LicenseNumber(),
		Phone:         r.Phone(),
		IsAvailable:   r.IsAvailable(),
	}
}

func riderFromView(v queries.GetRiderQueryResponse) Rider {
	return Rider{
		UserID:        v.UserID.Int64(),
		VehicleType:   v.VehicleType,
		LicenseNumber: v.LicenseNumber,
		Phone:         v.Phone,
		IsAvailable:   v.IsAvailable,
	}
}

func earningFromDomain(e rider.Earning) Earning {
	return Earning{
		ID:       e.ID().Int64(),
		RiderID:  e.RiderID().Int64(),
		OrderID:  e.OrderID().Int64(),
		Amount:   e.Amount(),
		EarnedAt: e.EarnedAt(),
	}
}

func optionalID(id *kernel.ID) *int64 {
	if id == nil {
		return nil
	}
	v := id.Int64()
	return &v
}

// parsePaymentStatus maps an omitted status to PaymentUnknown, which the
// domain treats as pending.
func parsePaymentStatus(raw string) (order.PaymentStatus, error) {
	if raw == "" {
		return order.PaymentUnknown, nil
	}
	return order.ParsePaymentStatus(raw)
}
