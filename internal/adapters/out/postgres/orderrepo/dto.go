package orderrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// TokenIndexName names the unique index guarding order tokens.
const TokenIndexName = "idx_orders_token_number"

// OrderDTO represents the database model for orders.
type OrderDTO struct {
	ID              int64           `gorm:"primaryKey;autoIncrement"`
	TokenNumber     string          `gorm:"type:varchar(8);not null;uniqueIndex:idx_orders_token_number"`
	CustomerID      int64           `gorm:"not null;index"`
	RestaurantID    int64           `gorm:"not null;index"`
	RiderID         *int64          `gorm:"index"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	RiderFee        decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	SmallOrderFee   decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	PaymentMethod   string          `gorm:"type:varchar(20);not null"`
	PaymentStatus   string          `gorm:"type:varchar(20);not null"`
	PaymentIntentID *string         `gorm:"type:varchar(255);index"`
	PaymentChargeID *string         `gorm:"type:varchar(255)"`
	Status          string          `gorm:"type:varchar(20);not null;index"`
	CreatedAt       time.Time       `gorm:"not null"`
	Lines           []OrderLineDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO represents the database model for order lines.
type OrderLineDTO struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	OrderID   int64           `gorm:"not null;index"`
	ProductID int64           `gorm:"not null"`
	Quantity  int             `gorm:"not null;check:quantity > 0"`
	Subtotal  decimal.Decimal `gorm:"type:numeric(10,2);not null"`
}

func (OrderLineDTO) TableName() string {
	return "order_lines"
}

// StatusChangeDTO is one row of the order status audit trail.
type StatusChangeDTO struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	OrderID    int64     `gorm:"not null;index"`
	FromStatus string    `gorm:"type:varchar(20);not null"`
	ToStatus   string    `gorm:"type:varchar(20);not null"`
	ActorID    int64     `gorm:"not null"`
	ActorRole  string    `gorm:"type:varchar(20);not null"`
	ChangedAt  time.Time `gorm:"not null;autoCreateTime"`
}

func (StatusChangeDTO) TableName() string {
	return "order_status_changes"
}

func fromDomain(o *order.Order) OrderDTO {
	lines := make([]OrderLineDTO, 0, len(o.Lines()))
	for _, l := range o.Lines() {
		lines = append(lines, OrderLineDTO{
			ID:        l.ID().Int64(),
			OrderID:   o.ID().Int64(),
			ProductID: l.ProductID().Int64(),
			Quantity:  l.Quantity(),
			Subtotal:  l.Subtotal(),
		})
	}

	payment := o.Payment()
	return OrderDTO{
		ID:              o.ID().Int64(),
		TokenNumber:     o.Token(),
		CustomerID:      o.CustomerID().Int64(),
		RestaurantID:    o.RestaurantID().Int64(),
		RiderID:         riderColumn(o),
		TotalAmount:     o.TotalAmount(),
		RiderFee:        o.Fees().Rider,
		SmallOrderFee:   o.Fees().SmallOrder,
		PaymentMethod:   payment.Method,
		PaymentStatus:   payment.Status.String(),
		PaymentIntentID: optionalString(payment.IntentID),
		PaymentChargeID: optionalString(payment.ChargeID),
		Status:          o.Status().String(),
		CreatedAt:       o.CreatedAt(),
		Lines:           lines,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	lines := make([]order.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		line, lineErr := order.RestoreLine(kernel.ID(l.ID), kernel.ID(l.ProductID), l.Quantity, l.Subtotal)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	var riderID *kernel.ID
	if dto.RiderID != nil {
		id := kernel.ID(*dto.RiderID)
		riderID = &id
	}

	return order.RestoreOrder(order.Snapshot{
		ID:           kernel.ID(dto.ID),
		Token:        dto.TokenNumber,
		CustomerID:   kernel.ID(dto.CustomerID),
		RestaurantID: kernel.ID(dto.RestaurantID),
		RiderID:      riderID,
		Lines:        lines,
		Fees:         order.Fees{Rider: dto.RiderFee, SmallOrder: dto.SmallOrderFee},
		TotalAmount:  dto.TotalAmount,
		Payment: order.Payment{
			Method:   dto.PaymentMethod,
			Status:   paymentStatus,
			IntentID: derefString(dto.PaymentIntentID),
			ChargeID: derefString(dto.PaymentChargeID),
		},
		Status:    status,
		CreatedAt: dto.CreatedAt,
	})
}

func statusChangesFromDomain(orderID kernel.ID, changes []order.StatusChange) []StatusChangeDTO {
	dtos := make([]StatusChangeDTO, 0, len(changes))
	for _, c := range changes {
		dtos = append(dtos, StatusChangeDTO{
			OrderID:    orderID.Int64(),
			FromStatus: c.From.String(),
			ToStatus:   c.To.String(),
			ActorID:    c.Actor.ID().Int64(),
			ActorRole:  c.Actor.Role().String(),
		})
	}
	return dtos
}

func riderColumn(o *order.Order) *int64 {
	id := o.RiderID()
	if id == nil {
		return nil
	}
	v := id.Int64()
	return &v
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
