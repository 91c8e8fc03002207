package riderrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/rider"

	"github.com/shopspring/decimal"
)

// EarningOrderIndexName names the unique index allowing one payout per order.
const EarningOrderIndexName = "idx_rider_earnings_order_id"

// RiderDTO represents the database model for rider profiles.
type RiderDTO struct {
	UserID        int64  `gorm:"primaryKey;autoIncrement:false"`
	VehicleType   string `gorm:"type:varchar(50);not null"`
	LicenseNumber string `gorm:"type:varchar(50);not null"`
	Phone         string `gorm:"type:varchar(15);not null"`
	IsAvailable   bool   `gorm:"not null"`
}

func (RiderDTO) TableName() string {
	return "riders"
}

// EarningDTO represents one ledger row.
type EarningDTO struct {
	ID       int64           `gorm:"primaryKey;autoIncrement"`
	RiderID  int64           `gorm:"not null;index:idx_rider_earnings_rider_earned_at,priority:1"`
	OrderID  int64           `gorm:"not null;uniqueIndex:idx_rider_earnings_order_id"`
	Amount   decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	EarnedAt time.Time       `gorm:"not null;index:idx_rider_earnings_rider_earned_at,priority:2"`
}

func (EarningDTO) TableName() string {
	return "rider_earnings"
}

func riderFromDomain(r *rider.Rider) RiderDTO {
	return RiderDTO{
		UserID:        r.UserID().Int64(),
		VehicleType:   r.VehicleType(),
		LicenseNumber: r.LicenseNumber(),
		Phone:         r.Phone(),
		IsAvailable:   r.IsAvailable(),
	}
}

func riderToDomain(dto RiderDTO) (*rider.Rider, error) {
	return rider.RestoreRider(kernel.ID(dto.UserID), dto.VehicleType, dto.LicenseNumber, dto.Phone, dto.IsAvailable)
}

func earningFromDomain(e rider.Earning) EarningDTO {
	return EarningDTO{
		ID:       e.ID().Int64(),
		RiderID:  e.RiderID().Int64(),
		OrderID:  e.OrderID().Int64(),
		Amount:   e.Amount(),
		EarnedAt: e.EarnedAt(),
	}
}

func earningToDomain(dto EarningDTO) (rider.Earning, error) {
	return rider.RestoreEarning(kernel.ID(dto.ID), kernel.ID(dto.RiderID), kernel.ID(dto.OrderID), dto.Amount, dto.EarnedAt)
}
