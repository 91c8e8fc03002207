package queries

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrGetRiderQueryIsNotConstructed = errors.New(
	"GetRiderQuery must be created via NewGetRiderQuery constructor",
)

// GetRiderQuery reads a rider profile with its duty status.
type GetRiderQuery struct {
	riderID kernel.ID

	guard guard.ConstructorGuard
}

func NewGetRiderQuery(riderID kernel.ID) (GetRiderQuery, error) {
	if err := riderID.Validate(); err != nil {
		return GetRiderQuery{}, err
	}
	return GetRiderQuery{riderID: riderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetRiderQuery) Validate() error {
	return q.guard.Validate(ErrGetRiderQueryIsNotConstructed)
}

type GetRiderQueryResponse struct {
	UserID        kernel.ID
	VehicleType   string
	LicenseNumber string
	Phone         string
	IsAvailable   bool
}

type GetRiderQueryHandler struct {
	db *gorm.DB
}

func NewGetRiderQueryHandler(db *gorm.DB) GetRiderQueryHandler {
	return GetRiderQueryHandler{db: db}
}

func (h GetRiderQueryHandler) Handle(ctx context.Context, query GetRiderQuery) (GetRiderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRiderQueryResponse{}, err
	}

	var row struct {
		UserID        int64
		VehicleType   string
		LicenseNumber string
		Phone         string
		IsAvailable   bool
	}
	result := h.db.WithContext(ctx).Raw(`
		SELECT user_id, vehicle_type, license_number, phone, is_available
		FROM riders
		WHERE user_id = ?
	`, query.riderID.Int64()).Scan(&row)
	if result.Error != nil {
		return GetRiderQueryResponse{}, result.Error
	}
	if result.RowsAffected == 0 {
		return GetRiderQueryResponse{}, errs.NewObjectNotFoundError("rider", query.riderID)
	}

	return GetRiderQueryResponse{
		UserID:        kernel.ID(row.UserID),
		VehicleType:   row.VehicleType,
		LicenseNumber: row.LicenseNumber,
		Phone:         row.Phone,
		IsAvailable:   row.IsAvailable,
	}, nil
}
