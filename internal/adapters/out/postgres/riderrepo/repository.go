package riderrepo

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/rider"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormRiderRepository implements ports.RiderRepository using GORM.
type GormRiderRepository struct {
	db *gorm.DB
}

func NewGormRiderRepository(db *gorm.DB) *GormRiderRepository {
	return &GormRiderRepository{db: db}
}

func (r *GormRiderRepository) Add(ctx context.Context, aggregate *rider.Rider) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := riderFromDomain(aggregate)
	err := r.db.WithContext(ctx).Create(&dto).Error
	if isUniqueViolation(err, "") {
		return ports.ErrRiderAlreadyRegistered
	}
	return err
}

func (r *GormRiderRepository) Get(ctx context.Context, userID kernel.ID) (*rider.Rider, error) {
	var dto RiderDTO
	err := r.db.WithContext(ctx).Where("user_id = ?", userID.Int64()).First(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("rider", userID)
	}
	if err != nil {
		return nil, err
	}

	return riderToDomain(dto)
}

func (r *GormRiderRepository) Update(ctx context.Context, aggregate *rider.Rider) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := riderFromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&RiderDTO{}).
		Where("user_id = ?", dto.UserID).
		Updates(map[string]any{
			"vehicle_type":   dto.VehicleType,
			"license_number": dto.LicenseNumber,
			"phone":          dto.Phone,
			"is_available":   dto.IsAvailable,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("rider", aggregate.UserID())
	}
	return nil
}

// GormEarningsRepository implements ports.EarningsRepository using GORM.
// Rows are only ever inserted.
type GormEarningsRepository struct {
	db *gorm.DB
}

func NewGormEarningsRepository(db *gorm.DB) *GormEarningsRepository {
	return &GormEarningsRepository{db: db}
}

func (r *GormEarningsRepository) Add(ctx context.Context, e rider.Earning) (rider.Earning, error) {
	dto := earningFromDomain(e)
	err := r.db.WithContext(ctx).Create(&dto).Error
	if isUniqueViolation(err, EarningOrderIndexName) {
		return rider.Earning{}, rider.ErrEarningAlreadyRecorded
	}
	if err != nil {
		return rider.Earning{}, err
	}

	return earningToDomain(dto)
}

func (r *GormEarningsRepository) Sum(ctx context.Context, riderID kernel.ID, since *time.Time) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).
		Model(&EarningDTO{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("rider_id = ?", riderID.Int64())
	if since != nil {
		query = query.Where("earned_at >= ?", *since)
	}

	var total decimal.Decimal
	if err := query.Row().Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// isUniqueViolation matches a unique violation on constraint, or on any
// constraint when constraint is empty.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
