package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Deleted is tracked when an order row is removed, so listeners learn about it.
type Deleted struct {
	ID kernel.ID
}

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.ID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order and its lines in a nested transaction: on a token
// collision only this insert is rolled back (a savepoint when the repository
// runs inside an outer transaction) and ports.ErrTokenTaken is returned.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := order.ValidateToken(aggregate.Token()); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&dto).Error
	})
	if isUniqueViolation(err, TokenIndexName) {
		return fmt.Errorf("%w: %s", ports.ErrTokenTaken, aggregate.Token())
	}
	if err != nil {
		return err
	}

	if err := aggregate.BindID(kernel.ID(dto.ID)); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order with its lines.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	return r.get(ctx, r.db.WithContext(ctx), id)
}

// GetForUpdate retrieves an order holding a row lock on it (SELECT ... FOR UPDATE).
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.ID) (*order.Order, error) {
	return r.get(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// GetByPaymentIntent finds the order paid through the given external payment intent.
func (r *GormOrderRepository) GetByPaymentIntent(ctx context.Context, intentID string) (*order.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).Where("payment_intent_id = ?", intentID).First(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, order.NewPaymentNotFoundError(intentID)
	}
	if err != nil {
		return nil, err
	}

	return r.withLines(ctx, dto)
}

// Update writes the mutable columns and appends the pending status changes.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	payment := aggregate.Payment()
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", aggregate.ID().Int64()).
		Updates(map[string]any{
			"status":            aggregate.Status().String(),
			"rider_id":          riderColumn(aggregate),
			"payment_status":    payment.Status.String(),
			"payment_charge_id": optionalString(payment.ChargeID),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return order.NewOrderNotFoundError(aggregate.ID())
	}

	if err := r.appendStatusChanges(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Claim persists a claim decided by order.Claim. The write only matches a
// row that is still unassigned and claimable, so of two concurrent claimers
// exactly one affects a row.
func (r *GormOrderRepository) Claim(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	riderID := riderColumn(aggregate)
	if riderID == nil || aggregate.Status() != order.Assigned {
		return fmt.Errorf("order %s has not been claimed", aggregate.ID())
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND rider_id IS NULL AND status IN ?", aggregate.ID().Int64(), claimableStatusNames()).
		Updates(map[string]any{
			"rider_id": *riderID,
			"status":   order.Assigned.String(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrConditionalWriteMissed
	}

	if err := r.appendStatusChanges(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Delete removes an order; lines cascade.
func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.ID) error {
	result := r.db.WithContext(ctx).Delete(&OrderDTO{}, id.Int64())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return order.NewOrderNotFoundError(id)
	}

	r.tracker.TrackAggregate(id, Deleted{ID: id})
	return nil
}

func (r *GormOrderRepository) get(ctx context.Context, db *gorm.DB, id kernel.ID) (*order.Order, error) {
	var dto OrderDTO
	err := db.Where("id = ?", id.Int64()).First(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, order.NewOrderNotFoundError(id)
	}
	if err != nil {
		return nil, err
	}

	return r.withLines(ctx, dto)
}

func (r *GormOrderRepository) withLines(ctx context.Context, dto OrderDTO) (*order.Order, error) {
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", dto.ID).
		Order("id").
		Find(&dto.Lines).Error; err != nil {
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) appendStatusChanges(ctx context.Context, aggregate *order.Order) error {
	changes := statusChangesFromDomain(aggregate.ID(), aggregate.DrainStatusChanges())
	if len(changes) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&changes).Error
}

func claimableStatusNames() []string {
	statuses := order.ClaimableStatuses()
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, s.String())
	}
	return names
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == pgerrcode.UniqueViolation &&
		pgErr.ConstraintName == constraint
}
