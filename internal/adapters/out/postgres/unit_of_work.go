// Package postgres provides the GORM-based Unit of Work used by every command.
//
// A unit of work hands out repositories bound to one transaction and records
// the aggregates they touched. When a transaction that touched orders
// commits, the factory's OrderChangeListener is told about it. This is how the
// rider availability count is refreshed after every order create, update or
// delete without the use cases knowing about the notifier.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db, notifier)
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx) // listener fires here
//
// Each UnitOfWork instance is single-goroutine; create one per operation.
package postgres

import (
	"context"

	"marketplace/internal/adapters/out/postgres/cartrepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/partyrepo"
	"marketplace/internal/adapters/out/postgres/riderrepo"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.ID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
type GormUnitOfWorkFactory struct {
	db       *gorm.DB
	listener ports.OrderChangeListener
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances. listener may be nil.
func NewGormUnitOfWorkFactory(db *gorm.DB, listener ports.OrderChangeListener) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, listener: listener}
}

// Create produces a new UnitOfWork with its own transaction state and tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		listener:          f.listener,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and tracks aggregate changes.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	listener          ports.OrderChangeListener
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Repeated calls reuse the open transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the transaction. On success, if any order was added,
// updated or deleted, the listener is notified.
//
// Returns gorm.ErrInvalidTransaction if no transaction is open.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	touched := uow.ordersTouched()
	uow.trackedAggregates = uow.trackedAggregates[:0]
	if err != nil {
		return err
	}

	if touched && uow.listener != nil {
		uow.listener.OrdersChanged(ctx)
	}
	return nil
}

// Rollback discards the transaction and the tracked aggregates.
//
// Returns gorm.ErrInvalidTransaction if no transaction is open, which makes
// a deferred Rollback after Commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) RiderRepository() ports.RiderRepository {
	return riderrepo.NewGormRiderRepository(uow.conn())
}

func (uow *GormUnitOfWork) EarningsRepository() ports.EarningsRepository {
	return riderrepo.NewGormEarningsRepository(uow.conn())
}

func (uow *GormUnitOfWork) CartRepository() ports.CartRepository {
	return cartrepo.NewGormCartRepository(uow.conn())
}

func (uow *GormUnitOfWork) PartyDirectory() ports.PartyDirectory {
	return partyrepo.NewGormPartyDirectory(uow.conn())
}

// TrackAggregate registers an aggregate as modified within this unit of work.
// Repositories call it after each successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.ID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// conn returns the open transaction, or the pool outside of one.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) ordersTouched() bool {
	for _, tracked := range uow.trackedAggregates {
		switch tracked.Aggregate.(type) {
		case *order.Order, orderrepo.Deleted:
			return true
		}
	}
	return false
}
