package ports

import "context"

type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork scopes repositories to one transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	OrderRepository() OrderRepository
	RiderRepository() RiderRepository
	EarningsRepository() EarningsRepository
	CartRepository() CartRepository
	PartyDirectory() PartyDirectory
}
