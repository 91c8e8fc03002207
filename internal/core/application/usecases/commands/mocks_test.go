package commands_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/rider"
	"marketplace/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetByPaymentIntent(ctx context.Context, intentID string) (*order.Order, error) {
	args := m.Called(ctx, intentID)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Claim(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockRiderRepository struct{ mock.Mock }

func (m *MockRiderRepository) Add(ctx context.Context, r *rider.Rider) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRiderRepository) Get(ctx context.Context, userID kernel.ID) (*rider.Rider, error) {
	args := m.Called(ctx, userID)
	r, _ := args.Get(0).(*rider.Rider)
	return r, args.Error(1)
}

func (m *MockRiderRepository) Update(ctx context.Context, r *rider.Rider) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

type MockEarningsRepository struct{ mock.Mock }

func (m *MockEarningsRepository) Add(ctx context.Context, e rider.Earning) (rider.Earning, error) {
	args := m.Called(ctx, e)
	return args.Get(0).(rider.Earning), args.Error(1)
}

func (m *MockEarningsRepository) Sum(ctx context.Context, riderID kernel.ID, since *time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, riderID, since)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockCartRepository struct{ mock.Mock }

func (m *MockCartRepository) Items(ctx context.Context, customerID, restaurantID kernel.ID) ([]order.CartItem, error) {
	args := m.Called(ctx, customerID, restaurantID)
	items, _ := args.Get(0).([]order.CartItem)
	return items, args.Error(1)
}

func (m *MockCartRepository) Clear(ctx context.Context, customerID, restaurantID kernel.ID) error {
	args := m.Called(ctx, customerID, restaurantID)
	return args.Error(0)
}

type MockPartyDirectory struct{ mock.Mock }

func (m *MockPartyDirectory) HasRole(ctx context.Context, id kernel.ID, role kernel.Role) (bool, error) {
	args := m.Called(ctx, id, role)
	return args.Bool(0), args.Error(1)
}

// MockUoW satisfies every unit of work interface of the commands package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) RiderRepository() ports.RiderRepository {
	args := m.Called()
	return args.Get(0).(ports.RiderRepository)
}

func (m *MockUoW) EarningsRepository() ports.EarningsRepository {
	args := m.Called()
	return args.Get(0).(ports.EarningsRepository)
}

func (m *MockUoW) CartRepository() ports.CartRepository {
	args := m.Called()
	return args.Get(0).(ports.CartRepository)
}

func (m *MockUoW) PartyDirectory() ports.PartyDirectory {
	args := m.Called()
	return args.Get(0).(ports.PartyDirectory)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCheckoutUoWFactory struct{ mock.Mock }

func (m *MockCheckoutUoWFactory) Create() commands.CheckoutUoW {
	args := m.Called()
	return args.Get(0).(commands.CheckoutUoW)
}

type MockRiderUoWFactory struct{ mock.Mock }

func (m *MockRiderUoWFactory) Create() commands.RiderUoW {
	args := m.Called()
	return args.Get(0).(commands.RiderUoW)
}

type MockEarningsUoWFactory struct{ mock.Mock }

func (m *MockEarningsUoWFactory) Create() commands.EarningsUoW {
	args := m.Called()
	return args.Get(0).(commands.EarningsUoW)
}

type MockTokenGenerator struct{ mock.Mock }

func (m *MockTokenGenerator) NewToken() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

var (
	customer   = kernel.MustNewActor(1, kernel.RoleCustomer)
	restaurant = kernel.MustNewActor(2, kernel.RoleRestaurant)
	riderA     = kernel.MustNewActor(30, kernel.RoleRider)
	riderB     = kernel.MustNewActor(31, kernel.RoleRider)
	admin      = kernel.MustNewActor(99, kernel.RoleAdmin)
)

// storedOrder rebuilds a persisted order of customer 1 at restaurant 2 with a
// 25 rider fee and a 125 total.
func storedOrder(t *testing.T, id kernel.ID, status order.Status, riderID *kernel.ID) *order.Order {
	t.Helper()

	line, err := order.RestoreLine(id*10, 5, 1, decimal.NewFromInt(100))
	require.NoError(t, err)
	o, err := order.RestoreOrder(order.Snapshot{
		ID:           id,
		Token:        "TKN" + id.String(),
		CustomerID:   customer.ID(),
		RestaurantID: restaurant.ID(),
		RiderID:      riderID,
		Lines:        []order.Line{line},
		Fees:         order.Fees{Rider: decimal.NewFromInt(25), SmallOrder: decimal.Zero},
		TotalAmount:  decimal.NewFromInt(125),
		Payment: order.Payment{
			Method:   order.DefaultPaymentMethod,
			Status:   order.PaymentPending,
			IntentID: "pi_" + id.String(),
		},
		Status:    status,
		CreatedAt: time.Date(2026, 10, 12, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return o
}

func idPtr(id kernel.ID) *kernel.ID {
	return &id
}
