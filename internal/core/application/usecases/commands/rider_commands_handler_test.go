package commands_test

import (
	"errors"
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/rider"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegisterRiderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	repo := new(MockRiderRepository)
	uow := new(MockUoW)
	factory := new(MockRiderUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RiderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.MatchedBy(func(r *rider.Rider) bool {
			return r.UserID() == riderA.ID() && !r.IsAvailable()
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	cmd, err := commands.NewRegisterRiderCommand(riderA, "scooter", "LIC-30", "+15550100")
	require.NoError(t, err)

	r, err := commands.NewRegisterRiderCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "scooter", r.VehicleType())
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestRegisterRiderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	repo := new(MockRiderRepository)
	uow := new(MockUoW)
	factory := new(MockRiderUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RiderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.Anything).Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	cmd, err := commands.NewRegisterRiderCommand(riderA, "scooter", "LIC-30", "+15550100")
	require.NoError(t, err)

	_, err = commands.NewRegisterRiderCommandHandler(factory).Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestSetRiderAvailabilityCommandHandler_Handle(t *testing.T) {
	on, off := true, false
	tests := []struct {
		name      string
		start     bool
		requested *bool
		want      bool
	}{
		{name: "toggle off to on", start: false, want: true},
		{name: "toggle on to off", start: true, want: false},
		{name: "explicit on", start: true, requested: &on, want: true},
		{name: "explicit off", start: false, requested: &off, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			repo := new(MockRiderRepository)
			uow := new(MockUoW)
			factory := new(MockRiderUoWFactory)
			current, err := rider.RestoreRider(riderA.ID(), "bike", "LIC", "+1555", tt.start)
			require.NoError(t, err)

			mock.InOrder(
				factory.On("Create").Return(uow).Once(),
				uow.On("Begin", ctx).Return(nil).Once(),
				uow.On("RiderRepository").Return(repo).Once(),
				repo.On("Get", mock.Anything, riderA.ID()).Return(current, nil).Once(),
				repo.On("Update", mock.Anything, current).Return(nil).Once(),
				uow.On("Commit", ctx).Return(nil).Once(),
				uow.On("Rollback", ctx).Return(nil).Once(),
			)

			cmd, err := commands.NewSetRiderAvailabilityCommand(riderA, tt.requested)
			require.NoError(t, err)

			r, err := commands.NewSetRiderAvailabilityCommandHandler(factory).Handle(ctx, cmd)

			require.NoError(t, err)
			assert.Equal(t, tt.want, r.IsAvailable())
			repo.AssertExpectations(t)
		})
	}
}

func newEarningsMocks() (*MockEarningsUoWFactory, *MockUoW, *MockOrderRepository, *MockEarningsRepository) {
	factory := new(MockEarningsUoWFactory)
	uow := new(MockUoW)
	factory.On("Create").Return(uow).Once()
	return factory, uow, new(MockOrderRepository), new(MockEarningsRepository)
}

func TestRecordEarningCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	factory, uow, orders, earnings := newEarningsMocks()
	delivered := storedOrder(t, 7, order.Delivered, idPtr(riderA.ID()))
	stored, err := rider.RestoreEarning(1, riderA.ID(), 7, decimal.NewFromInt(25), delivered.CreatedAt())
	require.NoError(t, err)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("Get", mock.Anything, kernel.ID(7)).Return(delivered, nil).Once(),
		uow.On("EarningsRepository").Return(earnings).Once(),
		earnings.On("Add", mock.Anything, mock.MatchedBy(func(e rider.Earning) bool {
			return e.RiderID() == riderA.ID() && e.OrderID() == 7 && e.Amount().Equal(decimal.NewFromInt(25))
		})).Return(stored, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	total := decimal.NewFromInt(125)
	cmd, err := commands.NewRecordEarningCommand(riderA, 7, decimal.NewFromInt(25), &total)
	require.NoError(t, err)

	e, err := commands.NewRecordEarningCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, kernel.ID(1), e.ID())
	earnings.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRecordEarningCommandHandler_Handle_Rejections(t *testing.T) {
	wrongTotal := decimal.NewFromInt(200)
	tests := []struct {
		name     string
		order    func(t *testing.T) *order.Order
		actor    kernel.Actor
		amount   decimal.Decimal
		total    *decimal.Decimal
		want     error
		mismatch string
	}{
		{
			name:   "other rider",
			order:  func(t *testing.T) *order.Order { return storedOrder(t, 7, order.Delivered, idPtr(riderA.ID())) },
			actor:  riderB,
			amount: decimal.NewFromInt(25),
			want:   order.ErrUnauthorizedActor,
		},
		{
			name:     "amount differs from rider fee",
			order:    func(t *testing.T) *order.Order { return storedOrder(t, 7, order.Delivered, idPtr(riderA.ID())) },
			actor:    riderA,
			amount:   decimal.NewFromInt(40),
			want:     rider.ErrEarningsMismatch,
			mismatch: "rider_fee",
		},
		{
			name:     "total differs from order total",
			order:    func(t *testing.T) *order.Order { return storedOrder(t, 7, order.Delivered, idPtr(riderA.ID())) },
			actor:    riderA,
			amount:   decimal.NewFromInt(25),
			total:    &wrongTotal,
			want:     rider.ErrEarningsMismatch,
			mismatch: "total_amount",
		},
		{
			name:   "not delivered yet",
			order:  func(t *testing.T) *order.Order { return storedOrder(t, 7, order.OnTheWay, idPtr(riderA.ID())) },
			actor:  riderA,
			amount: decimal.NewFromInt(25),
			want:   rider.ErrOrderNotDelivered,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			factory, uow, orders, earnings := newEarningsMocks()

			mock.InOrder(
				uow.On("Begin", ctx).Return(nil).Once(),
				uow.On("OrderRepository").Return(orders).Once(),
				orders.On("Get", mock.Anything, kernel.ID(7)).Return(tt.order(t), nil).Once(),
				uow.On("Rollback", ctx).Return(nil).Once(),
			)

			cmd, err := commands.NewRecordEarningCommand(tt.actor, 7, tt.amount, tt.total)
			require.NoError(t, err)

			_, err = commands.NewRecordEarningCommandHandler(factory).Handle(ctx, cmd)

			require.ErrorIs(t, err, tt.want)
			if tt.mismatch != "" {
				var mismatch *rider.EarningsMismatchError
				require.ErrorAs(t, err, &mismatch)
				assert.Equal(t, tt.mismatch, mismatch.Field)
			}
			earnings.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
			uow.AssertExpectations(t)
		})
	}
}

func TestRecordEarningCommandHandler_Handle_SecondPayoutRejected(t *testing.T) {
	ctx := t.Context()
	factory, uow, orders, earnings := newEarningsMocks()

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("Get", mock.Anything, kernel.ID(7)).
			Return(storedOrder(t, 7, order.Delivered, idPtr(riderA.ID())), nil).Once(),
		uow.On("EarningsRepository").Return(earnings).Once(),
		earnings.On("Add", mock.Anything, mock.Anything).Return(rider.Earning{}, rider.ErrEarningAlreadyRecorded).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	cmd, err := commands.NewRecordEarningCommand(riderA, 7, decimal.NewFromInt(25), nil)
	require.NoError(t, err)

	_, err = commands.NewRecordEarningCommandHandler(factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, rider.ErrEarningAlreadyRecorded)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
