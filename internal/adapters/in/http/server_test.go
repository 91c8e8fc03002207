package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "marketplace/internal/adapters/in/http"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/rider"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	secret     = []byte("test-secret")
	customer   = kernel.MustNewActor(1, kernel.RoleCustomer)
	restaurant = kernel.MustNewActor(2, kernel.RoleRestaurant)
	riderA     = kernel.MustNewActor(30, kernel.RoleRider)
	admin      = kernel.MustNewActor(99, kernel.RoleAdmin)
)

// handle adapts a function to any of the server's single-method handler ports.
type handle[C, R any] func(context.Context, C) (R, error)

func (f handle[C, R]) Handle(ctx context.Context, cmd C) (R, error) {
	return f(ctx, cmd)
}

type deleteFunc func(context.Context, commands.DeleteOrderCommand) error

func (f deleteFunc) Handle(ctx context.Context, cmd commands.DeleteOrderCommand) error {
	return f(ctx, cmd)
}

type MockCreateOrderHandler struct {
	mock.Mock
}

func (m *MockCreateOrderHandler) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func newEcho(handlers httpadapter.Handlers) *echo.Echo {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := echo.New()
	e.HTTPErrorHandler = httpadapter.NewErrorHandler(logger)
	e.Use(httpadapter.NewRequestLogger(logger))
	httpadapter.NewServer(handlers).Register(e, httpadapter.NewAuthMiddleware(secret), nil)
	return e
}

func token(t *testing.T, actor kernel.Actor) string {
	t.Helper()
	signed, err := httpadapter.SignToken(secret, actor, time.Hour)
	require.NoError(t, err)
	return signed
}

func do(t *testing.T, e *echo.Echo, method, path string, actor *kernel.Actor, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if actor != nil {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token(t, *actor))
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func placedOrder(t *testing.T) *order.Order {
	t.Helper()
	line, err := order.NewLine(10, 2, decimal.NewFromInt(50))
	require.NoError(t, err)
	payment, err := order.NewPayment("", order.PaymentUnknown, "pi_42", "")
	require.NoError(t, err)
	o, err := order.NewOrder(customer.ID(), restaurant.ID(), []order.Line{line},
		order.Fees{Rider: decimal.Zero, SmallOrder: decimal.NewFromInt(29)},
		decimal.NewFromInt(129), payment, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, o.AssignToken("ABCD2345"))
	require.NoError(t, o.BindID(42))
	return o
}

func TestHealth(t *testing.T) {
	rec := do(t, newEcho(httpadapter.Handlers{}), http.MethodGet, "/health", nil, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestAuth(t *testing.T) {
	counted := handle[queries.GetClaimableOrdersCountQuery, int64](
		func(context.Context, queries.GetClaimableOrdersCountQuery) (int64, error) { return 3, nil })
	e := newEcho(httpadapter.Handlers{GetClaimableOrdersCount: counted})
	const path = "/api/v1/orders/available/count"

	t.Run("missing token", func(t *testing.T) {
		rec := do(t, e, http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "unauthorized", decode[httpadapter.Error](t, rec).Reason)
	})

	t.Run("foreign signature", func(t *testing.T) {
		forged, err := httpadapter.SignToken([]byte("other"), riderA, time.Hour)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+forged)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		expired, err := httpadapter.SignToken(secret, riderA, -time.Minute)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+expired)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown role claim", func(t *testing.T) {
		claims := httpadapter.Claims{Role: "driver", RegisteredClaims: jwt.RegisteredClaims{Subject: "30"}}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+signed)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong role", func(t *testing.T) {
		rec := do(t, e, http.MethodGet, path, &customer, "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("rider through query token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, path+"?token="+token(t, riderA), nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(3), decode[httpadapter.Count](t, rec).Count)
	})
}

func TestCreateOrder(t *testing.T) {
	created := placedOrder(t)
	handler := &MockCreateOrderHandler{}
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateOrderCommand) bool {
		return cmd.Customer() == customer &&
			cmd.RestaurantID() == restaurant.ID() &&
			cmd.PaymentIntentID() == "pi_42"
	})).Return(created, nil).Once()
	e := newEcho(httpadapter.Handlers{CreateOrder: handler})

	rec := do(t, e, http.MethodPost, "/api/v1/orders", &customer,
		`{"restaurant_id":2,"payment_method":"CARD","payment_intent_id":"pi_42"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode[httpadapter.Order](t, rec)
	assert.Equal(t, int64(42), body.ID)
	assert.Equal(t, "ABCD2345", body.Token)
	assert.Equal(t, "pending", body.Status)
	assert.Nil(t, body.RiderID)
	assert.True(t, decimal.NewFromInt(129).Equal(body.TotalAmount))
	require.Len(t, body.Lines, 1)
	handler.AssertExpectations(t)
}

func TestCreateOrder_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		reason string
	}{
		{"empty cart", order.NewEmptyCartError(1, 2), http.StatusUnprocessableEntity, "empty_cart"},
		{"unknown restaurant", order.NewPartyNotFoundError(kernel.RoleRestaurant, 2), http.StatusNotFound, "party_not_found"},
		{"token exhaustion", order.NewTokenGenerationError(5, errors.New("taken")), http.StatusServiceUnavailable, "token_generation_failed"},
		{"storage failure", errors.New("connection reset"), http.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := &MockCreateOrderHandler{}
			handler.On("Handle", mock.Anything, mock.Anything).Return(nil, tt.err).Once()
			e := newEcho(httpadapter.Handlers{CreateOrder: handler})

			rec := do(t, e, http.MethodPost, "/api/v1/orders", &customer, `{"restaurant_id":2}`)

			assert.Equal(t, tt.status, rec.Code)
			body := decode[httpadapter.Error](t, rec)
			assert.Equal(t, tt.reason, body.Reason)
			if tt.status == http.StatusInternalServerError {
				assert.NotContains(t, body.Message, "connection reset")
			}
		})
	}
}

func TestCreateOrder_InvalidInput(t *testing.T) {
	handler := &MockCreateOrderHandler{}
	e := newEcho(httpadapter.Handlers{CreateOrder: handler})

	cases := map[string]string{
		"malformed body":         `{"restaurant_id":`,
		"missing restaurant":     `{}`,
		"unknown payment status": `{"restaurant_id":2,"payment_status":"maybe"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := do(t, e, http.MethodPost, "/api/v1/orders", &customer, body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
	handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestClaimOrder_AlreadyClaimed(t *testing.T) {
	claim := handle[commands.ClaimOrderCommand, *order.Order](
		func(_ context.Context, cmd commands.ClaimOrderCommand) (*order.Order, error) {
			return nil, order.NewAlreadyClaimedError(cmd.OrderID())
		})
	e := newEcho(httpadapter.Handlers{ClaimOrder: claim})

	rec := do(t, e, http.MethodPost, "/api/v1/orders/42/claim", &riderA, "")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "already_claimed", decode[httpadapter.Error](t, rec).Reason)
}

func TestTransitionOrder(t *testing.T) {
	var received commands.TransitionOrderCommand
	transition := handle[commands.TransitionOrderCommand, *order.Order](
		func(_ context.Context, cmd commands.TransitionOrderCommand) (*order.Order, error) {
			received = cmd
			o := placedOrder(t)
			if err := o.Transition(cmd.Actor(), cmd.Target()); err != nil {
				return nil, err
			}
			return o, nil
		})
	e := newEcho(httpadapter.Handlers{TransitionOrder: transition})

	t.Run("restaurant accepts", func(t *testing.T) {
		rec := do(t, e, http.MethodPost, "/api/v1/orders/42/transitions", &restaurant, `{"status":"accepted"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "accepted", decode[httpadapter.Order](t, rec).Status)
		assert.Equal(t, kernel.ID(42), received.OrderID())
	})

	t.Run("illegal edge", func(t *testing.T) {
		rec := do(t, e, http.MethodPost, "/api/v1/orders/42/transitions", &restaurant, `{"status":"otw"}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "invalid_transition", decode[httpadapter.Error](t, rec).Reason)
	})

	t.Run("unassigned rider", func(t *testing.T) {
		rec := do(t, e, http.MethodPost, "/api/v1/orders/42/transitions", &riderA, `{"status":"delivered"}`)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unknown status", func(t *testing.T) {
		rec := do(t, e, http.MethodPost, "/api/v1/orders/42/transitions", &restaurant, `{"status":"lost"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		rec := do(t, e, http.MethodPost, "/api/v1/orders/abc/transitions", &restaurant, `{"status":"accepted"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("customer is not allowed", func(t *testing.T) {
		rec := do(t, e, http.MethodPost, "/api/v1/orders/42/transitions", &customer, `{"status":"cancelled"}`)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestGetOrder_NonPartyIsForbidden(t *testing.T) {
	get := handle[queries.GetOrderQuery, queries.GetOrderQueryResponse](
		func(_ context.Context, q queries.GetOrderQuery) (queries.GetOrderQueryResponse, error) {
			return queries.GetOrderQueryResponse{}, order.NewUnauthorizedActorError(q.OrderID(), q.Actor(), "not a party")
		})
	e := newEcho(httpadapter.Handlers{GetOrder: get})

	rec := do(t, e, http.MethodGet, "/api/v1/orders/42", &riderA, "")

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDeleteOrder(t *testing.T) {
	remove := deleteFunc(func(_ context.Context, cmd commands.DeleteOrderCommand) error {
		if cmd.OrderID() == 404 {
			return order.NewOrderNotFoundError(cmd.OrderID())
		}
		return nil
	})
	e := newEcho(httpadapter.Handlers{DeleteOrder: remove})

	assert.Equal(t, http.StatusNoContent, do(t, e, http.MethodDelete, "/api/v1/orders/42", &admin, "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, e, http.MethodDelete, "/api/v1/orders/404", &admin, "").Code)
	assert.Equal(t, http.StatusForbidden, do(t, e, http.MethodDelete, "/api/v1/orders/42", &restaurant, "").Code)
}

func TestSetRiderAvailability_OmittedFlagToggles(t *testing.T) {
	var toggled bool
	set := handle[commands.SetRiderAvailabilityCommand, *rider.Rider](
		func(_ context.Context, cmd commands.SetRiderAvailabilityCommand) (*rider.Rider, error) {
			_, explicit := cmd.Available()
			toggled = !explicit
			return rider.RestoreRider(riderA.ID(), "bike", "LIC-30", "+15550100", true)
		})
	e := newEcho(httpadapter.Handlers{SetRiderAvailability: set})

	rec := do(t, e, http.MethodPut, "/api/v1/riders/me/availability", &riderA, `{}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, toggled)
	assert.True(t, decode[httpadapter.Rider](t, rec).IsAvailable)
}

func TestRecordEarning_Mismatch(t *testing.T) {
	record := handle[commands.RecordEarningCommand, rider.Earning](
		func(_ context.Context, cmd commands.RecordEarningCommand) (rider.Earning, error) {
			return rider.Earning{}, rider.NewEarningsMismatchError(cmd.OrderID(), "rider_fee", decimal.Zero, cmd.Amount())
		})
	e := newEcho(httpadapter.Handlers{RecordEarning: record})

	rec := do(t, e, http.MethodPost, "/api/v1/riders/me/earnings", &riderA, `{"order_id":42,"amount":"5.00"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "earnings_mismatch", decode[httpadapter.Error](t, rec).Reason)
}

func TestGetRiderEarnings(t *testing.T) {
	totals := handle[queries.GetRiderEarningsQuery, queries.GetRiderEarningsQueryResponse](
		func(context.Context, queries.GetRiderEarningsQuery) (queries.GetRiderEarningsQueryResponse, error) {
			return queries.GetRiderEarningsQueryResponse{
				RiderID: riderA.ID(),
				All:     decimal.NewFromInt(100),
				Today:   decimal.NewFromInt(25),
				Week:    decimal.NewFromInt(50),
				Month:   decimal.NewFromInt(75),
			}, nil
		})
	e := newEcho(httpadapter.Handlers{GetRiderEarnings: totals})

	rec := do(t, e, http.MethodGet, "/api/v1/riders/me/earnings?window=week", &riderA, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode[httpadapter.Earnings](t, rec)
	assert.Equal(t, "week", body.Window)
	require.NotNil(t, body.Total)
	assert.True(t, decimal.NewFromInt(50).Equal(*body.Total))
	assert.True(t, decimal.NewFromInt(100).Equal(body.All))

	rec = do(t, e, http.MethodGet, "/api/v1/riders/me/earnings", &riderA, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decode[httpadapter.Earnings](t, rec).Total)

	rec = do(t, e, http.MethodGet, "/api/v1/riders/me/earnings?window=year", &riderA, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
