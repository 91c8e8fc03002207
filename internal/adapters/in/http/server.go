package http

import (
	"context"
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/rider"

	"github.com/labstack/echo/v4"
)

type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
	TransitionOrderHandler interface {
		Handle(ctx context.Context, cmd commands.TransitionOrderCommand) (*order.Order, error)
	}
	ClaimOrderHandler interface {
		Handle(ctx context.Context, cmd commands.ClaimOrderCommand) (*order.Order, error)
	}
	DeleteOrderHandler interface {
		Handle(ctx context.Context, cmd commands.DeleteOrderCommand) error
	}
	ConfirmPaymentHandler interface {
		Handle(ctx context.Context, cmd commands.ConfirmPaymentCommand) (*order.Order, error)
	}
	RegisterRiderHandler interface {
		Handle(ctx context.Context, cmd commands.RegisterRiderCommand) (*rider.Rider, error)
	}
	SetRiderAvailabilityHandler interface {
		Handle(ctx context.Context, cmd commands.SetRiderAvailabilityCommand) (*rider.Rider, error)
	}
	RecordEarningHandler interface {
		Handle(ctx context.Context, cmd commands.RecordEarningCommand) (rider.Earning, error)
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error)
	}
	GetClaimableOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetClaimableOrdersQuery) ([]queries.GetClaimableOrdersQueryResponse, error)
	}
	GetClaimableOrdersCountHandler interface {
		Handle(ctx context.Context, query queries.GetClaimableOrdersCountQuery) (int64, error)
	}
	GetRiderHandler interface {
		Handle(ctx context.Context, query queries.GetRiderQuery) (queries.GetRiderQueryResponse, error)
	}
	GetRiderEarningsHandler interface {
		Handle(ctx context.Context, query queries.GetRiderEarningsQuery) (queries.GetRiderEarningsQueryResponse, error)
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	// Command handlers
	CreateOrder          CreateOrderHandler
	TransitionOrder      TransitionOrderHandler
	ClaimOrder           ClaimOrderHandler
	DeleteOrder          DeleteOrderHandler
	ConfirmPayment       ConfirmPaymentHandler
	RegisterRider        RegisterRiderHandler
	SetRiderAvailability SetRiderAvailabilityHandler
	RecordEarning        RecordEarningHandler

	// Query handlers
	GetOrder                GetOrderHandler
	GetClaimableOrders      GetClaimableOrdersHandler
	GetClaimableOrdersCount GetClaimableOrdersCountHandler
	GetRider                GetRiderHandler
	GetRiderEarnings        GetRiderEarningsHandler
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	handlers Handlers
}

func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// Register mounts every route on e. authenticate guards everything except
// /health; socket, when set, serves the rider availability websocket.
func (s *Server) Register(e *echo.Echo, authenticate echo.MiddlewareFunc, socket echo.HandlerFunc) {
	e.GET("/health", s.Health)

	riderOnly := RequireRole(kernel.RoleRider)

	api := e.Group("/api/v1", authenticate)
	api.POST("/orders", s.CreateOrder, RequireRole(kernel.RoleCustomer))
	api.GET("/orders/available", s.GetClaimableOrders, riderOnly)
	api.GET("/orders/available/count", s.GetClaimableOrdersCount, riderOnly)
	api.GET("/orders/:id", s.GetOrder)
	api.DELETE("/orders/:id", s.DeleteOrder, RequireRole(kernel.RoleAdmin))
	api.POST("/orders/:id/transitions", s.TransitionOrder, RequireRole(kernel.RoleRestaurant, kernel.RoleRider))
	api.POST("/orders/:id/claim", s.ClaimOrder, riderOnly)
	api.POST("/payments/confirmations", s.ConfirmPayment, RequireRole(kernel.RoleAdmin))

	me := api.Group("/riders/me", riderOnly)
	me.POST("", s.RegisterRider)
	me.GET("", s.GetRider)
	me.PUT("/availability", s.SetRiderAvailability)
	me.POST("/earnings", s.RecordEarning)
	me.GET("/earnings", s.GetRiderEarnings)

	if socket != nil {
		e.GET("/ws/riders/orders", socket, authenticate, riderOnly)
	}
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

// CreateOrder handles POST /api/v1/orders - checks out the customer's cart.
func (s *Server) CreateOrder(c echo.Context) error {
	actor, err := ActorFrom(c)
	if err != nil {
		return err
	}

	var req CreateOrderRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	paymentStatus, err := parsePaymentStatus(req.PaymentStatus)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateOrderCommand(
		actor, kernel.ID(req.RestaurantID), req.PaymentMethod, req.PaymentIntentID, paymentStatus)
	if err != nil {
		return err
	}

	o, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, orderFromDomain(o))
}

// GetOrder handles GET /api/v1/orders/:id - visible to the parties of the order.
func (s *Server) GetOrder(c echo.Context) error {
	actor, err := ActorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := kernel.ParseID(c.Param("id"))
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderQuery(orderID, actor)
	if err != nil {
		return err
	}
	view, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderFromView(view))
}

// DeleteOrder handles DELETE /api/v1/orders/:id.
func (s *Server) DeleteOrder(c echo.Context) error {
	actor, err := ActorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := kernel.ParseID(c.Param("id"))
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID, actor)
	if err != nil {
		return err
	}
	if err := s.handlers.DeleteOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// TransitionOrder handles POST /api/v1/orders/:id/transitions.
func (s *Server) TransitionOrder(c echo.Context) error {
	actor, err := ActorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := kernel.ParseID(c.Param("id"))
	if err != nil {
		return err
	}

	var req TransitionOrderRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, actor, target)
	if err != nil {
		return err
	}
	o, err := s.handlers.TransitionOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderFromDomain(o))
}

// ClaimOrder handles POST /api/v1/orders/:id/claim.
func (s *Server) ClaimOrder(c echo.Context) error {
	actor, err := ActorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := kernel.ParseID(c.Param("id"))
	if err != nil {
		return err
	}

	cmd, err := commands.NewClaimOrderCommand(orderID, actor)
	if err != nil {
		return err
	}
	o, err := s.handlers.ClaimOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderFromDomain(o))
}

// GetClaimableOrders handles GET /api/v1/orders/available.
func (s *Server) GetClaimableOrders(c echo.Context) error {
	views, err := s.handlers.GetClaimableOrders.Handle(c.Request().Context(), queries.NewGetClaimableOrdersQuery())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, claimableFromView(views))
}

// GetClaimableOrdersCount handles GET /api/v1/orders/available/count.
func (s *Server) GetClaimableOrdersCount(c echo.Context) error {
	count, err := s.handlers.GetClaimableOrdersCount.Handle(
		c.Request().Context(), queries.NewGetClaimableOrdersCountQuery())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Count{Count: count})
}

// ConfirmPayment handles POST /api/v1/payments/confirmations - the payment
// provider's webhook relay.
func (s *Server) ConfirmPayment(c echo.Context) error {
	var req ConfirmPaymentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	status, err := order.ParsePaymentStatus(req.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewConfirmPaymentCommand(req.PaymentIntentID, status, req.ChargeID)
	if err != nil {
		return err
	}
	o, err := s.handlers.ConfirmPayment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderFromDomain(o))
}

func bind(c echo.Context, target any) error {
	if err := c.Bind(target); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body").SetInternal(err)
	}
	return nil
}
