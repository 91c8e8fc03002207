package http

import (
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/rider"

	"github.com/labstack/echo/v4"
)

// RegisterRider handles POST /api/v1/riders/me.
func (s *Server) RegisterRider(c echo.Context) error {
	actor, err := ActorFrom(c)
	if err != nil {
		return err
	}

	var req RegisterRiderRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewRegisterRiderCommand(actor, req.VehicleType, req.LicenseNumber, req.Phone)
	if err != nil {
		return err
	}
	r, err := s.handlers.RegisterRider.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, riderFromDomain(r))
}

// GetRider handles GET /api/v1/riders/me.
func (s *Server) GetRider(c echo.Context) error {
	actor, err := ActorFrom(c)
	if err != nil {
		return err
	}

	query, err := queries.NewGetRiderQuery(actor.ID())
	if err != nil {
		return err
	}
	view, err := s.handlers.GetRider.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, riderFromView(view))
}

// SetRiderAvailability handles PUT /api/v1/riders/me/availability.
func (s *Server) SetRiderAvailability(c echo.Context) error {
	actor, err := ActorFrom(c)
	if err != nil {
		return err
	}

	var req SetAvailabilityRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewSetRiderAvailabilityCommand(actor, req.IsAvailable)
	if err != nil {
		return err
	}
	r, err := s.handlers.SetRiderAvailability.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, riderFromDomain(r))
}

// RecordEarning handles POST /api/v1/riders/me/earnings.
func (s *Server) RecordEarning(c echo.Context) error {
	actor, err := ActorFrom(c)
	if err != nil {
		return err
	}

	var req RecordEarningRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewRecordEarningCommand(actor, kernel.ID(req.OrderID), req.Amount, req.TotalAmount)
	if err != nil {
		return err
	}
	e, err := s.handlers.RecordEarning.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, earningFromDomain(e))
}

// GetRiderEarnings handles GET /api/v1/riders/me/earnings[?window=all|today|week|month].
func (s *Server) GetRiderEarnings(c echo.Context) error {
	actor, err := ActorFrom(c)
	if err != nil {
		return err
	}

	window := rider.WindowUnknown
	if raw := c.QueryParam("window"); raw != "" {
		if window, err = rider.ParseWindow(raw); err != nil {
			return err
		}
	}

	query, err := queries.NewGetRiderEarningsQuery(actor.ID())
	if err != nil {
		return err
	}
	totals, err := s.handlers.GetRiderEarnings.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := Earnings{
		RiderID: totals.RiderID.Int64(),
		All:     totals.All,
		Today:   totals.Today,
		Week:    totals.Week,
		Month:   totals.Month,
	}
	if window != rider.WindowUnknown {
		total := totals.Total(window)
		response.Window = window.String()
		response.Total = &total
	}
	return c.JSON(http.StatusOK, response)
}
