package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/rider"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the JSON body of every failed request.
type Error struct {
	Code    int    `json:"code"`
	Reason  string `json:"error"`
	Message string `json:"message"`
}

type errorMapping struct {
	target error
	status int
	reason string
}

// Order matters: the first matching sentinel wins.
var errorMappings = []errorMapping{
	{order.ErrPartyNotFound, http.StatusNotFound, "party_not_found"},
	{errs.ErrObjectNotFound, http.StatusNotFound, "not_found"},
	{order.ErrUnauthorizedActor, http.StatusForbidden, "forbidden"},
	{commands.ErrCustomerIsRequired, http.StatusForbidden, "forbidden"},
	{commands.ErrRiderIsRequired, http.StatusForbidden, "forbidden"},
	{commands.ErrAdminIsRequired, http.StatusForbidden, "forbidden"},
	{order.ErrAlreadyClaimed, http.StatusConflict, "already_claimed"},
	{order.ErrInvalidTransition, http.StatusConflict, "invalid_transition"},
	{ports.ErrRiderAlreadyRegistered, http.StatusConflict, "rider_already_registered"},
	{rider.ErrEarningAlreadyRecorded, http.StatusConflict, "earning_already_recorded"},
	{rider.ErrOrderNotDelivered, http.StatusConflict, "order_not_delivered"},
	{order.ErrEmptyCart, http.StatusUnprocessableEntity, "empty_cart"},
	{rider.ErrEarningsMismatch, http.StatusUnprocessableEntity, "earnings_mismatch"},
	{order.ErrTokenGeneration, http.StatusServiceUnavailable, "token_generation_failed"},
	{errs.ErrValueIsRequired, http.StatusBadRequest, "validation_failed"},
	{errs.ErrValueIsInvalid, http.StatusBadRequest, "validation_failed"},
	{errs.ErrValueIsOutOfRange, http.StatusBadRequest, "validation_failed"},
	{commands.ErrVehicleTypeIsRequired, http.StatusBadRequest, "validation_failed"},
	{commands.ErrLicenseNumberIsRequired, http.StatusBadRequest, "validation_failed"},
	{commands.ErrPhoneIsRequired, http.StatusBadRequest, "validation_failed"},
}

func classify(err error) (int, string) {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, reasonForStatus(httpErr.Code)
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.reason
		}
	}
	return http.StatusInternalServerError, "internal"
}

func reasonForStatus(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	}
	return "internal"
}

// NewErrorHandler renders handler errors as Error bodies. Unmapped errors
// are logged and answered with 500 without their details.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	logger = logger.With("component", "http_errors")

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, reason := classify(err)
		message := err.Error()

		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &httpErr):
			message = fmt.Sprint(httpErr.Message)
		case status == http.StatusInternalServerError:
			logger.ErrorContext(c.Request().Context(), "Request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err,
			)
			message = http.StatusText(status)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, Error{Code: status, Reason: reason, Message: message})
		}
		if writeErr != nil {
			logger.ErrorContext(c.Request().Context(), "Writing error response failed", "error", writeErr)
		}
	}
}
