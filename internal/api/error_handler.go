package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/rdv360/session-gateway/internal/core/domain"
	"github.com/rdv360/session-gateway/internal/core/errnorm"
	"github.com/rdv360/session-gateway/internal/core/session"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps session and backend errors to their HTTP status codes.
//   - Renders the normalized user message, never the raw backend text.
//   - Logs unexpected errors internally.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	msg := errnorm.NormalizeError(err)
	var ae *session.ActionError
	if errors.As(err, &ae) {
		msg = ae.Message
	}

	var (
		upstream *domain.HTTPError
		timeout  *domain.TimeoutError
		network  *domain.NetworkError
	)
	switch {
	case errors.As(err, &upstream):
		if upstream.Status >= 400 && upstream.Status <= 599 {
			return upstream.Status, msg
		}
		return http.StatusBadGateway, msg
	case errors.As(err, &timeout):
		return http.StatusGatewayTimeout, msg
	case errors.As(err, &network):
		return http.StatusBadGateway, msg
	case errors.Is(err, domain.ErrMissingCredentials),
		errors.Is(err, domain.ErrInvalidRegistration),
		errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, msg
	case errors.Is(err, domain.ErrNotAuthenticated),
		errors.Is(err, domain.ErrNoRefreshToken):
		return http.StatusUnauthorized, msg
	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrNoRoles):
		return http.StatusForbidden, msg
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errnorm.MsgGeneric
}
