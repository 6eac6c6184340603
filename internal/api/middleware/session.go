package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rdv360/session-gateway/internal/core/domain"
	"github.com/rdv360/session-gateway/internal/core/errnorm"
	"github.com/rdv360/session-gateway/internal/core/session"
)

// StateReader exposes the current session snapshot.
type StateReader interface {
	State() session.State
}

// HydrationReporter tells whether the session has been restored from storage.
type HydrationReporter interface {
	Hydrated() bool
}

// RequireHydrated answers 503 until the session store has been hydrated.
func RequireHydrated(sessions HydrationReporter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !sessions.Hydrated() {
				c.Response().Header().Set("Retry-After", "1")
				return echo.NewHTTPError(http.StatusServiceUnavailable, errnorm.MsgGenericRetry)
			}
			return next(c)
		}
	}
}

// RequireSession rejects the request unless the gateway is signed in, and
// injects the session into the context under "session".
func RequireSession(sessions StateReader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			st := sessions.State()
			if !st.IsAuthenticated() {
				return domain.ErrNotAuthenticated
			}
			c.Set("session", st.Session)
			return next(c)
		}
	}
}
