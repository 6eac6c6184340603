package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rdv360/session-gateway/internal/core/domain"
	"github.com/rdv360/session-gateway/internal/core/errnorm"
	"github.com/rdv360/session-gateway/internal/core/roles"
)

// RBAC lets the request through when the session set by RequireSession holds
// any of allowedRoles.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, _ := c.Get("session").(*domain.Session)
			if !roles.HasAnyRole(sess, allowedRoles...) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": errnorm.MsgForbidden})
			}
			return next(c)
		}
	}
}
