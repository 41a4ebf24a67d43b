package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/leanios/access-gate/internal/core/domain"
)

// RequireAdmin rejects requests that the gate did not admit as an enabled
// admin. It guards handlers mounted under the admin API group in case the
// group is ever served without the gate in front.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if IdentityFrom(c) == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": domain.ErrUnauthenticated.Error()})
			}
			access := AccessFrom(c)
			if access == nil || !access.IsAdmin() {
				return c.JSON(http.StatusForbidden, map[string]string{"error": domain.ErrForbidden.Error()})
			}
			return next(c)
		}
	}
}
