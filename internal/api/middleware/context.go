package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/leanios/access-gate/internal/core/domain"
)

// Echo context keys set by Gate on allowed requests.
const (
	ContextKeyIdentity = "identity"
	ContextKeyAccess   = "access"
	ContextKeyClass    = "route_class"
)

// Upstream identity headers. Client-supplied copies are always stripped.
const (
	HeaderUserID    = "X-User-ID"
	HeaderUserEmail = "X-User-Email"
)

// IdentityFrom returns the verified caller identity, or nil when anonymous.
func IdentityFrom(c echo.Context) *domain.Identity {
	id, _ := c.Get(ContextKeyIdentity).(*domain.Identity)
	return id
}

// AccessFrom returns the access record resolved by the gate. It is only
// present on admin routes.
func AccessFrom(c echo.Context) *domain.Access {
	a, _ := c.Get(ContextKeyAccess).(*domain.Access)
	return a
}
