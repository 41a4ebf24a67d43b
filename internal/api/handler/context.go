package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/leanios/access-gate/internal/api/middleware"
	"github.com/leanios/access-gate/internal/core/domain"
)

// ctxIdentity returns the identity the gate verified for this request. A
// missing identity means the handler is reachable anonymously, which the
// caller reports as 401.
func ctxIdentity(c echo.Context) (*domain.Identity, error) {
	id := middleware.IdentityFrom(c)
	if id == nil || id.ID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return id, nil
}
