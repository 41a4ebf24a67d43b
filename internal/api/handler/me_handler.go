package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// MeHandler handles GET /api/me. The route is public, so the handler itself
// answers 401 for anonymous callers.
type MeHandler struct{}

func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

// Get returns the caller identity.
//
// @Summary      Current session identity
// @Tags         session
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  meResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/me [get]
func (h *MeHandler) Get(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, meResponse{ID: id.ID, Email: id.Email})
}
