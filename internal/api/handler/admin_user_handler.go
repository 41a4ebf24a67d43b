package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/leanios/access-gate/internal/core/ports"
)

// AdminUserHandler serves the back-office user management API.
type AdminUserHandler struct {
	service ports.AdminUserService
}

func NewAdminUserHandler(service ports.AdminUserService) *AdminUserHandler {
	return &AdminUserHandler{service: service}
}

// List handles GET /api/admin/users.
//
// @Summary      List user profiles, newest first
// @Tags         admin
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  listUsersResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/admin/users [get]
func (h *AdminUserHandler) List(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listUsersResponse{Users: users})
}

// Apply handles POST /api/admin/users.
//
// @Summary      Promote, demote, disable, enable or delete a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      userActionRequest  true  "Action and target user"
// @Success      200   {object}  userActionResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/admin/users [post]
func (h *AdminUserHandler) Apply(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req userActionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msg, err := h.service.Apply(c.Request().Context(), ports.UserActionInput{
		ActorID: actor.ID,
		UserID:  req.UserID,
		Action:  ports.UserAction(req.Action),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userActionResponse{Success: true, Message: msg})
}
