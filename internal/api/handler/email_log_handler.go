package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/leanios/access-gate/internal/core/ports"
)

// EmailLogHandler serves the admin email-log API.
type EmailLogHandler struct {
	service ports.EmailLogService
}

func NewEmailLogHandler(service ports.EmailLogService) *EmailLogHandler {
	return &EmailLogHandler{service: service}
}

// List handles GET /api/admin/email-logs.
//
// @Summary      List sent emails
// @Description  Paginated, newest first. Unknown status values are ignored.
// @Tags         admin
// @Produce      json
// @Security     SessionCookie
// @Param        page         query     int     false  "Page number (default 1, max 100000)"
// @Param        limit        query     int     false  "Page size (default 50, max 200)"
// @Param        email        query     string  false  "Recipient email contains"
// @Param        status       query     string  false  "success or failed"
// @Param        campaignId   query     string  false  "Campaign ID"
// @Param        search       query     string  false  "Subject or body contains"
// @Success      200          {object}  emailLogsResponse
// @Failure      400          {object}  errorResponse
// @Failure      401          {object}  errorResponse
// @Failure      403          {object}  errorResponse
// @Failure      500          {object}  errorResponse
// @Router       /api/admin/email-logs [get]
func (h *EmailLogHandler) List(c echo.Context) error {
	var q emailLogQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := c.Validate(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	page, err := h.service.List(c.Request().Context(), ports.EmailLogFilter{
		Email:      q.Email,
		Status:     q.Status,
		CampaignID: q.CampaignID,
		Search:     q.Search,
		Page:       q.Page,
		Limit:      q.Limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, emailLogsResponse{
		Success:   true,
		EmailLogs: page.Items,
		Pagination: pagination{
			Page:       page.Page,
			Limit:      page.Limit,
			Total:      page.Total,
			TotalPages: page.TotalPages,
		},
	})
}
