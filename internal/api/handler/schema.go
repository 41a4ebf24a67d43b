package handler

import (
	"github.com/leanios/access-gate/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Admin users ---

type userActionRequest struct {
	Action string `json:"action" validate:"required,oneof=promote demote disable enable delete"`
	UserID string `json:"userId" validate:"required"`
}

type userActionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type listUsersResponse struct {
	Users []*domain.Profile `json:"users"`
}

// --- Email logs ---

type emailLogQuery struct {
	Page       int    `query:"page"        validate:"omitempty,min=1,max=100000"`
	Limit      int    `query:"limit"       validate:"omitempty,min=1"`
	Email      string `query:"email"`
	Status     string `query:"status"`
	CampaignID string `query:"campaignId"`
	Search     string `query:"search"`
}

type pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type emailLogsResponse struct {
	Success    bool               `json:"success"`
	EmailLogs  []*domain.EmailLog `json:"emailLogs"`
	Pagination pagination         `json:"pagination"`
}

// --- Current user ---

type meResponse struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}
