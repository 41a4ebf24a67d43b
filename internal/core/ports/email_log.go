package ports

import (
	"context"

	"github.com/leanios/access-gate/internal/core/domain"
)

// EmailLogFilter carries the query parameters for listing email logs.
type EmailLogFilter struct {
	Email      string // optional: case-insensitive substring of recipient
	Status     string // optional: "success" or "failed"
	CampaignID string // optional
	Search     string // optional: case-insensitive substring of subject or body
	Page       int    // 1-based
	Limit      int
}

// EmailLogRepository reads sent-email records.
type EmailLogRepository interface {
	// List returns a page of logs matching filter and the total count.
	List(ctx context.Context, filter EmailLogFilter) ([]*domain.EmailLog, int64, error)
}

// EmailLogPage is a page of email logs.
type EmailLogPage struct {
	Items      []*domain.EmailLog
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// EmailLogService defines the email-log use cases.
type EmailLogService interface {
	List(ctx context.Context, filter EmailLogFilter) (*EmailLogPage, error)
}
