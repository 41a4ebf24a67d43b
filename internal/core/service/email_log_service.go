package service

import (
	"context"
	"fmt"

	"github.com/leanios/access-gate/internal/core/domain"
	"github.com/leanios/access-gate/internal/core/ports"
)

const (
	defaultEmailLogLimit = 50
	maxEmailLogLimit     = 200
	maxEmailLogPage      = 100000
)

type emailLogService struct {
	repo ports.EmailLogRepository
}

// NewEmailLogService returns the email-log listing service.
func NewEmailLogService(repo ports.EmailLogRepository) ports.EmailLogService {
	return &emailLogService{repo: repo}
}

// List normalises paging (page in [1, 100000], limit in [1, 200], default 50), drops
// unknown status values and returns the requested page.
func (s *emailLogService) List(ctx context.Context, f ports.EmailLogFilter) (*ports.EmailLogPage, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Page > maxEmailLogPage {
		f.Page = maxEmailLogPage
	}
	if f.Limit < 1 {
		f.Limit = defaultEmailLogLimit
	}
	if f.Limit > maxEmailLogLimit {
		f.Limit = maxEmailLogLimit
	}
	if f.Status != string(domain.EmailSuccess) && f.Status != string(domain.EmailFailed) {
		f.Status = ""
	}

	items, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list email logs: %w", err)
	}
	if items == nil {
		items = []*domain.EmailLog{}
	}

	totalPages := int(total) / f.Limit
	if int(total)%f.Limit != 0 {
		totalPages++
	}

	return &ports.EmailLogPage{
		Items:      items,
		Total:      total,
		Page:       f.Page,
		Limit:      f.Limit,
		TotalPages: totalPages,
	}, nil
}
