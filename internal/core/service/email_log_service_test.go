package service

import (
	"context"
	"errors"
	"testing"

	"github.com/leanios/access-gate/internal/core/domain"
	"github.com/leanios/access-gate/internal/core/ports"
)

type stubEmailLogRepo struct {
	got   ports.EmailLogFilter
	items []*domain.EmailLog
	total int64
	err   error
}

func (r *stubEmailLogRepo) List(_ context.Context, f ports.EmailLogFilter) ([]*domain.EmailLog, int64, error) {
	r.got = f
	return r.items, r.total, r.err
}

func TestEmailLogService_Defaults(t *testing.T) {
	repo := &stubEmailLogRepo{total: 101}
	page, err := NewEmailLogService(repo).List(context.Background(), ports.EmailLogFilter{Status: "bounced"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if repo.got.Page != 1 || repo.got.Limit != defaultEmailLogLimit {
		t.Fatalf("expected page 1 limit %d, got %+v", defaultEmailLogLimit, repo.got)
	}
	if repo.got.Status != "" {
		t.Fatalf("unknown status must be dropped, got %q", repo.got.Status)
	}
	if page.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", page.TotalPages)
	}
	if page.Items == nil {
		t.Fatalf("items must be an empty slice, not nil")
	}
}

func TestEmailLogService_ClampsLimit(t *testing.T) {
	repo := &stubEmailLogRepo{total: 400}
	page, err := NewEmailLogService(repo).List(context.Background(), ports.EmailLogFilter{Page: 2, Limit: 1000, Status: "failed"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Limit != maxEmailLogLimit || page.Page != 2 || page.TotalPages != 2 {
		t.Fatalf("unexpected page: %+v", page)
	}
	if repo.got.Status != "failed" {
		t.Fatalf("known status must be kept")
	}
}

func TestEmailLogService_RepoError(t *testing.T) {
	repo := &stubEmailLogRepo{err: errStoreDown}
	if _, err := NewEmailLogService(repo).List(context.Background(), ports.EmailLogFilter{}); !errors.Is(err, errStoreDown) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestEmailLogService_ClampsPage(t *testing.T) {
	repo := &stubEmailLogRepo{}
	page, err := NewEmailLogService(repo).List(context.Background(), ports.EmailLogFilter{Page: 50_000_000, Limit: 200})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if repo.got.Page != maxEmailLogPage || page.Page != maxEmailLogPage {
		t.Fatalf("expected page clamped to %d, got %d", maxEmailLogPage, repo.got.Page)
	}
}
