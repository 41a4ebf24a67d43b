package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/leanios/access-gate/internal/api/middleware"
	"github.com/leanios/access-gate/internal/core/domain"
	"github.com/leanios/access-gate/internal/core/ports"
)

type stubAdminUserService struct {
	listFn  func(ctx context.Context) ([]*domain.Profile, error)
	applyFn func(ctx context.Context, in ports.UserActionInput) (string, error)
}

func (s *stubAdminUserService) ListUsers(ctx context.Context) ([]*domain.Profile, error) {
	return s.listFn(ctx)
}

func (s *stubAdminUserService) Apply(ctx context.Context, in ports.UserActionInput) (string, error) {
	return s.applyFn(ctx, in)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func postJSON(e *echo.Echo, path, body string, id *domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != nil {
		c.Set(middleware.ContextKeyIdentity, id)
	}
	return c, rec
}

func TestAdminUserHandler_List(t *testing.T) {
	e := newTestEcho()
	stub := &stubAdminUserService{
		listFn: func(context.Context) ([]*domain.Profile, error) {
			return []*domain.Profile{{ID: "u1", Email: "a@example.com", Role: domain.RoleAdmin}}, nil
		},
	}
	h := NewAdminUserHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	rec := httptest.NewRecorder()
	if err := h.List(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Users []map[string]any `json:"users"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Users) != 1 || resp.Users[0]["id"] != "u1" || resp.Users[0]["role"] != "admin" {
		t.Fatalf("unexpected users payload: %+v", resp.Users)
	}
}

func TestAdminUserHandler_Apply_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAdminUserService{
		applyFn: func(_ context.Context, in ports.UserActionInput) (string, error) {
			if in.ActorID != "admin-1" || in.UserID != "u2" || in.Action != ports.ActionPromote {
				t.Fatalf("unexpected input: %+v", in)
			}
			return "User promoted to admin", nil
		},
	}
	h := NewAdminUserHandler(stub)

	c, rec := postJSON(e, "/api/admin/users", `{"action":"promote","userId":"u2"}`, &domain.Identity{ID: "admin-1"})
	if err := h.Apply(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp userActionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Success || resp.Message != "User promoted to admin" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAdminUserHandler_Apply_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown action", `{"action":"nuke","userId":"u2"}`, "action must be one of"},
		{"missing user", `{"action":"promote"}`, "userId is required"},
		{"malformed json", `{"action":`, "invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho()
			h := NewAdminUserHandler(&stubAdminUserService{
				applyFn: func(context.Context, ports.UserActionInput) (string, error) {
					t.Fatalf("service must not be called")
					return "", nil
				},
			})

			c, _ := postJSON(e, "/api/admin/users", tt.body, &domain.Identity{ID: "admin-1"})
			err := h.Apply(c)

			var he *echo.HTTPError
			if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
				t.Fatalf("expected 400 HTTPError, got %v", err)
			}
			if msg, _ := he.Message.(string); !strings.Contains(msg, tt.want) {
				t.Fatalf("expected message containing %q, got %q", tt.want, msg)
			}
		})
	}
}

func TestAdminUserHandler_Apply_PropagatesDomainErrors(t *testing.T) {
	e := newTestEcho()
	h := NewAdminUserHandler(&stubAdminUserService{
		applyFn: func(context.Context, ports.UserActionInput) (string, error) {
			return "", domain.ErrSelfModification
		},
	})

	c, _ := postJSON(e, "/api/admin/users", `{"action":"demote","userId":"admin-1"}`, &domain.Identity{ID: "admin-1"})
	if err := h.Apply(c); !errors.Is(err, domain.ErrSelfModification) {
		t.Fatalf("expected ErrSelfModification, got %v", err)
	}
}

func TestAdminUserHandler_Apply_RequiresIdentity(t *testing.T) {
	e := newTestEcho()
	h := NewAdminUserHandler(&stubAdminUserService{})

	c, _ := postJSON(e, "/api/admin/users", `{"action":"promote","userId":"u2"}`, nil)
	if err := h.Apply(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAdminUserHandler_Apply_SnakeCaseUserIDRejected(t *testing.T) {
	e := newTestEcho()
	h := NewAdminUserHandler(&stubAdminUserService{})

	c, _ := postJSON(e, "/api/admin/users", `{"action":"promote","user_id":"u2"}`, &domain.Identity{ID: "admin-1"})
	err := h.Apply(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a body without userId, got %v", err)
	}
}

func TestAdminUserHandler_Apply_ResponseKeys(t *testing.T) {
	e := newTestEcho()
	h := NewAdminUserHandler(&stubAdminUserService{
		applyFn: func(context.Context, ports.UserActionInput) (string, error) { return "User disabled", nil },
	})

	c, rec := postJSON(e, "/api/admin/users", `{"action":"disable","userId":"u2"}`, &domain.Identity{ID: "admin-1"})
	if err := h.Apply(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if raw["success"] != true || raw["message"] != "User disabled" {
		t.Fatalf("unexpected body: %v", raw)
	}
}
