package service

import (
	"context"
	"errors"

	"github.com/leanios/access-gate/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubProfileRepo struct {
	findFn   func(ctx context.Context, id string) (domain.Access, error)
	listFn   func(ctx context.Context) ([]*domain.Profile, error)
	mutErr   error
	finds    int
	roles    map[string]domain.Role
	disabled map[string]bool
	deleted  []string
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{
		roles:    make(map[string]domain.Role),
		disabled: make(map[string]bool),
	}
}

func (r *stubProfileRepo) FindAccess(ctx context.Context, id string) (domain.Access, error) {
	r.finds++
	if r.findFn != nil {
		return r.findFn(ctx, id)
	}
	role, ok := r.roles[id]
	if !ok {
		return domain.Access{}, domain.ErrProfileNotFound
	}
	return domain.Access{Role: role, Disabled: r.disabled[id]}, nil
}

func (r *stubProfileRepo) List(ctx context.Context) ([]*domain.Profile, error) {
	if r.listFn != nil {
		return r.listFn(ctx)
	}
	return nil, nil
}

func (r *stubProfileRepo) SetRole(_ context.Context, id string, role domain.Role) error {
	if r.mutErr != nil {
		return r.mutErr
	}
	if _, ok := r.roles[id]; !ok {
		return domain.ErrProfileNotFound
	}
	r.roles[id] = role
	return nil
}

func (r *stubProfileRepo) SetDisabled(_ context.Context, id string, disabled bool) error {
	if r.mutErr != nil {
		return r.mutErr
	}
	if _, ok := r.roles[id]; !ok {
		return domain.ErrProfileNotFound
	}
	r.disabled[id] = disabled
	return nil
}

func (r *stubProfileRepo) Delete(_ context.Context, id string) error {
	if r.mutErr != nil {
		return r.mutErr
	}
	if _, ok := r.roles[id]; !ok {
		return domain.ErrProfileNotFound
	}
	delete(r.roles, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type stubRoleCache struct {
	entries     map[string]domain.Access
	getErr        error
	setErr        error
	invalidateErr error
	invalidated   []string
}

func newStubRoleCache() *stubRoleCache {
	return &stubRoleCache{entries: make(map[string]domain.Access)}
}

func (c *stubRoleCache) Get(_ context.Context, id string) (domain.Access, bool, error) {
	if c.getErr != nil {
		return domain.Access{}, false, c.getErr
	}
	a, ok := c.entries[id]
	return a, ok, nil
}

func (c *stubRoleCache) Set(_ context.Context, id string, a domain.Access) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[id] = a
	return nil
}

func (c *stubRoleCache) Invalidate(_ context.Context, id string) error {
	if c.invalidateErr != nil {
		return c.invalidateErr
	}
	delete(c.entries, id)
	c.invalidated = append(c.invalidated, id)
	return nil
}

type stubRoleLookup struct {
	access domain.Access
	err    error
	calls  int
}

func (l *stubRoleLookup) Lookup(_ context.Context, _ string) (domain.Access, error) {
	l.calls++
	return l.access, l.err
}

var errStoreDown = errors.New("connection refused")
