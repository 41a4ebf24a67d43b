package ports

import (
	"context"

	"github.com/leanios/access-gate/internal/core/domain"
)

// ProfileRepository is the profile store. It is accessed with the service
// credential, so reads are never scoped to the caller.
type ProfileRepository interface {
	// FindAccess returns the role/disabled pair for id.
	// Returns domain.ErrProfileNotFound when no profile exists and
	// domain.ErrMalformedProfile when the stored document cannot be mapped.
	FindAccess(ctx context.Context, id string) (domain.Access, error)
	List(ctx context.Context) ([]*domain.Profile, error)
	SetRole(ctx context.Context, id string, role domain.Role) error
	SetDisabled(ctx context.Context, id string, disabled bool) error
	Delete(ctx context.Context, id string) error
}

// RoleCache caches successful role lookups. Implementations report a miss
// as (zero, false, nil).
type RoleCache interface {
	Get(ctx context.Context, id string) (domain.Access, bool, error)
	Set(ctx context.Context, id string, access domain.Access) error
	Invalidate(ctx context.Context, id string) error
}
