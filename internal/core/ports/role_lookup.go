package ports

import (
	"context"

	"github.com/leanios/access-gate/internal/core/domain"
)

// RoleLookup resolves the access of an identity.
type RoleLookup interface {
	Lookup(ctx context.Context, id string) (domain.Access, error)
}
