package ports

import (
	"context"

	"github.com/leanios/access-gate/internal/core/domain"
)

// UserAction is an admin operation on a user profile.
type UserAction string

const (
	ActionPromote UserAction = "promote"
	ActionDemote  UserAction = "demote"
	ActionDisable UserAction = "disable"
	ActionEnable  UserAction = "enable"
	ActionDelete  UserAction = "delete"
)

// Valid reports whether a is one of the known actions.
func (a UserAction) Valid() bool {
	switch a {
	case ActionPromote, ActionDemote, ActionDisable, ActionEnable, ActionDelete:
		return true
	}
	return false
}

// UserActionInput carries an admin action request.
type UserActionInput struct {
	ActorID string
	UserID  string
	Action  UserAction
}

// AdminUserService defines the back-office user management use cases.
type AdminUserService interface {
	ListUsers(ctx context.Context) ([]*domain.Profile, error)
	// Apply runs the action and returns a human-readable confirmation.
	Apply(ctx context.Context, input UserActionInput) (string, error)
}
