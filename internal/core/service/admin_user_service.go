package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/leanios/access-gate/internal/api/metrics"
	"github.com/leanios/access-gate/internal/core/domain"
	"github.com/leanios/access-gate/internal/core/ports"
)

type adminUserService struct {
	repo  ports.ProfileRepository
	cache ports.RoleCache // nil when caching is disabled
	log   zerolog.Logger
}

// NewAdminUserService returns the back-office user management service.
// Every successful mutation invalidates the user's cached role.
func NewAdminUserService(repo ports.ProfileRepository, cache ports.RoleCache, log zerolog.Logger) ports.AdminUserService {
	return &adminUserService{
		repo:  repo,
		cache: cache,
		log:   log.With().Str("component", "admin_users").Logger(),
	}
}

func (s *adminUserService) ListUsers(ctx context.Context) ([]*domain.Profile, error) {
	profiles, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return profiles, nil
}

func (s *adminUserService) Apply(ctx context.Context, in ports.UserActionInput) (string, error) {
	if in.UserID == "" || !in.Action.Valid() {
		return "", domain.ErrInvalidAction
	}
	if in.UserID == in.ActorID && in.Action != ports.ActionPromote && in.Action != ports.ActionEnable {
		return "", domain.ErrSelfModification
	}

	var (
		err error
		msg string
	)
	switch in.Action {
	case ports.ActionPromote:
		msg = "User promoted to admin"
		err = s.repo.SetRole(ctx, in.UserID, domain.RoleAdmin)
	case ports.ActionDemote:
		msg = "Admin privileges removed"
		err = s.repo.SetRole(ctx, in.UserID, domain.RoleUser)
	case ports.ActionDisable:
		msg = "User disabled"
		err = s.repo.SetDisabled(ctx, in.UserID, true)
	case ports.ActionEnable:
		msg = "User enabled"
		err = s.repo.SetDisabled(ctx, in.UserID, false)
	case ports.ActionDelete:
		msg = "User deleted"
		err = s.repo.Delete(ctx, in.UserID)
	default:
		return "", domain.ErrInvalidAction
	}
	if err != nil {
		metrics.AdminActionsTotal.WithLabelValues(string(in.Action), "error").Inc()
		return "", fmt.Errorf("%s user: %w", in.Action, err)
	}
	metrics.AdminActionsTotal.WithLabelValues(string(in.Action), "ok").Inc()

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, in.UserID); err != nil {
			s.log.Warn().Err(err).Str("user_id", in.UserID).Msg("failed to invalidate role cache")
		}
	}

	s.log.Info().
		Str("actor_id", in.ActorID).
		Str("user_id", in.UserID).
		Str("action", string(in.Action)).
		Msg("admin action applied")

	return msg, nil
}
