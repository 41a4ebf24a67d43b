package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/leanios/access-gate/internal/api/metrics"
	"github.com/leanios/access-gate/internal/core/domain"
	"github.com/leanios/access-gate/internal/core/ports"
)

type roleLookupService struct {
	repo  ports.ProfileRepository
	cache ports.RoleCache // nil disables caching
	log   zerolog.Logger
}

// NewRoleLookupService returns a RoleLookup reading from repo, fronted by
// cache when cache is non-nil.
//
// The cache only ever holds denying records (non-admin or disabled). A
// lookup that grants admin access always comes from the store, so a stale
// or racing cache entry can delay a promotion but never a disable.
// Cache failures never fail a lookup; store failures always do.
func NewRoleLookupService(repo ports.ProfileRepository, cache ports.RoleCache, log zerolog.Logger) ports.RoleLookup {
	return &roleLookupService{
		repo:  repo,
		cache: cache,
		log:   log.With().Str("component", "role_lookup").Logger(),
	}
}

func (s *roleLookupService) Lookup(ctx context.Context, id string) (domain.Access, error) {
	if id == "" {
		return domain.Access{}, domain.ErrProfileNotFound
	}

	// 1. Cache. Only a denial may be served from it; a failing cache is a miss.
	if s.cache != nil {
		access, ok, err := s.cache.Get(ctx, id)
		switch {
		case err != nil:
			metrics.RoleCacheTotal.WithLabelValues("error").Inc()
			s.log.Warn().Err(err).Str("user_id", id).Msg("role cache read failed, querying store")
		case ok && !access.IsAdmin():
			metrics.RoleCacheTotal.WithLabelValues("hit").Inc()
			return access, nil
		case ok:
			metrics.RoleCacheTotal.WithLabelValues("miss").Inc()
			s.log.Warn().Str("user_id", id).Msg("ignoring cached admin record")
			_ = s.cache.Invalidate(ctx, id)
		default:
			metrics.RoleCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	// 2. Store.
	start := time.Now()
	access, err := s.repo.FindAccess(ctx, id)
	metrics.RoleLookupDuration.WithLabelValues(lookupResult(access, err)).Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return domain.Access{}, err
		}
		return domain.Access{}, fmt.Errorf("role lookup: %w", err)
	}

	// 3. Only denials are cached.
	if s.cache != nil && !access.IsAdmin() {
		if err := s.cache.Set(ctx, id, access); err != nil {
			s.log.Warn().Err(err).Str("user_id", id).Msg("role cache write failed")
		}
	}

	return access, nil
}

func lookupResult(access domain.Access, err error) string {
	switch {
	case errors.Is(err, domain.ErrProfileNotFound):
		return "not_found"
	case err != nil:
		return "error"
	case access.IsAdmin():
		return "admin"
	default:
		return "non_admin"
	}
}
