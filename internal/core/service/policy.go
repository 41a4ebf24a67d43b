package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/leanios/access-gate/internal/core/domain"
	"github.com/leanios/access-gate/internal/core/ports"
)

const (
	DefaultSignInPath    = "/auth/sign-in"
	DefaultDashboardPath = "/dashboard"
)

// PolicyConfig holds the redirect targets of the access policy.
type PolicyConfig struct {
	SignInPath    string
	DashboardPath string
}

// RoleResult is the outcome of a role lookup as seen by the policy.
type RoleResult struct {
	Access domain.Access
	Err    error
}

// PolicyEnforcer classifies requests and decides allow, redirect or reject.
type PolicyEnforcer struct {
	classifier *domain.RouteClassifier
	lookup     ports.RoleLookup
	policies   domain.SecurityPolicies
	cfg        PolicyConfig
	log        zerolog.Logger
}

// NewPolicyEnforcer returns a PolicyEnforcer. Empty redirect targets fall
// back to DefaultSignInPath and DefaultDashboardPath.
func NewPolicyEnforcer(
	classifier *domain.RouteClassifier,
	lookup ports.RoleLookup,
	policies domain.SecurityPolicies,
	cfg PolicyConfig,
	log zerolog.Logger,
) *PolicyEnforcer {
	if cfg.SignInPath == "" {
		cfg.SignInPath = DefaultSignInPath
	}
	if cfg.DashboardPath == "" {
		cfg.DashboardPath = DefaultDashboardPath
	}
	return &PolicyEnforcer{
		classifier: classifier,
		lookup:     lookup,
		policies:   policies,
		cfg:        cfg,
		log:        log.With().Str("component", "policy").Logger(),
	}
}

// Evaluate decides the fate of a request to path made by id (nil when
// anonymous). The role lookup runs only for admin classes with a known
// identity.
func (p *PolicyEnforcer) Evaluate(ctx context.Context, path string, id *domain.Identity) domain.Decision {
	class := p.classifier.Classify(path)

	var role *RoleResult
	if class.IsAdmin() && id != nil {
		access, err := p.lookup.Lookup(ctx, id.ID)
		role = &RoleResult{Access: access, Err: err}
		if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
			p.log.Error().Err(err).Str("user_id", id.ID).Str("path", path).Msg("role lookup failed, denying")
		}
	}

	return p.Decide(class, id, role)
}

// Decide applies the policy rules to an already classified request. It has
// no side effects. role is nil when no lookup was performed.
func (p *PolicyEnforcer) Decide(class domain.RouteClass, id *domain.Identity, role *RoleResult) domain.Decision {
	d := domain.Decision{
		Class:    class,
		Security: p.policies.For(class),
		Identity: id,
	}

	switch class {
	case domain.RoutePublic, domain.RoutePayment:
		return allow(d)

	case domain.RouteAdminPage, domain.RouteAdminAPI:
		if id == nil {
			if class == domain.RouteAdminAPI {
				return reject(d, http.StatusUnauthorized, domain.ErrUnauthenticated, domain.ReasonAnonymous)
			}
			return redirect(d, p.cfg.SignInPath, domain.ReasonAnonymous)
		}
		if reason := denialReason(role); reason != "" {
			if class == domain.RouteAdminAPI {
				return reject(d, http.StatusForbidden, domain.ErrForbidden, reason)
			}
			return redirect(d, p.cfg.DashboardPath, reason)
		}
		access := role.Access
		d.Access = &access
		return allow(d)

	default:
		// Authenticated-user routes, and anything unrecognised.
		if id == nil {
			return redirect(d, p.cfg.SignInPath, domain.ReasonAnonymous)
		}
		return allow(d)
	}
}

// denialReason returns "" only when role proves an enabled admin.
func denialReason(role *RoleResult) string {
	switch {
	case role == nil:
		return domain.ReasonLookupFailed
	case errors.Is(role.Err, domain.ErrProfileNotFound):
		return domain.ReasonNotFound
	case role.Err != nil:
		return domain.ReasonLookupFailed
	case role.Access.Disabled:
		return domain.ReasonDisabled
	case role.Access.Role != domain.RoleAdmin:
		return domain.ReasonNotAdmin
	}
	return ""
}

func allow(d domain.Decision) domain.Decision {
	d.Action = domain.GateAllow
	return d
}

func redirect(d domain.Decision, location, reason string) domain.Decision {
	d.Action = domain.GateRedirect
	d.Status = http.StatusFound
	d.Location = location
	d.Reason = reason
	return d
}

func reject(d domain.Decision, status int, err error, reason string) domain.Decision {
	d.Action = domain.GateReject
	d.Status = status
	d.Message = err.Error()
	d.Reason = reason
	return d
}
