// Package session resolves caller identities from the auth provider's
// session cookies.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/leanios/access-gate/internal/api/metrics"
	"github.com/leanios/access-gate/internal/core/domain"
	"github.com/leanios/access-gate/internal/core/ports"
)

const (
	DefaultAccessCookie  = "sb-access-token"
	DefaultRefreshCookie = "sb-refresh-token"
	defaultRefreshMaxAge = 7 * 24 * time.Hour
)

var (
	ErrNoSession    = errors.New("no session")
	ErrInvalidToken = errors.New("invalid session token")
)

// Config controls token verification and the cookies written after a refresh.
type Config struct {
	// Secret is the HS256 key the auth provider signs access tokens with.
	Secret []byte
	// Audience, when set, must be present in the token's aud claim.
	Audience      string
	AccessCookie  string
	RefreshCookie string
	CookieSecure  bool
	RefreshMaxAge time.Duration
}

// claims is the subset of the provider's access token the gate relies on.
type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Resolver implements ports.SessionResolver for provider-signed JWT cookies.
type Resolver struct {
	cfg       Config
	refresher ports.TokenRefresher // nil disables refresh
	log       zerolog.Logger
}

// NewResolver returns a Resolver. A nil refresher means expired sessions are
// simply anonymous.
func NewResolver(cfg Config, refresher ports.TokenRefresher, log zerolog.Logger) *Resolver {
	if cfg.AccessCookie == "" {
		cfg.AccessCookie = DefaultAccessCookie
	}
	if cfg.RefreshCookie == "" {
		cfg.RefreshCookie = DefaultRefreshCookie
	}
	if cfg.RefreshMaxAge <= 0 {
		cfg.RefreshMaxAge = defaultRefreshMaxAge
	}
	return &Resolver{
		cfg:       cfg,
		refresher: refresher,
		log:       log.With().Str("component", "session").Logger(),
	}
}

// Resolve returns the caller identity. A valid access token wins; a missing
// or expired one is refreshed once when a refresh cookie is present. On any
// error the result is anonymous.
func (r *Resolver) Resolve(ctx context.Context, req *http.Request) (ports.SessionResult, error) {
	var verifyErr error = ErrNoSession

	if raw := cookieValue(req, r.cfg.AccessCookie); raw != "" {
		id, err := r.verify(raw)
		if err == nil {
			return ports.SessionResult{Identity: id}, nil
		}
		// A forged or malformed token is never traded for a new one.
		if !errors.Is(err, jwt.ErrTokenExpired) {
			return ports.SessionResult{}, err
		}
		verifyErr = err
	}

	refreshToken := cookieValue(req, r.cfg.RefreshCookie)
	if refreshToken == "" || r.refresher == nil {
		return ports.SessionResult{}, verifyErr
	}

	return r.refresh(ctx, refreshToken)
}

func (r *Resolver) refresh(ctx context.Context, refreshToken string) (ports.SessionResult, error) {
	pair, err := r.refresher.Refresh(ctx, refreshToken)
	if err != nil {
		metrics.SessionRefreshTotal.WithLabelValues("error").Inc()
		// A rejected refresh token will never succeed; clear the session so
		// later requests stop calling the provider. Transport errors keep it.
		if errors.Is(err, ErrRefreshRejected) {
			return ports.SessionResult{Cookies: r.clearCookies()}, fmt.Errorf("refresh session: %w", err)
		}
		return ports.SessionResult{}, fmt.Errorf("refresh session: %w", err)
	}

	id, err := r.verify(pair.AccessToken)
	if err != nil {
		metrics.SessionRefreshTotal.WithLabelValues("error").Inc()
		return ports.SessionResult{}, fmt.Errorf("refreshed token: %w", err)
	}

	metrics.SessionRefreshTotal.WithLabelValues("ok").Inc()
	r.log.Debug().Str("user_id", id.ID).Msg("session refreshed")

	return ports.SessionResult{Identity: id, Cookies: r.cookies(pair)}, nil
}

func (r *Resolver) verify(raw string) (*domain.Identity, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if r.cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(r.cfg.Audience))
	}

	var c claims
	tkn, err := jwt.ParseWithClaims(raw, &c, func(*jwt.Token) (interface{}, error) {
		return r.cfg.Secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !tkn.Valid || strings.TrimSpace(c.Subject) == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return &domain.Identity{ID: c.Subject, Email: c.Email}, nil
}

func (r *Resolver) cookies(pair *ports.TokenPair) []*http.Cookie {
	out := []*http.Cookie{r.cookie(r.cfg.AccessCookie, pair.AccessToken, pair.ExpiresIn)}
	if pair.RefreshToken != "" {
		out = append(out, r.cookie(r.cfg.RefreshCookie, pair.RefreshToken, int(r.cfg.RefreshMaxAge.Seconds())))
	}
	return out
}

// clearCookies expires both session cookies on the client.
func (r *Resolver) clearCookies() []*http.Cookie {
	return []*http.Cookie{
		r.cookie(r.cfg.AccessCookie, "", -1),
		r.cookie(r.cfg.RefreshCookie, "", -1),
	}
}

func (r *Resolver) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   r.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

func cookieValue(req *http.Request, name string) string {
	c, err := req.Cookie(name)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(c.Value)
}
