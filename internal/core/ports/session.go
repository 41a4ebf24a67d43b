package ports

import (
	"context"
	"net/http"

	"github.com/leanios/access-gate/internal/core/domain"
)

// SessionResult is what the session resolver learned from the request.
// Identity is nil for anonymous callers. Cookies holds refreshed session
// cookies that must be written to the response (and forwarded upstream).
type SessionResult struct {
	Identity *domain.Identity
	Cookies  []*http.Cookie
}

// SessionResolver extracts the caller identity from the request cookies.
// Callers treat any returned error as anonymous but still write the
// returned Cookies (e.g. expired ones clearing a dead session).
type SessionResolver interface {
	Resolve(ctx context.Context, r *http.Request) (SessionResult, error)
}

// TokenPair is a fresh access/refresh token pair issued by the auth provider.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
}

// TokenRefresher exchanges a refresh token for a new token pair.
type TokenRefresher interface {
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}
