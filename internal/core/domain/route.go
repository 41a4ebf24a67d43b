package domain

import (
	"path"
	"strings"
)

// RouteClass decides which policy rules and security headers apply to a request.
type RouteClass string

const (
	RoutePublic        RouteClass = "public"
	RouteAuthenticated RouteClass = "authenticated_user"
	RouteAdminPage     RouteClass = "admin_page"
	RouteAdminAPI      RouteClass = "admin_api"
	RoutePayment       RouteClass = "payment_page"
)

// IsAdmin reports whether the class requires the admin role.
func (c RouteClass) IsAdmin() bool {
	return c == RouteAdminPage || c == RouteAdminAPI
}

// RouteClassifier maps request paths to route classes.
type RouteClassifier struct {
	extraPublic []string
}

// NewRouteClassifier returns a classifier that also treats the given path
// prefixes (e.g. "/health") as public.
func NewRouteClassifier(extraPublic ...string) *RouteClassifier {
	prefixes := make([]string, 0, len(extraPublic))
	for _, p := range extraPublic {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" || p == "/" {
			continue
		}
		prefixes = append(prefixes, strings.TrimSuffix(p, "/"))
	}
	return &RouteClassifier{extraPublic: prefixes}
}

// Classify returns the class of p. First match wins:
// admin API, admin pages, payment pages, public, then authenticated user.
func (rc *RouteClassifier) Classify(p string) RouteClass {
	p = normalizePath(p)

	switch {
	case strings.HasPrefix(p, "/api/admin"):
		return RouteAdminAPI
	case strings.HasPrefix(p, "/admin"):
		return RouteAdminPage
	case isPaymentPath(p):
		return RoutePayment
	case p == "/", hasSegmentPrefix(p, "/auth"), hasSegmentPrefix(p, "/api"):
		return RoutePublic
	}
	for _, prefix := range rc.extraPublic {
		if hasSegmentPrefix(p, prefix) {
			return RoutePublic
		}
	}
	return RouteAuthenticated
}

func normalizePath(p string) string {
	if p == "" || p[0] != '/' {
		p = "/" + p
	}
	return strings.ToLower(path.Clean(p))
}

// hasSegmentPrefix matches prefix itself or prefix followed by "/".
func hasSegmentPrefix(p, prefix string) bool {
	return p == prefix || strings.HasPrefix(p, prefix+"/")
}

// isPaymentPath matches "/checkout" anywhere (including "/checkout-success")
// and anything under "/products/".
func isPaymentPath(p string) bool {
	return strings.HasPrefix(p, "/products/") || strings.Contains(p, "/checkout")
}
