package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/leanios/access-gate/internal/api/metrics"
	"github.com/leanios/access-gate/internal/core/domain"
	"github.com/leanios/access-gate/internal/core/ports"
)

// Enforcer decides what happens to a request for path made by id.
type Enforcer interface {
	Evaluate(ctx context.Context, path string, id *domain.Identity) domain.Decision
}

// Gate runs every request through session resolution and the access policy.
//
// Security headers of the route class are written on every response of that
// class, allowed or not. Refreshed session cookies are written to the
// response and substituted into the request seen by downstream handlers.
func Gate(resolver ports.SessionResolver, enforcer Enforcer, log zerolog.Logger) echo.MiddlewareFunc {
	log = log.With().Str("component", "gate").Logger()

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			req.Header.Del(HeaderUserID)
			req.Header.Del(HeaderUserEmail)

			session, err := resolver.Resolve(req.Context(), req)
			if err != nil {
				log.Debug().Err(err).Str("path", req.URL.Path).Msg("session not resolved, treating as anonymous")
				session.Identity = nil
			}
			if len(session.Cookies) > 0 {
				for _, ck := range session.Cookies {
					c.SetCookie(ck)
				}
				replaceCookies(req, session.Cookies)
			}

			d := enforcer.Evaluate(req.Context(), req.URL.Path, session.Identity)

			h := c.Response().Header()
			for k, v := range d.Security.Headers {
				h.Set(k, v)
			}
			metrics.GateDecisionsTotal.WithLabelValues(string(d.Class), string(d.Action)).Inc()

			switch d.Action {
			case domain.GateRedirect:
				logDenial(log, req, d)
				return c.Redirect(d.Status, d.Location)
			case domain.GateReject:
				logDenial(log, req, d)
				return c.JSON(d.Status, map[string]string{"error": d.Message})
			}

			c.Set(ContextKeyClass, d.Class)
			if d.Identity != nil {
				c.Set(ContextKeyIdentity, d.Identity)
				req.Header.Set(HeaderUserID, d.Identity.ID)
				if d.Identity.Email != "" {
					req.Header.Set(HeaderUserEmail, d.Identity.Email)
				}
			}
			if d.Access != nil {
				c.Set(ContextKeyAccess, d.Access)
			}

			return next(c)
		}
	}
}

func logDenial(log zerolog.Logger, req *http.Request, d domain.Decision) {
	ev := log.Info()
	if d.Reason == domain.ReasonAnonymous {
		ev = log.Debug()
	}
	if d.Identity != nil {
		ev = ev.Str("user_id", d.Identity.ID)
	}
	ev.Str("method", req.Method).
		Str("path", req.URL.Path).
		Str("route_class", string(d.Class)).
		Str("action", string(d.Action)).
		Str("reason", d.Reason).
		Msg("request denied")
}

// replaceCookies rewrites the request Cookie header so that fresh cookies
// replace any stale values with the same name. Expired cookies are dropped.
func replaceCookies(req *http.Request, fresh []*http.Cookie) {
	names := make(map[string]struct{}, len(fresh))
	for _, ck := range fresh {
		names[ck.Name] = struct{}{}
	}

	existing := req.Cookies()
	req.Header.Del("Cookie")
	for _, ck := range existing {
		if _, ok := names[ck.Name]; ok {
			continue
		}
		req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
	}
	for _, ck := range fresh {
		if ck.MaxAge < 0 {
			continue
		}
		req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
	}
}
