package api

import (
	"net/url"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/leanios/access-gate/internal/api/handler"
	"github.com/leanios/access-gate/internal/api/middleware"
	"github.com/leanios/access-gate/internal/core/ports"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Sessions   ports.SessionResolver
	Enforcer   middleware.Enforcer
	AdminUsers ports.AdminUserService
	EmailLogs  ports.EmailLogService
	Checks     map[string]handler.Check

	// Upstream receives every allowed request no route here handles.
	// Nil answers those requests with 404.
	Upstream *url.URL

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: d.Registerer,
	}))
	e.Use(middleware.Gate(d.Sessions, d.Enforcer, d.Log))

	// --- Health probes, metrics and docs (public) ---
	health := handler.NewHealthHandler(d.Checks)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Session ---
	e.GET("/api/me", handler.NewMeHandler().Get)

	// --- Admin API ---
	users := handler.NewAdminUserHandler(d.AdminUsers)
	emailLogs := handler.NewEmailLogHandler(d.EmailLogs)

	admin := e.Group("/api/admin", middleware.RequireAdmin())
	admin.GET("/users", users.List)
	admin.POST("/users", users.Apply)
	admin.GET("/email-logs", emailLogs.List)

	// --- Site upstream ---
	if d.Upstream != nil {
		proxy := echomiddleware.ProxyWithConfig(echomiddleware.ProxyConfig{
			Balancer: echomiddleware.NewRandomBalancer([]*echomiddleware.ProxyTarget{{URL: d.Upstream}}),
		})
		e.Any("/*", func(echo.Context) error { return echo.ErrNotFound }, proxy)
	}

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	log = log.With().Str("component", "http").Logger()

	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Str("remote_ip", v.RemoteIP).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
