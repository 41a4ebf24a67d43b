// @title        LeaniOS Access Gate
// @version      1.0
// @description  Session resolution, role checks and per-route security headers in front of the LeaniOS site, plus the admin back-office API.
// @BasePath     /
// @securityDefinitions.apikey  SessionCookie
// @in                          cookie
// @name                        sb-access-token
package main

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/leanios/access-gate/docs"
	"github.com/leanios/access-gate/internal/api"
	"github.com/leanios/access-gate/internal/api/handler"
	"github.com/leanios/access-gate/internal/core/domain"
	"github.com/leanios/access-gate/internal/core/ports"
	"github.com/leanios/access-gate/internal/core/service"
	mongodb "github.com/leanios/access-gate/internal/infrastructure/db/mongo"
	redisdb "github.com/leanios/access-gate/internal/infrastructure/db/redis"
	"github.com/leanios/access-gate/internal/infrastructure/session"
	"github.com/leanios/access-gate/internal/pkg/config"
	"github.com/leanios/access-gate/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "access-gate",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() { _ = rdb.Close() }()

	profiles := mongodb.NewProfileRepository(db)
	emailLogs := mongodb.NewEmailLogRepository(db)
	if err := profiles.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create profile indexes")
	}
	if err := emailLogs.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create email log indexes")
	}

	var roleCache ports.RoleCache
	if cfg.Redis.RoleCacheTTL > 0 {
		roleCache = redisdb.NewRoleCache(rdb, cfg.Redis.RoleCacheTTL)
	} else {
		log.Info().Msg("role cache disabled")
	}

	// --- Gate ---
	var refresher ports.TokenRefresher
	if cfg.Auth.URL != "" {
		refresher = session.NewProviderRefresher(cfg.Auth.URL, cfg.Auth.AnonKey, cfg.Auth.RefreshTimeout)
	} else {
		log.Warn().Msg("AUTH_URL not set, expired sessions will not be refreshed")
	}

	resolver := session.NewResolver(session.Config{
		Secret:        []byte(cfg.Auth.JWTSecret),
		Audience:      cfg.Auth.Audience,
		AccessCookie:  cfg.Auth.AccessCookie,
		RefreshCookie: cfg.Auth.RefreshCookie,
		CookieSecure:  cfg.Auth.CookieSecure,
		RefreshMaxAge: cfg.Auth.RefreshMaxAge,
	}, refresher, log)

	enforcer := service.NewPolicyEnforcer(
		domain.NewRouteClassifier(cfg.Gate.PublicPaths...),
		service.NewRoleLookupService(profiles, roleCache, log),
		domain.NewSecurityPolicies(cfg.Gate.BasicCSP, cfg.Gate.AdminCSP, cfg.Gate.PaymentCSP),
		service.PolicyConfig{SignInPath: cfg.Gate.SignInPath, DashboardPath: cfg.Gate.DashboardPath},
		log,
	)

	var upstream *url.URL
	if cfg.UpstreamURL != "" {
		upstream, err = url.Parse(cfg.UpstreamURL)
		if err != nil || upstream.Scheme == "" || upstream.Host == "" {
			log.Fatal().Str("upstream", cfg.UpstreamURL).Msg("invalid UPSTREAM_URL")
		}
	}

	e := api.NewRouter(api.Deps{
		Sessions:   resolver,
		Enforcer:   enforcer,
		AdminUsers: service.NewAdminUserService(profiles, roleCache, log),
		EmailLogs:  service.NewEmailLogService(emailLogs),
		Checks:     readinessChecks(db, rdb),
		Upstream:   upstream,
		Log:        log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("access gate listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}

func readinessChecks(db *mongo.Database, rdb *goredis.Client) map[string]handler.Check {
	return map[string]handler.Check{
		"mongodb": func(ctx context.Context) error { return db.Client().Ping(ctx, nil) },
		"redis":   func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
	}
}
