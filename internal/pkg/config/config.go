package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// UpstreamURL is the site that allowed page requests are forwarded to.
	// Empty disables forwarding.
	UpstreamURL string `env:"UPSTREAM_URL"`

	Auth  AuthConfig
	Gate  GateConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	URL            string        `env:"AUTH_URL"`
	AnonKey        string        `env:"AUTH_ANON_KEY"`
	JWTSecret      string        `env:"AUTH_JWT_SECRET, required"`
	Audience       string        `env:"AUTH_JWT_AUDIENCE,     default=authenticated"`
	AccessCookie   string        `env:"AUTH_ACCESS_COOKIE,    default=sb-access-token"`
	RefreshCookie  string        `env:"AUTH_REFRESH_COOKIE,   default=sb-refresh-token"`
	CookieSecure   bool          `env:"AUTH_COOKIE_SECURE,    default=true"`
	RefreshTimeout time.Duration `env:"AUTH_REFRESH_TIMEOUT,  default=5s"`
	RefreshMaxAge  time.Duration `env:"AUTH_REFRESH_MAX_AGE,  default=168h"`
}

type GateConfig struct {
	SignInPath    string   `env:"GATE_SIGN_IN_PATH,   default=/auth/sign-in"`
	DashboardPath string   `env:"GATE_DASHBOARD_PATH, default=/dashboard"`
	PublicPaths   []string `env:"GATE_PUBLIC_PATHS,   default=/health,/metrics,/swagger"`
	BasicCSP      string   `env:"CSP_BASIC"`
	AdminCSP      string   `env:"CSP_ADMIN"`
	PaymentCSP    string   `env:"CSP_PAYMENT"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=leanios"`
}

type RedisConfig struct {
	Addr         string        `env:"REDIS_ADDR,     default=localhost:6379"`
	Password     string        `env:"REDIS_PASSWORD"`
	DB           int           `env:"REDIS_DB,       default=0"`
	RoleCacheTTL time.Duration `env:"ROLE_CACHE_TTL, default=0s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadContext(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadContext reads configuration from l. Tests pass envconfig.MapLookuper.
func LoadContext(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
