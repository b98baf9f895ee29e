// Package config loads and validates runtime configuration at startup.
// Fail-fast: if a required variable is missing or a value does not parse,
// Load returns an error naming every problem and the process exits.
//
// Sources, lowest precedence first: built-in defaults, the YAML file named by
// MATCHAHIRE_CONFIG, a .env file in the working directory, the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the marketplace service.
type Config struct {
	HTTPPort      string
	GRPCPort      string
	DatabaseURL   string
	RedisURL      string
	PublicBaseURL string
	DBMaxConns    int32
	RunMigrations bool

	RolesPageSize    int
	RolesCacheTTL    time.Duration
	CacheRefreshSpec string

	WizardSessionTTL time.Duration
	SessionSweepSpec string

	UploadMaxBytes   int64
	UploadRatePerSec float64
	UploadBurst      int

	AllowedOrigins []string
}

func defaults() Config {
	return Config{
		HTTPPort:         "8080",
		GRPCPort:         "9090",
		PublicBaseURL:    "http://localhost:8080",
		DBMaxConns:       10,
		RunMigrations:    true,
		RolesPageSize:    6,
		RolesCacheTTL:    60 * time.Second,
		CacheRefreshSpec: "@every 1m",
		WizardSessionTTL: 30 * time.Minute,
		SessionSweepSpec: "@every 5m",
		UploadMaxBytes:   5 << 20,
		UploadRatePerSec: 1,
		UploadBurst:      5,
		AllowedOrigins:   []string{"*"},
	}
}

// Load reads every source and returns a validated Config.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := defaults()
	if path := os.Getenv("MATCHAHIRE_CONFIG"); path != "" {
		if err := overlayFile(&cfg, path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	var errs []error
	env := envReader{errs: &errs}
	env.str("HTTP_PORT", &cfg.HTTPPort)
	env.str("GRPC_PORT", &cfg.GRPCPort)
	env.str("DATABASE_URL", &cfg.DatabaseURL)
	env.str("REDIS_URL", &cfg.RedisURL)
	env.str("PUBLIC_BASE_URL", &cfg.PublicBaseURL)
	env.int32("DB_MAX_CONNS", &cfg.DBMaxConns)
	env.boolean("RUN_MIGRATIONS", &cfg.RunMigrations)
	env.integer("ROLES_PAGE_SIZE", &cfg.RolesPageSize)
	env.duration("ROLES_CACHE_TTL", &cfg.RolesCacheTTL)
	env.str("CACHE_REFRESH_SPEC", &cfg.CacheRefreshSpec)
	env.duration("WIZARD_SESSION_TTL", &cfg.WizardSessionTTL)
	env.str("SESSION_SWEEP_SPEC", &cfg.SessionSweepSpec)
	env.int64("UPLOAD_MAX_BYTES", &cfg.UploadMaxBytes)
	env.float("UPLOAD_RATE_PER_SEC", &cfg.UploadRatePerSec)
	env.integer("UPLOAD_BURST", &cfg.UploadBurst)
	env.list("ALLOWED_ORIGINS", &cfg.AllowedOrigins)

	errs = append(errs, cfg.validate()...)
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return &cfg, nil
}

func (c *Config) validate() []error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.RedisURL == "" {
		errs = append(errs, errors.New("REDIS_URL is required"))
	}
	if c.HTTPPort == c.GRPCPort {
		errs = append(errs, fmt.Errorf("HTTP_PORT and GRPC_PORT must differ (both %s)", c.HTTPPort))
	}
	if c.RolesPageSize <= 0 {
		errs = append(errs, errors.New("ROLES_PAGE_SIZE must be positive"))
	}
	if c.RolesCacheTTL <= 0 {
		errs = append(errs, errors.New("ROLES_CACHE_TTL must be positive"))
	}
	if c.WizardSessionTTL <= 0 {
		errs = append(errs, errors.New("WIZARD_SESSION_TTL must be positive"))
	}
	if c.UploadMaxBytes <= 0 {
		errs = append(errs, errors.New("UPLOAD_MAX_BYTES must be positive"))
	}
	if c.UploadRatePerSec <= 0 || c.UploadBurst <= 0 {
		errs = append(errs, errors.New("UPLOAD_RATE_PER_SEC and UPLOAD_BURST must be positive"))
	}
	c.PublicBaseURL = strings.TrimRight(c.PublicBaseURL, "/")
	return errs
}

// ─── env parsing ─────────────────────────────────────────────────────────────

// envReader overwrites a field only when its variable is set, collecting
// parse errors instead of stopping at the first one.
type envReader struct {
	errs *[]error
}

func (e envReader) lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func (e envReader) fail(key, v string, err error) {
	*e.errs = append(*e.errs, fmt.Errorf("%s=%q: %w", key, v, err))
}

func (e envReader) str(key string, dst *string) {
	if v, ok := e.lookup(key); ok {
		*dst = v
	}
}

func (e envReader) integer(key string, dst *int) {
	if v, ok := e.lookup(key); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			e.fail(key, v, err)
			return
		}
		*dst = n
	}
}

func (e envReader) int32(key string, dst *int32) {
	if v, ok := e.lookup(key); ok {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			e.fail(key, v, err)
			return
		}
		*dst = int32(n)
	}
}

func (e envReader) int64(key string, dst *int64) {
	if v, ok := e.lookup(key); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			e.fail(key, v, err)
			return
		}
		*dst = n
	}
}

func (e envReader) float(key string, dst *float64) {
	if v, ok := e.lookup(key); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			e.fail(key, v, err)
			return
		}
		*dst = f
	}
}

func (e envReader) boolean(key string, dst *bool) {
	if v, ok := e.lookup(key); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			e.fail(key, v, err)
			return
		}
		*dst = b
	}
}

func (e envReader) duration(key string, dst *time.Duration) {
	if v, ok := e.lookup(key); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			e.fail(key, v, err)
			return
		}
		*dst = d
	}
}

func (e envReader) list(key string, dst *[]string) {
	if v, ok := e.lookup(key); ok {
		*dst = splitList(v)
	}
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
