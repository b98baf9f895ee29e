package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the optional YAML overlay. Zero values leave defaults alone.
type fileConfig struct {
	HTTP struct {
		Port           string   `yaml:"port"`
		PublicBaseURL  string   `yaml:"public_base_url"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"http"`

	GRPC struct {
		Port string `yaml:"port"`
	} `yaml:"grpc"`

	Database struct {
		URL           string `yaml:"url"`
		MaxConns      int32  `yaml:"max_conns"`
		RunMigrations *bool  `yaml:"run_migrations"`
	} `yaml:"database"`

	Redis struct {
		URL string `yaml:"url"`
	} `yaml:"redis"`

	Roles struct {
		PageSize    int    `yaml:"page_size"`
		CacheTTL    string `yaml:"cache_ttl"`
		RefreshSpec string `yaml:"refresh_spec"`
	} `yaml:"roles"`

	Wizard struct {
		SessionTTL string `yaml:"session_ttl"`
		SweepSpec  string `yaml:"sweep_spec"`
	} `yaml:"wizard"`

	Uploads struct {
		MaxBytes   int64   `yaml:"max_bytes"`
		RatePerSec float64 `yaml:"rate_per_sec"`
		Burst      int     `yaml:"burst"`
	} `yaml:"uploads"`
}

func overlayFile(cfg *Config, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return err
	}

	setStr(&cfg.HTTPPort, fc.HTTP.Port)
	setStr(&cfg.PublicBaseURL, fc.HTTP.PublicBaseURL)
	if len(fc.HTTP.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = fc.HTTP.AllowedOrigins
	}
	setStr(&cfg.GRPCPort, fc.GRPC.Port)
	setStr(&cfg.DatabaseURL, fc.Database.URL)
	if fc.Database.MaxConns > 0 {
		cfg.DBMaxConns = fc.Database.MaxConns
	}
	if fc.Database.RunMigrations != nil {
		cfg.RunMigrations = *fc.Database.RunMigrations
	}
	setStr(&cfg.RedisURL, fc.Redis.URL)
	if fc.Roles.PageSize > 0 {
		cfg.RolesPageSize = fc.Roles.PageSize
	}
	if err := setDuration(&cfg.RolesCacheTTL, "roles.cache_ttl", fc.Roles.CacheTTL); err != nil {
		return err
	}
	setStr(&cfg.CacheRefreshSpec, fc.Roles.RefreshSpec)
	if err := setDuration(&cfg.WizardSessionTTL, "wizard.session_ttl", fc.Wizard.SessionTTL); err != nil {
		return err
	}
	setStr(&cfg.SessionSweepSpec, fc.Wizard.SweepSpec)
	if fc.Uploads.MaxBytes > 0 {
		cfg.UploadMaxBytes = fc.Uploads.MaxBytes
	}
	if fc.Uploads.RatePerSec > 0 {
		cfg.UploadRatePerSec = fc.Uploads.RatePerSec
	}
	if fc.Uploads.Burst > 0 {
		cfg.UploadBurst = fc.Uploads.Burst
	}
	return nil
}

func setStr(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key, v string) error {
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}
