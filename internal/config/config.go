package config

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultSessionSecret = "secret"

// Config holds everything the server, worker and CLI read from the environment.
type Config struct {
	Env               string
	Port              string
	DatabaseURL       string
	RedisURL          string
	SessionSecret     string
	SessionTTL        time.Duration
	SeedDefaultUsers  bool
	LogLevel          string
	DashboardCacheTTL time.Duration
	WorkerInterval    time.Duration
	AuthRateLimit     int
	AuthRateWindow    time.Duration
}

// IsProduction reports whether cookies must be Secure and defaults refused.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	// Missing .env is fine, system environment still applies
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("SESSION_SECRET", defaultSessionSecret)
	v.SetDefault("SESSION_TTL", 7*24*time.Hour)
	v.SetDefault("SEED_DEFAULT_USERS", true)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DASHBOARD_CACHE_TTL", 5*time.Minute)
	v.SetDefault("WORKER_INTERVAL", 5*time.Minute)
	v.SetDefault("AUTH_RATE_LIMIT", 10)
	v.SetDefault("AUTH_RATE_WINDOW", time.Minute)

	cfg := &Config{
		Env:               v.GetString("ENV"),
		Port:              v.GetString("PORT"),
		DatabaseURL:       v.GetString("DATABASE_URL"),
		RedisURL:          v.GetString("REDIS_URL"),
		SessionSecret:     v.GetString("SESSION_SECRET"),
		SessionTTL:        v.GetDuration("SESSION_TTL"),
		SeedDefaultUsers:  v.GetBool("SEED_DEFAULT_USERS"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		DashboardCacheTTL: v.GetDuration("DASHBOARD_CACHE_TTL"),
		WorkerInterval:    v.GetDuration("WORKER_INTERVAL"),
		AuthRateLimit:     v.GetInt("AUTH_RATE_LIMIT"),
		AuthRateWindow:    v.GetDuration("AUTH_RATE_WINDOW"),
	}

	if cfg.IsProduction() && cfg.SessionSecret == defaultSessionSecret {
		return nil, errors.New("SESSION_SECRET must be set in production")
	}
	if cfg.SessionTTL <= 0 {
		return nil, errors.New("SESSION_TTL must be positive")
	}
	if cfg.WorkerInterval <= 0 {
		return nil, errors.New("WORKER_INTERVAL must be positive")
	}

	return cfg, nil
}
