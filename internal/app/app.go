package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"github.com/LipezJ/eco-hogar/internal/config"
	"github.com/LipezJ/eco-hogar/internal/repository"
	"github.com/LipezJ/eco-hogar/internal/services"
)

// Runtime is everything a process needs after startup.
type Runtime struct {
	Config   *config.Config
	Logger   *log.Logger
	DB       *gorm.DB
	Cache    *services.RedisCache
	Stores   *repository.Stores
	Tasks    repository.TaskStore
	Services *services.Services
}

// Bootstrap connects to Postgres and Redis when configured. Without
// DATABASE_URL data lives in memory for the life of the process; without
// REDIS_URL nothing is cached.
func Bootstrap(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Runtime, error) {
	rt := &Runtime{Config: cfg, Logger: logger}

	if cfg.DatabaseURL != "" {
		db, err := services.InitDB(cfg.DatabaseURL, cfg.IsProduction(), logger)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := services.AutoMigrate(db, logger); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		rt.DB = db
		rt.Stores = repository.NewGormStores(db)
		rt.Tasks = repository.NewGormTaskStore(db)
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory storage")
		rt.Stores = repository.NewMemoryStores()
		rt.Tasks = repository.NewMemoryTaskStore()
	}

	if cfg.RedisURL != "" {
		cache, err := services.NewRedisCache(cfg.RedisURL)
		if err != nil {
			logger.Warn("redis unavailable, caching disabled", "err", err)
		} else {
			rt.Cache = cache
			logger.Info("redis connection established")
		}
	}

	rt.Services = services.New(rt.Stores, rt.Cache, services.Options{
		SessionSecret: cfg.SessionSecret,
		SessionTTL:    cfg.SessionTTL,
		DashboardTTL:  cfg.DashboardCacheTTL,
	}, logger)

	if cfg.SeedDefaultUsers {
		n, err := rt.Services.Auth.SeedDefaultUsers(ctx)
		if err != nil {
			return nil, fmt.Errorf("seed default users: %w", err)
		}
		if n > 0 {
			logger.Info("seeded default users", "count", n)
		}
	}

	return rt, nil
}

// InMemory reports whether data is lost when the process exits.
func (rt *Runtime) InMemory() bool {
	return rt.DB == nil
}

func (rt *Runtime) Close() {
	if err := rt.Cache.Close(); err != nil {
		rt.Logger.Warn("failed to close redis", "err", err)
	}
	if rt.DB != nil {
		if sqlDB, err := rt.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
