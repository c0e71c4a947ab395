package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LipezJ/eco-hogar/internal/app"
	"github.com/LipezJ/eco-hogar/internal/config"
	"github.com/LipezJ/eco-hogar/internal/logging"
	"github.com/LipezJ/eco-hogar/internal/tasks"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New("info", "worker").Fatal("invalid configuration", "err", err)
	}
	logger := logging.New(cfg.LogLevel, "worker")

	if cfg.DatabaseURL == "" {
		logger.Fatal("DATABASE_URL not set; without a database the server runs sweeps itself")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := app.Bootstrap(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("startup failed", "err", err)
	}
	defer rt.Close()

	registry := tasks.NewRegistry()
	tasks.DefineTasks(registry, tasks.Deps{
		Users:    rt.Stores.Users,
		Services: rt.Services,
		Logger:   logger,
	})

	worker := tasks.NewWorker(tasks.NewRunner(rt.Tasks, registry, logger), rt.Tasks, rt.Cache, cfg.WorkerInterval, logger)
	if err := worker.EnsureDailyTasks(ctx, time.Now()); err != nil {
		logger.Fatal("failed to schedule daily tasks", "err", err)
	}

	logger.Info("worker started", "interval", cfg.WorkerInterval, "tasks", registry.Names())
	worker.Run(ctx)
	logger.Info("worker stopped")
}
