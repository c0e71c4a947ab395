package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/LipezJ/eco-hogar/internal/app"
	"github.com/LipezJ/eco-hogar/internal/config"
	"github.com/LipezJ/eco-hogar/internal/handlers"
	"github.com/LipezJ/eco-hogar/internal/logging"
	"github.com/LipezJ/eco-hogar/internal/middleware"
	"github.com/LipezJ/eco-hogar/internal/tasks"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New("info", "server").Fatal("invalid configuration", "err", err)
	}
	logger := logging.New(cfg.LogLevel, "server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := app.Bootstrap(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("startup failed", "err", err)
	}
	defer rt.Close()

	// The standalone worker cannot see in-memory data, so sweeps run here.
	if rt.InMemory() {
		registry := tasks.NewRegistry()
		tasks.DefineTasks(registry, tasks.Deps{
			Users:    rt.Stores.Users,
			Services: rt.Services,
			Logger:   logger.WithPrefix("worker"),
		})
		worker := tasks.NewWorker(tasks.NewRunner(rt.Tasks, registry, logger), rt.Tasks, rt.Cache, cfg.WorkerInterval, logger)
		if err := worker.EnsureDailyTasks(ctx, time.Now()); err != nil {
			logger.Fatal("failed to schedule daily tasks", "err", err)
		}
		go worker.Run(ctx)
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.NewErrorHandler(logger)

	e.Use(middleware.RequestLogger(logger))
	e.Use(echomw.Recover())

	handlers.RegisterRoutes(e, rt.Services, handlers.RouteOptions{
		SecureCookies: cfg.IsProduction(),
		AuthLimiter:   middleware.RateLimit(cfg.AuthRateLimit, cfg.AuthRateWindow),
	})

	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", "err", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}
}
