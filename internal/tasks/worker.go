package tasks

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/LipezJ/eco-hogar/internal/repository"
	"github.com/LipezJ/eco-hogar/internal/services"
)

const workerLock = "worker"

// Worker polls the task store on a fixed interval.
type Worker struct {
	runner   *Runner
	store    repository.TaskStore
	cache    *services.RedisCache
	interval time.Duration
	logger   *log.Logger
}

func NewWorker(runner *Runner, store repository.TaskStore, cache *services.RedisCache, interval time.Duration, logger *log.Logger) *Worker {
	return &Worker{
		runner:   runner,
		store:    store,
		cache:    cache,
		interval: interval,
		logger:   logger,
	}
}

// EnsureDailyTasks schedules every daily task that is missing, first due
// shortly after midnight of now's day.
func (w *Worker) EnsureDailyTasks(ctx context.Context, now time.Time) error {
	first := time.Date(now.Year(), now.Month(), now.Day(), 0, 5, 0, 0, now.Location())
	for _, name := range DailyTasks {
		created, err := EnsureRecurring(ctx, w.store, name, DailyRule, first)
		if err != nil {
			return err
		}
		if created {
			w.logger.Info("scheduled daily task", "task", name, "first_due", first)
		}
	}
	return nil
}

// Tick processes due tasks once. When Redis is configured only one worker
// holds the lock for a given tick.
func (w *Worker) Tick(ctx context.Context) {
	acquired, err := w.cache.AcquireLock(ctx, workerLock, w.interval)
	if err != nil {
		w.logger.Error("failed to acquire worker lock", "err", err)
		return
	}
	if !acquired {
		w.logger.Debug("another worker holds the lock, skipping tick")
		return
	}
	defer func() {
		if err := w.cache.ReleaseLock(context.WithoutCancel(ctx), workerLock); err != nil {
			w.logger.Warn("failed to release worker lock", "err", err)
		}
	}()

	if _, err := w.runner.ProcessDue(ctx); err != nil {
		w.logger.Error("failed to process tasks", "err", err)
	}
}

// Run ticks immediately and then every interval until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.Tick(ctx)
	for {
		select {
		case <-ticker.C:
			w.Tick(ctx)
		case <-ctx.Done():
			return
		}
	}
}
