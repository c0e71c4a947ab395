package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/LipezJ/eco-hogar/internal/models"
	"github.com/LipezJ/eco-hogar/internal/repository"
)

const (
	historySuccess         = "success"
	historyFailure         = "failure"
	historyHandlerNotFound = "handler_not_found"
)

// Runner executes due tasks from a TaskStore.
type Runner struct {
	store    repository.TaskStore
	registry *Registry
	logger   *log.Logger
	now      func() time.Time
}

func NewRunner(store repository.TaskStore, registry *Registry, logger *log.Logger) *Runner {
	return &Runner{store: store, registry: registry, logger: logger, now: time.Now}
}

// ProcessDue runs every active task that is due and returns how many ran.
func (r *Runner) ProcessDue(ctx context.Context) (int, error) {
	pending, err := r.store.Pending(ctx, r.now())
	if err != nil {
		return 0, fmt.Errorf("fetch pending tasks: %w", err)
	}
	if len(pending) == 0 {
		r.logger.Debug("no pending tasks")
		return 0, nil
	}

	r.logger.Info("found pending tasks", "count", len(pending))

	ran := 0
	for _, task := range pending {
		if ctx.Err() != nil {
			return ran, ctx.Err()
		}
		if err := r.execute(ctx, task); err != nil {
			return ran, err
		}
		ran++
	}
	return ran, nil
}

// execute runs task, retrying up to MaxAttempt times, and then reschedules
// or closes it. Only storage errors are returned; task failures are recorded.
func (r *Runner) execute(ctx context.Context, task models.ScheduledTask) error {
	r.logger.Info("processing task", "task", task.TaskName, "id", task.ID)

	if task.Arguments == nil {
		task.Arguments = make(map[string]interface{})
	}
	lastRun := r.now()
	task.LastRun = &lastRun

	handler, found := r.registry.Get(task.TaskName)
	if !found {
		r.logger.Warn("task handler not found, marking as failure", "task", task.TaskName)
		task.Status = models.ScheduledTaskStatusFailure
		if err := r.addHistory(ctx, task, lastRun, 0, historyHandlerNotFound, 1,
			map[string]interface{}{"error": "handler not found"}); err != nil {
			return err
		}
		return r.store.Update(ctx, &task)
	}

	maxAttempt := task.MaxAttempt
	if maxAttempt < 1 {
		maxAttempt = 1
	}

	succeeded := false
	for attempt := 1; attempt <= maxAttempt && !succeeded; attempt++ {
		start := r.now()
		result, err := handler(ctx, task.Arguments)
		runtime := time.Since(start)

		status := historySuccess
		if err != nil {
			status = historyFailure
			result = map[string]interface{}{"error": err.Error()}
			r.logger.Error("task failed", "task", task.TaskName, "attempt", attempt, "err", err)
		} else {
			succeeded = true
			r.logger.Info("task completed", "task", task.TaskName, "runtime", runtime)
		}

		if err := r.addHistory(ctx, task, start, runtime, status, attempt, result); err != nil {
			return err
		}
	}

	// A failed recurring task still moves on to its next occurrence.
	switch {
	case task.TaskType == models.ScheduledTaskTypeRecurring:
		next, err := task.NextDue(r.now())
		if err != nil {
			r.logger.Error("invalid recurring interval", "task", task.TaskName, "err", err)
			task.Status = models.ScheduledTaskStatusFailure
			break
		}
		if next.IsZero() {
			task.Status = models.ScheduledTaskStatusDone
			break
		}
		task.Status = models.ScheduledTaskStatusActive
		task.Due = next
	case !succeeded:
		task.Status = models.ScheduledTaskStatusFailure
	default:
		task.Status = models.ScheduledTaskStatusDone
	}

	return r.store.Update(ctx, &task)
}

func (r *Runner) addHistory(ctx context.Context, task models.ScheduledTask, runAt time.Time, runtime time.Duration, status string, attempt int, result map[string]interface{}) error {
	return r.store.AddHistory(ctx, &models.ScheduledTaskHistory{
		ScheduledTaskID: task.ID,
		TaskName:        task.TaskName,
		RunAt:           runAt,
		RuntimeMs:       int(runtime.Milliseconds()),
		Status:          status,
		AttemptNumber:   attempt,
		Arguments:       task.Arguments,
		Result:          result,
	})
}
