package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/LipezJ/eco-hogar/internal/models"
	"github.com/LipezJ/eco-hogar/internal/repository"
)

// DailyRule runs a task once a day at the time of its first due date.
const DailyRule = "FREQ=DAILY"

// BuildScheduledTask builds an unsaved task. args may be any value that
// marshals to a JSON object.
func BuildScheduledTask(taskName string, args interface{}, due time.Time, recurringInterval *string, taskType models.ScheduledTaskType, maxAttempt int) (*models.ScheduledTask, error) {
	mapArgs := map[string]interface{}{}
	if args != nil {
		argsBytes, err := json.Marshal(args)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal args: %w", err)
		}
		if err := json.Unmarshal(argsBytes, &mapArgs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal into map: %w", err)
		}
	}
	if maxAttempt < 1 {
		maxAttempt = 1
	}

	task := &models.ScheduledTask{
		TaskName:          taskName,
		Arguments:         mapArgs,
		Due:               due,
		RecurringInterval: recurringInterval,
		Status:            models.ScheduledTaskStatusActive,
		TaskType:          taskType,
		MaxAttempt:        maxAttempt,
	}
	if _, err := task.NextDue(due); err != nil {
		return nil, fmt.Errorf("invalid recurring interval: %w", err)
	}
	return task, nil
}

// EnsureRecurring creates a recurring task named name unless one already
// exists in any state other than disabled. It reports whether a task was
// created.
func EnsureRecurring(ctx context.Context, store repository.TaskStore, name, rule string, firstDue time.Time) (bool, error) {
	existing, err := store.FindByName(ctx, name)
	switch {
	case err == nil && existing.Status != models.ScheduledTaskStatusDisabled:
		return false, nil
	case err != nil && !errors.Is(err, repository.ErrNotFound):
		return false, err
	}

	task, err := BuildScheduledTask(name, nil, firstDue, &rule, models.ScheduledTaskTypeRecurring, 3)
	if err != nil {
		return false, err
	}
	if err := store.Create(ctx, task); err != nil {
		return false, err
	}
	return true, nil
}

func stringArg(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}
