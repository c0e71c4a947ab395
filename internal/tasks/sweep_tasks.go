package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/LipezJ/eco-hogar/internal/models"
	"github.com/LipezJ/eco-hogar/internal/repository"
	"github.com/LipezJ/eco-hogar/internal/services"
)

const (
	SweepBillsTaskID = "sweep_bills"
	SweepCdtsTaskID  = "sweep_cdts"
)

// SweepBillsTaskDef marks pending bills past their due date as overdue.
type SweepBillsTaskDef struct {
	users  repository.UserRepository
	bills  *services.BillService
	logger *log.Logger
	now    func() time.Time
}

func (t *SweepBillsTaskDef) TaskID() string {
	return SweepBillsTaskID
}

// HandleExecution sweeps every user, or only args["user_id"] when set.
func (t *SweepBillsTaskDef) HandleExecution(ctx context.Context, args map[string]interface{}) (map[string]interface{}, error) {
	users, err := targetUsers(ctx, t.users, args)
	if err != nil {
		return nil, err
	}

	now := t.now()
	total := 0
	for _, u := range users {
		changed, err := t.bills.SweepOverdue(ctx, u.ID, now)
		if err != nil {
			return nil, fmt.Errorf("sweep bills for user %s: %w", u.ID, err)
		}
		if changed > 0 {
			t.logger.Info("bills marked overdue", "user", u.Username, "count", changed)
		}
		total += changed
	}

	return map[string]interface{}{
		"status":  "success",
		"users":   len(users),
		"overdue": total,
	}, nil
}

// SweepCdtsTaskDef matures deposits that reached their due date.
type SweepCdtsTaskDef struct {
	users  repository.UserRepository
	cdts   *services.CdtService
	logger *log.Logger
	now    func() time.Time
}

func (t *SweepCdtsTaskDef) TaskID() string {
	return SweepCdtsTaskID
}

func (t *SweepCdtsTaskDef) HandleExecution(ctx context.Context, args map[string]interface{}) (map[string]interface{}, error) {
	users, err := targetUsers(ctx, t.users, args)
	if err != nil {
		return nil, err
	}

	now := t.now()
	var matured, renewed int
	for _, u := range users {
		result, err := t.cdts.SweepMatured(ctx, u.ID, now)
		if err != nil {
			return nil, fmt.Errorf("sweep deposits for user %s: %w", u.ID, err)
		}
		if result.Matured > 0 {
			t.logger.Info("deposits matured", "user", u.Username, "matured", result.Matured, "renewed", result.Renewed)
		}
		matured += result.Matured
		renewed += result.Renewed
	}

	return map[string]interface{}{
		"status":  "success",
		"users":   len(users),
		"matured": matured,
		"renewed": renewed,
	}, nil
}

func targetUsers(ctx context.Context, users repository.UserRepository, args map[string]interface{}) ([]models.User, error) {
	if id := stringArg(args, "user_id"); id != "" {
		u, err := users.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch user %s: %w", id, err)
		}
		return []models.User{*u}, nil
	}
	return users.List(ctx)
}
