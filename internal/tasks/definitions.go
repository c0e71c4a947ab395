package tasks

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/LipezJ/eco-hogar/internal/repository"
	"github.com/LipezJ/eco-hogar/internal/services"
)

// Deps are the collaborators task handlers need.
type Deps struct {
	Users    repository.UserRepository
	Services *services.Services
	Logger   *log.Logger
	Now      func() time.Time
}

// DefineTasks registers every available task on r.
func DefineTasks(r *Registry, deps Deps) {
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	sweepBills := &SweepBillsTaskDef{users: deps.Users, bills: deps.Services.Bills, logger: deps.Logger, now: now}
	r.Register(sweepBills.TaskID(), sweepBills.HandleExecution)

	sweepCdts := &SweepCdtsTaskDef{users: deps.Users, cdts: deps.Services.Cdts, logger: deps.Logger, now: now}
	r.Register(sweepCdts.TaskID(), sweepCdts.HandleExecution)
}

// DailyTasks are the recurring tasks the worker keeps scheduled.
var DailyTasks = []string{SweepBillsTaskID, SweepCdtsTaskID}
