package services

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/LipezJ/eco-hogar/internal/repository"
)

// Services wires every domain service over one set of stores.
type Services struct {
	Auth      *AuthService
	Accounts  *AccountService
	Movements *MovementService
	Bills     *BillService
	Cdts      *CdtService
	Debts     *DebtService
	Dashboard *DashboardService
}

type Options struct {
	SessionSecret string
	SessionTTL    time.Duration
	DashboardTTL  time.Duration
}

func New(stores *repository.Stores, cache *RedisCache, opts Options, logger *log.Logger) *Services {
	dashboard := NewDashboardService(cache, opts.DashboardTTL, logger)
	invalidate := dashboard.Invalidate

	s := &Services{
		Auth:      NewAuthService(stores.Users, opts.SessionSecret, opts.SessionTTL),
		Accounts:  NewAccountService(stores.Accounts, invalidate),
		Movements: NewMovementService(stores.Movements, invalidate),
		Bills:     NewBillService(stores.Bills, invalidate),
		Cdts:      NewCdtService(stores.Cdts, invalidate),
		Debts:     NewDebtService(stores.Debts, stores.Installments, invalidate),
		Dashboard: dashboard,
	}

	dashboard.accounts = s.Accounts
	dashboard.movements = s.Movements
	dashboard.bills = s.Bills
	dashboard.cdts = s.Cdts
	dashboard.debts = s.Debts
	return s
}
