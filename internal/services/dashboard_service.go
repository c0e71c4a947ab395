package services

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// Dashboard is the per-user summary shown on the landing page.
type Dashboard struct {
	Accounts    AccountStats  `json:"accounts"`
	Movements   MovementStats `json:"movements"`
	Bills       BillStats     `json:"bills"`
	Cdts        CdtStats      `json:"cdts"`
	Debts       DebtStats     `json:"debts"`
	GeneratedAt time.Time     `json:"generatedAt"`
}

// DashboardService builds dashboards and caches them per user until the
// user's data changes or the TTL expires.
type DashboardService struct {
	cache  *RedisCache
	ttl    time.Duration
	logger *log.Logger

	accounts  *AccountService
	movements *MovementService
	bills     *BillService
	cdts      *CdtService
	debts     *DebtService
}

func NewDashboardService(cache *RedisCache, ttl time.Duration, logger *log.Logger) *DashboardService {
	return &DashboardService{cache: cache, ttl: ttl, logger: logger}
}

func dashboardKey(userID string) string {
	return "dashboard:" + userID
}

func (s *DashboardService) Get(ctx context.Context, userID string, now time.Time) (Dashboard, error) {
	return GetOrSet(s.cache, ctx, dashboardKey(userID), s.ttl, func() (Dashboard, error) {
		return s.build(ctx, userID, now)
	})
}

// Invalidate drops the cached dashboard. It has the ChangeFunc signature so
// services can call it after every write.
func (s *DashboardService) Invalidate(ctx context.Context, userID string) {
	if err := s.cache.Delete(ctx, dashboardKey(userID)); err != nil {
		s.logger.Warn("failed to invalidate dashboard cache", "user", userID, "err", err)
	}
}

func (s *DashboardService) build(ctx context.Context, userID string, now time.Time) (Dashboard, error) {
	var (
		d   = Dashboard{GeneratedAt: now}
		err error
	)
	if d.Accounts, err = s.accounts.Stats(ctx, userID); err != nil {
		return d, err
	}
	if d.Movements, err = s.movements.Stats(ctx, userID, nil, nil); err != nil {
		return d, err
	}
	if d.Bills, err = s.bills.Stats(ctx, userID, now); err != nil {
		return d, err
	}
	if d.Cdts, err = s.cdts.Stats(ctx, userID, now); err != nil {
		return d, err
	}
	if d.Debts, err = s.debts.Stats(ctx, userID, now); err != nil {
		return d, err
	}
	return d, nil
}
