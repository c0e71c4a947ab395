package services

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/LipezJ/eco-hogar/internal/logging"
	"github.com/LipezJ/eco-hogar/internal/models"
	"github.com/LipezJ/eco-hogar/internal/repository"
)

const testUser = "user-1"

func newTestServices(t *testing.T) (*Services, *repository.Stores) {
	t.Helper()
	stores := repository.NewMemoryStores()
	svc := New(stores, nil, Options{
		SessionSecret: "test-secret",
		SessionTTL:    time.Hour,
		DashboardTTL:  time.Minute,
	}, logging.Discard())
	svc.Auth.bcryptCost = bcrypt.MinCost
	return svc, stores
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResourceCreateAssignsOwner(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	account := &models.Account{
		Base:        models.Base{ID: "client-chosen", UserID: "someone-else"},
		Name:        "Caja de ahorro",
		Institution: "Banco Nación",
		AccountType: models.AccountTypeSavings,
		Currency:    models.CurrencyARS,
		Balance:     1500,
		Owner:       "Ana",
	}
	if err := svc.Accounts.Create(ctx, testUser, account); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if account.ID == "" || account.ID == "client-chosen" {
		t.Errorf("ID = %q, want a generated id", account.ID)
	}
	if account.UserID != testUser {
		t.Errorf("UserID = %q, want %q", account.UserID, testUser)
	}
	if account.Status != models.AccountStatusActive {
		t.Errorf("Status = %q, want active default", account.Status)
	}

	if _, err := svc.Accounts.Get(ctx, "user-2", account.ID); err != repository.ErrNotFound {
		t.Errorf("Get() by another user error = %v, want ErrNotFound", err)
	}
}

func TestResourceRejectsInvalidRecords(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	err := svc.Movements.Create(ctx, testUser, &models.Movement{Type: "gift"})
	if !models.IsValidationError(err) {
		t.Fatalf("Create() error = %v, want validation error", err)
	}

	list, _ := svc.Movements.List(ctx, testUser)
	if len(list) != 0 {
		t.Errorf("List() = %d items, want 0", len(list))
	}
}

func TestResourceUpdateKeepsIdentity(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	m := &models.Movement{
		Type:        models.MovementTypeExpense,
		Category:    models.MovementCategoryFood,
		Amount:      120,
		Description: "Supermercado",
		Date:        date(2025, 3, 1),
	}
	if err := svc.Movements.Create(ctx, testUser, m); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	update := *m
	update.Base = models.Base{}
	update.Amount = 150
	if err := svc.Movements.Update(ctx, testUser, m.ID, &update); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if update.ID != m.ID || !update.CreatedAt.Equal(m.CreatedAt) {
		t.Errorf("Update() changed identity: got id %q created %v", update.ID, update.CreatedAt)
	}

	got, err := svc.Movements.Get(ctx, testUser, m.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Amount != 150 {
		t.Errorf("Amount = %v, want 150", got.Amount)
	}

	if err := svc.Movements.Update(ctx, testUser, "missing", &update); err != repository.ErrNotFound {
		t.Errorf("Update() missing error = %v, want ErrNotFound", err)
	}
}

func TestMovementListRange(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	for _, d := range []time.Time{date(2025, 1, 10), date(2025, 2, 10), date(2025, 3, 10)} {
		err := svc.Movements.Create(ctx, testUser, &models.Movement{
			Type:        models.MovementTypeIncome,
			Category:    models.MovementCategoryOther,
			Amount:      100,
			Description: "Sueldo",
			Date:        d,
		})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	from, to := date(2025, 2, 1), date(2025, 3, 31)
	got, err := svc.Movements.ListRange(ctx, testUser, &from, &to)
	if err != nil {
		t.Fatalf("ListRange() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListRange() = %d movements, want 2", len(got))
	}
	if !got[0].Date.Equal(date(2025, 3, 10)) {
		t.Errorf("first movement date = %v, want newest first", got[0].Date)
	}
}

func TestDashboardAggregatesAllResources(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	now := date(2025, 3, 10)

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(svc.Accounts.Create(ctx, testUser, &models.Account{
		Name: "Cuenta", Institution: "Banco", AccountType: models.AccountTypeChecking,
		Currency: models.CurrencyUSD, Balance: 10, Owner: "Ana",
	}))
	must(svc.Bills.Create(ctx, testUser, &models.Bill{
		Provider: "Edenor", Category: models.BillCategoryElectricity, Cycle: models.BillCycleMonthly,
		Amount: 80, DueDate: date(2025, 3, 12),
	}))
	must(svc.Cdts.Create(ctx, testUser, &models.Cdt{
		Institution: "Banco", OpeningDate: date(2025, 1, 1), InitialAmount: 1000000, InterestRate: 10, Term: 90,
	}))
	must(svc.Debts.Create(ctx, testUser, &models.Debt{
		Type: models.DebtTypeDebt, Origin: "Banco", Amount: 10000, InterestRate: 12,
		Installments: 24, StartDate: date(2025, 1, 15), PaymentDay: 15,
	}))

	d, err := svc.Dashboard.Get(ctx, testUser, now)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if d.Accounts.TotalInBase != 10000 {
		t.Errorf("Accounts.TotalInBase = %v, want 10000", d.Accounts.TotalInBase)
	}
	if len(d.Bills.Upcoming) != 1 {
		t.Errorf("Bills.Upcoming = %d, want 1", len(d.Bills.Upcoming))
	}
	if d.Cdts.ExpectedReturn != 1024960.58 {
		t.Errorf("Cdts.ExpectedReturn = %v, want 1024960.58", d.Cdts.ExpectedReturn)
	}
	if d.Debts.TotalOwed != 10000 {
		t.Errorf("Debts.TotalOwed = %v, want 10000", d.Debts.TotalOwed)
	}
	if d.Movements.ExpenseByCategory == nil {
		t.Error("Movements.ExpenseByCategory is nil, want empty slice")
	}

	other, err := svc.Dashboard.Get(ctx, "user-2", now)
	if err != nil {
		t.Fatalf("Get() other user error = %v", err)
	}
	if other.Accounts.TotalAccounts != 0 {
		t.Errorf("other user sees %d accounts", other.Accounts.TotalAccounts)
	}
}
