package services

import (
	"reflect"
	"testing"
	"time"

	"github.com/LipezJ/eco-hogar/internal/models"
	"github.com/LipezJ/eco-hogar/internal/projection"
)

func TestConvertToBase(t *testing.T) {
	tests := []struct {
		currency models.Currency
		amount   float64
		want     float64
	}{
		{models.CurrencyARS, 1500, 1500},
		{models.CurrencyUSD, 100, 100000},
		{models.CurrencyEUR, 10, 11000},
		{models.CurrencyCOP, 1000, 250},
		{"XYZ", 42, 42},
	}

	for _, tt := range tests {
		t.Run(string(tt.currency), func(t *testing.T) {
			if got := ConvertToBase(tt.amount, tt.currency); got != tt.want {
				t.Errorf("ConvertToBase(%v, %s) = %v; want %v", tt.amount, tt.currency, got, tt.want)
			}
		})
	}
}

func TestComputeAccountStats(t *testing.T) {
	accounts := []models.Account{
		{Owner: "Ana", AccountType: models.AccountTypeSavings, Currency: models.CurrencyARS, Balance: 5000, IsNational: true, Status: models.AccountStatusActive},
		{Owner: "Ana", AccountType: models.AccountTypeInvestment, Currency: models.CurrencyUSD, Balance: 100, Status: models.AccountStatusActive},
		{Owner: "Luis", AccountType: models.AccountTypeSavings, Currency: models.CurrencyEUR, Balance: 900, Status: models.AccountStatusInactive},
	}

	got := ComputeAccountStats(accounts)

	if got.TotalAccounts != 3 || got.ActiveAccounts != 2 {
		t.Errorf("counts = %d/%d; want 3/2", got.TotalAccounts, got.ActiveAccounts)
	}
	if got.TotalInBase != 105000 {
		t.Errorf("TotalInBase = %v; want 105000", got.TotalInBase)
	}
	if got.National != 5000 || got.Foreign != 100000 {
		t.Errorf("National/Foreign = %v/%v; want 5000/100000", got.National, got.Foreign)
	}
	wantCurrency := map[models.Currency]float64{models.CurrencyARS: 5000, models.CurrencyUSD: 100}
	if !reflect.DeepEqual(got.TotalByCurrency, wantCurrency) {
		t.Errorf("TotalByCurrency = %v; want %v", got.TotalByCurrency, wantCurrency)
	}
	wantType := map[models.AccountType]float64{models.AccountTypeSavings: 5000, models.AccountTypeInvestment: 100000}
	if !reflect.DeepEqual(got.TotalByType, wantType) {
		t.Errorf("TotalByType = %v; want %v", got.TotalByType, wantType)
	}
	if got.AccountsByOwner["Ana"] != 2 || got.AccountsByOwner["Luis"] != 1 {
		t.Errorf("AccountsByOwner = %v", got.AccountsByOwner)
	}
}

func TestComputeMovementStats(t *testing.T) {
	movements := []models.Movement{
		{Type: models.MovementTypeIncome, Amount: 1000, Date: date(2025, 1, 1)},
		{Type: models.MovementTypeIncome, Amount: 500, Date: date(2025, 1, 2)},
		{Type: models.MovementTypeExpense, Category: models.MovementCategoryFood, Amount: 300, Date: date(2025, 1, 3)},
		{Type: models.MovementTypeExpense, Category: models.MovementCategoryTransport, Amount: 100, Date: date(2025, 1, 4)},
		{Type: models.MovementTypeExpense, Category: models.MovementCategoryFood, Amount: 50, Date: date(2025, 1, 5)},
	}

	got := ComputeMovementStats(movements)

	if got.TotalIncome != 1500 || got.TotalExpense != 450 || got.Balance != 1050 {
		t.Errorf("totals = %v/%v/%v; want 1500/450/1050", got.TotalIncome, got.TotalExpense, got.Balance)
	}
	if got.AverageIncome != 750 || got.AverageExpense != 150 {
		t.Errorf("averages = %v/%v; want 750/150", got.AverageIncome, got.AverageExpense)
	}
	if got.SavingsRate != 70 {
		t.Errorf("SavingsRate = %v; want 70", got.SavingsRate)
	}
	want := []CategoryTotal{
		{Category: "food", Amount: 350, Percentage: 77.78},
		{Category: "transport", Amount: 100, Percentage: 22.22},
	}
	if !reflect.DeepEqual(got.ExpenseByCategory, want) {
		t.Errorf("ExpenseByCategory = %+v; want %+v", got.ExpenseByCategory, want)
	}
	if len(got.Recent) != 5 || !got.Recent[0].Date.Equal(date(2025, 1, 5)) {
		t.Errorf("Recent not ordered newest first: %+v", got.Recent)
	}
}

func TestComputeMovementStatsEmpty(t *testing.T) {
	got := ComputeMovementStats(nil)
	if got.SavingsRate != 0 || got.AverageExpense != 0 {
		t.Errorf("empty stats = %+v", got)
	}
	if got.ExpenseByCategory == nil || got.Recent == nil {
		t.Error("empty stats should carry empty slices, not nil")
	}
}

func TestComputeBillStats(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	bills := []models.Bill{
		{Provider: "Edenor", Category: models.BillCategoryElectricity, Amount: 100, DueDate: date(2025, 3, 12), Status: models.BillStatusPending},
		{Provider: "AySA", Category: models.BillCategoryWater, Amount: 200, DueDate: date(2025, 3, 1), Status: models.BillStatusPaid},
		{Provider: "Metrogas", Category: models.BillCategoryGas, Amount: 50, DueDate: date(2025, 3, 1), Status: models.BillStatusPending},
		{Provider: "Fibertel", Category: models.BillCategoryInternet, Amount: 70, DueDate: date(2025, 2, 1), Status: models.BillStatusOverdue},
	}

	got := ComputeBillStats(bills, now)

	if got.TotalBills != 4 || got.PaidBills != 1 || got.PendingBills != 1 || got.OverdueBills != 2 {
		t.Errorf("counts = %d/%d/%d/%d; want 4/1/1/2", got.TotalBills, got.PaidBills, got.PendingBills, got.OverdueBills)
	}
	if got.PaidBills+got.PendingBills+got.OverdueBills != got.TotalBills {
		t.Errorf("status buckets overlap: %d+%d+%d != %d", got.PaidBills, got.PendingBills, got.OverdueBills, got.TotalBills)
	}
	if got.TotalPaid != 200 || got.TotalPending != 100 || got.TotalOverdue != 120 {
		t.Errorf("totals = %v/%v/%v; want 200/100/120", got.TotalPaid, got.TotalPending, got.TotalOverdue)
	}
	if got.PaymentRate != 25 {
		t.Errorf("PaymentRate = %v; want 25", got.PaymentRate)
	}
	if len(got.Upcoming) != 1 || got.Upcoming[0].Provider != "Edenor" {
		t.Errorf("Upcoming = %+v; want Edenor only", got.Upcoming)
	}
	want := []CategoryTotal{{Category: "water", Amount: 200, Percentage: 100}}
	if !reflect.DeepEqual(got.PaidByCategory, want) {
		t.Errorf("PaidByCategory = %+v; want %+v", got.PaidByCategory, want)
	}
}

func TestComputeCdtStats(t *testing.T) {
	active := models.Cdt{Institution: "Banco A", OpeningDate: date(2025, 1, 1), InitialAmount: 1000000, InterestRate: 10, Term: 90}
	if err := active.Prepare(); err != nil {
		t.Fatal(err)
	}
	matured := active
	matured.Status = models.CdtStatusMatured

	now := date(2025, 2, 16)
	got := ComputeCdtStats([]models.Cdt{active, matured}, now)

	if got.ActiveCount != 1 || got.MaturedCount != 1 {
		t.Errorf("counts = %d/%d; want 1/1", got.ActiveCount, got.MaturedCount)
	}
	if got.TotalInvested != 1000000 || got.ExpectedReturn != 1024960.58 || got.ExpectedInterest != 24960.58 {
		t.Errorf("totals = %v/%v/%v", got.TotalInvested, got.ExpectedReturn, got.ExpectedInterest)
	}
	if got.AccruedInterest != 12680.74 {
		t.Errorf("AccruedInterest = %v; want 12680.74", got.AccruedInterest)
	}
	if got.AverageRate != 10 {
		t.Errorf("AverageRate = %v; want 10", got.AverageRate)
	}
	if len(got.Upcoming) != 0 {
		t.Errorf("Upcoming = %d; want 0 with 44 days left", len(got.Upcoming))
	}
	if got.ByInstitution["Banco A"] != 1000000 {
		t.Errorf("ByInstitution = %v", got.ByInstitution)
	}
}

func TestComputeDebtStats(t *testing.T) {
	start := date(2025, 1, 15)
	debt := models.Debt{Base: models.Base{ID: "d1"}, Type: models.DebtTypeDebt, Amount: 10000, InterestRate: 12, Installments: 24, StartDate: start, PaymentDay: 15}
	loan := models.Debt{Base: models.Base{ID: "l1"}, Type: models.DebtTypeLoan, Amount: 1200000, InterestRate: 24, Installments: 12, StartDate: start, PaymentDay: 15}

	debtPayments, err := mergeSchedule(debt, []models.InstallmentPayment{{DebtID: "d1", InstallmentNumber: 1, PaidDate: date(2025, 2, 10)}})
	if err != nil {
		t.Fatal(err)
	}
	loanPayments, err := mergeSchedule(loan, nil)
	if err != nil {
		t.Fatal(err)
	}

	now := date(2025, 2, 10)
	got := ComputeDebtStats([]models.Debt{debt, loan}, map[string][]projection.Payment{
		"d1": debtPayments,
		"l1": loanPayments,
	}, now)

	if got.TotalOwed != 9629.27 || got.TotalLent != 1200000 {
		t.Errorf("owed/lent = %v/%v; want 9629.27/1200000", got.TotalOwed, got.TotalLent)
	}
	if got.PaidInstallments != 1 || got.TotalInstallments != 36 {
		t.Errorf("installments = %d/%d; want 1/36", got.PaidInstallments, got.TotalInstallments)
	}
	if got.AverageRate != 18 {
		t.Errorf("AverageRate = %v; want 18", got.AverageRate)
	}
	if len(got.Debts) != 1 || got.Debts[0].MonthlyPayment != 470.73 || got.Debts[0].Paid != 370.73 {
		t.Errorf("Debts = %+v", got.Debts)
	}
	if len(got.Loans) != 1 || got.Loans[0].MonthlyPayment != 113471.52 {
		t.Errorf("Loans = %+v", got.Loans)
	}
	if len(got.Upcoming) != 1 || got.Upcoming[0].ID != "l1-1" {
		t.Errorf("Upcoming = %+v; want only l1-1", got.Upcoming)
	}
}
