package services

import (
	"sort"
	"time"

	"github.com/LipezJ/eco-hogar/internal/models"
	"github.com/LipezJ/eco-hogar/internal/projection"
)

// ExchangeRates converts a currency into pesos. The table is fixed; rates
// are indicative and only used for aggregate totals.
var ExchangeRates = map[models.Currency]float64{
	models.CurrencyARS:   1,
	models.CurrencyUSD:   1000,
	models.CurrencyEUR:   1100,
	models.CurrencyBRL:   200,
	models.CurrencyCLP:   1.2,
	models.CurrencyUYU:   25,
	models.CurrencyMXN:   55,
	models.CurrencyCOP:   0.25,
	models.CurrencyPEN:   270,
	models.CurrencyOther: 1,
}

// ConvertToBase converts amount to pesos. Unknown currencies count at par.
func ConvertToBase(amount float64, currency models.Currency) float64 {
	rate, ok := ExchangeRates[currency]
	if !ok {
		rate = 1
	}
	return amount * rate
}

type AccountStats struct {
	TotalAccounts   int                            `json:"totalAccounts"`
	ActiveAccounts  int                            `json:"activeAccounts"`
	TotalByCurrency map[models.Currency]float64    `json:"totalByCurrency"`
	TotalInBase     float64                        `json:"totalInBase"`
	TotalByType     map[models.AccountType]float64 `json:"totalByType"`
	National        float64                        `json:"national"`
	Foreign         float64                        `json:"foreign"`
	AccountsByOwner map[string]int                 `json:"accountsByOwner"`
}

// ComputeAccountStats aggregates balances of active accounts. Totals by type
// and location are expressed in pesos.
func ComputeAccountStats(accounts []models.Account) AccountStats {
	stats := AccountStats{
		TotalAccounts:   len(accounts),
		TotalByCurrency: map[models.Currency]float64{},
		TotalByType:     map[models.AccountType]float64{},
		AccountsByOwner: map[string]int{},
	}

	for _, a := range accounts {
		stats.AccountsByOwner[a.Owner]++
		if a.Status != models.AccountStatusActive {
			continue
		}
		stats.ActiveAccounts++

		inBase := ConvertToBase(a.Balance, a.Currency)
		stats.TotalByCurrency[a.Currency] += a.Balance
		stats.TotalByType[a.AccountType] += inBase
		stats.TotalInBase += inBase
		if a.IsNational {
			stats.National += inBase
		} else {
			stats.Foreign += inBase
		}
	}

	for k, v := range stats.TotalByCurrency {
		stats.TotalByCurrency[k] = projection.Round2(v)
	}
	for k, v := range stats.TotalByType {
		stats.TotalByType[k] = projection.Round2(v)
	}
	stats.TotalInBase = projection.Round2(stats.TotalInBase)
	stats.National = projection.Round2(stats.National)
	stats.Foreign = projection.Round2(stats.Foreign)
	return stats
}

type CategoryTotal struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

type MovementStats struct {
	TotalIncome       float64           `json:"totalIncome"`
	TotalExpense      float64           `json:"totalExpense"`
	Balance           float64           `json:"balance"`
	IncomeCount       int               `json:"incomeCount"`
	ExpenseCount      int               `json:"expenseCount"`
	AverageIncome     float64           `json:"averageIncome"`
	AverageExpense    float64           `json:"averageExpense"`
	SavingsRate       float64           `json:"savingsRate"`
	ExpenseByCategory []CategoryTotal   `json:"expenseByCategory"`
	Recent            []models.Movement `json:"recent"`
}

const recentMovements = 5

func ComputeMovementStats(movements []models.Movement) MovementStats {
	stats := MovementStats{
		ExpenseByCategory: []CategoryTotal{},
		Recent:            []models.Movement{},
	}

	var income, expense []float64
	byCategory := map[models.MovementCategory][]float64{}
	for _, m := range movements {
		switch m.Type {
		case models.MovementTypeIncome:
			income = append(income, m.Amount)
		case models.MovementTypeExpense:
			expense = append(expense, m.Amount)
			byCategory[m.Category] = append(byCategory[m.Category], m.Amount)
		}
	}

	stats.TotalIncome = projection.Sum(income...)
	stats.TotalExpense = projection.Sum(expense...)
	stats.Balance = projection.Round2(stats.TotalIncome - stats.TotalExpense)
	stats.IncomeCount = len(income)
	stats.ExpenseCount = len(expense)
	if stats.IncomeCount > 0 {
		stats.AverageIncome = projection.Round2(stats.TotalIncome / float64(stats.IncomeCount))
		stats.SavingsRate = projection.Percent(stats.Balance, stats.TotalIncome)
	}
	if stats.ExpenseCount > 0 {
		stats.AverageExpense = projection.Round2(stats.TotalExpense / float64(stats.ExpenseCount))
	}

	for category, amounts := range byCategory {
		total := projection.Sum(amounts...)
		stats.ExpenseByCategory = append(stats.ExpenseByCategory, CategoryTotal{
			Category:   string(category),
			Amount:     total,
			Percentage: projection.Percent(total, stats.TotalExpense),
		})
	}
	sortCategoryTotals(stats.ExpenseByCategory)

	recent := make([]models.Movement, len(movements))
	copy(recent, movements)
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].Date.After(recent[j].Date) })
	if len(recent) > recentMovements {
		recent = recent[:recentMovements]
	}
	stats.Recent = recent
	return stats
}

func sortCategoryTotals(totals []CategoryTotal) {
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Amount == totals[j].Amount {
			return totals[i].Category < totals[j].Category
		}
		return totals[i].Amount > totals[j].Amount
	})
}

// FilterMovements keeps movements dated within [from, to]. Nil bounds are open.
func FilterMovements(movements []models.Movement, from, to *time.Time) []models.Movement {
	filtered := make([]models.Movement, 0, len(movements))
	for _, m := range movements {
		if from != nil && m.Date.Before(*from) {
			continue
		}
		if to != nil && m.Date.After(*to) {
			continue
		}
		filtered = append(filtered, m)
	}
	return filtered
}

type BillStats struct {
	TotalBills     int             `json:"totalBills"`
	PaidBills      int             `json:"paidBills"`
	PendingBills   int             `json:"pendingBills"`
	OverdueBills   int             `json:"overdueBills"`
	TotalPaid      float64         `json:"totalPaid"`
	TotalPending   float64         `json:"totalPending"`
	TotalOverdue   float64         `json:"totalOverdue"`
	PaymentRate    float64         `json:"paymentRate"`
	Upcoming       []models.Bill   `json:"upcoming"`
	PaidByCategory []CategoryTotal `json:"paidByCategory"`
}

func ComputeBillStats(bills []models.Bill, now time.Time) BillStats {
	stats := BillStats{TotalBills: len(bills)}

	var paid, pending, overdue []float64
	byCategory := map[models.BillCategory][]float64{}
	for _, b := range bills {
		switch {
		case b.Status == models.BillStatusPaid:
			stats.PaidBills++
			paid = append(paid, b.Amount)
			byCategory[b.Category] = append(byCategory[b.Category], b.Amount)
		case b.Status == models.BillStatusOverdue || projection.IsOverdue(b, now):
			// Pending bills past due count as overdue even before the sweep
			// marks them, and never as pending too.
			stats.OverdueBills++
			overdue = append(overdue, b.Amount)
		default:
			stats.PendingBills++
			pending = append(pending, b.Amount)
		}
	}

	stats.TotalPaid = projection.Sum(paid...)
	stats.TotalPending = projection.Sum(pending...)
	stats.TotalOverdue = projection.Sum(overdue...)
	if stats.TotalBills > 0 {
		stats.PaymentRate = projection.Percent(float64(stats.PaidBills), float64(stats.TotalBills))
	}

	stats.Upcoming = projection.DueSoon(bills, projection.BillDueSoonWindow, now)
	if stats.Upcoming == nil {
		stats.Upcoming = []models.Bill{}
	}
	sort.SliceStable(stats.Upcoming, func(i, j int) bool {
		return stats.Upcoming[i].DueDate.Before(stats.Upcoming[j].DueDate)
	})

	stats.PaidByCategory = make([]CategoryTotal, 0, len(byCategory))
	for category, amounts := range byCategory {
		total := projection.Sum(amounts...)
		stats.PaidByCategory = append(stats.PaidByCategory, CategoryTotal{
			Category:   string(category),
			Amount:     total,
			Percentage: projection.Percent(total, stats.TotalPaid),
		})
	}
	sortCategoryTotals(stats.PaidByCategory)
	return stats
}

type CdtStats struct {
	ActiveCount      int                `json:"activeCount"`
	MaturedCount     int                `json:"maturedCount"`
	TotalInvested    float64            `json:"totalInvested"`
	ExpectedReturn   float64            `json:"expectedReturn"`
	ExpectedInterest float64            `json:"expectedInterest"`
	AccruedInterest  float64            `json:"accruedInterest"`
	AverageRate      float64            `json:"averageRate"`
	Upcoming         []models.Cdt       `json:"upcoming"`
	ByInstitution    map[string]float64 `json:"byInstitution"`
}

// ComputeCdtStats aggregates active deposits only.
func ComputeCdtStats(cdts []models.Cdt, now time.Time) CdtStats {
	stats := CdtStats{ByInstitution: map[string]float64{}}

	var invested, returns, accrued, rates []float64
	for _, c := range cdts {
		switch c.Status {
		case models.CdtStatusMatured:
			stats.MaturedCount++
			continue
		case models.CdtStatusActive:
		default:
			continue
		}
		stats.ActiveCount++
		invested = append(invested, c.InitialAmount)
		returns = append(returns, c.FinalAmount)
		rates = append(rates, c.InterestRate)
		stats.ByInstitution[c.Institution] += c.InitialAmount
		if interest, err := projection.AccruedInterest(c.InitialAmount, c.InterestRate, c.OpeningDate, now); err == nil {
			accrued = append(accrued, interest)
		}
	}

	stats.TotalInvested = projection.Sum(invested...)
	stats.ExpectedReturn = projection.Sum(returns...)
	stats.ExpectedInterest = projection.InterestEarned(stats.TotalInvested, stats.ExpectedReturn)
	stats.AccruedInterest = projection.Sum(accrued...)
	if len(rates) > 0 {
		stats.AverageRate = projection.Round2(projection.Sum(rates...) / float64(len(rates)))
	}
	for k, v := range stats.ByInstitution {
		stats.ByInstitution[k] = projection.Round2(v)
	}

	stats.Upcoming = projection.DueSoon(cdts, projection.DepositDueSoonWindow, now)
	if stats.Upcoming == nil {
		stats.Upcoming = []models.Cdt{}
	}
	sort.SliceStable(stats.Upcoming, func(i, j int) bool {
		return stats.Upcoming[i].DueDate.Before(stats.Upcoming[j].DueDate)
	})
	return stats
}

// DebtSummary is a debt together with its repayment progress.
type DebtSummary struct {
	Debt             models.Debt `json:"debt"`
	MonthlyPayment   float64     `json:"monthlyPayment"`
	Remaining        float64     `json:"remaining"`
	Paid             float64     `json:"paid"`
	Progress         float64     `json:"progress"`
	PaidInstallments int         `json:"paidInstallments"`
}

type DebtStats struct {
	Debts             []DebtSummary        `json:"debts"`
	Loans             []DebtSummary        `json:"loans"`
	TotalOwed         float64              `json:"totalOwed"`
	TotalLent         float64              `json:"totalLent"`
	TotalDebtAmount   float64              `json:"totalDebtAmount"`
	TotalLoanAmount   float64              `json:"totalLoanAmount"`
	PaidInstallments  int                  `json:"paidInstallments"`
	TotalInstallments int                  `json:"totalInstallments"`
	AverageRate       float64              `json:"averageRate"`
	Upcoming          []projection.Payment `json:"upcoming"`
}

// ComputeDebtStats summarizes debts given each debt's merged schedule, keyed
// by debt ID. Debts without a schedule are reported with no progress.
func ComputeDebtStats(debts []models.Debt, schedules map[string][]projection.Payment, now time.Time) DebtStats {
	stats := DebtStats{
		Debts:    []DebtSummary{},
		Loans:    []DebtSummary{},
		Upcoming: []projection.Payment{},
	}

	var owed, lent, debtAmounts, loanAmounts, rates []float64
	for _, d := range debts {
		payments := schedules[d.ID]
		summary := summarize(d, payments)

		stats.PaidInstallments += summary.PaidInstallments
		stats.TotalInstallments += d.Installments
		rates = append(rates, d.InterestRate)

		if d.Type == models.DebtTypeLoan {
			stats.Loans = append(stats.Loans, summary)
			lent = append(lent, summary.Remaining)
			loanAmounts = append(loanAmounts, d.Amount)
		} else {
			stats.Debts = append(stats.Debts, summary)
			owed = append(owed, summary.Remaining)
			debtAmounts = append(debtAmounts, d.Amount)
		}

		stats.Upcoming = append(stats.Upcoming, projection.DueSoon(payments, projection.InstallmentDueSoonWindow, now)...)
	}

	stats.TotalOwed = projection.Sum(owed...)
	stats.TotalLent = projection.Sum(lent...)
	stats.TotalDebtAmount = projection.Sum(debtAmounts...)
	stats.TotalLoanAmount = projection.Sum(loanAmounts...)
	if len(rates) > 0 {
		stats.AverageRate = projection.Round2(projection.Sum(rates...) / float64(len(rates)))
	}
	sort.SliceStable(stats.Upcoming, func(i, j int) bool {
		return stats.Upcoming[i].DueDate.Before(stats.Upcoming[j].DueDate)
	})
	return stats
}

func summarize(d models.Debt, payments []projection.Payment) DebtSummary {
	summary := DebtSummary{Debt: d, Remaining: projection.Round2(d.Amount)}
	if len(payments) == 0 {
		return summary
	}

	summary.MonthlyPayment = payments[0].Amount
	summary.Remaining = projection.RemainingBalance(d.Amount, payments)
	summary.Paid = projection.Round2(d.Amount - summary.Remaining)
	summary.Progress = projection.Percent(summary.Paid, d.Amount)
	for _, p := range payments {
		if p.IsPaid {
			summary.PaidInstallments++
		}
	}
	return summary
}
