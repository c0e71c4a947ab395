package projection

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Loan is the subset of a debt record the amortization schedule depends on.
type Loan struct {
	ID           string
	Amount       float64
	InterestRate float64 // annual, percent
	Installments int
	StartDate    time.Time
	PaymentDay   int
}

// Payment is one row of an amortization schedule. Only IsPaid and PaidDate
// carry state; everything else is derived from the Loan.
type Payment struct {
	ID                string     `json:"id"`
	DebtID            string     `json:"debtId"`
	InstallmentNumber int        `json:"installmentNumber"`
	DueDate           time.Time  `json:"dueDate"`
	Amount            float64    `json:"amount"`
	Principal         float64    `json:"principal"`
	Interest          float64    `json:"interest"`
	IsPaid            bool       `json:"isPaid"`
	PaidDate          *time.Time `json:"paidDate,omitempty"`
}

func (p Payment) DueAt() time.Time { return p.DueDate }
func (p Payment) IsClosed() bool   { return p.IsPaid }

// MaxInstallments bounds a schedule to fifty years of monthly payments.
const MaxInstallments = 600

// MonthlyPayment returns the fixed installment that amortizes amount over n
// monthly periods (French system), rounded to cents.
func MonthlyPayment(amount, annualRatePercent float64, installments int) (float64, error) {
	if err := validateAmount("amount", amount); err != nil {
		return 0, err
	}
	if err := validateRate(annualRatePercent); err != nil {
		return 0, err
	}
	if installments <= 0 || installments > MaxInstallments {
		return 0, invalid("installments", float64(installments), ErrInvalidTerm)
	}

	r := annualRatePercent / 100 / 12
	var payment float64
	if r == 0 {
		payment = amount / float64(installments)
	} else {
		factor := math.Pow(1+r, float64(installments))
		payment = amount * r * factor / (factor - 1)
	}
	if !finite(payment) {
		return 0, invalid("amount", amount, ErrInvalidAmount)
	}
	return Round2(payment), nil
}

// Schedule expands a loan into its installments. Due dates fall on PaymentDay
// of each month after StartDate, clamped to the month's last day.
func Schedule(loan Loan) ([]Payment, error) {
	if loan.PaymentDay < 1 || loan.PaymentDay > 31 {
		return nil, invalid("paymentDay", float64(loan.PaymentDay), ErrInvalidPaymentDay)
	}
	payment, err := MonthlyPayment(loan.Amount, loan.InterestRate, loan.Installments)
	if err != nil {
		return nil, err
	}

	monthlyRate := loan.InterestRate / 100 / 12
	remaining := loan.Amount
	payments := make([]Payment, 0, loan.Installments)

	for i := 1; i <= loan.Installments; i++ {
		interest := remaining * monthlyRate
		principal := payment - interest

		payments = append(payments, Payment{
			ID:                fmt.Sprintf("%s-%d", loan.ID, i),
			DebtID:            loan.ID,
			InstallmentNumber: i,
			DueDate:           InstallmentDueDate(loan.StartDate, i, loan.PaymentDay),
			Amount:            payment,
			Principal:         Round2(principal),
			Interest:          Round2(interest),
		})

		remaining -= principal
	}

	return payments, nil
}

// RemainingBalance is the principal not yet covered by paid installments.
func RemainingBalance(amount float64, payments []Payment) float64 {
	paid := decimal.Zero
	for _, p := range payments {
		if p.IsPaid {
			paid = paid.Add(decimal.NewFromFloat(p.Principal))
		}
	}
	return decimal.NewFromFloat(amount).Sub(paid).Round(2).InexactFloat64()
}

// InstallmentDueDate returns the date offset months after start with the day
// forced to paymentDay. Months shorter than paymentDay use their last day.
func InstallmentDueDate(start time.Time, offset, paymentDay int) time.Time {
	return monthDay(start, offset, paymentDay)
}

// AddMonths shifts t by months keeping its day of month where possible.
// Jan 31 + 1 month is Feb 28 (or 29), never early March.
func AddMonths(t time.Time, months int) time.Time {
	return monthDay(t, months, t.Day())
}

func monthDay(t time.Time, months, day int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(months), 1,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
