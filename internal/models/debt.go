package models

import (
	"fmt"
	"time"

	"github.com/LipezJ/eco-hogar/internal/projection"
)

type DebtType string

const (
	// DebtTypeDebt is money the user owes.
	DebtTypeDebt DebtType = "debt"
	// DebtTypeLoan is money the user lent out.
	DebtTypeLoan DebtType = "loan"
)

// Debt is an installment loan, either owed or lent.
type Debt struct {
	Base

	Type         DebtType  `gorm:"type:varchar(10);index" json:"type"`
	Origin       string    `gorm:"type:varchar(255)" json:"origin"`
	Amount       float64   `gorm:"type:decimal(15,2)" json:"amount"`
	InterestRate float64   `gorm:"type:decimal(7,4)" json:"interestRate"`
	Installments int       `json:"installments"`
	StartDate    time.Time `json:"startDate"`
	PaymentDay   int       `json:"paymentDay"`
	Description  string    `gorm:"type:text" json:"description,omitempty"`
}

func (d *Debt) Prepare() error {
	errs := FieldErrors{}
	requireOneOf(errs, "type", d.Type, DebtTypeDebt, DebtTypeLoan)
	requireText(errs, "origin", d.Origin)
	requirePositive(errs, "amount", d.Amount)
	requireRate(errs, "interestRate", d.InterestRate)
	if d.Installments <= 0 || d.Installments > projection.MaxInstallments {
		errs.Add("installments", fmt.Sprintf("must be between 1 and %d", projection.MaxInstallments))
	}
	requireDate(errs, "startDate", d.StartDate)
	if d.PaymentDay < 1 || d.PaymentDay > 31 {
		errs.Add("paymentDay", "must be between 1 and 31")
	}
	if err := errs.Err(); err != nil {
		return err
	}

	// The schedule is derived on every read, so it must be computable now.
	_, err := projection.MonthlyPayment(d.Amount, d.InterestRate, d.Installments)
	return err
}

func (d Debt) Loan() projection.Loan {
	return projection.Loan{
		ID:           d.ID,
		Amount:       d.Amount,
		InterestRate: d.InterestRate,
		Installments: d.Installments,
		StartDate:    d.StartDate,
		PaymentDay:   d.PaymentDay,
	}
}

// InstallmentPayment records that one installment of a debt was paid. The
// schedule itself is never stored.
type InstallmentPayment struct {
	Base

	DebtID            string    `gorm:"type:varchar(36);index:idx_installment_payments_debt_number,unique,where:deleted_at IS NULL" json:"debtId"`
	InstallmentNumber int       `gorm:"index:idx_installment_payments_debt_number,unique,where:deleted_at IS NULL" json:"installmentNumber"`
	PaidDate          time.Time `json:"paidDate"`
}

func (p *InstallmentPayment) Prepare() error {
	errs := FieldErrors{}
	requireText(errs, "debtId", p.DebtID)
	if p.InstallmentNumber <= 0 {
		errs.Add("installmentNumber", "must be positive")
	}
	requireDate(errs, "paidDate", p.PaidDate)
	return errs.Err()
}
