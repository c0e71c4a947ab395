package services

import (
	"time"

	"github.com/LipezJ/eco-hogar/internal/projection"
)

// AmortizationQuote is a loan simulation that is not tied to a stored debt.
type AmortizationQuote struct {
	Amount         float64              `json:"amount"`
	InterestRate   float64              `json:"interestRate"`
	Installments   int                  `json:"installments"`
	MonthlyPayment float64              `json:"monthlyPayment"`
	TotalPaid      float64              `json:"totalPaid"`
	TotalInterest  float64              `json:"totalInterest"`
	Payments       []projection.Payment `json:"payments"`
}

func QuoteAmortization(loan projection.Loan) (*AmortizationQuote, error) {
	payments, err := projection.Schedule(loan)
	if err != nil {
		return nil, err
	}

	interest := make([]float64, len(payments))
	for i, p := range payments {
		interest[i] = p.Interest
	}
	monthly := payments[0].Amount
	totalPaid := projection.Round2(monthly * float64(len(payments)))

	return &AmortizationQuote{
		Amount:         loan.Amount,
		InterestRate:   loan.InterestRate,
		Installments:   loan.Installments,
		MonthlyPayment: monthly,
		TotalPaid:      totalPaid,
		TotalInterest:  projection.Sum(interest...),
		Payments:       payments,
	}, nil
}

// DepositQuote simulates a term deposit.
type DepositQuote struct {
	InitialAmount  float64   `json:"initialAmount"`
	InterestRate   float64   `json:"interestRate"`
	Term           int       `json:"term"`
	OpeningDate    time.Time `json:"openingDate"`
	DueDate        time.Time `json:"dueDate"`
	FinalAmount    float64   `json:"finalAmount"`
	InterestEarned float64   `json:"interestEarned"`
}

func QuoteDeposit(initialAmount, ratePercent float64, term int, opening time.Time) (*DepositQuote, error) {
	if err := projection.ValidateTerm(term); err != nil {
		return nil, err
	}
	final, err := projection.FinalAmount(initialAmount, ratePercent, term)
	if err != nil {
		return nil, err
	}
	return &DepositQuote{
		InitialAmount:  initialAmount,
		InterestRate:   ratePercent,
		Term:           term,
		OpeningDate:    opening,
		DueDate:        projection.MaturityDate(opening, term),
		FinalAmount:    final,
		InterestEarned: projection.InterestEarned(initialAmount, final),
	}, nil
}
