package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/LipezJ/eco-hogar/internal/projection"
	"github.com/LipezJ/eco-hogar/internal/services"
)

// CalculatorHandler runs projections that are not tied to stored records.
type CalculatorHandler struct{}

func NewCalculatorHandler() *CalculatorHandler {
	return &CalculatorHandler{}
}

type amortizationRequest struct {
	Amount       float64    `json:"amount"`
	InterestRate float64    `json:"interestRate"`
	Installments int        `json:"installments"`
	StartDate    *time.Time `json:"startDate"`
	PaymentDay   int        `json:"paymentDay"`
}

func (h *CalculatorHandler) Amortization(c echo.Context) error {
	var req amortizationRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	start := time.Now()
	if req.StartDate != nil {
		start = *req.StartDate
	}
	if req.PaymentDay == 0 {
		req.PaymentDay = start.Day()
	}

	quote, err := services.QuoteAmortization(projection.Loan{
		ID:           "simulation",
		Amount:       req.Amount,
		InterestRate: req.InterestRate,
		Installments: req.Installments,
		StartDate:    start,
		PaymentDay:   req.PaymentDay,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, quote)
}

type depositRequest struct {
	InitialAmount float64    `json:"initialAmount"`
	InterestRate  float64    `json:"interestRate"`
	Term          int        `json:"term"`
	OpeningDate   *time.Time `json:"openingDate"`
}

func (h *CalculatorHandler) Deposit(c echo.Context) error {
	var req depositRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	opening := time.Now()
	if req.OpeningDate != nil {
		opening = *req.OpeningDate
	}

	quote, err := services.QuoteDeposit(req.InitialAmount, req.InterestRate, req.Term, opening)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, quote)
}
