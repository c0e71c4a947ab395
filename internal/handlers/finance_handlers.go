package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/LipezJ/eco-hogar/internal/middleware"
	"github.com/LipezJ/eco-hogar/internal/services"
)

type AccountHandler struct {
	svc *services.AccountService
}

func NewAccountHandler(svc *services.AccountService) *AccountHandler {
	return &AccountHandler{svc: svc}
}

func (h *AccountHandler) Stats(c echo.Context) error {
	stats, err := h.svc.Stats(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

type MovementHandler struct {
	svc *services.MovementService
}

func NewMovementHandler(svc *services.MovementService) *MovementHandler {
	return &MovementHandler{svc: svc}
}

// List accepts optional from and to query parameters.
func (h *MovementHandler) List(c echo.Context) error {
	from, to, err := queryRange(c)
	if err != nil {
		return err
	}
	movements, err := h.svc.ListRange(c.Request().Context(), middleware.UserID(c), from, to)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, movements)
}

func (h *MovementHandler) Stats(c echo.Context) error {
	from, to, err := queryRange(c)
	if err != nil {
		return err
	}
	stats, err := h.svc.Stats(c.Request().Context(), middleware.UserID(c), from, to)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

type BillHandler struct {
	svc *services.BillService
}

func NewBillHandler(svc *services.BillService) *BillHandler {
	return &BillHandler{svc: svc}
}

func (h *BillHandler) Stats(c echo.Context) error {
	stats, err := h.svc.Stats(c.Request().Context(), middleware.UserID(c), time.Now())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

type payBillRequest struct {
	PaymentDate *time.Time `json:"paymentDate"`
}

func (h *BillHandler) Pay(c echo.Context) error {
	var req payBillRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	paidAt := time.Now()
	if req.PaymentDate != nil {
		paidAt = *req.PaymentDate
	}

	result, err := h.svc.Pay(c.Request().Context(), middleware.UserID(c), c.Param("id"), paidAt)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (h *BillHandler) Renew(c echo.Context) error {
	next, err := h.svc.Renew(c.Request().Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, next)
}

type CdtHandler struct {
	svc *services.CdtService
}

func NewCdtHandler(svc *services.CdtService) *CdtHandler {
	return &CdtHandler{svc: svc}
}

func (h *CdtHandler) Stats(c echo.Context) error {
	stats, err := h.svc.Stats(c.Request().Context(), middleware.UserID(c), time.Now())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *CdtHandler) Projection(c echo.Context) error {
	p, err := h.svc.Projection(c.Request().Context(), middleware.UserID(c), c.Param("id"), time.Now())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

type DebtHandler struct {
	svc *services.DebtService
}

func NewDebtHandler(svc *services.DebtService) *DebtHandler {
	return &DebtHandler{svc: svc}
}

func (h *DebtHandler) Stats(c echo.Context) error {
	stats, err := h.svc.Stats(c.Request().Context(), middleware.UserID(c), time.Now())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// Payments returns the amortization table with paid state merged in.
func (h *DebtHandler) Payments(c echo.Context) error {
	schedule, err := h.svc.Schedule(c.Request().Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, schedule)
}

type setPaymentRequest struct {
	IsPaid   bool       `json:"isPaid"`
	PaidDate *time.Time `json:"paidDate"`
}

func (h *DebtHandler) SetPayment(c echo.Context) error {
	number, err := paramInt(c, "number")
	if err != nil {
		return err
	}
	var req setPaymentRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	payment, err := h.svc.SetPaid(c.Request().Context(), middleware.UserID(c), c.Param("id"), number, req.IsPaid, req.PaidDate, time.Now())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payment)
}

type DashboardHandler struct {
	svc *services.DashboardService
}

func NewDashboardHandler(svc *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) Get(c echo.Context) error {
	d, err := h.svc.Get(c.Request().Context(), middleware.UserID(c), time.Now())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}
