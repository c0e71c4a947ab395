package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/LipezJ/eco-hogar/internal/middleware"
	"github.com/LipezJ/eco-hogar/internal/models"
	"github.com/LipezJ/eco-hogar/internal/services"
)

type RouteOptions struct {
	SecureCookies bool
	// AuthLimiter throttles login and registration. Nil disables it.
	AuthLimiter echo.MiddlewareFunc
}

// RegisterRoutes mounts the whole JSON API on e.
func RegisterRoutes(e *echo.Echo, svc *services.Services, opts RouteOptions) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api")

	authHandler := NewAuthHandler(svc.Auth, opts.SecureCookies)
	auth := api.Group("/auth")
	var limited []echo.MiddlewareFunc
	if opts.AuthLimiter != nil {
		limited = append(limited, opts.AuthLimiter)
	}
	auth.POST("/login", authHandler.Login, limited...)
	auth.POST("/register", authHandler.Register, limited...)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/session", authHandler.Session)

	protected := api.Group("", middleware.RequireAuth(svc.Auth))

	accounts := protected.Group("/accounts")
	accountHandler := NewAccountHandler(svc.Accounts)
	accounts.GET("/stats", accountHandler.Stats)
	NewResourceHandler[models.Account](svc.Accounts).Register(accounts)

	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(svc.Movements)
	movementResource := NewResourceHandler[models.Movement](svc.Movements)
	movements.GET("", movementHandler.List)
	movements.POST("", movementResource.Create)
	movements.GET("/stats", movementHandler.Stats)
	movements.GET("/:id", movementResource.Get)
	movements.PUT("/:id", movementResource.Update)
	movements.DELETE("/:id", movementResource.Delete)

	bills := protected.Group("/bills")
	billHandler := NewBillHandler(svc.Bills)
	bills.GET("/stats", billHandler.Stats)
	bills.POST("/:id/pay", billHandler.Pay)
	bills.POST("/:id/renew", billHandler.Renew)
	NewResourceHandler[models.Bill](svc.Bills).Register(bills)

	cdts := protected.Group("/cdts")
	cdtHandler := NewCdtHandler(svc.Cdts)
	cdts.GET("/stats", cdtHandler.Stats)
	cdts.GET("/:id/projection", cdtHandler.Projection)
	NewResourceHandler[models.Cdt](svc.Cdts).Register(cdts)

	debts := protected.Group("/debts")
	debtHandler := NewDebtHandler(svc.Debts)
	debts.GET("/stats", debtHandler.Stats)
	debts.GET("/:id/payments", debtHandler.Payments)
	debts.PUT("/:id/payments/:number", debtHandler.SetPayment)
	NewResourceHandler[models.Debt](svc.Debts).Register(debts)

	calculator := protected.Group("/calculator")
	calculatorHandler := NewCalculatorHandler()
	calculator.POST("/amortization", calculatorHandler.Amortization)
	calculator.POST("/deposit", calculatorHandler.Deposit)

	protected.GET("/dashboard", NewDashboardHandler(svc.Dashboard).Get)
}
