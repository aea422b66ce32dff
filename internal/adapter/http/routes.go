package http

import (
	"log/slog"
	"net/http"
	"time"

	"nbfc-loan-ledger/internal/adapter/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
)

// Handlers bundles everything RegisterRoutes mounts.
type Handlers struct {
	Health      *Handler
	Loans       *LoanHandler
	Repayments  *RepaymentHandler
	Adjustments *AdjustmentHandler
	Metrics     http.Handler // optional
}

func RegisterRoutes(e *echo.Echo, h Handlers) {
	e.GET("/health", h.Health.Health)
	if h.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(h.Metrics))
	}

	e.POST("/loans", h.Loans.CreateLoan)
	e.GET("/loans", h.Loans.ListLoans)
	e.GET("/loans/:loan_number", h.Loans.GetLoan)
	e.DELETE("/loans/:loan_number", h.Loans.DeleteLoan)
	e.POST("/loans/:loan_number/approve", h.Loans.ApproveLoan)
	e.POST("/loans/:loan_number/reject", h.Loans.RejectLoan)
	e.POST("/loans/:loan_number/disburse", h.Loans.DisburseLoan)
	e.GET("/loans/:loan_number/summary", h.Loans.Summary)
	e.GET("/loans/:loan_number/schedule", h.Loans.Schedule)
	e.GET("/loans/:loan_number/history", h.Loans.History)

	e.POST("/loans/:loan_number/repayments", h.Repayments.Record)
	e.GET("/loans/:loan_number/repayments", h.Repayments.List)
	e.POST("/repayments/:repayment_id/approve", h.Repayments.Approve)
	e.POST("/repayments/:repayment_id/reject", h.Repayments.Reject)
	e.DELETE("/repayments/:repayment_id", h.Repayments.Delete)

	e.POST("/loans/:loan_number/deficits", h.Adjustments.CreateDeficit)
	e.GET("/loans/:loan_number/deficits", h.Adjustments.ListDeficits)
	e.POST("/deficits/:deficit_id/resolve", h.Adjustments.ResolveDeficit)
	e.POST("/loans/:loan_number/excesses", h.Adjustments.CreateExcess)
	e.GET("/loans/:loan_number/excesses", h.Adjustments.ListExcesses)
	e.POST("/excesses/:excess_id/resolve", h.Adjustments.ResolveExcess)
}

// NewServer builds the echo instance with the full middleware chain:
// recover, request log, actor, idempotency (when rdb is set).
func NewServer(logger *slog.Logger, rdb *redis.Client, idempTTL time.Duration, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()

	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(logger))
	e.Use(middleware.ActorMiddleware())
	if rdb != nil {
		e.Use(middleware.IdempotencyMiddleware(rdb, idempTTL))
	}

	RegisterRoutes(e, h)
	return e
}
