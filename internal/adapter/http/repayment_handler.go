package http

import (
	"net/http"

	"nbfc-loan-ledger/internal/adapter/middleware"
	"nbfc-loan-ledger/internal/usecase/repayment"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type RepaymentHandler struct{ uc *repayment.Usecase }

func NewRepaymentHandler(uc *repayment.Usecase) *RepaymentHandler {
	return &RepaymentHandler{uc: uc}
}

type recordRepaymentReq struct {
	Amount        decimal.Decimal `json:"amount"         validate:"dec2"`
	PaymentDate   string          `json:"payment_date"   validate:"omitempty,datetime=2006-01-02"`
	PaymentMethod string          `json:"payment_method" validate:"required,max=32"`
	Remarks       string          `json:"remarks"        validate:"max=1000"`
}

type repaymentPath struct {
	RepaymentID string `json:"-" param:"repayment_id" validate:"hex32"`
}

type rejectRepaymentReq struct {
	RepaymentID string `json:"-" param:"repayment_id" validate:"hex32"`
	Reason      string `json:"reason"        validate:"required"`
}

func (h *RepaymentHandler) Record(c echo.Context) error {
	var req recordRepaymentReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Record(c.Request().Context(), c.Param("loan_number"), middleware.ActorID(c), repayment.RecordInput{
		Amount:        req.Amount,
		PaymentDate:   parseDate(req.PaymentDate),
		PaymentMethod: req.PaymentMethod,
		Remarks:       req.Remarks,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *RepaymentHandler) List(c echo.Context) error {
	out, err := h.uc.ListByLoan(c.Request().Context(), c.Param("loan_number"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"repayments": out, "count": len(out)})
}

func (h *RepaymentHandler) Approve(c echo.Context) error {
	var req repaymentPath
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Approve(c.Request().Context(), req.RepaymentID, middleware.ActorID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *RepaymentHandler) Reject(c echo.Context) error {
	var req rejectRepaymentReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Reject(c.Request().Context(), req.RepaymentID, middleware.ActorID(c), req.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *RepaymentHandler) Delete(c echo.Context) error {
	var req repaymentPath
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Delete(c.Request().Context(), req.RepaymentID, middleware.ActorID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
