package http

import (
	"net/http"

	"nbfc-loan-ledger/internal/adapter/middleware"
	"nbfc-loan-ledger/internal/domain/deficit"
	"nbfc-loan-ledger/internal/domain/excess"
	"nbfc-loan-ledger/internal/usecase/adjustment"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// AdjustmentHandler serves deficit and excess records.
type AdjustmentHandler struct{ uc *adjustment.Usecase }

func NewAdjustmentHandler(uc *adjustment.Usecase) *AdjustmentHandler {
	return &AdjustmentHandler{uc: uc}
}

type createDeficitReq struct {
	Amount  decimal.Decimal `json:"amount"   validate:"dec2"`
	LateFee decimal.Decimal `json:"late_fee" validate:"dec2"`
	DueDate string          `json:"due_date" validate:"required,datetime=2006-01-02"`
	Remarks string          `json:"remarks"  validate:"max=1000"`
}

type resolveDeficitReq struct {
	DeficitID string `json:"-" param:"deficit_id" validate:"hex32"`
	Status    string `json:"status"      validate:"required,oneof=paid waived"`
}

type createExcessReq struct {
	Amount  decimal.Decimal `json:"amount"  validate:"dec2"`
	Remarks string          `json:"remarks" validate:"max=1000"`
}

type resolveExcessReq struct {
	ExcessID string `json:"-" param:"excess_id" validate:"hex32"`
	Status   string `json:"status"     validate:"required,oneof=processed refunded"`
}

func (h *AdjustmentHandler) CreateDeficit(c echo.Context) error {
	var req createDeficitReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.uc.CreateDeficit(c.Request().Context(), c.Param("loan_number"), middleware.ActorID(c), adjustment.DeficitInput{
		Amount:  req.Amount,
		LateFee: req.LateFee,
		DueDate: parseDate(req.DueDate),
		Remarks: req.Remarks,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *AdjustmentHandler) ListDeficits(c echo.Context) error {
	out, err := h.uc.ListDeficits(c.Request().Context(), c.Param("loan_number"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"deficits": out, "count": len(out)})
}

func (h *AdjustmentHandler) ResolveDeficit(c echo.Context) error {
	var req resolveDeficitReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.uc.ResolveDeficit(c.Request().Context(), req.DeficitID, middleware.ActorID(c), deficit.Status(req.Status))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AdjustmentHandler) CreateExcess(c echo.Context) error {
	var req createExcessReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.uc.CreateExcess(c.Request().Context(), c.Param("loan_number"), middleware.ActorID(c), adjustment.ExcessInput{
		Amount:  req.Amount,
		Remarks: req.Remarks,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *AdjustmentHandler) ListExcesses(c echo.Context) error {
	out, err := h.uc.ListExcesses(c.Request().Context(), c.Param("loan_number"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"excesses": out, "count": len(out)})
}

func (h *AdjustmentHandler) ResolveExcess(c echo.Context) error {
	var req resolveExcessReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.uc.ResolveExcess(c.Request().Context(), req.ExcessID, middleware.ActorID(c), excess.Status(req.Status))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
