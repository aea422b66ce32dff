package http

import (
	"net/http"
	"time"

	"nbfc-loan-ledger/internal/adapter/middleware"
	"nbfc-loan-ledger/internal/export"
	"nbfc-loan-ledger/internal/usecase/loan"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type createLoanReq struct {
	LoanNumber          string          `json:"loan_number"           validate:"omitempty,loannum"`
	OrganizationID      string          `json:"organization_id"       validate:"required,max=64"`
	EmployeeID          string          `json:"employee_id"           validate:"required,max=64"`
	Principal           decimal.Decimal `json:"principal"             validate:"dec2"`
	InterestRatePercent decimal.Decimal `json:"interest_rate_percent" validate:"gte=0,lte=999.9999,dec4"`
	TermMonths          int             `json:"term_months"           validate:"gte=1,lte=600"`
	StartDate           string          `json:"start_date"            validate:"required,datetime=2006-01-02"`
	EndDate             string          `json:"end_date"              validate:"omitempty,datetime=2006-01-02"`
	Purpose             string          `json:"purpose"               validate:"max=255"`
}

type listLoansReq struct {
	OrganizationID string `query:"organization_id"`
	EmployeeID     string `query:"employee_id"`
	Status         string `query:"status"`
	Limit          int    `query:"limit"  validate:"gte=0,lte=500"`
	Offset         int    `query:"offset" validate:"gte=0"`
}

type rejectReq struct {
	Reason string `json:"reason" validate:"required"`
}

type disburseReq struct {
	Method  string            `json:"disbursement_method"  validate:"required,max=32"`
	Details map[string]string `json:"disbursement_details" validate:"required"`
}

// parseDate accepts "" as the zero time; the validator has already checked the layout.
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, _ := time.ParseInLocation(dateLayout, s, time.UTC)
	return t
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	var req createLoanReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Create(c.Request().Context(), loan.CreateLoanInput{
		LoanNumber:          req.LoanNumber,
		OrganizationID:      req.OrganizationID,
		EmployeeID:          req.EmployeeID,
		Principal:           req.Principal,
		InterestRatePercent: req.InterestRatePercent,
		TermMonths:          req.TermMonths,
		StartDate:           parseDate(req.StartDate),
		EndDate:             parseDate(req.EndDate),
		Purpose:             req.Purpose,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) ListLoans(c echo.Context) error {
	var req listLoansReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	out, err := h.uc.List(c.Request().Context(), loan.ListInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"loans": out, "count": len(out)})
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_number"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) DeleteLoan(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("loan_number"), middleware.ActorID(c)); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *LoanHandler) ApproveLoan(c echo.Context) error {
	dto, err := h.uc.Approve(c.Request().Context(), c.Param("loan_number"), middleware.ActorID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) RejectLoan(c echo.Context) error {
	var req rejectReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Reject(c.Request().Context(), c.Param("loan_number"), middleware.ActorID(c), req.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) DisburseLoan(c echo.Context) error {
	var req disburseReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Disburse(c.Request().Context(), c.Param("loan_number"), middleware.ActorID(c),
		loan.DisburseInput{Method: req.Method, Details: req.Details})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Summary(c echo.Context) error {
	dto, err := h.uc.Summary(c.Request().Context(), c.Param("loan_number"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func wantsXLSX(c echo.Context) bool { return c.QueryParam("format") == "xlsx" }

func attachment(c echo.Context, name string) {
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+name+`"`)
}

func (h *LoanHandler) Schedule(c echo.Context) error {
	dto, err := h.uc.Schedule(c.Request().Context(), c.Param("loan_number"))
	if err != nil {
		return writeError(c, err)
	}
	if !wantsXLSX(c) {
		return c.JSON(http.StatusOK, dto)
	}
	buf, err := export.Schedule(dto.LoanNumber, dto.Entries)
	if err != nil {
		return writeError(c, err)
	}
	attachment(c, dto.LoanNumber+"-schedule.xlsx")
	return c.Blob(http.StatusOK, export.ContentTypeXLSX, buf.Bytes())
}

func (h *LoanHandler) History(c echo.Context) error {
	dto, err := h.uc.History(c.Request().Context(), c.Param("loan_number"))
	if err != nil {
		return writeError(c, err)
	}
	if !wantsXLSX(c) {
		return c.JSON(http.StatusOK, dto)
	}
	buf, err := export.History(dto.LoanNumber, dto.Entries)
	if err != nil {
		return writeError(c, err)
	}
	attachment(c, dto.LoanNumber+"-history.xlsx")
	return c.Blob(http.StatusOK, export.ContentTypeXLSX, buf.Bytes())
}
