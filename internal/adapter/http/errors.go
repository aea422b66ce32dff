package http

import (
	"errors"
	"log/slog"
	"net/http"

	"nbfc-loan-ledger/internal/domain/deficit"
	"nbfc-loan-ledger/internal/domain/excess"
	"nbfc-loan-ledger/internal/domain/loan"
	"nbfc-loan-ledger/internal/domain/repayment"

	"github.com/labstack/echo/v4"
)

// statusOf maps domain errors → HTTP codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, loan.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, loan.ErrNotFound),
		errors.Is(err, repayment.ErrNotFound),
		errors.Is(err, deficit.ErrNotFound),
		errors.Is(err, excess.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, loan.ErrInvalidTransition),
		errors.Is(err, loan.ErrInvalidLoanState),
		errors.Is(err, loan.ErrLoanFullyPaid),
		errors.Is(err, loan.ErrHasActiveRepayments),
		errors.Is(err, loan.ErrDuplicateLoanNumber):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func writeError(c echo.Context, err error) error {
	code := statusOf(err)
	if code == http.StatusInternalServerError {
		slog.ErrorContext(c.Request().Context(), "request failed", "path", c.Path(), "error", err)
		return c.JSON(code, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(code, ErrorResponse{Error: err.Error()})
}

func badBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
}

func invalid(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation failed",
		Details: ToFieldErrors(err),
	})
}

// bindValid binds and validates req, writing the 400/422 response itself.
// ok is false when the caller should return immediately.
func bindValid(c echo.Context, req any) (ok bool, err error) {
	if err := c.Bind(req); err != nil {
		return false, badBody(c)
	}
	if err := c.Validate(req); err != nil {
		return false, invalid(c, err)
	}
	return true, nil
}
