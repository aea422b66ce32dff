package adjustment

import (
	"time"

	"github.com/shopspring/decimal"

	"nbfc-loan-ledger/internal/domain/deficit"
	"nbfc-loan-ledger/internal/domain/excess"
)

type DeficitInput struct {
	Amount  decimal.Decimal
	LateFee decimal.Decimal
	DueDate time.Time
	Remarks string
}

type ExcessInput struct {
	Amount  decimal.Decimal
	Remarks string
}

type DeficitDTO struct {
	DeficitID  string          `json:"deficit_id"`
	LoanNumber string          `json:"loan_number"`
	Amount     decimal.Decimal `json:"amount"`
	LateFee    decimal.Decimal `json:"late_fee"`
	Total      decimal.Decimal `json:"total"`
	DueDate    string          `json:"due_date"`
	Status     string          `json:"status"`
	Remarks    *string         `json:"remarks,omitempty"`
	RecordedBy string          `json:"recorded_by"`
	ResolvedBy *string         `json:"resolved_by,omitempty"`
	ResolvedAt *time.Time      `json:"resolved_at,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

type ExcessDTO struct {
	ExcessID   string          `json:"excess_id"`
	LoanNumber string          `json:"loan_number"`
	Amount     decimal.Decimal `json:"amount"`
	Status     string          `json:"status"`
	Remarks    *string         `json:"remarks,omitempty"`
	RecordedBy string          `json:"recorded_by"`
	ResolvedBy *string         `json:"resolved_by,omitempty"`
	ResolvedAt *time.Time      `json:"resolved_at,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

func deficitDTO(d *deficit.Deficit, loanNumber string) *DeficitDTO {
	return &DeficitDTO{
		DeficitID:  d.DeficitID,
		LoanNumber: loanNumber,
		Amount:     d.Amount,
		LateFee:    d.LateFee,
		Total:      d.Total(),
		DueDate:    d.DueDate.Format("2006-01-02"),
		Status:     string(d.Status),
		Remarks:    d.Remarks,
		RecordedBy: d.RecordedBy,
		ResolvedBy: d.ResolvedBy,
		ResolvedAt: d.ResolvedAt,
		CreatedAt:  d.CreatedAt,
	}
}

func excessDTO(e *excess.Excess, loanNumber string) *ExcessDTO {
	return &ExcessDTO{
		ExcessID:   e.ExcessID,
		LoanNumber: loanNumber,
		Amount:     e.Amount,
		Status:     string(e.Status),
		Remarks:    e.Remarks,
		RecordedBy: e.RecordedBy,
		ResolvedBy: e.ResolvedBy,
		ResolvedAt: e.ResolvedAt,
		CreatedAt:  e.CreatedAt,
	}
}
