package loan

import (
	"time"

	"github.com/shopspring/decimal"

	"nbfc-loan-ledger/internal/domain/loan"
	"nbfc-loan-ledger/internal/ledger"
)

type CreateLoanInput struct {
	LoanNumber          string
	OrganizationID      string
	EmployeeID          string
	Principal           decimal.Decimal
	InterestRatePercent decimal.Decimal
	TermMonths          int
	StartDate           time.Time
	EndDate             time.Time // optional
	Purpose             string
}

type ListInput struct {
	OrganizationID string
	EmployeeID     string
	Status         string
	Limit          int
	Offset         int
}

type DisburseInput struct {
	Method  string
	Details map[string]string
}

type LoanDTO struct {
	LoanNumber          string            `json:"loan_number"`
	OrganizationID      string            `json:"organization_id"`
	EmployeeID          string            `json:"employee_id"`
	Principal           decimal.Decimal   `json:"principal"`
	InterestRatePercent decimal.Decimal   `json:"interest_rate_percent"`
	TermMonths          int               `json:"term_months"`
	StartDate           string            `json:"start_date"`
	EndDate             string            `json:"end_date"`
	Purpose             string            `json:"purpose,omitempty"`
	Status              string            `json:"status"`
	ApprovedBy          *string           `json:"approved_by,omitempty"`
	ApprovedAt          *time.Time        `json:"approved_at,omitempty"`
	RejectedBy          *string           `json:"rejected_by,omitempty"`
	RejectedAt          *time.Time        `json:"rejected_at,omitempty"`
	RejectionReason     *string           `json:"rejection_reason,omitempty"`
	DisbursedBy         *string           `json:"disbursed_by,omitempty"`
	DisbursedAt         *time.Time        `json:"disbursed_at,omitempty"`
	DisbursementMethod  *string           `json:"disbursement_method,omitempty"`
	DisbursementDetails map[string]string `json:"disbursement_details,omitempty"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

type SummaryDTO struct {
	LoanNumber string `json:"loan_number"`
	Status     string `json:"status"`
	ledger.Summary
}

type ScheduleDTO struct {
	LoanNumber string                 `json:"loan_number"`
	Entries    []ledger.ScheduleEntry `json:"entries"`
}

type HistoryDTO struct {
	LoanNumber string                `json:"loan_number"`
	Entries    []ledger.HistoryEntry `json:"entries"`
}

const dateLayout = "2006-01-02"

func toDTO(l *loan.Loan) *LoanDTO {
	return &LoanDTO{
		LoanNumber:          l.LoanNumber,
		OrganizationID:      l.OrganizationID,
		EmployeeID:          l.EmployeeID,
		Principal:           l.Principal,
		InterestRatePercent: l.InterestRatePercent,
		TermMonths:          l.TermMonths,
		StartDate:           l.StartDate.Format(dateLayout),
		EndDate:             l.EndDate.Format(dateLayout),
		Purpose:             l.Purpose,
		Status:              string(l.Status),
		ApprovedBy:          l.ApprovedBy,
		ApprovedAt:          l.ApprovedAt,
		RejectedBy:          l.RejectedBy,
		RejectedAt:          l.RejectedAt,
		RejectionReason:     l.RejectionReason,
		DisbursedBy:         l.DisbursedBy,
		DisbursedAt:         l.DisbursedAt,
		DisbursementMethod:  l.DisbursementMethod,
		DisbursementDetails: l.DisbursementDetails,
		CreatedAt:           l.CreatedAt,
		UpdatedAt:           l.UpdatedAt,
	}
}
