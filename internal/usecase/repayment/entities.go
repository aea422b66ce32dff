package repayment

import (
	"time"

	"github.com/shopspring/decimal"

	"nbfc-loan-ledger/internal/domain/repayment"
)

type RecordInput struct {
	Amount        decimal.Decimal
	PaymentDate   time.Time // zero means today
	PaymentMethod string
	Remarks       string
}

type RepaymentDTO struct {
	RepaymentID      string          `json:"repayment_id"`
	LoanNumber       string          `json:"loan_number"`
	Amount           decimal.Decimal `json:"amount"`
	PrincipalPortion decimal.Decimal `json:"principal_portion"`
	InterestPortion  decimal.Decimal `json:"interest_portion"`
	PaymentDate      string          `json:"payment_date"`
	PaymentMethod    string          `json:"payment_method"`
	Status           string          `json:"status"`
	Remarks          *string         `json:"remarks,omitempty"`
	RecordedBy       string          `json:"recorded_by"`
	ApprovedBy       *string         `json:"approved_by,omitempty"`
	ApprovedAt       *time.Time      `json:"approved_at,omitempty"`
	RejectedBy       *string         `json:"rejected_by,omitempty"`
	RejectedAt       *time.Time      `json:"rejected_at,omitempty"`
	RejectionReason  *string         `json:"rejection_reason,omitempty"`
	// Status of the owning loan after this operation.
	LoanStatus string    `json:"loan_status"`
	CreatedAt  time.Time `json:"created_at"`
}

func toDTO(p *repayment.Repayment, loanNumber, loanStatus string) *RepaymentDTO {
	return &RepaymentDTO{
		RepaymentID:      p.RepaymentID,
		LoanNumber:       loanNumber,
		Amount:           p.Amount,
		PrincipalPortion: p.PrincipalPortion,
		InterestPortion:  p.InterestPortion,
		PaymentDate:      p.PaymentDate.Format("2006-01-02"),
		PaymentMethod:    p.PaymentMethod,
		Status:           string(p.Status),
		Remarks:          p.Remarks,
		RecordedBy:       p.RecordedBy,
		ApprovedBy:       p.ApprovedBy,
		ApprovedAt:       p.ApprovedAt,
		RejectedBy:       p.RejectedBy,
		RejectedAt:       p.RejectedAt,
		RejectionReason:  p.RejectionReason,
		LoanStatus:       loanStatus,
		CreatedAt:        p.CreatedAt,
	}
}
