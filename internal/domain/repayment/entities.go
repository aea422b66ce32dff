package repayment

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("repayment not found")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Table: repayments
type Repayment struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	RepaymentID string `gorm:"column:repayment_id;type:char(32);not null;uniqueIndex:ux_repayments_repayment_id" json:"repayment_id"`
	// FK to loans.id
	LoanID uint64 `gorm:"column:loan_id;not null;index:idx_repayments_loan" json:"-"`

	Amount           decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	PrincipalPortion decimal.Decimal `gorm:"column:principal_portion;type:decimal(18,2);not null" json:"principal_portion"`
	InterestPortion  decimal.Decimal `gorm:"column:interest_portion;type:decimal(18,2);not null" json:"interest_portion"`
	PaymentDate      time.Time       `gorm:"column:payment_date;type:date;not null" json:"payment_date"`
	PaymentMethod    string          `gorm:"column:payment_method;size:32;not null" json:"payment_method"`
	Status           Status          `gorm:"column:status;size:16;not null;default:'pending'" json:"status"`
	Remarks          *string         `gorm:"column:remarks;type:text" json:"remarks,omitempty"`
	RecordedBy       string          `gorm:"column:recorded_by;size:64;not null" json:"recorded_by"`

	ApprovedBy      *string    `gorm:"column:approved_by;size:64" json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`
	RejectedBy      *string    `gorm:"column:rejected_by;size:64" json:"rejected_by,omitempty"`
	RejectedAt      *time.Time `gorm:"column:rejected_at" json:"rejected_at,omitempty"`
	RejectionReason *string    `gorm:"column:rejection_reason;size:255" json:"rejection_reason,omitempty"`

	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"column:deleted_at;index" json:"-"`
	DeletedBy *string    `gorm:"column:deleted_by;size:64" json:"-"`
}

func (Repayment) TableName() string { return "repayments" }

// Counted reports whether r contributes to the loan's paid total.
func (r *Repayment) Counted() bool {
	return r.DeletedAt == nil && r.Status == StatusCompleted
}
