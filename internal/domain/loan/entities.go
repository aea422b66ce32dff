package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusDisbursed Status = "disbursed"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusDefaulted Status = "defaulted"
)

// Valid reports whether s is one of the known loan statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusDisbursed,
		StatusActive, StatusCompleted, StatusDefaulted:
		return true
	}
	return false
}

// Terminal statuses accept no further lifecycle transitions.
func (s Status) Terminal() bool {
	return s == StatusRejected || s == StatusCompleted || s == StatusDefaulted
}

// Table: loans
type Loan struct {
	ID         uint64 `gorm:"primaryKey;column:id" json:"id"`
	LoanNumber string `gorm:"column:loan_number;size:40;not null;uniqueIndex:ux_loans_loan_number" json:"loan_number"`
	// Owned by the surrounding back office; opaque here.
	OrganizationID string `gorm:"column:organization_id;size:64;not null;index:idx_loans_org" json:"organization_id"`
	EmployeeID     string `gorm:"column:employee_id;size:64;not null;index:idx_loans_employee" json:"employee_id"`

	Principal           decimal.Decimal `gorm:"column:principal;type:decimal(18,2);not null" json:"principal"`
	InterestRatePercent decimal.Decimal `gorm:"column:interest_rate_percent;type:decimal(7,4);not null" json:"interest_rate_percent"`
	TermMonths          int             `gorm:"column:term_months;not null" json:"term_months"`
	StartDate           time.Time       `gorm:"column:start_date;type:date;not null" json:"start_date"`
	EndDate             time.Time       `gorm:"column:end_date;type:date;not null" json:"end_date"`
	Purpose             string          `gorm:"column:purpose;type:text" json:"purpose,omitempty"`

	Status Status `gorm:"column:status;size:16;not null;default:'pending';index:idx_loans_status" json:"status"`

	ApprovedBy *string    `gorm:"column:approved_by;size:64" json:"approved_by,omitempty"`
	ApprovedAt *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`

	RejectedBy      *string    `gorm:"column:rejected_by;size:64" json:"rejected_by,omitempty"`
	RejectedAt      *time.Time `gorm:"column:rejected_at" json:"rejected_at,omitempty"`
	RejectionReason *string    `gorm:"column:rejection_reason;size:255" json:"rejection_reason,omitempty"`

	DisbursedBy         *string           `gorm:"column:disbursed_by;size:64" json:"disbursed_by,omitempty"`
	DisbursedAt         *time.Time        `gorm:"column:disbursed_at" json:"disbursed_at,omitempty"`
	DisbursementMethod  *string           `gorm:"column:disbursement_method;size:32" json:"disbursement_method,omitempty"`
	DisbursementDetails map[string]string `gorm:"column:disbursement_details;type:text;serializer:json" json:"disbursement_details,omitempty"`

	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"column:deleted_at;index" json:"-"`
	DeletedBy *string    `gorm:"column:deleted_by;size:64" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// Deleted reports whether the loan carries a tombstone.
func (l *Loan) Deleted() bool { return l.DeletedAt != nil }
