package deficit

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("deficit not found")
)

type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusWaived  Status = "waived"
)

// Deficit is a missed or underpaid installment recorded by an administrator.
// It does not feed back into the loan's interest math.
type Deficit struct {
	ID        uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	DeficitID string          `gorm:"column:deficit_id;type:char(32);not null;uniqueIndex:ux_deficits_deficit_id" json:"deficit_id"`
	LoanID    uint64          `gorm:"column:loan_id;not null;index" json:"-"`
	Amount    decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	LateFee   decimal.Decimal `gorm:"column:late_fee;type:decimal(18,2);not null" json:"late_fee"`
	DueDate   time.Time       `gorm:"column:due_date;type:date;not null" json:"due_date"`
	Status    Status          `gorm:"column:status;size:16;not null;default:'pending'" json:"status"`
	Remarks   *string         `gorm:"column:remarks;type:text" json:"remarks,omitempty"`

	RecordedBy string     `gorm:"column:recorded_by;size:64;not null" json:"recorded_by"`
	ResolvedBy *string    `gorm:"column:resolved_by;size:64" json:"resolved_by,omitempty"`
	ResolvedAt *time.Time `gorm:"column:resolved_at" json:"resolved_at,omitempty"`

	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"column:deleted_at;index" json:"-"`
}

func (Deficit) TableName() string { return "deficits" }

// Total is the amount owed including the late fee.
func (d *Deficit) Total() decimal.Decimal { return d.Amount.Add(d.LateFee) }
