package excess

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("excess not found")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusProcessed Status = "processed"
	StatusRefunded  Status = "refunded"
)

// Excess is an overpayment awaiting refund or application to future dues.
type Excess struct {
	ID       uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ExcessID string          `gorm:"column:excess_id;type:char(32);not null;uniqueIndex:ux_excesses_excess_id" json:"excess_id"`
	LoanID   uint64          `gorm:"column:loan_id;not null;index" json:"-"`
	Amount   decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	Status   Status          `gorm:"column:status;size:16;not null;default:'pending'" json:"status"`
	Remarks  *string         `gorm:"column:remarks;type:text" json:"remarks,omitempty"`

	RecordedBy string     `gorm:"column:recorded_by;size:64;not null" json:"recorded_by"`
	ResolvedBy *string    `gorm:"column:resolved_by;size:64" json:"resolved_by,omitempty"`
	ResolvedAt *time.Time `gorm:"column:resolved_at" json:"resolved_at,omitempty"`

	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"column:deleted_at;index" json:"-"`
}

func (Excess) TableName() string { return "excesses" }
