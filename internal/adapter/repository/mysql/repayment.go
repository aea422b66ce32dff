package mysql

import (
	"context"

	repaymentDomain "nbfc-loan-ledger/internal/domain/repayment"

	"gorm.io/gorm"
)

type RepaymentRepository struct{ db *gorm.DB }

func NewRepaymentRepository(db *gorm.DB) *RepaymentRepository {
	return &RepaymentRepository{db: db}
}

func (r *RepaymentRepository) Create(ctx context.Context, p *repaymentDomain.Repayment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *RepaymentRepository) Save(ctx context.Context, p *repaymentDomain.Repayment) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *RepaymentRepository) GetByRepaymentID(ctx context.Context, repaymentID string) (*repaymentDomain.Repayment, error) {
	var out repaymentDomain.Repayment
	res := r.db.WithContext(ctx).
		Where("repayment_id = ? AND deleted_at IS NULL", repaymentID).
		First(&out)
	return &out, res.Error
}

func (r *RepaymentRepository) ListByLoanID(ctx context.Context, loanID uint64) ([]repaymentDomain.Repayment, error) {
	var out []repaymentDomain.Repayment
	res := r.db.WithContext(ctx).
		Where("loan_id = ? AND deleted_at IS NULL", loanID).
		Order("payment_date ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *RepaymentRepository) CountByLoanID(ctx context.Context, loanID uint64) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&repaymentDomain.Repayment{}).
		Where("loan_id = ? AND deleted_at IS NULL", loanID).
		Count(&n)
	return n, res.Error
}
