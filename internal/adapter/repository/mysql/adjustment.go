package mysql

import (
	"context"

	deficitDomain "nbfc-loan-ledger/internal/domain/deficit"
	excessDomain "nbfc-loan-ledger/internal/domain/excess"

	"gorm.io/gorm"
)

type DeficitRepository struct{ db *gorm.DB }

func NewDeficitRepository(db *gorm.DB) *DeficitRepository { return &DeficitRepository{db: db} }

func (r *DeficitRepository) Create(ctx context.Context, d *deficitDomain.Deficit) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DeficitRepository) Save(ctx context.Context, d *deficitDomain.Deficit) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *DeficitRepository) GetByDeficitID(ctx context.Context, deficitID string) (*deficitDomain.Deficit, error) {
	var out deficitDomain.Deficit
	res := r.db.WithContext(ctx).
		Where("deficit_id = ? AND deleted_at IS NULL", deficitID).
		First(&out)
	return &out, res.Error
}

func (r *DeficitRepository) ListByLoanID(ctx context.Context, loanID uint64) ([]deficitDomain.Deficit, error) {
	var out []deficitDomain.Deficit
	res := r.db.WithContext(ctx).
		Where("loan_id = ? AND deleted_at IS NULL", loanID).
		Order("due_date ASC, id ASC").
		Find(&out)
	return out, res.Error
}

type ExcessRepository struct{ db *gorm.DB }

func NewExcessRepository(db *gorm.DB) *ExcessRepository { return &ExcessRepository{db: db} }

func (r *ExcessRepository) Create(ctx context.Context, e *excessDomain.Excess) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *ExcessRepository) Save(ctx context.Context, e *excessDomain.Excess) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *ExcessRepository) GetByExcessID(ctx context.Context, excessID string) (*excessDomain.Excess, error) {
	var out excessDomain.Excess
	res := r.db.WithContext(ctx).
		Where("excess_id = ? AND deleted_at IS NULL", excessID).
		First(&out)
	return &out, res.Error
}

func (r *ExcessRepository) ListByLoanID(ctx context.Context, loanID uint64) ([]excessDomain.Excess, error) {
	var out []excessDomain.Excess
	res := r.db.WithContext(ctx).
		Where("loan_id = ? AND deleted_at IS NULL", loanID).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}
