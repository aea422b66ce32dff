package excess

import "context"

type Repository interface {
	Create(ctx context.Context, e *Excess) error
	Save(ctx context.Context, e *Excess) error
	GetByExcessID(ctx context.Context, excessID string) (*Excess, error)
	ListByLoanID(ctx context.Context, loanID uint64) ([]Excess, error)
}
