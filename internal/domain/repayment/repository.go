package repayment

import "context"

type Repository interface {
	Create(ctx context.Context, r *Repayment) error
	Save(ctx context.Context, r *Repayment) error

	// Get by public repayment_id; soft-deleted rows are not returned.
	GetByRepaymentID(ctx context.Context, repaymentID string) (*Repayment, error)

	// All non-deleted repayments of a loan, oldest payment first.
	ListByLoanID(ctx context.Context, loanID uint64) ([]Repayment, error)

	// Non-deleted repayment rows of any status.
	CountByLoanID(ctx context.Context, loanID uint64) (int64, error)
}
