package deficit

import "context"

type Repository interface {
	Create(ctx context.Context, d *Deficit) error
	Save(ctx context.Context, d *Deficit) error
	GetByDeficitID(ctx context.Context, deficitID string) (*Deficit, error)
	ListByLoanID(ctx context.Context, loanID uint64) ([]Deficit, error)
}
