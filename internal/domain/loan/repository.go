package loan

import "context"

// Filter narrows List; zero values are ignored.
type Filter struct {
	OrganizationID string
	EmployeeID     string
	Status         Status
	Limit          int
	Offset         int
}

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	Save(ctx context.Context, l *Loan) error
	GetByLoanNumber(ctx context.Context, loanNumber string) (*Loan, error)
	// Locks the row until the surrounding transaction ends.
	GetByLoanNumberForUpdate(ctx context.Context, loanNumber string) (*Loan, error)
	GetByID(ctx context.Context, id uint64) (*Loan, error)
	List(ctx context.Context, f Filter) ([]Loan, error)
	ListByStatus(ctx context.Context, statuses ...Status) ([]Loan, error)
}
