package uow

import (
	"context"

	"nbfc-loan-ledger/internal/domain/deficit"
	"nbfc-loan-ledger/internal/domain/excess"
	"nbfc-loan-ledger/internal/domain/loan"
	"nbfc-loan-ledger/internal/domain/repayment"
)

// Repos are bound to one transaction.
type Repos struct {
	Loans      loan.Repository
	Repayments repayment.Repository
	Deficits   deficit.Repository
	Excesses   excess.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock loan first, then pass it in
	WithinLoanTx(ctx context.Context, loanNumber string, fn func(r Repos, l *loan.Loan) error) error
}
