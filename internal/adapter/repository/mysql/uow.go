package mysql

import (
	"context"
	"errors"

	"nbfc-loan-ledger/internal/domain/deficit"
	"nbfc-loan-ledger/internal/domain/excess"
	"nbfc-loan-ledger/internal/domain/loan"
	"nbfc-loan-ledger/internal/domain/repayment"
	"nbfc-loan-ledger/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Loans:      &LoanRepository{db: tx},
		Repayments: &RepaymentRepository{db: tx},
		Deficits:   &DeficitRepository{db: tx},
		Excesses:   &ExcessRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinLoanTx(ctx context.Context, loanNumber string, fn func(r uow.Repos, l *loan.Loan) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the loan row up-front so concurrent repayments against it serialize
		l, err := r.Loans.GetByLoanNumberForUpdate(ctx, loanNumber)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return loan.ErrNotFound
		}
		if err != nil {
			return err
		}
		return fn(r, l)
	})
}

// AutoMigrate creates or updates every table the ledger owns.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&loan.Loan{}, &repayment.Repayment{}, &deficit.Deficit{}, &excess.Excess{})
}
