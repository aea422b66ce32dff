package repaymentmock

import (
	"context"
	"errors"

	domain "nbfc-loan-ledger/internal/domain/repayment"
)

var _ domain.Repository = (*Repo)(nil)

var ErrUnimplemented = errors.New("repaymentmock: method not implemented")

// Repo is a function-backed mock that satisfies repayment.Repository.
type Repo struct {
	CreateFn           func(ctx context.Context, r *domain.Repayment) error
	SaveFn             func(ctx context.Context, r *domain.Repayment) error
	GetByRepaymentIDFn func(ctx context.Context, repaymentID string) (*domain.Repayment, error)
	ListByLoanIDFn     func(ctx context.Context, loanID uint64) ([]domain.Repayment, error)
	CountByLoanIDFn    func(ctx context.Context, loanID uint64) (int64, error)
}

func (m *Repo) Create(ctx context.Context, r *domain.Repayment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, r *domain.Repayment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetByRepaymentID(ctx context.Context, repaymentID string) (*domain.Repayment, error) {
	if m.GetByRepaymentIDFn != nil {
		return m.GetByRepaymentIDFn(ctx, repaymentID)
	}
	return nil, ErrUnimplemented
}

// ListByLoanID defaults to an empty list.
func (m *Repo) ListByLoanID(ctx context.Context, loanID uint64) ([]domain.Repayment, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, nil
}

func (m *Repo) CountByLoanID(ctx context.Context, loanID uint64) (int64, error) {
	if m.CountByLoanIDFn != nil {
		return m.CountByLoanIDFn(ctx, loanID)
	}
	return 0, nil
}
