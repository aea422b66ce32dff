package loanmock

import (
	"context"
	"errors"

	domain "nbfc-loan-ledger/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

// ErrUnimplemented is returned by read methods whose Fn is not set.
var ErrUnimplemented = errors.New("loanmock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
// Writes default to a no-op; reads default to ErrUnimplemented.
type Repo struct {
	CreateFn                   func(ctx context.Context, l *domain.Loan) error
	SaveFn                     func(ctx context.Context, l *domain.Loan) error
	GetByLoanNumberFn          func(ctx context.Context, loanNumber string) (*domain.Loan, error)
	GetByLoanNumberForUpdateFn func(ctx context.Context, loanNumber string) (*domain.Loan, error)
	GetByIDFn                  func(ctx context.Context, id uint64) (*domain.Loan, error)
	ListFn                     func(ctx context.Context, f domain.Filter) ([]domain.Loan, error)
	ListByStatusFn             func(ctx context.Context, statuses ...domain.Status) ([]domain.Loan, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanNumber(ctx context.Context, loanNumber string) (*domain.Loan, error) {
	if m.GetByLoanNumberFn != nil {
		return m.GetByLoanNumberFn(ctx, loanNumber)
	}
	return nil, ErrUnimplemented
}

func (m *Repo) GetByLoanNumberForUpdate(ctx context.Context, loanNumber string) (*domain.Loan, error) {
	if m.GetByLoanNumberForUpdateFn != nil {
		return m.GetByLoanNumberForUpdateFn(ctx, loanNumber)
	}
	return nil, ErrUnimplemented
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, ErrUnimplemented
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Loan, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, ErrUnimplemented
}

func (m *Repo) ListByStatus(ctx context.Context, statuses ...domain.Status) ([]domain.Loan, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, statuses...)
	}
	return nil, ErrUnimplemented
}
