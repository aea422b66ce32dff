package adjustmentmock

import (
	"context"
	"errors"

	"nbfc-loan-ledger/internal/domain/deficit"
	"nbfc-loan-ledger/internal/domain/excess"
)

var (
	_ deficit.Repository = (*Deficits)(nil)
	_ excess.Repository  = (*Excesses)(nil)
)

var ErrUnimplemented = errors.New("adjustmentmock: method not implemented")

// Deficits is a function-backed mock that satisfies deficit.Repository.
type Deficits struct {
	CreateFn         func(ctx context.Context, d *deficit.Deficit) error
	SaveFn           func(ctx context.Context, d *deficit.Deficit) error
	GetByDeficitIDFn func(ctx context.Context, deficitID string) (*deficit.Deficit, error)
	ListByLoanIDFn   func(ctx context.Context, loanID uint64) ([]deficit.Deficit, error)
}

func (m *Deficits) Create(ctx context.Context, d *deficit.Deficit) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, d)
	}
	return nil
}

func (m *Deficits) Save(ctx context.Context, d *deficit.Deficit) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, d)
	}
	return nil
}

func (m *Deficits) GetByDeficitID(ctx context.Context, deficitID string) (*deficit.Deficit, error) {
	if m.GetByDeficitIDFn != nil {
		return m.GetByDeficitIDFn(ctx, deficitID)
	}
	return nil, ErrUnimplemented
}

func (m *Deficits) ListByLoanID(ctx context.Context, loanID uint64) ([]deficit.Deficit, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, nil
}

// Excesses is a function-backed mock that satisfies excess.Repository.
type Excesses struct {
	CreateFn        func(ctx context.Context, e *excess.Excess) error
	SaveFn          func(ctx context.Context, e *excess.Excess) error
	GetByExcessIDFn func(ctx context.Context, excessID string) (*excess.Excess, error)
	ListByLoanIDFn  func(ctx context.Context, loanID uint64) ([]excess.Excess, error)
}

func (m *Excesses) Create(ctx context.Context, e *excess.Excess) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, e)
	}
	return nil
}

func (m *Excesses) Save(ctx context.Context, e *excess.Excess) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, e)
	}
	return nil
}

func (m *Excesses) GetByExcessID(ctx context.Context, excessID string) (*excess.Excess, error) {
	if m.GetByExcessIDFn != nil {
		return m.GetByExcessIDFn(ctx, excessID)
	}
	return nil, ErrUnimplemented
}

func (m *Excesses) ListByLoanID(ctx context.Context, loanID uint64) ([]excess.Excess, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, nil
}
