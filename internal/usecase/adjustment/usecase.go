// Package adjustment records deficits (missed or short installments) and
// excesses (overpayments awaiting processing) against a loan. Neither feeds
// back into the loan's amounts or status.
package adjustment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"nbfc-loan-ledger/internal/domain/deficit"
	"nbfc-loan-ledger/internal/domain/excess"
	"nbfc-loan-ledger/internal/domain/loan"
	"nbfc-loan-ledger/internal/domain/uow"
	"nbfc-loan-ledger/internal/ledger"
	"nbfc-loan-ledger/internal/metrics"
	"nbfc-loan-ledger/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct {
	uow     uow.UnitOfWork
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, m *metrics.Metrics) *Usecase {
	return &Usecase{uow: tx, metrics: m, now: func() time.Time { return time.Now().UTC() }}
}

// WithClock replaces the wall clock, for tests.
func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

func remarks(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}

func requireActor(actorID string) error {
	if strings.TrimSpace(actorID) == "" {
		return fmt.Errorf("%w: actor id is required", loan.ErrValidation)
	}
	return nil
}

func loanByNumber(ctx context.Context, r uow.Repos, loanNumber string) (*loan.Loan, error) {
	l, err := r.Loans.GetByLoanNumber(ctx, loanNumber)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, loan.ErrNotFound
	}
	return l, err
}

func loanNumberOf(ctx context.Context, r uow.Repos, loanID uint64) (string, error) {
	l, err := r.Loans.GetByID(ctx, loanID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", loan.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return l.LoanNumber, nil
}

// ----- deficits -----

func (u *Usecase) CreateDeficit(ctx context.Context, loanNumber, actorID string, in DeficitInput) (*DeficitDTO, error) {
	if err := requireActor(actorID); err != nil {
		return nil, err
	}
	d := &deficit.Deficit{
		DeficitID:  id.NewID32(),
		Amount:     in.Amount,
		LateFee:    in.LateFee,
		DueDate:    in.DueDate,
		Remarks:    remarks(in.Remarks),
		RecordedBy: actorID,
	}
	if err := ledger.ValidateDeficit(d); err != nil {
		return nil, err
	}

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := loanByNumber(ctx, r, loanNumber)
		if err != nil {
			return err
		}
		d.LoanID = l.ID
		return r.Deficits.Create(ctx, d)
	})
	if err != nil {
		return nil, err
	}
	u.metrics.AdjustmentEvent("deficit", string(d.Status))
	slog.InfoContext(ctx, "deficit recorded", "loan_number", loanNumber, "deficit_id", d.DeficitID, "total", d.Total().String())
	return deficitDTO(d, loanNumber), nil
}

func (u *Usecase) ListDeficits(ctx context.Context, loanNumber string) ([]DeficitDTO, error) {
	var out []DeficitDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := loanByNumber(ctx, r, loanNumber)
		if err != nil {
			return err
		}
		rows, err := r.Deficits.ListByLoanID(ctx, l.ID)
		if err != nil {
			return err
		}
		out = make([]DeficitDTO, 0, len(rows))
		for i := range rows {
			out = append(out, *deficitDTO(&rows[i], l.LoanNumber))
		}
		return nil
	})
	return out, err
}

// ResolveDeficit closes a pending deficit as paid or waived.
func (u *Usecase) ResolveDeficit(ctx context.Context, deficitID, actorID string, to deficit.Status) (*DeficitDTO, error) {
	var out *DeficitDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		d, err := r.Deficits.GetByDeficitID(ctx, deficitID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return deficit.ErrNotFound
		}
		if err != nil {
			return err
		}
		if err := ledger.ResolveDeficit(d, to, actorID, u.now()); err != nil {
			return err
		}
		if err := r.Deficits.Save(ctx, d); err != nil {
			return err
		}
		number, err := loanNumberOf(ctx, r, d.LoanID)
		if err != nil {
			return err
		}
		out = deficitDTO(d, number)
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.metrics.AdjustmentEvent("deficit", out.Status)
	slog.InfoContext(ctx, "deficit resolved", "deficit_id", deficitID, "status", out.Status)
	return out, nil
}

// ----- excesses -----

func (u *Usecase) CreateExcess(ctx context.Context, loanNumber, actorID string, in ExcessInput) (*ExcessDTO, error) {
	if err := requireActor(actorID); err != nil {
		return nil, err
	}
	e := &excess.Excess{
		ExcessID:   id.NewID32(),
		Amount:     in.Amount,
		Remarks:    remarks(in.Remarks),
		RecordedBy: actorID,
	}
	if err := ledger.ValidateExcess(e); err != nil {
		return nil, err
	}

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := loanByNumber(ctx, r, loanNumber)
		if err != nil {
			return err
		}
		e.LoanID = l.ID
		return r.Excesses.Create(ctx, e)
	})
	if err != nil {
		return nil, err
	}
	u.metrics.AdjustmentEvent("excess", string(e.Status))
	slog.InfoContext(ctx, "excess recorded", "loan_number", loanNumber, "excess_id", e.ExcessID, "amount", e.Amount.String())
	return excessDTO(e, loanNumber), nil
}

func (u *Usecase) ListExcesses(ctx context.Context, loanNumber string) ([]ExcessDTO, error) {
	var out []ExcessDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := loanByNumber(ctx, r, loanNumber)
		if err != nil {
			return err
		}
		rows, err := r.Excesses.ListByLoanID(ctx, l.ID)
		if err != nil {
			return err
		}
		out = make([]ExcessDTO, 0, len(rows))
		for i := range rows {
			out = append(out, *excessDTO(&rows[i], l.LoanNumber))
		}
		return nil
	})
	return out, err
}

// ResolveExcess closes a pending excess as processed or refunded.
func (u *Usecase) ResolveExcess(ctx context.Context, excessID, actorID string, to excess.Status) (*ExcessDTO, error) {
	var out *ExcessDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		e, err := r.Excesses.GetByExcessID(ctx, excessID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return excess.ErrNotFound
		}
		if err != nil {
			return err
		}
		if err := ledger.ResolveExcess(e, to, actorID, u.now()); err != nil {
			return err
		}
		if err := r.Excesses.Save(ctx, e); err != nil {
			return err
		}
		number, err := loanNumberOf(ctx, r, e.LoanID)
		if err != nil {
			return err
		}
		out = excessDTO(e, number)
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.metrics.AdjustmentEvent("excess", out.Status)
	slog.InfoContext(ctx, "excess resolved", "excess_id", excessID, "status", out.Status)
	return out, nil
}
