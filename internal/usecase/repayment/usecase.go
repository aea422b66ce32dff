package repayment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"nbfc-loan-ledger/internal/domain/loan"
	"nbfc-loan-ledger/internal/domain/repayment"
	"nbfc-loan-ledger/internal/domain/uow"
	"nbfc-loan-ledger/internal/ledger"
	"nbfc-loan-ledger/internal/metrics"
	"nbfc-loan-ledger/pkg/id"

	"gorm.io/gorm"
)

const maxMethodLen = 32

type Usecase struct {
	uow     uow.UnitOfWork
	split   ledger.SplitPolicy
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewUsecase: a nil split policy means principal-only; m may be nil.
func NewUsecase(tx uow.UnitOfWork, split ledger.SplitPolicy, m *metrics.Metrics) *Usecase {
	if split == nil {
		split = ledger.PrincipalOnly{}
	}
	return &Usecase{uow: tx, split: split, metrics: m, now: func() time.Time { return time.Now().UTC() }}
}

// WithClock replaces the wall clock, for tests.
func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

func validate(in *RecordInput) error {
	if !in.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", loan.ErrValidation)
	}
	in.PaymentMethod = strings.TrimSpace(in.PaymentMethod)
	if in.PaymentMethod == "" || len(in.PaymentMethod) > maxMethodLen {
		return fmt.Errorf("%w: payment method is required (max %d chars)", loan.ErrValidation, maxMethodLen)
	}
	return nil
}

// Record stores a new pending repayment against a disbursed or active loan.
// It counts towards the loan only once approved.
func (u *Usecase) Record(ctx context.Context, loanNumber, actorID string, in RecordInput) (*RepaymentDTO, error) {
	if strings.TrimSpace(actorID) == "" {
		return nil, fmt.Errorf("%w: actor id is required", loan.ErrValidation)
	}
	if err := validate(&in); err != nil {
		return nil, err
	}
	paidOn := in.PaymentDate
	if paidOn.IsZero() {
		paidOn = u.now()
	}

	var out *RepaymentDTO
	err := u.uow.WithinLoanTx(ctx, loanNumber, func(r uow.Repos, l *loan.Loan) error {
		reps, err := r.Repayments.ListByLoanID(ctx, l.ID)
		if err != nil {
			return err
		}
		if err := ledger.AcceptsRepayment(l, reps); err != nil {
			return err
		}

		principal, interest := u.split.Split(l, reps, in.Amount)
		p := &repayment.Repayment{
			RepaymentID:      id.NewID32(),
			LoanID:           l.ID,
			Amount:           in.Amount,
			PrincipalPortion: principal,
			InterestPortion:  interest,
			PaymentDate:      ledger.DateOnly(paidOn),
			PaymentMethod:    in.PaymentMethod,
			Status:           repayment.StatusPending,
			RecordedBy:       actorID,
		}
		if rm := strings.TrimSpace(in.Remarks); rm != "" {
			p.Remarks = &rm
		}
		if err := r.Repayments.Create(ctx, p); err != nil {
			return err
		}
		out = toDTO(p, l.LoanNumber, string(l.Status))
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.metrics.RepaymentEvent("recorded")
	slog.InfoContext(ctx, "repayment recorded",
		"loan_number", loanNumber, "repayment_id", out.RepaymentID,
		"amount", out.Amount.String(), "split", u.split.Name())
	return out, nil
}

// withLockedRepayment finds the repayment, locks its loan, re-reads the
// repayment under the lock and runs fn. After fn the loan status is
// re-derived from the live repayments and saved if it changed.
func (u *Usecase) withLockedRepayment(ctx context.Context, repaymentID string, fn func(r uow.Repos, l *loan.Loan, p *repayment.Repayment) error) (*RepaymentDTO, error) {
	var (
		out     *RepaymentDTO
		changed bool
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Repayments.GetByRepaymentID(ctx, repaymentID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repayment.ErrNotFound
		}
		if err != nil {
			return err
		}
		owner, err := r.Loans.GetByID(ctx, p.LoanID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return loan.ErrNotFound
		}
		if err != nil {
			return err
		}
		l, err := r.Loans.GetByLoanNumberForUpdate(ctx, owner.LoanNumber)
		if err != nil {
			return err
		}
		if p, err = r.Repayments.GetByRepaymentID(ctx, repaymentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repayment.ErrNotFound
			}
			return err
		}

		if err := fn(r, l, p); err != nil {
			return err
		}
		if err := r.Repayments.Save(ctx, p); err != nil {
			return err
		}

		reps, err := r.Repayments.ListByLoanID(ctx, l.ID)
		if err != nil {
			return err
		}
		from := l.Status
		if changed = ledger.Settle(l, reps); changed {
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}
			slog.InfoContext(ctx, "loan status changed", "loan_number", l.LoanNumber, "from", from, "to", l.Status)
		}
		out = toDTO(p, l.LoanNumber, string(l.Status))
		return nil
	})
	if err != nil {
		return nil, err
	}
	if changed {
		u.metrics.LoanTransition(out.LoanStatus)
	}
	return out, nil
}

func (u *Usecase) Approve(ctx context.Context, repaymentID, actorID string) (*RepaymentDTO, error) {
	out, err := u.withLockedRepayment(ctx, repaymentID, func(_ uow.Repos, _ *loan.Loan, p *repayment.Repayment) error {
		return ledger.ApproveRepayment(p, actorID, u.now())
	})
	if err != nil {
		return nil, err
	}
	u.metrics.RepaymentEvent("approved")
	slog.InfoContext(ctx, "repayment approved", "repayment_id", repaymentID, "loan_status", out.LoanStatus)
	return out, nil
}

func (u *Usecase) Reject(ctx context.Context, repaymentID, actorID, reason string) (*RepaymentDTO, error) {
	out, err := u.withLockedRepayment(ctx, repaymentID, func(_ uow.Repos, _ *loan.Loan, p *repayment.Repayment) error {
		return ledger.RejectRepayment(p, actorID, reason, u.now())
	})
	if err != nil {
		return nil, err
	}
	u.metrics.RepaymentEvent("rejected")
	slog.InfoContext(ctx, "repayment rejected", "repayment_id", repaymentID)
	return out, nil
}

// Delete tombstones a repayment of any status and re-derives the loan status.
func (u *Usecase) Delete(ctx context.Context, repaymentID, actorID string) (*RepaymentDTO, error) {
	out, err := u.withLockedRepayment(ctx, repaymentID, func(_ uow.Repos, _ *loan.Loan, p *repayment.Repayment) error {
		return ledger.DeleteRepayment(p, actorID, u.now())
	})
	if err != nil {
		return nil, err
	}
	u.metrics.RepaymentEvent("deleted")
	slog.InfoContext(ctx, "repayment deleted", "repayment_id", repaymentID, "loan_status", out.LoanStatus)
	return out, nil
}

// ListByLoan returns the live repayments of a loan, oldest payment first.
func (u *Usecase) ListByLoan(ctx context.Context, loanNumber string) ([]RepaymentDTO, error) {
	var out []RepaymentDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByLoanNumber(ctx, loanNumber)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return loan.ErrNotFound
		}
		if err != nil {
			return err
		}
		reps, err := r.Repayments.ListByLoanID(ctx, l.ID)
		if err != nil {
			return err
		}
		out = make([]RepaymentDTO, 0, len(reps))
		for i := range reps {
			out = append(out, *toDTO(&reps[i], l.LoanNumber, string(l.Status)))
		}
		return nil
	})
	return out, err
}
