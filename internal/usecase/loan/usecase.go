package loan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

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

// NewUsecase: m may be nil.
func NewUsecase(tx uow.UnitOfWork, m *metrics.Metrics) *Usecase {
	return &Usecase{uow: tx, metrics: m, now: func() time.Time { return time.Now().UTC() }}
}

// WithClock replaces the wall clock, for tests.
func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

// notFound maps a missing row to loan.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return loan.ErrNotFound
	}
	return err
}

func (u *Usecase) Create(ctx context.Context, in CreateLoanInput) (*LoanDTO, error) {
	l := &loan.Loan{
		LoanNumber:          strings.TrimSpace(in.LoanNumber),
		OrganizationID:      strings.TrimSpace(in.OrganizationID),
		EmployeeID:          strings.TrimSpace(in.EmployeeID),
		Principal:           in.Principal,
		InterestRatePercent: in.InterestRatePercent,
		TermMonths:          in.TermMonths,
		StartDate:           in.StartDate,
		EndDate:             in.EndDate,
		Purpose:             strings.TrimSpace(in.Purpose),
	}
	if err := ledger.Open(l); err != nil {
		return nil, err
	}
	if l.LoanNumber == "" {
		l.LoanNumber = id.NewLoanNumber(u.now())
	}

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		// Block a second live loan with the same number.
		switch _, err := r.Loans.GetByLoanNumber(ctx, l.LoanNumber); {
		case err == nil:
			return fmt.Errorf("%w: %s", loan.ErrDuplicateLoanNumber, l.LoanNumber)
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: %s", loan.ErrDuplicateLoanNumber, l.LoanNumber)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.metrics.LoanTransition(string(l.Status))
	slog.InfoContext(ctx, "loan created", "loan_number", l.LoanNumber, "organization_id", l.OrganizationID, "principal", l.Principal.String())
	return toDTO(l), nil
}

func (u *Usecase) Get(ctx context.Context, loanNumber string) (*LoanDTO, error) {
	var out *LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByLoanNumber(ctx, loanNumber)
		if err != nil {
			return notFound(err)
		}
		out = toDTO(l)
		return nil
	})
	return out, err
}

func (u *Usecase) List(ctx context.Context, in ListInput) ([]LoanDTO, error) {
	f := loan.Filter{
		OrganizationID: in.OrganizationID,
		EmployeeID:     in.EmployeeID,
		Status:         loan.Status(in.Status),
		Limit:          in.Limit,
		Offset:         in.Offset,
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", loan.ErrValidation, in.Status)
	}
	if f.Limit < 0 || f.Offset < 0 {
		return nil, fmt.Errorf("%w: limit and offset must not be negative", loan.ErrValidation)
	}

	var out []LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		loans, err := r.Loans.List(ctx, f)
		if err != nil {
			return err
		}
		out = make([]LoanDTO, 0, len(loans))
		for i := range loans {
			out = append(out, *toDTO(&loans[i]))
		}
		return nil
	})
	return out, err
}

// transition locks the loan, applies step and persists the result.
func (u *Usecase) transition(ctx context.Context, loanNumber string, step func(l *loan.Loan) error) (*LoanDTO, error) {
	var out *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanNumber, func(r uow.Repos, l *loan.Loan) error {
		from := l.Status
		if err := step(l); err != nil {
			return err
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		slog.InfoContext(ctx, "loan status changed", "loan_number", l.LoanNumber, "from", from, "to", l.Status)
		out = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.metrics.LoanTransition(out.Status)
	return out, nil
}

func (u *Usecase) Approve(ctx context.Context, loanNumber, actorID string) (*LoanDTO, error) {
	return u.transition(ctx, loanNumber, func(l *loan.Loan) error {
		return ledger.Approve(l, actorID, u.now())
	})
}

func (u *Usecase) Reject(ctx context.Context, loanNumber, actorID, reason string) (*LoanDTO, error) {
	return u.transition(ctx, loanNumber, func(l *loan.Loan) error {
		return ledger.Reject(l, actorID, reason, u.now())
	})
}

func (u *Usecase) Disburse(ctx context.Context, loanNumber, actorID string, in DisburseInput) (*LoanDTO, error) {
	return u.transition(ctx, loanNumber, func(l *loan.Loan) error {
		return ledger.Disburse(l, actorID, in.Method, in.Details, u.now())
	})
}

// Delete tombstones the loan; refused while any repayment row exists.
func (u *Usecase) Delete(ctx context.Context, loanNumber, actorID string) error {
	return u.uow.WithinLoanTx(ctx, loanNumber, func(r uow.Repos, l *loan.Loan) error {
		rows, err := r.Repayments.CountByLoanID(ctx, l.ID)
		if err != nil {
			return err
		}
		if err := ledger.DeleteLoan(l, rows, actorID, u.now()); err != nil {
			return err
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		slog.InfoContext(ctx, "loan deleted", "loan_number", l.LoanNumber, "actor_id", actorID)
		return nil
	})
}

// view loads a loan with all its live repayments and hands them to fn.
func (u *Usecase) view(ctx context.Context, loanNumber string, fn func(l *loan.Loan, r uow.Repos) error) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByLoanNumber(ctx, loanNumber)
		if err != nil {
			return notFound(err)
		}
		return fn(l, r)
	})
}

func (u *Usecase) Summary(ctx context.Context, loanNumber string) (*SummaryDTO, error) {
	var out *SummaryDTO
	err := u.view(ctx, loanNumber, func(l *loan.Loan, r uow.Repos) error {
		reps, err := r.Repayments.ListByLoanID(ctx, l.ID)
		if err != nil {
			return err
		}
		out = &SummaryDTO{
			LoanNumber: l.LoanNumber,
			Status:     string(l.Status),
			Summary:    ledger.Summarize(l, reps, u.now()),
		}
		return nil
	})
	return out, err
}

// Schedule returns the projected amortization schedule, amounts rounded to
// two places.
func (u *Usecase) Schedule(ctx context.Context, loanNumber string) (*ScheduleDTO, error) {
	var out *ScheduleDTO
	err := u.view(ctx, loanNumber, func(l *loan.Loan, _ uow.Repos) error {
		entries := slices.Collect(ledger.PaymentSchedule(l))
		for i := range entries {
			entries[i] = entries[i].Rounded()
		}
		out = &ScheduleDTO{LoanNumber: l.LoanNumber, Entries: entries}
		return nil
	})
	return out, err
}

func (u *Usecase) History(ctx context.Context, loanNumber string) (*HistoryDTO, error) {
	var out *HistoryDTO
	err := u.view(ctx, loanNumber, func(l *loan.Loan, r uow.Repos) error {
		reps, err := r.Repayments.ListByLoanID(ctx, l.ID)
		if err != nil {
			return err
		}
		out = &HistoryDTO{LoanNumber: l.LoanNumber, Entries: ledger.PaymentHistory(reps)}
		return nil
	})
	return out, err
}
