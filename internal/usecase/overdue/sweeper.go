// Package overdue periodically scans repaying loans for missed due dates.
// It reports; it never moves a loan to defaulted.
package overdue

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"nbfc-loan-ledger/internal/domain/loan"
	"nbfc-loan-ledger/internal/domain/uow"
	"nbfc-loan-ledger/internal/ledger"
	"nbfc-loan-ledger/internal/metrics"
)

const defaultJobTimeout = 2 * time.Minute

type OverdueLoan struct {
	LoanNumber  string
	DueDate     time.Time
	DaysOverdue int
}

type Result struct {
	Scanned int
	Overdue []OverdueLoan
}

type Sweeper struct {
	uow     uow.UnitOfWork
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewSweeper(tx uow.UnitOfWork, m *metrics.Metrics) *Sweeper {
	return &Sweeper{uow: tx, metrics: m, now: func() time.Time { return time.Now().UTC() }}
}

// WithClock replaces the wall clock, for tests.
func (s *Sweeper) WithClock(now func() time.Time) *Sweeper {
	s.now = now
	return s
}

// Run scans all disbursed and active loans once and publishes the overdue count.
func (s *Sweeper) Run(ctx context.Context) (Result, error) {
	started := time.Now()
	now := s.now()

	var res Result
	err := s.uow.WithinTx(ctx, func(r uow.Repos) error {
		loans, err := r.Loans.ListByStatus(ctx, loan.StatusDisbursed, loan.StatusActive)
		if err != nil {
			return err
		}
		res.Scanned = len(loans)
		for i := range loans {
			l := &loans[i]
			reps, err := r.Repayments.ListByLoanID(ctx, l.ID)
			if err != nil {
				return err
			}
			if !ledger.IsOverdue(l, reps, now) {
				continue
			}
			res.Overdue = append(res.Overdue, OverdueLoan{
				LoanNumber:  l.LoanNumber,
				DueDate:     ledger.NextPaymentDueDate(l, reps),
				DaysOverdue: ledger.DaysOverdue(l, reps, now),
			})
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	s.metrics.SetOverdueLoans(len(res.Overdue))
	s.metrics.ObserveSweep(time.Since(started).Seconds())
	for _, o := range res.Overdue {
		slog.WarnContext(ctx, "loan overdue", "loan_number", o.LoanNumber,
			"due_date", o.DueDate.Format("2006-01-02"), "days_overdue", o.DaysOverdue)
	}
	slog.InfoContext(ctx, "overdue sweep done", "scanned", res.Scanned, "overdue", len(res.Overdue))
	return res, nil
}

// Job adapts Run to a cron callback with its own timeout; errors are logged.
func (s *Sweeper) Job(timeout time.Duration) func() {
	if timeout <= 0 {
		timeout = defaultJobTimeout
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if _, err := s.Run(ctx); err != nil {
			slog.Error("overdue sweep failed", "error", err)
		}
	}
}

// Schedule registers the sweep on c under a standard 5-field cron spec.
func (s *Sweeper) Schedule(c *cron.Cron, spec string) (cron.EntryID, error) {
	return c.AddFunc(spec, s.Job(defaultJobTimeout))
}
