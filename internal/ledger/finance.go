// Package ledger holds the loan lifecycle rules and the financial projections
// derived from a loan and its repayments. Nothing here touches storage: every
// function works on values the caller already loaded, and derived amounts are
// recomputed on each call.
package ledger

import (
	"iter"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"nbfc-loan-ledger/internal/domain/loan"
	"nbfc-loan-ledger/internal/domain/repayment"
)

var (
	hundred       = decimal.NewFromInt(100)
	twelve        = decimal.NewFromInt(12)
	twelveHundred = decimal.NewFromInt(1200)
)

// TotalInterest is simple interest over the full term:
// principal × rate/100 × termMonths/12.
func TotalInterest(l *loan.Loan) decimal.Decimal {
	if l.TermMonths <= 0 {
		return decimal.Zero
	}
	return l.Principal.
		Mul(l.InterestRatePercent).
		Mul(decimal.NewFromInt(int64(l.TermMonths))).
		Div(twelveHundred)
}

func TotalAmountDue(l *loan.Loan) decimal.Decimal {
	return l.Principal.Add(TotalInterest(l))
}

func MonthlyPayment(l *loan.Loan) decimal.Decimal {
	if l.TermMonths <= 0 {
		return decimal.Zero
	}
	return TotalAmountDue(l).Div(decimal.NewFromInt(int64(l.TermMonths)))
}

// TotalCompletedPaid sums completed, non-deleted repayments.
func TotalCompletedPaid(reps []repayment.Repayment) decimal.Decimal {
	total := decimal.Zero
	for i := range reps {
		if reps[i].Counted() {
			total = total.Add(reps[i].Amount)
		}
	}
	return total
}

func RemainingAmount(l *loan.Loan, reps []repayment.Repayment) decimal.Decimal {
	return TotalAmountDue(l).Sub(TotalCompletedPaid(reps))
}

// FullyPaid reports whether completed repayments cover the amount due.
func FullyPaid(l *loan.Loan, reps []repayment.Repayment) bool {
	return TotalCompletedPaid(reps).GreaterThanOrEqual(TotalAmountDue(l))
}

// NextPaymentDueDate is one month after the latest completed repayment, or one
// month after the start date when nothing has been paid yet.
func NextPaymentDueDate(l *loan.Loan, reps []repayment.Repayment) time.Time {
	var last *time.Time
	for i := range reps {
		if !reps[i].Counted() {
			continue
		}
		if last == nil || reps[i].PaymentDate.After(*last) {
			d := reps[i].PaymentDate
			last = &d
		}
	}
	if last == nil {
		return AddMonths(DateOnly(l.StartDate), 1)
	}
	return AddMonths(DateOnly(*last), 1)
}

// openForOverdue lists the statuses in which installments are expected.
func openForOverdue(s loan.Status) bool {
	return s == loan.StatusDisbursed || s == loan.StatusActive
}

// IsOverdue compares calendar days in UTC: a payment due today is not overdue.
func IsOverdue(l *loan.Loan, reps []repayment.Repayment, now time.Time) bool {
	if !openForOverdue(l.Status) {
		return false
	}
	return DateOnly(now).After(NextPaymentDueDate(l, reps))
}

func DaysOverdue(l *loan.Loan, reps []repayment.Repayment, now time.Time) int {
	if !IsOverdue(l, reps, now) {
		return 0
	}
	return int(DateOnly(now).Sub(NextPaymentDueDate(l, reps)).Hours() / 24)
}

type ScheduleEntry struct {
	Installment      int             `json:"installment"`
	DueDate          time.Time       `json:"due_date"`
	Payment          decimal.Decimal `json:"payment"`
	PrincipalPortion decimal.Decimal `json:"principal_portion"`
	InterestPortion  decimal.Decimal `json:"interest_portion"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

// Rounded returns the entry with every amount rounded to two places.
func (e ScheduleEntry) Rounded() ScheduleEntry {
	e.Payment = e.Payment.Round(2)
	e.PrincipalPortion = e.PrincipalPortion.Round(2)
	e.InterestPortion = e.InterestPortion.Round(2)
	e.RemainingBalance = e.RemainingBalance.Round(2)
	return e
}

// PaymentSchedule projects the declining-balance schedule from the loan terms
// alone; it is not reconciled against actual repayments. The terms are copied
// when called, so ranging over the sequence again yields the same entries.
//
// The principal portion never exceeds the balance still outstanding, and the
// last installment settles whatever balance remains, so the principal portions
// add up to the principal.
func PaymentSchedule(l *loan.Loan) iter.Seq[ScheduleEntry] {
	terms := *l
	return func(yield func(ScheduleEntry) bool) {
		payment := MonthlyPayment(&terms)
		monthlyRate := terms.InterestRatePercent.Div(hundred).Div(twelve)
		balance := terms.Principal
		start := DateOnly(terms.StartDate)

		for i := 1; i <= terms.TermMonths; i++ {
			interest := balance.Mul(monthlyRate)
			principal := payment.Sub(interest)
			if principal.GreaterThan(balance) || i == terms.TermMonths {
				principal = balance
			}
			if principal.IsNegative() {
				principal = decimal.Zero
			}
			balance = balance.Sub(principal)
			if balance.IsNegative() {
				balance = decimal.Zero
			}
			entry := ScheduleEntry{
				Installment:      i,
				DueDate:          AddMonths(start, i),
				Payment:          payment,
				PrincipalPortion: principal,
				InterestPortion:  interest,
				RemainingBalance: balance,
			}
			if !yield(entry) {
				return
			}
		}
	}
}

type HistoryEntry struct {
	Date             time.Time       `json:"date"`
	Amount           decimal.Decimal `json:"amount"`
	PrincipalPortion decimal.Decimal `json:"principal_portion"`
	InterestPortion  decimal.Decimal `json:"interest_portion"`
}

// PaymentHistory lists completed repayments by payment date, oldest first.
func PaymentHistory(reps []repayment.Repayment) []HistoryEntry {
	done := make([]repayment.Repayment, 0, len(reps))
	for i := range reps {
		if reps[i].Counted() {
			done = append(done, reps[i])
		}
	}
	sort.SliceStable(done, func(i, j int) bool {
		if done[i].PaymentDate.Equal(done[j].PaymentDate) {
			return done[i].ID < done[j].ID
		}
		return done[i].PaymentDate.Before(done[j].PaymentDate)
	})
	out := make([]HistoryEntry, 0, len(done))
	for _, r := range done {
		out = append(out, HistoryEntry{
			Date:             r.PaymentDate,
			Amount:           r.Amount,
			PrincipalPortion: r.PrincipalPortion,
			InterestPortion:  r.InterestPortion,
		})
	}
	return out
}

type Summary struct {
	TotalInterest       decimal.Decimal `json:"total_interest"`
	TotalAmountDue      decimal.Decimal `json:"total_amount_due"`
	MonthlyPayment      decimal.Decimal `json:"monthly_payment"`
	TotalPaid           decimal.Decimal `json:"total_paid"`
	RemainingAmount     decimal.Decimal `json:"remaining_amount"`
	NextPaymentDueDate  time.Time       `json:"next_payment_due_date"`
	IsOverdue           bool            `json:"is_overdue"`
	DaysOverdue         int             `json:"days_overdue"`
	CompletedRepayments int             `json:"completed_repayments"`
	PendingRepayments   int             `json:"pending_repayments"`
}

func Summarize(l *loan.Loan, reps []repayment.Repayment, now time.Time) Summary {
	s := Summary{
		TotalInterest:      TotalInterest(l).Round(2),
		TotalAmountDue:     TotalAmountDue(l).Round(2),
		MonthlyPayment:     MonthlyPayment(l).Round(2),
		TotalPaid:          TotalCompletedPaid(reps),
		RemainingAmount:    RemainingAmount(l, reps).Round(2),
		NextPaymentDueDate: NextPaymentDueDate(l, reps),
		IsOverdue:          IsOverdue(l, reps, now),
		DaysOverdue:        DaysOverdue(l, reps, now),
	}
	for i := range reps {
		if reps[i].DeletedAt != nil {
			continue
		}
		switch reps[i].Status {
		case repayment.StatusCompleted:
			s.CompletedRepayments++
		case repayment.StatusPending:
			s.PendingRepayments++
		}
	}
	return s
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddMonths moves t forward n months, clamping to the last day of the target
// month (Jan 31 + 1 month = Feb 28/29).
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}
