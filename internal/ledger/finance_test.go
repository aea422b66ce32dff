package ledger

import (
	"slices"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nbfc-loan-ledger/internal/domain/loan"
	"nbfc-loan-ledger/internal/domain/repayment"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(y int, m time.Month, dd int) time.Time { return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC) }

func newLoan(principal, rate string, term int) *loan.Loan {
	return &loan.Loan{
		LoanNumber:          "LN-TEST",
		Principal:           d(principal),
		InterestRatePercent: d(rate),
		TermMonths:          term,
		StartDate:           day(2024, time.January, 1),
		Status:              loan.StatusDisbursed,
	}
}

func completed(amount string, on time.Time) repayment.Repayment {
	return repayment.Repayment{Amount: d(amount), PrincipalPortion: d(amount), PaymentDate: on, Status: repayment.StatusCompleted}
}

func TestTotals(t *testing.T) {
	l := newLoan("12000", "10", 12)

	assert.True(t, TotalInterest(l).Equal(d("1200")), "interest = %s", TotalInterest(l))
	assert.True(t, TotalAmountDue(l).Equal(d("13200")))
	assert.True(t, MonthlyPayment(l).Equal(d("1100")))

	reps := []repayment.Repayment{
		completed("1100", day(2024, time.February, 1)),
		{Amount: d("500"), Status: repayment.StatusPending},
		{Amount: d("700"), Status: repayment.StatusFailed},
	}
	assert.True(t, TotalCompletedPaid(reps).Equal(d("1100")))
	assert.True(t, RemainingAmount(l, reps).Equal(d("12100")))
}

func TestTotalCompletedPaid_IgnoresDeleted(t *testing.T) {
	gone := day(2024, time.March, 1)
	r := completed("400", day(2024, time.February, 1))
	r.DeletedAt = &gone

	assert.True(t, TotalCompletedPaid([]repayment.Repayment{r}).IsZero())
}

func TestComputationsArePure(t *testing.T) {
	l := newLoan("50000", "12.5", 18)

	require.True(t, TotalAmountDue(l).Equal(TotalAmountDue(l)))
	require.True(t, MonthlyPayment(l).Equal(MonthlyPayment(l)))

	seq := PaymentSchedule(l)
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	require.Len(t, first, 18)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].DueDate, second[i].DueDate)
		assert.True(t, first[i].PrincipalPortion.Equal(second[i].PrincipalPortion))
		assert.True(t, first[i].RemainingBalance.Equal(second[i].RemainingBalance))
	}
}

func TestPaymentSchedule_PrincipalAddsUp(t *testing.T) {
	eps := d("0.000001")
	cases := []struct {
		principal, rate string
		term            int
	}{
		{"10000", "0", 1},
		{"10000", "0", 7},
		{"12000", "10", 12},
		{"250000", "18.75", 36},
		{"999.99", "3.3", 5},
		{"0", "9", 3},
	}
	for _, tc := range cases {
		l := newLoan(tc.principal, tc.rate, tc.term)
		entries := slices.Collect(PaymentSchedule(l))
		require.Len(t, entries, tc.term)

		sum := decimal.Zero
		for _, e := range entries {
			sum = sum.Add(e.PrincipalPortion)
			assert.False(t, e.PrincipalPortion.IsNegative())
			assert.False(t, e.RemainingBalance.IsNegative())
		}
		assert.True(t, sum.Sub(l.Principal).Abs().LessThan(eps), "%s/%s/%d: sum %s", tc.principal, tc.rate, tc.term, sum)
		assert.True(t, entries[len(entries)-1].RemainingBalance.Abs().LessThan(eps))
	}
}

func TestPaymentSchedule_FirstEntry(t *testing.T) {
	l := newLoan("12000", "12", 12)
	entries := slices.Collect(PaymentSchedule(l))

	first := entries[0]
	assert.Equal(t, 1, first.Installment)
	assert.Equal(t, day(2024, time.February, 1), first.DueDate)
	// 12000 * 12% / 12
	assert.True(t, first.InterestPortion.Equal(d("120")), "interest %s", first.InterestPortion)
	// due = 12000 + 1440, payment = 1120
	assert.True(t, first.Payment.Equal(d("1120")))
	assert.True(t, first.PrincipalPortion.Equal(d("1000")))
	assert.True(t, first.RemainingBalance.Equal(d("11000")))
	assert.Equal(t, day(2025, time.January, 1), entries[11].DueDate)
}

func TestPaymentSchedule_StopsEarly(t *testing.T) {
	l := newLoan("1000", "5", 24)
	n := 0
	for range PaymentSchedule(l) {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestNextPaymentDueDate(t *testing.T) {
	l := newLoan("10000", "0", 10)

	assert.Equal(t, day(2024, time.February, 1), NextPaymentDueDate(l, nil))

	reps := []repayment.Repayment{
		completed("1000", day(2024, time.March, 10)),
		completed("1000", day(2024, time.February, 3)),
		{Amount: d("1000"), PaymentDate: day(2024, time.April, 2), Status: repayment.StatusPending},
	}
	assert.Equal(t, day(2024, time.April, 10), NextPaymentDueDate(l, reps))
}

func TestOverdueExample(t *testing.T) {
	l := newLoan("10000", "10", 12)
	now := day(2024, time.March, 15)

	assert.Equal(t, day(2024, time.February, 1), NextPaymentDueDate(l, nil))
	assert.True(t, IsOverdue(l, nil, now))
	assert.Equal(t, 43, DaysOverdue(l, nil, now))
}

func TestOverdue_Boundaries(t *testing.T) {
	l := newLoan("10000", "10", 12)

	dueDay := day(2024, time.February, 1).Add(15 * time.Hour)
	assert.False(t, IsOverdue(l, nil, dueDay), "due today is not overdue")
	assert.Equal(t, 0, DaysOverdue(l, nil, dueDay))
	assert.True(t, IsOverdue(l, nil, day(2024, time.February, 2)))

	for _, s := range []loan.Status{loan.StatusPending, loan.StatusApproved, loan.StatusCompleted, loan.StatusRejected} {
		l.Status = s
		assert.False(t, IsOverdue(l, nil, day(2025, time.January, 1)), "status %s", s)
	}
}

func TestPaymentHistory(t *testing.T) {
	gone := day(2024, time.June, 1)
	deleted := completed("50", day(2024, time.January, 15))
	deleted.DeletedAt = &gone

	reps := []repayment.Repayment{
		completed("300", day(2024, time.March, 1)),
		{Amount: d("999"), PaymentDate: day(2024, time.January, 1), Status: repayment.StatusPending},
		completed("200", day(2024, time.February, 1)),
		deleted,
	}
	h := PaymentHistory(reps)
	require.Len(t, h, 2)
	assert.Equal(t, day(2024, time.February, 1), h[0].Date)
	assert.True(t, h[0].Amount.Equal(d("200")))
	assert.Equal(t, day(2024, time.March, 1), h[1].Date)
}

func TestSummarize(t *testing.T) {
	l := newLoan("12000", "10", 12)
	l.Status = loan.StatusActive
	reps := []repayment.Repayment{
		completed("1100", day(2024, time.February, 1)),
		{Amount: d("1100"), PaymentDate: day(2024, time.March, 1), Status: repayment.StatusPending},
	}
	s := Summarize(l, reps, day(2024, time.March, 5))

	assert.True(t, s.TotalAmountDue.Equal(d("13200")))
	assert.True(t, s.TotalPaid.Equal(d("1100")))
	assert.True(t, s.RemainingAmount.Equal(d("12100")))
	assert.Equal(t, day(2024, time.March, 1), s.NextPaymentDueDate)
	assert.True(t, s.IsOverdue)
	assert.Equal(t, 4, s.DaysOverdue)
	assert.Equal(t, 1, s.CompletedRepayments)
	assert.Equal(t, 1, s.PendingRepayments)
}

func TestAddMonths(t *testing.T) {
	assert.Equal(t, day(2024, time.February, 29), AddMonths(day(2024, time.January, 31), 1))
	assert.Equal(t, day(2023, time.February, 28), AddMonths(day(2023, time.January, 31), 1))
	assert.Equal(t, day(2025, time.January, 15), AddMonths(day(2024, time.November, 15), 2))
	assert.Equal(t, day(2024, time.April, 30), AddMonths(day(2024, time.March, 31), 1))
}
