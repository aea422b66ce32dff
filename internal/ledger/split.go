package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"nbfc-loan-ledger/internal/domain/loan"
	"nbfc-loan-ledger/internal/domain/repayment"
)

// SplitPolicy divides a repayment amount into principal and interest at the
// time it is recorded. One policy is chosen per deployment.
type SplitPolicy interface {
	Name() string
	Split(l *loan.Loan, reps []repayment.Repayment, amount decimal.Decimal) (principal, interest decimal.Decimal)
}

const (
	SplitPrincipalOnly = "principal"
	SplitAmortized     = "amortized"
)

// PolicyByName resolves a configured policy name; empty means principal-only.
func PolicyByName(name string) (SplitPolicy, error) {
	switch name {
	case "", SplitPrincipalOnly:
		return PrincipalOnly{}, nil
	case SplitAmortized:
		return Amortized{}, nil
	}
	return nil, fmt.Errorf("unknown repayment split policy %q", name)
}

// PrincipalOnly books the whole amount as principal.
type PrincipalOnly struct{}

func (PrincipalOnly) Name() string { return SplitPrincipalOnly }

func (PrincipalOnly) Split(_ *loan.Loan, _ []repayment.Repayment, amount decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	return amount, decimal.Zero
}

// Amortized charges one month of interest on the outstanding principal first
// and books the rest as principal.
type Amortized struct{}

func (Amortized) Name() string { return SplitAmortized }

func (Amortized) Split(l *loan.Loan, reps []repayment.Repayment, amount decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	outstanding := l.Principal
	for i := range reps {
		if reps[i].Counted() {
			outstanding = outstanding.Sub(reps[i].PrincipalPortion)
		}
	}
	if outstanding.IsNegative() {
		outstanding = decimal.Zero
	}
	interest := outstanding.Mul(l.InterestRatePercent).Div(twelveHundred).Round(2)
	if interest.GreaterThan(amount) {
		interest = amount
	}
	return amount.Sub(interest), interest
}
