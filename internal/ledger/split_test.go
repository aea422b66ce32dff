package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nbfc-loan-ledger/internal/domain/repayment"
)

func TestPolicyByName(t *testing.T) {
	p, err := PolicyByName("")
	require.NoError(t, err)
	assert.Equal(t, SplitPrincipalOnly, p.Name())

	p, err = PolicyByName("amortized")
	require.NoError(t, err)
	assert.Equal(t, SplitAmortized, p.Name())

	_, err = PolicyByName("fifo")
	assert.Error(t, err)
}

func TestPrincipalOnly(t *testing.T) {
	principal, interest := PrincipalOnly{}.Split(newLoan("1000", "12", 12), nil, d("250"))
	assert.True(t, principal.Equal(d("250")))
	assert.True(t, interest.IsZero())
}

func TestAmortized(t *testing.T) {
	l := newLoan("12000", "12", 12)

	principal, interest := Amortized{}.Split(l, nil, d("1120"))
	assert.True(t, interest.Equal(d("120")), "interest %s", interest)
	assert.True(t, principal.Equal(d("1000")))

	prior := []repayment.Repayment{{Amount: d("1120"), PrincipalPortion: d("1000"), InterestPortion: d("120"), Status: repayment.StatusCompleted}}
	principal, interest = Amortized{}.Split(l, prior, d("1120"))
	assert.True(t, interest.Equal(d("110")))
	assert.True(t, principal.Equal(d("1010")))

	// amounts smaller than the interest due go entirely to interest
	principal, interest = Amortized{}.Split(l, nil, d("50"))
	assert.True(t, interest.Equal(d("50")))
	assert.True(t, principal.IsZero())
}
