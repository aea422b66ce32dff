package http

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestHex32Validation(t *testing.T) {
	type P struct {
		RepaymentID string `param:"repayment_id" validate:"hex32"`
	}
	cv := NewValidator()

	// valid: 32-char lowercase hex
	ok := P{RepaymentID: strings.Repeat("a", 32)}
	if err := cv.Validate(ok); err != nil {
		t.Fatalf("expected valid hex32, got err: %v", err)
	}

	// invalid samples
	for _, s := range []string{
		"",                                  // empty
		strings.Repeat("A", 32),             // uppercase
		"deadbeef",                          // too short
		strings.Repeat("g", 32),             // non-hex char
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c8",   // 31 chars
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c88x", // 33 with extra
	} {
		err := cv.Validate(P{RepaymentID: s})
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		fe := ToFieldErrors(err)
		if len(fe) != 1 || fe[0].Field != "repayment_id" || !strings.Contains(fe[0].Message, "32-char lowercase hex") {
			t.Fatalf("expected hex32 message on repayment_id for %q, got: %+v", s, fe)
		}
	}
}

func TestLoanNumberValidation(t *testing.T) {
	type P struct {
		LoanNumber string `json:"loan_number" validate:"omitempty,loannum"`
	}
	cv := NewValidator()

	for _, s := range []string{"", "LN-20240101-ABCD1234", "abc", strings.Repeat("9", 32)} {
		if err := cv.Validate(P{LoanNumber: s}); err != nil {
			t.Fatalf("expected %q to be valid, got %v", s, err)
		}
	}
	for _, s := range []string{"LN 1", "LN_1", strings.Repeat("9", 33), "LN/1"} {
		err := cv.Validate(P{LoanNumber: s})
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		if fe := ToFieldErrors(err); fe[0].Field != "loan_number" {
			t.Fatalf("field = %q, want loan_number", fe[0].Field)
		}
	}
}

func TestDec2Validation_Decimal(t *testing.T) {
	type P struct {
		Amount decimal.Decimal `json:"amount" validate:"dec2"`
	}
	cv := NewValidator()

	for _, s := range []string{"0", "1", "1.5", "1000.25", "-3.14"} {
		if err := cv.Validate(P{Amount: decimal.RequireFromString(s)}); err != nil {
			t.Fatalf("expected dec2 OK for %s, got %v", s, err)
		}
	}
	for _, s := range []string{"1.234", "0.001", "99.999"} {
		err := cv.Validate(P{Amount: decimal.RequireFromString(s)})
		if err == nil {
			t.Fatalf("expected dec2 error for %s", s)
		}
		fe := ToFieldErrors(err)
		if fe[0].Field != "amount" || !strings.Contains(fe[0].Message, "at most 2 decimal places") {
			t.Fatalf("unexpected field error: %+v", fe)
		}
	}
}

func TestDateAndOneOfMessages(t *testing.T) {
	type P struct {
		DueDate string `json:"due_date" validate:"required,datetime=2006-01-02"`
		Status  string `json:"status"   validate:"required,oneof=paid waived"`
	}
	cv := NewValidator()

	if err := cv.Validate(P{DueDate: "2024-02-29", Status: "waived"}); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
	err := cv.Validate(P{DueDate: "29/02/2024", Status: "cancelled"})
	if err == nil {
		t.Fatalf("expected errors")
	}
	got := map[string]string{}
	for _, fe := range ToFieldErrors(err) {
		got[fe.Field] = fe.Message
	}
	if got["due_date"] != "must be a date formatted 2006-01-02" {
		t.Fatalf("due_date message = %q", got["due_date"])
	}
	if got["status"] != "must be one of: paid waived" {
		t.Fatalf("status message = %q", got["status"])
	}
}

func TestRequiredMessage(t *testing.T) {
	type P struct {
		Reason string `json:"reason" validate:"required"`
	}
	err := NewValidator().Validate(P{})
	fe := ToFieldErrors(err)
	if len(fe) != 1 || fe[0].Field != "reason" || fe[0].Message != "is required" {
		t.Fatalf("unexpected: %+v", fe)
	}
}

func TestToFieldErrors_NonValidatorError(t *testing.T) {
	fe := ToFieldErrors(errors.New("boom"))
	if len(fe) != 1 || fe[0].Field != "_" || fe[0].Message != "boom" {
		t.Fatalf("unexpected: %+v", fe)
	}
}

func TestLoanTermAndRateBounds(t *testing.T) {
	cv := NewValidator()
	ok := func(rate string, term int) createLoanReq {
		return createLoanReq{
			OrganizationID:      "ORG-1",
			EmployeeID:          "EMP-1",
			Principal:           decimal.RequireFromString("1000"),
			InterestRatePercent: decimal.RequireFromString(rate),
			TermMonths:          term,
			StartDate:           "2024-01-01",
		}
	}
	for _, r := range []createLoanReq{ok("0", 1), ok("999.9999", 600), ok("12.3456", 12)} {
		if err := cv.Validate(r); err != nil {
			t.Fatalf("rate %s term %d: unexpected %v", r.InterestRatePercent, r.TermMonths, err)
		}
	}

	cases := []struct {
		req   createLoanReq
		field string
		msg   string
	}{
		{ok("5", 601), "term_months", "less than or equal to 600"},
		{ok("5", 0), "term_months", "greater than or equal to 1"},
		{ok("1000", 12), "interest_rate_percent", "less than or equal to 999.9999"},
		{ok("12.34567", 12), "interest_rate_percent", "at most 4 decimal places"},
	}
	for _, tc := range cases {
		err := cv.Validate(tc.req)
		if err == nil {
			t.Fatalf("%s: expected error", tc.field)
		}
		fe := ToFieldErrors(err)
		if len(fe) != 1 || fe[0].Field != tc.field || !strings.Contains(fe[0].Message, tc.msg) {
			t.Fatalf("%s: unexpected field errors %+v", tc.field, fe)
		}
	}
}
