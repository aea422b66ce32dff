package ledger

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"nbfc-loan-ledger/internal/domain/loan"
	"nbfc-loan-ledger/internal/domain/repayment"

	"github.com/shopspring/decimal"
)

const maxReasonLen = 255

func requireActor(actorID string) error {
	if strings.TrimSpace(actorID) == "" {
		return fmt.Errorf("%w: actor id is required", loan.ErrValidation)
	}
	return nil
}

func requireReason(reason string) (string, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return "", fmt.Errorf("%w: reason is required", loan.ErrValidation)
	}
	if utf8.RuneCountInString(reason) > maxReasonLen {
		return "", fmt.Errorf("%w: reason must be at most %d characters", loan.ErrValidation, maxReasonLen)
	}
	return reason, nil
}

// Approve moves a pending loan to approved.
func Approve(l *loan.Loan, actorID string, now time.Time) error {
	if err := requireActor(actorID); err != nil {
		return err
	}
	if l.Status != loan.StatusPending {
		return fmt.Errorf("%w: cannot approve a %s loan", loan.ErrInvalidTransition, l.Status)
	}
	at := now.UTC()
	l.Status = loan.StatusApproved
	l.ApprovedBy = &actorID
	l.ApprovedAt = &at
	return nil
}

// Reject moves a pending loan to rejected; a reason is mandatory.
func Reject(l *loan.Loan, actorID, reason string, now time.Time) error {
	if err := requireActor(actorID); err != nil {
		return err
	}
	reason, err := requireReason(reason)
	if err != nil {
		return err
	}
	if l.Status != loan.StatusPending {
		return fmt.Errorf("%w: cannot reject a %s loan", loan.ErrInvalidTransition, l.Status)
	}
	at := now.UTC()
	l.Status = loan.StatusRejected
	l.RejectedBy = &actorID
	l.RejectedAt = &at
	l.RejectionReason = &reason
	return nil
}

// Disburse releases an approved loan.
func Disburse(l *loan.Loan, actorID, method string, details map[string]string, now time.Time) error {
	if err := requireActor(actorID); err != nil {
		return err
	}
	method = strings.TrimSpace(method)
	if method == "" {
		return fmt.Errorf("%w: disbursement method is required", loan.ErrValidation)
	}
	if len(details) == 0 {
		return fmt.Errorf("%w: disbursement details are required", loan.ErrValidation)
	}
	if l.Status != loan.StatusApproved {
		return fmt.Errorf("%w: cannot disburse a %s loan", loan.ErrInvalidTransition, l.Status)
	}
	at := now.UTC()
	cp := make(map[string]string, len(details))
	for k, v := range details {
		cp[k] = v
	}
	l.Status = loan.StatusDisbursed
	l.DisbursedBy = &actorID
	l.DisbursedAt = &at
	l.DisbursementMethod = &method
	l.DisbursementDetails = cp
	return nil
}

// AcceptsRepayment checks that a new repayment may be recorded against l.
func AcceptsRepayment(l *loan.Loan, reps []repayment.Repayment) error {
	if l.Status != loan.StatusDisbursed && l.Status != loan.StatusActive {
		return fmt.Errorf("%w: status is %s", loan.ErrInvalidLoanState, l.Status)
	}
	if FullyPaid(l, reps) {
		return loan.ErrLoanFullyPaid
	}
	return nil
}

// Settle re-derives the status of a repaying loan from its repayments and
// reports whether it changed. Loans outside the repayment phase are left alone.
func Settle(l *loan.Loan, reps []repayment.Repayment) bool {
	switch l.Status {
	case loan.StatusDisbursed, loan.StatusActive, loan.StatusCompleted:
	default:
		return false
	}

	next := l.Status
	switch {
	case FullyPaid(l, reps):
		next = loan.StatusCompleted
	case hasCompleted(reps):
		next = loan.StatusActive
	case l.Status == loan.StatusCompleted:
		next = loan.StatusActive
	}
	if next == l.Status {
		return false
	}
	l.Status = next
	return true
}

func hasCompleted(reps []repayment.Repayment) bool {
	for i := range reps {
		if reps[i].Counted() {
			return true
		}
	}
	return false
}

// ApproveRepayment completes a pending repayment.
func ApproveRepayment(r *repayment.Repayment, actorID string, now time.Time) error {
	if err := requireActor(actorID); err != nil {
		return err
	}
	if r.Status != repayment.StatusPending {
		return fmt.Errorf("%w: cannot approve a %s repayment", loan.ErrInvalidTransition, r.Status)
	}
	at := now.UTC()
	r.Status = repayment.StatusCompleted
	r.ApprovedBy = &actorID
	r.ApprovedAt = &at
	return nil
}

// RejectRepayment fails a pending repayment.
func RejectRepayment(r *repayment.Repayment, actorID, reason string, now time.Time) error {
	if err := requireActor(actorID); err != nil {
		return err
	}
	reason, err := requireReason(reason)
	if err != nil {
		return err
	}
	if r.Status != repayment.StatusPending {
		return fmt.Errorf("%w: cannot reject a %s repayment", loan.ErrInvalidTransition, r.Status)
	}
	at := now.UTC()
	r.Status = repayment.StatusFailed
	r.RejectedBy = &actorID
	r.RejectedAt = &at
	r.RejectionReason = &reason
	return nil
}

// CanDelete refuses deletion while any repayment row exists, whatever its status.
func CanDelete(repaymentRows int64) error {
	if repaymentRows > 0 {
		return fmt.Errorf("%w: %d repayment(s) recorded", loan.ErrHasActiveRepayments, repaymentRows)
	}
	return nil
}

// Bounds on new loan terms; the rate fits a decimal(7,4) column.
const MaxTermMonths = 600

var MaxInterestRatePercent = decimal.RequireFromString("999.9999")

// Open validates the terms of a new loan and puts it in pending. A zero
// EndDate defaults to StartDate plus the term.
func Open(l *loan.Loan) error {
	switch {
	case strings.TrimSpace(l.OrganizationID) == "":
		return fmt.Errorf("%w: organization id is required", loan.ErrValidation)
	case strings.TrimSpace(l.EmployeeID) == "":
		return fmt.Errorf("%w: employee id is required", loan.ErrValidation)
	case l.Principal.IsNegative():
		return fmt.Errorf("%w: principal must not be negative", loan.ErrValidation)
	case !l.Principal.Equal(l.Principal.Round(2)):
		return fmt.Errorf("%w: principal has more than 2 decimal places", loan.ErrValidation)
	case l.InterestRatePercent.IsNegative():
		return fmt.Errorf("%w: interest rate must not be negative", loan.ErrValidation)
	case l.InterestRatePercent.GreaterThan(MaxInterestRatePercent):
		return fmt.Errorf("%w: interest rate above %s", loan.ErrValidation, MaxInterestRatePercent)
	case !l.InterestRatePercent.Equal(l.InterestRatePercent.Round(4)):
		return fmt.Errorf("%w: interest rate has more than 4 decimal places", loan.ErrValidation)
	case l.TermMonths < 1:
		return fmt.Errorf("%w: term must be at least one month", loan.ErrValidation)
	case l.TermMonths > MaxTermMonths:
		return fmt.Errorf("%w: term above %d months", loan.ErrValidation, MaxTermMonths)
	case l.StartDate.IsZero():
		return fmt.Errorf("%w: start date is required", loan.ErrValidation)
	}
	l.StartDate = DateOnly(l.StartDate)
	if l.EndDate.IsZero() {
		l.EndDate = AddMonths(l.StartDate, l.TermMonths)
	}
	l.EndDate = DateOnly(l.EndDate)
	if l.EndDate.Before(l.StartDate) {
		return fmt.Errorf("%w: end date precedes start date", loan.ErrValidation)
	}
	l.Status = loan.StatusPending
	return nil
}

// DeleteLoan tombstones l; refused while any repayment row exists.
func DeleteLoan(l *loan.Loan, repaymentRows int64, actorID string, now time.Time) error {
	if err := requireActor(actorID); err != nil {
		return err
	}
	if err := CanDelete(repaymentRows); err != nil {
		return err
	}
	at := now.UTC()
	l.DeletedAt = &at
	l.DeletedBy = &actorID
	return nil
}

// DeleteRepayment tombstones r whatever its status. Callers must Settle the
// owning loan afterwards.
func DeleteRepayment(r *repayment.Repayment, actorID string, now time.Time) error {
	if err := requireActor(actorID); err != nil {
		return err
	}
	at := now.UTC()
	r.DeletedAt = &at
	r.DeletedBy = &actorID
	return nil
}
