package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	loanDomain "nbfc-loan-ledger/internal/domain/loan"
	repaymentDomain "nbfc-loan-ledger/internal/domain/repayment"
	"nbfc-loan-ledger/internal/domain/uow"

	"gorm.io/gorm"
)

func TestGormUoW_WithinTx_Commit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	loanRepo := NewLoanRepository(db)
	repRepo := NewRepaymentRepository(db)

	var repaymentID string
	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		l := makeLoan("LN-COMMIT", "ORG-1")
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		if l.ID == 0 {
			t.Fatalf("loan auto ID not set")
		}
		p := makeRepayment(l.ID, 10, time.Now().UTC(), repaymentDomain.StatusPending)
		repaymentID = p.RepaymentID
		return r.Repayments.Create(ctx, p)
	})
	if err != nil {
		t.Fatalf("WithinTx commit err: %v", err)
	}

	if _, err := loanRepo.GetByLoanNumber(ctx, "LN-COMMIT"); err != nil {
		t.Fatalf("loan not visible after commit: %v", err)
	}
	if _, err := repRepo.GetByRepaymentID(ctx, repaymentID); err != nil {
		t.Fatalf("repayment not visible after commit: %v", err)
	}
}

func TestGormUoW_WithinTx_Rollback(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	loanRepo := NewLoanRepository(db)
	sentinel := errors.New("boom")

	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Loans.Create(ctx, makeLoan("LN-ROLL", "ORG-1")); err != nil {
			return err
		}
		return sentinel // force rollback
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel, got %v", err)
	}
	if _, err := loanRepo.GetByLoanNumber(ctx, "LN-ROLL"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected loan not found after rollback, got %v", err)
	}
}

func TestGormUoW_WithinLoanTx_Commit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	loanRepo := NewLoanRepository(db)
	if err := loanRepo.Create(ctx, makeLoan("LN-TARGET", "ORG-1")); err != nil {
		t.Fatalf("seed loan: %v", err)
	}

	err := guow.WithinLoanTx(ctx, "LN-TARGET", func(r uow.Repos, l *loanDomain.Loan) error {
		if l == nil || l.LoanNumber != "LN-TARGET" || l.Status != loanDomain.StatusPending {
			t.Fatalf("unexpected loan passed to fn: %+v", l)
		}
		l.Status = loanDomain.StatusApproved
		return r.Loans.Save(ctx, l)
	})
	if err != nil {
		t.Fatalf("WithinLoanTx commit err: %v", err)
	}

	got, err := loanRepo.GetByLoanNumber(ctx, "LN-TARGET")
	if err != nil {
		t.Fatalf("GetByLoanNumber post-commit: %v", err)
	}
	if got.Status != loanDomain.StatusApproved {
		t.Fatalf("loan status not updated, got=%s", got.Status)
	}
}

func TestGormUoW_WithinLoanTx_Rollback(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	loanRepo := NewLoanRepository(db)
	if err := loanRepo.Create(ctx, makeLoan("LN-RB-TGT", "ORG-1")); err != nil {
		t.Fatalf("seed loan: %v", err)
	}

	sentinel := errors.New("stop")
	_ = guow.WithinLoanTx(ctx, "LN-RB-TGT", func(r uow.Repos, l *loanDomain.Loan) error {
		l.Status = loanDomain.StatusApproved
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		return sentinel // force rollback
	})

	got, err := loanRepo.GetByLoanNumber(ctx, "LN-RB-TGT")
	if err != nil {
		t.Fatalf("post-rollback GetByLoanNumber: %v", err)
	}
	if got.Status != loanDomain.StatusPending {
		t.Fatalf("expected pending after rollback, got %s", got.Status)
	}
}

func TestGormUoW_WithinLoanTx_LoanNotFound(t *testing.T) {
	db := openTestDB(t)
	guow := NewGormUoW(db)

	err := guow.WithinLoanTx(context.Background(), "LN-NOPE", func(r uow.Repos, l *loanDomain.Loan) error {
		t.Fatalf("callback should not be called when loan missing")
		return nil
	})
	if !errors.Is(err, loanDomain.ErrNotFound) {
		t.Fatalf("expected loan.ErrNotFound, got %v", err)
	}
}
