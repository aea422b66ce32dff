package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"nbfc-loan-ledger/internal/domain/deficit"
	"nbfc-loan-ledger/internal/domain/excess"
	"nbfc-loan-ledger/internal/domain/loan"
)

func requirePositive(field string, v decimal.Decimal) error {
	if !v.IsPositive() {
		return fmt.Errorf("%w: %s must be greater than zero", loan.ErrValidation, field)
	}
	return nil
}

// ValidateDeficit checks a new deficit record before it is stored as pending.
func ValidateDeficit(d *deficit.Deficit) error {
	if err := requirePositive("amount", d.Amount); err != nil {
		return err
	}
	if d.LateFee.IsNegative() {
		return fmt.Errorf("%w: late fee must not be negative", loan.ErrValidation)
	}
	if d.DueDate.IsZero() {
		return fmt.Errorf("%w: due date is required", loan.ErrValidation)
	}
	d.DueDate = DateOnly(d.DueDate)
	d.Status = deficit.StatusPending
	return nil
}

// ResolveDeficit closes a pending deficit as paid or waived.
func ResolveDeficit(d *deficit.Deficit, to deficit.Status, actorID string, now time.Time) error {
	if err := requireActor(actorID); err != nil {
		return err
	}
	if to != deficit.StatusPaid && to != deficit.StatusWaived {
		return fmt.Errorf("%w: deficit can only be resolved as paid or waived", loan.ErrValidation)
	}
	if d.Status != deficit.StatusPending {
		return fmt.Errorf("%w: deficit is already %s", loan.ErrInvalidTransition, d.Status)
	}
	at := now.UTC()
	d.Status = to
	d.ResolvedBy = &actorID
	d.ResolvedAt = &at
	return nil
}

// ValidateExcess checks a new excess record before it is stored as pending.
func ValidateExcess(e *excess.Excess) error {
	if err := requirePositive("amount", e.Amount); err != nil {
		return err
	}
	e.Status = excess.StatusPending
	return nil
}

// ResolveExcess closes a pending excess as processed or refunded.
func ResolveExcess(e *excess.Excess, to excess.Status, actorID string, now time.Time) error {
	if err := requireActor(actorID); err != nil {
		return err
	}
	if to != excess.StatusProcessed && to != excess.StatusRefunded {
		return fmt.Errorf("%w: excess can only be resolved as processed or refunded", loan.ErrValidation)
	}
	if e.Status != excess.StatusPending {
		return fmt.Errorf("%w: excess is already %s", loan.ErrInvalidTransition, e.Status)
	}
	at := now.UTC()
	e.Status = to
	e.ResolvedBy = &actorID
	e.ResolvedAt = &at
	return nil
}
