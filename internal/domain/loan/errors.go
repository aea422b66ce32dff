package loan

import "errors"

var (
	ErrNotFound            = errors.New("loan not found")
	ErrValidation          = errors.New("validation failed")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrInvalidLoanState    = errors.New("loan does not accept repayments in its current status")
	ErrLoanFullyPaid       = errors.New("loan is already fully paid")
	ErrHasActiveRepayments = errors.New("loan has repayment records")
	ErrDuplicateLoanNumber = errors.New("loan number already exists")
)
