package id

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
func NewID32() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// NewLoanNumber returns a human-readable loan number, e.g. LN-20240101-9F2C01AB.
func NewLoanNumber(now time.Time) string {
	return "LN-" + now.UTC().Format("20060102") + "-" + strings.ToUpper(NewID32()[:8])
}
