package billing

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FinancialYearCode returns the two-plus-two digit code of the Indian
// financial year containing date: April 2025 through March 2026 is "2526".
func FinancialYearCode(date time.Time) string {
	year := date.Year()
	if date.Month() < time.April {
		year--
	}
	return fmt.Sprintf("%02d%02d", year%100, (year+1)%100)
}

// nextSequential parses the trailing number of last (e.g. "INV-2526-0007")
// and formats the next one with the same prefix and width digits. An empty
// or malformed last starts the sequence at 1.
func nextSequential(last, prefix string, width int) string {
	n := 0
	if last != "" {
		tail := strings.TrimPrefix(last, prefix)
		if v, err := strconv.Atoi(tail); err == nil {
			n = v
		}
	}
	return fmt.Sprintf("%s%0*d", prefix, width, n+1)
}

// InvoiceNumberPrefix builds the per-financial-year prefix, e.g. "INV-2526-".
func InvoiceNumberPrefix(base string, date time.Time) string {
	return fmt.Sprintf("%s-%s-", base, FinancialYearCode(date))
}

// PaymentIDPrefix builds the per-day prefix, e.g. "RCP-20260115-".
func PaymentIDPrefix(kind string, date time.Time) string {
	return fmt.Sprintf("%s-%s-", kind, date.Format("20060102"))
}
