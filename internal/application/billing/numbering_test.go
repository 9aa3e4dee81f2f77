package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFinancialYearCode(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2026-01-15", "2526"}, // Jan belongs to the FY that started last April
		{"2026-03-31", "2526"},
		{"2026-04-01", "2627"},
		{"2025-12-31", "2526"},
		{"2025-04-01", "2526"},
	}
	for _, tc := range tests {
		date, _ := time.Parse("2006-01-02", tc.date)
		assert.Equal(t, tc.want, FinancialYearCode(date), "date %s", tc.date)
	}
}

func TestNextSequential(t *testing.T) {
	assert.Equal(t, "INV-2526-0001", nextSequential("", "INV-2526-", 4))
	assert.Equal(t, "INV-2526-0008", nextSequential("INV-2526-0007", "INV-2526-", 4))
	assert.Equal(t, "INV-2526-0100", nextSequential("INV-2526-0099", "INV-2526-", 4))
	// A malformed tail restarts at 1 instead of failing.
	assert.Equal(t, "INV-2526-0001", nextSequential("INV-2526-XYZ", "INV-2526-", 4))
	assert.Equal(t, "RCP-20260115-0002", nextSequential("RCP-20260115-0001", "RCP-20260115-", 4))
}

func TestPrefixBuilders(t *testing.T) {
	date, _ := time.Parse("2006-01-02", "2026-01-15")
	assert.Equal(t, "INV-2526-", InvoiceNumberPrefix("INV", date))
	assert.Equal(t, "RCP-20260115-", PaymentIDPrefix("RCP", date))
	assert.Equal(t, "PAY-20260115-", PaymentIDPrefix("PAY", date))
}
