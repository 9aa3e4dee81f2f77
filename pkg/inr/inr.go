// Package inr renders rupee amounts for printable output: Indian digit
// grouping (12,34,567.89) and the amount-in-words line that appears at the
// bottom of an invoice.
package inr

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.MustParse("en-IN"))

// Format renders the amount with Indian digit grouping and two decimals,
// without a currency symbol.
func Format(amount decimal.Decimal) string {
	f, _ := amount.Round(2).Float64()
	return printer.Sprint(number.Decimal(f,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

// FormatRupees is Format with the ₹ prefix.
func FormatRupees(amount decimal.Decimal) string {
	return "₹" + Format(amount)
}

var ones = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven",
	"Eight", "Nine", "Ten", "Eleven", "Twelve", "Thirteen", "Fourteen",
	"Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}

var tens = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty",
	"Seventy", "Eighty", "Ninety"}

// Words converts an amount to words in the Indian numbering system,
// e.g. "One Lakh Twenty Thousand Rupees Only". The amount is rounded to the
// nearest rupee first.
func Words(amount decimal.Decimal) string {
	n := amount.Round(0).IntPart()
	if n <= 0 {
		return "Zero Rupees Only"
	}
	return strings.TrimSpace(wordsInt(n)) + " Rupees Only"
}

func wordsInt(n int64) string {
	switch {
	case n < 1000:
		return threeDigit(int(n))
	case n < 100_000:
		s := twoDigit(int(n/1000)) + " Thousand"
		if n%1000 != 0 {
			s += " " + threeDigit(int(n%1000))
		}
		return s
	case n < 10_000_000:
		s := twoDigit(int(n/100_000)) + " Lakh"
		if n%100_000 != 0 {
			s += " " + wordsInt(n%100_000)
		}
		return s
	default:
		s := wordsInt(n/10_000_000) + " Crore"
		if n%10_000_000 != 0 {
			s += " " + wordsInt(n%10_000_000)
		}
		return s
	}
}

func twoDigit(n int) string {
	if n < 20 {
		return ones[n]
	}
	s := tens[n/10]
	if n%10 != 0 {
		s += " " + ones[n%10]
	}
	return s
}

func threeDigit(n int) string {
	if n < 100 {
		return twoDigit(n)
	}
	s := ones[n/100] + " Hundred"
	if n%100 != 0 {
		s += " " + twoDigit(n%100)
	}
	return s
}
