// Package validate holds the format checks for Indian tax and contact
// identifiers (GSTIN, PAN, HSN, IFSC, mobile, email, pincode).
//
// Every check treats the empty string as valid: these are optional fields and
// presence is enforced separately by the caller. Invalid input yields false,
// never an error.
package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	gstinPattern   = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
	panPattern     = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	mobilePattern  = regexp.MustCompile(`^[6-9][0-9]{9}$`)
	emailPattern   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	pincodePattern = regexp.MustCompile(`^[1-9][0-9]{5}$`)
	ifscPattern    = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
)

// GSTIN validates a 15-character GST identification number. The first two
// digits are the state code and must fall in the 1–37 range.
func GSTIN(gstin string) bool {
	if gstin == "" {
		return true
	}
	gstin = strings.ToUpper(strings.TrimSpace(gstin))
	if len(gstin) != 15 || !gstinPattern.MatchString(gstin) {
		return false
	}
	stateCode, err := strconv.Atoi(gstin[:2])
	if err != nil {
		return false
	}
	return stateCode >= 1 && stateCode <= 37
}

// PAN validates a 10-character permanent account number (AAAAA9999A).
func PAN(pan string) bool {
	if pan == "" {
		return true
	}
	pan = strings.ToUpper(strings.TrimSpace(pan))
	return len(pan) == 10 && panPattern.MatchString(pan)
}

// Mobile validates an Indian mobile number: after stripping spaces, dashes
// and a leading +91/91/0 prefix it must be exactly 10 digits starting 6–9.
func Mobile(mobile string) bool {
	if mobile == "" {
		return true
	}
	m := strings.TrimSpace(mobile)
	m = strings.ReplaceAll(m, " ", "")
	m = strings.ReplaceAll(m, "-", "")
	switch {
	case strings.HasPrefix(m, "+91"):
		m = m[3:]
	case strings.HasPrefix(m, "91") && len(m) == 12:
		m = m[2:]
	case strings.HasPrefix(m, "0") && len(m) == 11:
		m = m[1:]
	}
	return len(m) == 10 && mobilePattern.MatchString(m)
}

// Email validates a standard local@domain.tld shape.
func Email(email string) bool {
	if email == "" {
		return true
	}
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// Pincode validates a 6-digit Indian PIN code; the first digit cannot be 0.
func Pincode(pincode string) bool {
	if pincode == "" {
		return true
	}
	p := strings.TrimSpace(pincode)
	return len(p) == 6 && pincodePattern.MatchString(p)
}

// HSN validates a harmonized system code: all digits, length 4, 6 or 8.
func HSN(hsn string) bool {
	if hsn == "" {
		return true
	}
	h := strings.TrimSpace(hsn)
	if len(h) != 4 && len(h) != 6 && len(h) != 8 {
		return false
	}
	for _, r := range h {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IFSC validates an 11-character bank branch code: 4 letters, a literal 0,
// then 6 alphanumerics.
func IFSC(ifsc string) bool {
	if ifsc == "" {
		return true
	}
	i := strings.ToUpper(strings.TrimSpace(ifsc))
	return len(i) == 11 && ifscPattern.MatchString(i)
}

// Required reports whether a value is present once trimmed.
func Required(value string) bool {
	return strings.TrimSpace(value) != ""
}
