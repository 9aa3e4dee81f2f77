package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gstdesk/gstdesk-api/pkg/validate"
)

func TestGSTIN(t *testing.T) {
	cases := []struct {
		name  string
		gstin string
		want  bool
	}{
		{"empty is valid", "", true},
		{"valid gujarat", "24AADPF6173E1ZT", true},
		{"valid maharashtra", "27AABCU9603R1Z0", true},
		{"state code out of range", "99AADPF6173E1ZT", false},
		{"state code zero", "00AADPF6173E1ZT", false},
		{"too short", "24AADPF6173E1Z", false},
		{"missing Z at position 14", "24AADPF6173E1XT", false},
		{"lowercase accepted after normalization", "24aadpf6173e1zt", true},
		{"surrounding whitespace", " 24AADPF6173E1ZT ", true},
		{"digits where letters expected", "2412DPF6173E1ZT", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, validate.GSTIN(tc.gstin))
		})
	}
}

func TestPAN(t *testing.T) {
	assert.True(t, validate.PAN(""))
	assert.True(t, validate.PAN("AADPF6173E"))
	assert.True(t, validate.PAN("aadpf6173e"))
	assert.False(t, validate.PAN("AADPF6173"))
	assert.False(t, validate.PAN("1ADPF6173E"))
	assert.False(t, validate.PAN("AADPF6173EE"))
}

func TestMobile(t *testing.T) {
	cases := []struct {
		name   string
		mobile string
		want   bool
	}{
		{"empty is valid", "", true},
		{"plain 10 digits", "9876543210", true},
		{"starts below 6", "5876543210", false},
		{"with +91 prefix", "+919876543210", true},
		{"with 91 prefix", "919876543210", true},
		{"with 0 prefix", "09876543210", true},
		{"with spaces and dashes", "98765 432-10", true},
		{"too short", "987654321", false},
		{"too long", "98765432101", false},
		{"letters", "98765abc10", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, validate.Mobile(tc.mobile))
		})
	}
}

func TestEmail(t *testing.T) {
	assert.True(t, validate.Email(""))
	assert.True(t, validate.Email("billing@example.com"))
	assert.True(t, validate.Email("a.b+c@sub.domain.in"))
	assert.False(t, validate.Email("no-at-sign"))
	assert.False(t, validate.Email("user@domain"))
}

func TestPincode(t *testing.T) {
	assert.True(t, validate.Pincode(""))
	assert.True(t, validate.Pincode("380001"))
	assert.False(t, validate.Pincode("038001"))
	assert.False(t, validate.Pincode("38001"))
	assert.False(t, validate.Pincode("3800011"))
}

func TestHSN(t *testing.T) {
	assert.True(t, validate.HSN(""))
	assert.True(t, validate.HSN("8471"))
	assert.True(t, validate.HSN("847130"))
	assert.True(t, validate.HSN("84713010"))
	assert.False(t, validate.HSN("84713"))
	assert.False(t, validate.HSN("84A1"))
}

func TestIFSC(t *testing.T) {
	assert.True(t, validate.IFSC(""))
	assert.True(t, validate.IFSC("SBIN0001234"))
	assert.True(t, validate.IFSC("hdfc0000128"))
	assert.False(t, validate.IFSC("SBIN1001234"))
	assert.False(t, validate.IFSC("SBIN000123"))
}

func TestCheckedMessages(t *testing.T) {
	ok, msg := validate.GSTINChecked("99AADPF6173E1ZT")
	assert.False(t, ok)
	assert.Equal(t, "Please enter a valid 15-character GSTIN", msg)

	ok, msg = validate.MobileChecked("9876543210")
	assert.True(t, ok)
	assert.Empty(t, msg)
}
