package validate

// Checked pairs a validator with the message shown when it fails. The billing
// layer uses these to turn a format failure into a user-facing error without
// every caller re-writing the wording.
type Checked func(value string) (ok bool, message string)

func checked(fn func(string) bool, message string) Checked {
	return func(value string) (bool, string) {
		if fn(value) {
			return true, ""
		}
		return false, message
	}
}

var (
	GSTINChecked   = checked(GSTIN, "Please enter a valid 15-character GSTIN")
	PANChecked     = checked(PAN, "Please enter a valid 10-character PAN")
	MobileChecked  = checked(Mobile, "Please enter a valid 10-digit mobile number")
	EmailChecked   = checked(Email, "Please enter a valid email address")
	PincodeChecked = checked(Pincode, "Please enter a valid 6-digit PIN code")
	HSNChecked     = checked(HSN, "HSN code must be 4, 6 or 8 digits")
	IFSCChecked    = checked(IFSC, "Please enter a valid 11-character IFSC code")
)
