package dto

import (
	"github.com/go-playground/validator/v10"

	"github.com/gstdesk/gstdesk-api/pkg/validate"
)

// Validate is the shared validator instance. The custom tags wrap the
// format checks in pkg/validate so request structs can declare them inline.
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	register := func(tag string, fn func(string) bool) {
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return fn(fl.Field().String())
		})
	}
	register("gstin", validate.GSTIN)
	register("pan", validate.PAN)
	register("inmobile", validate.Mobile)
	register("pincode", validate.Pincode)
	register("hsn", validate.HSN)
	register("ifsc", validate.IFSC)
	return v
}
