package validation

import (
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Custom tags for this domain's enums
	_ = v.RegisterValidation("service_type", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "AIRPORT", "LOCAL", "OUTSTATION":
			return true
		}
		return false
	})
	_ = v.RegisterValidation("payment_method", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "0", "20", "100":
			return true
		}
		return false
	})
	_ = v.RegisterValidation("booking_status", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "pending", "accepted", "declined", "driver_sent":
			return true
		}
		return false
	})

	return v
}

// ValidateStruct validates a struct using its validate tags
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		return NewValidationError(verrs)
	}
	return err
}
