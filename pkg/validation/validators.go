package validation

import (
	"strings"

	"portfolio-contact-backend/internal/domain"

	"github.com/go-playground/validator/v10"
)

// New returns a validator with the custom tags already registered.
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("not_blank", NotBlank)
	_ = v.RegisterValidation("contact_service", ContactService)
}

// NotBlank rejects empty and whitespace-only strings
func NotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// ContactService accepts only ids from the service catalog
func ContactService(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, combine with not_blank if needed
	}
	_, ok := domain.LookupService(val)
	return ok
}
