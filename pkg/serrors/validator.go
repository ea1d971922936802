package serrors

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ProcessValidatorErrors converts go-playground validator errors into coded
// validation errors keyed by struct field name.
func ProcessValidatorErrors(errs validator.ValidationErrors, getFieldLocaleKey func(field string) string) ValidationErrors {
	out := make(ValidationErrors, len(errs))
	for _, fieldErr := range errs {
		field := fieldErr.Field()
		localeKey := ""
		if getFieldLocaleKey != nil {
			localeKey = getFieldLocaleKey(field)
		}
		switch fieldErr.Tag() {
		case "required":
			out[field] = NewFieldRequiredError(field, localeKey)
		case "min", "gt", "gte":
			out[field] = NewErrorf("VALIDATION_OUT_OF_RANGE", localeKey, "field %q is below the allowed minimum", field)
		case "max", "lt", "lte":
			out[field] = NewErrorf("VALIDATION_OUT_OF_RANGE", localeKey, "field %q is above the allowed maximum", field)
		case "oneof":
			out[field] = NewErrorf("VALIDATION_INVALID_VALUE", localeKey, "field %q has an unsupported value", field)
		default:
			out[field] = NewErrorf("VALIDATION_FAILED", localeKey, "field %q failed validation: %s", field, fieldErr.Tag())
		}
	}
	return out
}

// Validate runs the given struct through validate and returns the mapped
// field errors, or nil when the struct is valid.
func Validate(v *validator.Validate, s any, getFieldLocaleKey func(field string) string) (ValidationErrors, error) {
	err := v.Struct(s)
	if err == nil {
		return nil, nil
	}
	validatorErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil, fmt.Errorf("unexpected validator error: %w", err)
	}
	return ProcessValidatorErrors(validatorErrs, getFieldLocaleKey), nil
}
