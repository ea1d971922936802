package serrors

import "fmt"

// BaseError is a coded error that can cross the service boundary and be
// mapped to an HTTP status without string matching.
type BaseError struct {
	Code      string
	Message   string
	LocaleKey string
}

func (e *BaseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewError(code, message, localeKey string) *BaseError {
	return &BaseError{
		Code:      code,
		Message:   message,
		LocaleKey: localeKey,
	}
}

func NewErrorf(code, localeKey, format string, args ...any) *BaseError {
	return &BaseError{
		Code:      code,
		Message:   fmt.Sprintf(format, args...),
		LocaleKey: localeKey,
	}
}

// NewFieldRequiredError reports a missing required field.
func NewFieldRequiredError(field, localeKey string) *BaseError {
	return NewErrorf("VALIDATION_FIELD_REQUIRED", localeKey, "field %q is required", field)
}

// ValidationErrors maps DTO field names to their validation error.
type ValidationErrors map[string]*BaseError

func (v ValidationErrors) Fields() map[string]string {
	out := make(map[string]string, len(v))
	for field, err := range v {
		out[field] = err.Message
	}
	return out
}
