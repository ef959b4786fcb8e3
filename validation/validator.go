package validation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kbukum/scribe/errors"
)

// FieldError is one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator collects field errors for request input. Only the first
// failure per field is kept, so later rules can assume earlier ones held.
type Validator struct {
	errs   []FieldError
	failed map[string]bool
}

// New returns an empty Validator.
func New() *Validator {
	return &Validator{failed: make(map[string]bool)}
}

// Check records message for field unless ok holds or field already failed.
func (v *Validator) Check(ok bool, field, format string, args ...any) *Validator {
	if ok || v.failed[field] {
		return v
	}
	v.failed[field] = true
	v.errs = append(v.errs, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
	return v
}

// Required rejects blank strings.
func (v *Validator) Required(field, value string) *Validator {
	return v.Check(strings.TrimSpace(value) != "", field, "is required")
}

// OneOf rejects values outside allowed.
func (v *Validator) OneOf(field, value, label string, allowed []string) *Validator {
	return v.Check(slices.Contains(allowed, value), field,
		"unsupported %s %q, allowed: %s", label, value, strings.Join(allowed, ", "))
}

// NotEmpty rejects zero or negative sizes.
func (v *Validator) NotEmpty(field string, size int64) *Validator {
	return v.Check(size > 0, field, "must not be empty")
}

// AtMost rejects sizes above limit; limitText is how the limit is shown.
func (v *Validator) AtMost(field string, size, limit int64, limitText string) *Validator {
	return v.Check(size <= limit, field, "exceeds the %s upload limit", limitText)
}

// Failed reports whether any field was rejected.
func (v *Validator) Failed() bool { return len(v.errs) > 0 }

// Errors returns the recorded failures in order.
func (v *Validator) Errors() []FieldError { return v.errs }

// Err returns nil or an INVALID_INPUT AppError listing every failure.
func (v *Validator) Err() error {
	if !v.Failed() {
		return nil
	}
	return newValidationError(v.errs)
}

func newValidationError(fields []FieldError) *errors.AppError {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return errors.Validation(strings.Join(parts, "; ")).WithDetail("fields", fields)
}
