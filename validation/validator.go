package validation

import (
	"fmt"
	"strings"

	"github.com/tmm22/speechkit/errors"
)

// FieldError names a field that failed validation and why.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator accumulates field errors across fluent checks so a request
// can be rejected with every problem reported at once.
type Validator struct {
	fields []FieldError
}

// New creates an empty Validator.
func New() *Validator {
	return &Validator{}
}

// AddError records a failed field.
func (v *Validator) AddError(field, message string) {
	v.fields = append(v.fields, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any check failed.
func (v *Validator) HasErrors() bool {
	return len(v.fields) > 0
}

// Errors returns the accumulated field errors.
func (v *Validator) Errors() []FieldError {
	return v.fields
}

// Required fails the field when the value is blank.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "is required")
	}
	return v
}

// OneOf fails the field when a non-empty value is not in the allowed set.
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	if value == "" {
		return v
	}
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.AddError(field, "must be one of: "+strings.Join(allowed, ", "))
	return v
}

// Validate collapses the accumulated errors into a single AppError with
// the failing fields attached, or nil when everything passed.
func (v *Validator) Validate() *errors.AppError {
	if !v.HasErrors() {
		return nil
	}

	var sb strings.Builder
	for i, fe := range v.fields {
		if i > 0 {
			sb.WriteString("; ")
		}
		fmt.Fprintf(&sb, "%s: %s", fe.Field, fe.Message)
	}

	return errors.Validation(sb.String()).WithDetail("fields", v.fields)
}

// Required validates a single required field and returns an error if empty.
func Required(field, value string) error {
	if appErr := New().Required(field, value).Validate(); appErr != nil {
		return appErr
	}
	return nil
}
