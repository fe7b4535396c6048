package registration

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownField is returned when a field name is not part of the schema
var ErrUnknownField = errors.New("unknown field")

// ErrKindMismatch is returned when a value's kind does not match its field
var ErrKindMismatch = errors.New("value kind does not match field")

// FieldError is a per-field validation failure. Message is the text shown
// next to the field.
type FieldError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewFieldError creates a validation error for a field
func NewFieldError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}

// ValidationErrors aggregates field errors from a multi-field validation run.
// A nil or empty ValidationErrors means every checked field passed.
type ValidationErrors []*FieldError

// Error implements the error interface
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	parts := make([]string, len(ve))
	for i, fe := range ve {
		parts[i] = fe.Error()
	}
	return fmt.Sprintf("%d fields failed validation: %s", len(ve), strings.Join(parts, "; "))
}

// Fields returns the failing field names in sorted order
func (ve ValidationErrors) Fields() []string {
	names := make([]string, 0, len(ve))
	for _, fe := range ve {
		names = append(names, fe.Field)
	}
	sort.Strings(names)
	return names
}

// Message returns the message for a field, or "" when the field passed
func (ve ValidationErrors) Message(field string) string {
	for _, fe := range ve {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// Err returns ve as an error, or nil when it is empty. Use it at return sites
// so a typed nil slice never becomes a non-nil error.
func (ve ValidationErrors) Err() error {
	if len(ve) == 0 {
		return nil
	}
	return ve
}

// IsValidationError checks if an error is a field error or an aggregate of them
func IsValidationError(err error) bool {
	var fe *FieldError
	if errors.As(err, &fe) {
		return true
	}
	var ve ValidationErrors
	return errors.As(err, &ve)
}

// FormatValidationErrors formats validation errors into a user-facing block
func FormatValidationErrors(ve ValidationErrors) string {
	if len(ve) == 0 {
		return "No validation errors"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Registration is incomplete (%d issue(s)):\n", len(ve)))
	for i, fe := range ve {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, fe.Message))
	}
	return sb.String()
}
