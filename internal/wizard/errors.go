package wizard

import (
	"errors"
	"fmt"

	"github.com/muurk/skyreg/internal/registration"
)

// Sentinel errors for actions the current phase does not allow
var (
	ErrTransitionInProgress = errors.New("a step transition is in progress")
	ErrSubmissionInFlight   = errors.New("a submission is already in flight")
	ErrNotFinalStep         = errors.New("submission is only available on the final step")
	ErrTermsNotAccepted     = errors.New("terms and conditions have not been accepted")
	ErrAlreadySubmitted     = errors.New("registration has already been submitted")
	ErrNotSubmitted         = errors.New("registration has not been submitted")
	ErrNoSubmission         = errors.New("no submission is in flight")
)

// SubmissionError wraps a submitter failure. The wizard stays on the final
// step with every value intact, so the user can retry.
type SubmissionError struct {
	Cause     error
	Retryable bool
}

// Error implements the error interface
func (e *SubmissionError) Error() string {
	if e.Cause == nil {
		return "submission failed"
	}
	return fmt.Sprintf("submission failed: %v", e.Cause)
}

// Unwrap returns the underlying cause
func (e *SubmissionError) Unwrap() error {
	return e.Cause
}

// NewSubmissionError creates a retryable submission error
func NewSubmissionError(cause error) *SubmissionError {
	return &SubmissionError{Cause: cause, Retryable: true}
}

// IsSubmissionError checks if an error is a submission failure
func IsSubmissionError(err error) bool {
	var se *SubmissionError
	return errors.As(err, &se)
}

// GetShortErrorMessage returns a one-line message suitable for a status bar
func GetShortErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var ve registration.ValidationErrors
	if errors.As(err, &ve) {
		if len(ve) == 1 {
			return ve[0].Message
		}
		return fmt.Sprintf("Please fix %d fields before continuing", len(ve))
	}
	var fe *registration.FieldError
	if errors.As(err, &fe) {
		return fe.Message
	}

	switch {
	case IsSubmissionError(err):
		return "Submission failed, please try again"
	case errors.Is(err, ErrTermsNotAccepted):
		return "You must accept the terms and conditions"
	case errors.Is(err, ErrSubmissionInFlight):
		return "Submitting..."
	case errors.Is(err, ErrTransitionInProgress):
		return "Please wait"
	case errors.Is(err, ErrNotFinalStep):
		return "Complete every step before submitting"
	case errors.Is(err, ErrAlreadySubmitted):
		return "Registration already complete"
	case errors.Is(err, ErrNotSubmitted):
		return "Nothing to start over yet"
	case errors.Is(err, registration.ErrUnknownField):
		return "Unknown field"
	case errors.Is(err, registration.ErrKindMismatch):
		return "Wrong value type for field"
	default:
		return err.Error()
	}
}
