package protocol

import (
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/muurk/skyreg/internal/wizard"
)

// EnvelopeType identifies a server -> client message
type EnvelopeType string

// Envelope types
const (
	EnvelopeSnapshot  EnvelopeType = "snapshot"
	EnvelopeError     EnvelopeType = "error"
	EnvelopeSubmitted EnvelopeType = "submitted"
)

// Error codes carried by error envelopes
const (
	CodeInvalidIntent    = "invalid_intent"
	CodeUnknownField     = "unknown_field"
	CodeKindMismatch     = "kind_mismatch"
	CodeValidationFailed = "validation_failed"
	CodeSubmissionFailed = "submission_failed"
	CodeNotAllowed       = "not_allowed"
	CodeInternal         = "internal"
)

// ErrorBody describes why an intent was refused
type ErrorBody struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	Retryable bool              `json:"retryable,omitempty"`
}

// Envelope is a server -> client message. Every envelope carries the
// session snapshot after the intent was applied, so a client never has to
// reconcile state on its own.
type Envelope struct {
	Type         EnvelopeType         `json:"type"`
	Seq          uint64               `json:"seq"`
	Intent       IntentType           `json:"intent,omitempty"`
	Result       string               `json:"result,omitempty"`
	Snapshot     *wizard.Snapshot     `json:"snapshot,omitempty"`
	Error        *ErrorBody           `json:"error,omitempty"`
	Confirmation *wizard.Confirmation `json:"confirmation,omitempty"`
}

// Global envelope sequence counter (thread-safe)
var sequenceCounter uint64

// NextSequence returns the next envelope sequence number. Sequence numbers
// are process-wide and only increase.
func NextSequence() uint64 {
	return atomic.AddUint64(&sequenceCounter, 1)
}

// BuildSnapshot creates a snapshot envelope answering intent
func BuildSnapshot(intent IntentType, result string, snap wizard.Snapshot) *Envelope {
	return &Envelope{
		Type:     EnvelopeSnapshot,
		Seq:      NextSequence(),
		Intent:   intent,
		Result:   result,
		Snapshot: &snap,
	}
}

// BuildError creates an error envelope. snap may be nil when the session
// state is not known, e.g. for a message that could not be parsed.
func BuildError(intent IntentType, body ErrorBody, snap *wizard.Snapshot) *Envelope {
	return &Envelope{
		Type:     EnvelopeError,
		Seq:      NextSequence(),
		Intent:   intent,
		Error:    &body,
		Snapshot: snap,
	}
}

// BuildSubmitted creates the envelope sent after a successful submission
func BuildSubmitted(conf wizard.Confirmation, snap wizard.Snapshot) *Envelope {
	return &Envelope{
		Type:         EnvelopeSubmitted,
		Seq:          NextSequence(),
		Intent:       IntentSubmit,
		Confirmation: &conf,
		Snapshot:     &snap,
	}
}

// Encode marshals an envelope for a websocket text message
func (e *Envelope) Encode() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s envelope: %w", e.Type, err)
	}
	return data, nil
}

// BuildIntent marshals an intent. Renderers written in Go use it, as do
// the tests.
func BuildIntent(t IntentType, field string, value interface{}) ([]byte, error) {
	in := Intent{Type: t, Field: field}
	if value != nil {
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal value for %s: %w", field, err)
		}
		in.Value = raw
	}
	return json.Marshal(in)
}
