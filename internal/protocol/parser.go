package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/muurk/skyreg/internal/registration"
)

// MaxIntentSize is the largest intent message accepted, in bytes. The longest
// legitimate value is a special request at its soft limit.
const MaxIntentSize = 8 * 1024

// IntentType identifies what a remote renderer is asking for
type IntentType string

// Intent types
const (
	IntentEdit      IntentType = "edit"
	IntentAdvance   IntentType = "advance"
	IntentRetreat   IntentType = "retreat"
	IntentSettle    IntentType = "settle"
	IntentSubmit    IntentType = "submit"
	IntentStartOver IntentType = "start_over"
	IntentSnapshot  IntentType = "snapshot"
)

// ErrInvalidIntent is returned for intents that cannot be parsed
var ErrInvalidIntent = errors.New("invalid intent")

// Intent is a client -> server message
//
//	{"type":"edit","field":"email","value":"ada@example.com"}
//	{"type":"edit","field":"termsAccepted","value":true}
//	{"type":"advance"}
type Intent struct {
	Type  IntentType      `json:"type"`
	Field string          `json:"field,omitempty"`
	Value json.RawMessage `json:"value,omitempty"`
}

// String returns a short description for logs. Values are omitted.
func (i *Intent) String() string {
	if i.Field != "" {
		return fmt.Sprintf("Intent{type=%s, field=%s}", i.Type, i.Field)
	}
	return fmt.Sprintf("Intent{type=%s}", i.Type)
}

// ParseIntent decodes and checks an intent message
func ParseIntent(data []byte) (*Intent, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty message", ErrInvalidIntent)
	}
	if len(data) > MaxIntentSize {
		return nil, fmt.Errorf("%w: message too large: %d bytes (max %d)", ErrInvalidIntent, len(data), MaxIntentSize)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var in Intent
	if err := dec.Decode(&in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIntent, err)
	}

	if !isKnownIntentType(in.Type) {
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidIntent, in.Type)
	}

	if in.Type == IntentEdit {
		if in.Field == "" {
			return nil, fmt.Errorf("%w: edit requires a field", ErrInvalidIntent)
		}
		if len(in.Value) == 0 {
			return nil, fmt.Errorf("%w: edit requires a value", ErrInvalidIntent)
		}
	} else if in.Field != "" || len(in.Value) != 0 {
		return nil, fmt.Errorf("%w: %s takes no field or value", ErrInvalidIntent, in.Type)
	}

	return &in, nil
}

// ValueFor converts the raw JSON value into a field value of the kind the
// schema declares for the intent's field. Booleans must be JSON booleans;
// text and enum values must be JSON strings.
func (i *Intent) ValueFor(schema *registration.Schema) (registration.Value, error) {
	spec, ok := schema.Lookup(i.Field)
	if !ok {
		return registration.Value{}, fmt.Errorf("%q: %w", i.Field, registration.ErrUnknownField)
	}

	switch spec.Kind {
	case registration.KindBool:
		var b bool
		if err := json.Unmarshal(i.Value, &b); err != nil {
			return registration.Value{}, fmt.Errorf("%q expects a boolean: %w", i.Field, registration.ErrKindMismatch)
		}
		return registration.Bool(b), nil

	default:
		var s string
		if err := json.Unmarshal(i.Value, &s); err != nil {
			return registration.Value{}, fmt.Errorf("%q expects a string: %w", i.Field, registration.ErrKindMismatch)
		}
		if spec.Kind == registration.KindEnum {
			return registration.Enum(s), nil
		}
		return registration.Text(s), nil
	}
}

func isKnownIntentType(t IntentType) bool {
	switch t {
	case IntentEdit, IntentAdvance, IntentRetreat, IntentSettle,
		IntentSubmit, IntentStartOver, IntentSnapshot:
		return true
	default:
		return false
	}
}

// GetIntentTypeName returns a human-readable name for an intent type
func GetIntentTypeName(t IntentType) string {
	switch t {
	case IntentEdit:
		return "Edit Field"
	case IntentAdvance:
		return "Next Step"
	case IntentRetreat:
		return "Previous Step"
	case IntentSettle:
		return "Transition Complete"
	case IntentSubmit:
		return "Submit Registration"
	case IntentStartOver:
		return "Register Another Account"
	case IntentSnapshot:
		return "Refresh"
	default:
		return fmt.Sprintf("Unknown (%s)", string(t))
	}
}
