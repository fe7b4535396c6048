package registration

import (
	"fmt"
	"strconv"
)

// Kind identifies which variant a Value holds
type Kind int

const (
	// KindText is a free-form string
	KindText Kind = iota
	// KindBool is a checkbox value
	KindBool
	// KindEnum is a member of a closed option set
	KindEnum
)

// String returns a human-readable name for the kind
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBool:
		return "bool"
	case KindEnum:
		return "enum"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Value is a single field value. The zero Value is an empty text value.
type Value struct {
	kind Kind
	text string
	flag bool
}

// Text creates a text value
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Bool creates a boolean value
func Bool(b bool) Value {
	return Value{kind: KindBool, flag: b}
}

// Enum creates an enum member value. Membership is checked by the field rule,
// not here.
func Enum(member string) Value {
	return Value{kind: KindEnum, text: member}
}

// Kind returns the variant held by the value
func (v Value) Kind() Kind {
	return v.kind
}

// Text returns the string content for text and enum values, "" otherwise
func (v Value) Text() string {
	if v.kind == KindBool {
		return ""
	}
	return v.text
}

// Bool returns the flag for boolean values, false otherwise
func (v Value) Bool() bool {
	return v.kind == KindBool && v.flag
}

// String formats the value for logs and debugging
func (v Value) String() string {
	if v.kind == KindBool {
		return strconv.FormatBool(v.flag)
	}
	return v.text
}

// Equal reports whether two values hold the same variant and content
func (v Value) Equal(other Value) bool {
	return v == other
}

// Interface returns the value as a plain Go value (string or bool), which is
// what JSON encoders and renderers expect.
func (v Value) Interface() interface{} {
	if v.kind == KindBool {
		return v.flag
	}
	return v.text
}
