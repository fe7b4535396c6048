package registration

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Rule validates a single value and returns an error message, or "" when the
// value is acceptable. Rules must be pure and must never panic.
type Rule func(v Value) string

// emailPattern accepts local@label(.label)*.tld with a TLD of two or more
// letters. Leading and doubled dots in the local part are rejected separately
// because RE2 has no lookahead.
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9_'+\-.]*[A-Za-z0-9_+\-]@([A-Za-z0-9][A-Za-z0-9\-]*\.)+[A-Za-z]{2,}$`)

// MinLength requires a text value of at least n characters (runes)
func MinLength(n int, message string) Rule {
	return func(v Value) string {
		if v.Kind() != KindText {
			return message
		}
		if utf8.RuneCountInString(v.Text()) < n {
			return message
		}
		return ""
	}
}

// Required requires a non-empty text value
func Required(message string) Rule {
	return MinLength(1, message)
}

// Email requires a text value that looks like an email address
func Email(message string) Rule {
	return func(v Value) string {
		if v.Kind() != KindText || !IsEmail(v.Text()) {
			return message
		}
		return ""
	}
}

// IsEmail reports whether s matches the accepted email grammar
func IsEmail(s string) bool {
	if strings.HasPrefix(s, ".") || strings.Contains(s, "..") {
		return false
	}
	return emailPattern.MatchString(s)
}

// OneOf requires an enum value whose member is in options. The message lists
// the options, mirroring how schema errors for impossible enum values are
// reported.
func OneOf(options ...string) Rule {
	quoted := make([]string, len(options))
	for i, o := range options {
		quoted[i] = "'" + o + "'"
	}
	message := fmt.Sprintf("Invalid enum value. Expected %s", strings.Join(quoted, " | "))

	return func(v Value) string {
		if v.Kind() != KindEnum {
			return message
		}
		for _, o := range options {
			if v.Text() == o {
				return ""
			}
		}
		return message
	}
}

// MustBeTrue requires a boolean value equal to true
func MustBeTrue(message string) Rule {
	return func(v Value) string {
		if v.Kind() != KindBool || !v.Bool() {
			return message
		}
		return ""
	}
}

// OptionalText accepts any text value. Values of another kind are rejected
// with a generic message.
func OptionalText() Rule {
	return func(v Value) string {
		if v.Kind() != KindText {
			return "Expected text"
		}
		return ""
	}
}

// OptionalBool accepts any boolean value
func OptionalBool() Rule {
	return func(v Value) string {
		if v.Kind() != KindBool {
			return "Expected a boolean"
		}
		return ""
	}
}

// Chain runs rules in order and returns the first failure
func Chain(rules ...Rule) Rule {
	return func(v Value) string {
		for _, r := range rules {
			if msg := r(v); msg != "" {
				return msg
			}
		}
		return ""
	}
}
