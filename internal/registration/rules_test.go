package registration

import (
	"strings"
	"testing"
)

// TestMinLength tests character-count validation
func TestMinLength(t *testing.T) {
	rule := MinLength(2, "too short")

	tests := []struct {
		name    string
		value   Value
		wantMsg string
	}{
		{"Valid: exactly two", Text("Al"), ""},
		{"Valid: longer", Text("Alice"), ""},
		{"Valid: two runes, four bytes", Text("Łó"), ""},
		{"Invalid: one char", Text("A"), "too short"},
		{"Invalid: empty", Text(""), "too short"},
		{"Invalid: wrong kind", Bool(true), "too short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rule(tt.value); got != tt.wantMsg {
				t.Errorf("MinLength(2)(%v) = %q, want %q", tt.value, got, tt.wantMsg)
			}
		})
	}
}

// TestIsEmail tests the accepted email grammar
func TestIsEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"a@b.com", true},
		{"your.email@example.com", true},
		{"first+tag@mail.example.co.uk", true},
		{"o'brien@example.ie", true},
		{"not-an-email", false},
		{"", false},
		{"a@b", false},
		{"a@b.c", false},
		{"@example.com", false},
		{".a@example.com", false},
		{"a..b@example.com", false},
		{"a.@example.com", false},
		{"a@-example.com", false},
		{"a b@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := IsEmail(tt.email); got != tt.want {
				t.Errorf("IsEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

// TestOneOf tests enum membership validation
func TestOneOf(t *testing.T) {
	rule := OneOf("window", "aisle", "middle")

	if msg := rule(Enum("aisle")); msg != "" {
		t.Errorf("OneOf(aisle) = %q, want valid", msg)
	}

	msg := rule(Enum("cockpit"))
	if msg == "" {
		t.Fatal("OneOf(cockpit) should fail")
	}
	if !strings.Contains(msg, "'window' | 'aisle' | 'middle'") {
		t.Errorf("OneOf message %q should list the options", msg)
	}

	if msg := rule(Text("aisle")); msg == "" {
		t.Error("OneOf should reject a text value even if the content matches")
	}
}

// TestMustBeTrue tests the terms checkbox rule
func TestMustBeTrue(t *testing.T) {
	rule := MustBeTrue("accept")

	if got := rule(Bool(true)); got != "" {
		t.Errorf("MustBeTrue(true) = %q, want valid", got)
	}
	if got := rule(Bool(false)); got != "accept" {
		t.Errorf("MustBeTrue(false) = %q, want %q", got, "accept")
	}
	if got := rule(Text("true")); got != "accept" {
		t.Errorf("MustBeTrue(text) = %q, want %q", got, "accept")
	}
}

// TestChain tests that chained rules report the first failure
func TestChain(t *testing.T) {
	rule := Chain(Required("required"), MinLength(3, "short"))

	tests := []struct {
		value   Value
		wantMsg string
	}{
		{Text(""), "required"},
		{Text("ab"), "short"},
		{Text("abc"), ""},
	}

	for _, tt := range tests {
		if got := rule(tt.value); got != tt.wantMsg {
			t.Errorf("Chain(%q) = %q, want %q", tt.value.Text(), got, tt.wantMsg)
		}
	}
}

func TestOptionalRules(t *testing.T) {
	if got := OptionalText()(Text(strings.Repeat("x", SpecialRequestsSoftLimit+50))); got != "" {
		t.Errorf("OptionalText should accept text beyond the soft limit, got %q", got)
	}
	if got := OptionalBool()(Bool(false)); got != "" {
		t.Errorf("OptionalBool(false) = %q, want valid", got)
	}
	if got := OptionalBool()(Text("")); got == "" {
		t.Error("OptionalBool should reject text values")
	}
}
