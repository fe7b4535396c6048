package registration

import (
	"strings"
	"testing"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		field string
		raw   string
		want  string
	}{
		{FieldGender, "prefer-not-to-say", "Prefer Not To Say"},
		{FieldGender, "female", "Female"},
		{FieldTravelClass, "first", "First Class"},
		{FieldTravelClass, "business", "Business"},
		{FieldTravelClass, "economy", "Economy"},
		{FieldSeatPreference, "aisle", "Aisle"},
		{FieldMealPreference, "halal", "Halal"},
		{FieldCity, "new york", "new york"},
		{FieldGender, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.field+"/"+tt.raw, func(t *testing.T) {
			if got := FormatValue(tt.field, tt.raw); got != tt.want {
				t.Errorf("FormatValue(%s, %q) = %q, want %q", tt.field, tt.raw, got, tt.want)
			}
		})
	}
}

// TestFormatValue_TotalOverEnums checks every declared enum member produces a
// non-empty label
func TestFormatValue_TotalOverEnums(t *testing.T) {
	for _, f := range DefaultSchema().Fields() {
		if f.Kind != KindEnum {
			continue
		}
		for _, opt := range f.Options {
			if FormatValue(f.Name, opt) == "" {
				t.Errorf("FormatValue(%s, %q) returned empty label", f.Name, opt)
			}
		}
	}
}

func TestRegistration_FormatDetailed(t *testing.T) {
	r := validRegistration()
	out := r.FormatDetailed()

	for _, want := range []string{"Ada Lovelace", "First Class", "Vegetarian", "London, United Kingdom", "Window blind stays open"} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatDetailed() missing %q", want)
		}
	}

	r.SpecialRequests = ""
	if strings.Contains(r.FormatDetailed(), "Requests:") {
		t.Error("FormatDetailed() should omit empty special requests")
	}
}
