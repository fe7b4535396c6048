package registration

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFromValues(t *testing.T) {
	want := validRegistration()

	got, err := FromValues(want.Values())
	if err != nil {
		t.Fatalf("FromValues() error = %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FromValues() mismatch (-want +got):\n%s", diff)
	}
}

func TestFromValues_Incomplete(t *testing.T) {
	values := validRegistration().Values()
	delete(values, FieldCity)
	values[FieldTermsAccepted] = Text("yes")

	_, err := FromValues(values)
	if !errors.Is(err, ErrKindMismatch) {
		t.Fatalf("FromValues() error = %v, want ErrKindMismatch", err)
	}
	for _, name := range []string{FieldCity, FieldTermsAccepted} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q should name %s", err, name)
		}
	}
}

func TestRegistration_WithDefaults(t *testing.T) {
	r := Registration{FirstName: "Al"}.WithDefaults()

	if r.Gender != GenderPreferNotToSay || r.TravelClass != TravelClassEconomy ||
		r.SeatPreference != SeatWindow || r.MealPreference != MealStandard {
		t.Errorf("WithDefaults() enums = %s/%s/%s/%s", r.Gender, r.TravelClass, r.SeatPreference, r.MealPreference)
	}
	if r.Email != "" {
		t.Error("WithDefaults() must not invent text values")
	}
}

func TestRegistration_Validate(t *testing.T) {
	schema := DefaultSchema()

	r := validRegistration()
	r.TermsAccepted = false
	errs := r.Validate(schema)
	if diff := cmp.Diff([]string{FieldTermsAccepted}, errs.Fields()); diff != "" {
		t.Errorf("Validate() failing fields mismatch (-want +got):\n%s", diff)
	}

	r = validRegistration()
	r.MealPreference = "pescatarian"
	if errs := r.Validate(schema); errs.Message(FieldMealPreference) == "" {
		t.Error("out-of-domain meal preference should fail validation")
	}
}
