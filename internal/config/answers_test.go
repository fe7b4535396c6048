package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/muurk/skyreg/internal/registration"
)

const adaAnswers = `firstName: Ada
lastName: Lovelace
dateOfBirth: "1815-12-10"
email: ada@example.com
phone: "+44 20 7946 0000"
address: 12 St James's Square
city: London
country: United Kingdom
travelClass: first
termsAccepted: true
`

func TestParseAnswers(t *testing.T) {
	r, err := ParseAnswers([]byte(adaAnswers))
	if err != nil {
		t.Fatalf("ParseAnswers() error = %v", err)
	}

	want := registration.Registration{
		FirstName:      "Ada",
		LastName:       "Lovelace",
		DateOfBirth:    "1815-12-10",
		Gender:         registration.GenderPreferNotToSay,
		Email:          "ada@example.com",
		Phone:          "+44 20 7946 0000",
		Address:        "12 St James's Square",
		City:           "London",
		Country:        "United Kingdom",
		TravelClass:    registration.TravelClassFirst,
		SeatPreference: registration.SeatWindow,
		MealPreference: registration.MealStandard,
		TermsAccepted:  true,
	}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("ParseAnswers() mismatch (-want +got):\n%s", diff)
	}
	if errs := r.Validate(registration.DefaultSchema()); len(errs) > 0 {
		t.Errorf("parsed answers fail validation: %v", errs)
	}
}

func TestParseAnswers_JSON(t *testing.T) {
	r, err := ParseAnswers([]byte(`{"firstName": "Grace", "newsletterSubscribe": true}`))
	if err != nil {
		t.Fatalf("ParseAnswers(json) error = %v", err)
	}
	if r.FirstName != "Grace" || !r.NewsletterSubscribe {
		t.Errorf("ParseAnswers(json) = %+v", r)
	}
}

func TestParseAnswers_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"empty", "", "empty"},
		{"unknown key", "firstName: Ada\nfavouriteColour: teal\n", "favouriteColour"},
		{"wrong type", "termsAccepted: [yes]\n", "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAnswers([]byte(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ParseAnswers() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestWriteAndLoadAnswers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.yaml")

	r, err := ParseAnswers([]byte(adaAnswers))
	if err != nil {
		t.Fatal(err)
	}
	r.SpecialRequests = "Extra legroom"

	if err := WriteAnswers(path, r); err != nil {
		t.Fatalf("WriteAnswers() error = %v", err)
	}
	loaded, err := LoadAnswers(path)
	if err != nil {
		t.Fatalf("LoadAnswers() error = %v", err)
	}
	if diff := cmp.Diff(r, loaded); diff != "" {
		t.Errorf("answers round trip mismatch (-want +got):\n%s", diff)
	}

	if _, err := LoadAnswers(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadAnswers(missing) succeeded")
	}
}
