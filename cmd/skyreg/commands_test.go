package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/muurk/skyreg/internal/discovery"
	"github.com/muurk/skyreg/internal/registration"
	"github.com/muurk/skyreg/internal/ui"
	"github.com/muurk/skyreg/internal/wizard"
)

func adaAnswers() registration.Registration {
	r := registration.Registration{
		FirstName:     "Ada",
		LastName:      "Lovelace",
		DateOfBirth:   "1815-12-10",
		Email:         "ada@example.com",
		Phone:         "+44 20 7946 0000",
		Address:       "12 St James's Square",
		City:          "London",
		Country:       "United Kingdom",
		TermsAccepted: true,
	}
	return r.WithDefaults()
}

func instantSubmitter(fail error) wizard.Submitter {
	return wizard.SubmitterFunc(func(ctx context.Context, r registration.Registration) (wizard.Confirmation, error) {
		if fail != nil {
			return wizard.Confirmation{}, fail
		}
		return wizard.Confirmation{Reference: "SKY-C0FFEE00", SubmittedAt: time.Now(), Registration: r}, nil
	})
}

func TestValidateAnswers(t *testing.T) {
	incomplete := adaAnswers()
	incomplete.Email = "not-an-email"
	incomplete.City = ""

	tests := []struct {
		name    string
		answers registration.Registration
		styled  bool
		wantErr bool
		want    []string
	}{
		{"plain ok", adaAnswers(), false, false, []string{"answers.yaml: OK", "Ada Lovelace"}},
		{"plain invalid", incomplete, false, true, []string{"2 issue(s)"}},
		{"styled ok", adaAnswers(), true, false, []string{"VALIDATE ANSWERS", "Answers are complete", "ada@example.com"}},
		{"styled invalid", incomplete, true, true, []string{"Answers are incomplete", "City:", "Email"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := validateAnswers(&buf, "answers.yaml", tt.answers, false, tt.styled)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateAnswers() error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, w := range tt.want {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("output missing %q:\n%s", w, buf.String())
				}
			}
		})
	}
}

func TestFieldIssues_UsesLabels(t *testing.T) {
	schema := registration.DefaultSchema()
	errs := registration.ValidationErrors{
		registration.NewFieldError(registration.FieldFirstName, "This field is required"),
		registration.NewFieldError("mystery", "unknown"),
	}

	got := fieldIssues(schema, errs)
	spec, _ := schema.Lookup(registration.FieldFirstName)
	if got[0] != spec.Label+": This field is required" {
		t.Errorf("issue[0] = %q", got[0])
	}
	if got[1] != "mystery: unknown" {
		t.Errorf("issue[1] = %q", got[1])
	}
}

func TestSubmitAnswers_Success(t *testing.T) {
	var buf bytes.Buffer
	conf, err := submitAnswers(context.Background(), &buf, "answers.yaml", adaAnswers(), instantSubmitter(nil), true, 90)
	if err != nil {
		t.Fatalf("submitAnswers() error = %v\n%s", err, buf.String())
	}
	if conf.Reference != "SKY-C0FFEE00" {
		t.Errorf("Reference = %q", conf.Reference)
	}

	out := buf.String()
	for _, want := range []string{"SUBMIT REGISTRATION", "[1/5] Personal Info", "[5/5] Submit", "SKY-C0FFEE00", "Payload", "firstName: Ada"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSubmitAnswers_BlockedStep(t *testing.T) {
	answers := adaAnswers()
	answers.Phone = ""

	var buf bytes.Buffer
	_, err := submitAnswers(context.Background(), &buf, "answers.yaml", answers, instantSubmitter(nil), false, 90)

	var ve registration.ValidationErrors
	if !errors.As(err, &ve) {
		t.Fatalf("error = %v, want validation errors", err)
	}
	if !strings.Contains(err.Error(), "step 2") {
		t.Errorf("error %q does not name the step", err)
	}
	if !strings.Contains(buf.String(), "1 field(s)") {
		t.Errorf("output does not count failing fields:\n%s", buf.String())
	}
}

func TestSubmitAnswers_Refusals(t *testing.T) {
	noTerms := adaAnswers()
	noTerms.TermsAccepted = false

	tests := []struct {
		name      string
		answers   registration.Registration
		submitter wizard.Submitter
		check     func(error) bool
	}{
		{"terms not accepted", noTerms, instantSubmitter(nil), func(err error) bool {
			return errors.Is(err, wizard.ErrTermsNotAccepted)
		}},
		{"backend failure", adaAnswers(), instantSubmitter(errors.New("503")), wizard.IsSubmissionError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			_, err := submitAnswers(context.Background(), &buf, "answers.yaml", tt.answers, tt.submitter, false, 90)
			if !tt.check(err) {
				t.Errorf("error = %v", err)
			}
			if !strings.Contains(buf.String(), "FAILED") {
				t.Errorf("output has no failure box:\n%s", buf.String())
			}
		})
	}
}

func TestPrintInstances(t *testing.T) {
	var buf bytes.Buffer
	p := ui.NewPrinter(&buf).SetWidth(90)

	printInstances(p, nil)
	if !strings.Contains(buf.String(), "No session servers found") {
		t.Errorf("empty scan output:\n%s", buf.String())
	}

	buf.Reset()
	printInstances(p, []*discovery.Instance{{Name: "skyreg on kiosk-3", IP: "10.0.0.7", Port: 8080}})
	for _, want := range []string{"Found 1 session server(s)", "ws://10.0.0.7:8080/ws"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q:\n%s", want, buf.String())
		}
	}
}
