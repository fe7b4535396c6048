package wizard

import (
	"testing"

	"github.com/muurk/skyreg/internal/registration"
)

// completeStep fills in valid values for every field of a step
func completeStep(t *testing.T, c *Controller, step int) {
	t.Helper()

	values := map[int]map[string]registration.Value{
		1: {
			registration.FieldFirstName:   registration.Text("Ada"),
			registration.FieldLastName:    registration.Text("Lovelace"),
			registration.FieldDateOfBirth: registration.Text("1815-12-10"),
		},
		2: {
			registration.FieldEmail:   registration.Text("ada@example.com"),
			registration.FieldPhone:   registration.Text("+44 20 7946 0000"),
			registration.FieldAddress: registration.Text("12 St James's Square"),
			registration.FieldCity:    registration.Text("London"),
			registration.FieldCountry: registration.Text("United Kingdom"),
		},
		3: {
			registration.FieldTravelClass: registration.Enum("business"),
		},
		4: {
			registration.FieldTermsAccepted: registration.Bool(true),
		},
	}

	for name, v := range values[step] {
		if err := c.Edit(name, v); err != nil {
			t.Fatalf("Edit(%s) error = %v", name, err)
		}
	}
}

// walkToFinalStep completes steps 1-3 and advances to the review step
func walkToFinalStep(t *testing.T, c *Controller) {
	t.Helper()

	for step := 1; step < c.Steps().Len(); step++ {
		completeStep(t, c, step)
		res, err := c.Advance()
		if err != nil || res != NavMoved {
			t.Fatalf("Advance() from step %d = %v, %v", step, res, err)
		}
		c.Settle()
	}
	if !c.IsLastStep() {
		t.Fatalf("Current() = %d, want final step", c.Current())
	}
}
