package wizard

import (
	"fmt"
	"sort"
	"strings"

	"github.com/muurk/skyreg/internal/registration"
)

// Step is one page of the wizard. Fields lists the schema fields the step
// validates before the wizard may advance past it.
type Step struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Fields      []string `json:"fields"`
}

// StepStatus is a step's position relative to the current step
type StepStatus string

const (
	StatusCompleted StepStatus = "completed"
	StatusCurrent   StepStatus = "current"
	StatusUpcoming  StepStatus = "upcoming"
)

// DefaultSteps returns the four registration steps
func DefaultSteps() []Step {
	return []Step{
		{
			ID:          1,
			Title:       "Personal Info",
			Description: "Basic information about you",
			Fields: []string{
				registration.FieldFirstName,
				registration.FieldLastName,
				registration.FieldDateOfBirth,
				registration.FieldGender,
			},
		},
		{
			ID:          2,
			Title:       "Contact Details",
			Description: "How to reach you",
			Fields: []string{
				registration.FieldEmail,
				registration.FieldPhone,
				registration.FieldAddress,
				registration.FieldCity,
				registration.FieldCountry,
			},
		},
		{
			ID:          3,
			Title:       "Preferences",
			Description: "Your travel preferences",
			Fields: []string{
				registration.FieldTravelClass,
				registration.FieldSeatPreference,
				registration.FieldMealPreference,
				registration.FieldSpecialRequests,
			},
		},
		{
			ID:          4,
			Title:       "Review",
			Description: "Confirm your details",
			Fields: []string{
				registration.FieldTermsAccepted,
				registration.FieldNewsletterSubscribe,
			},
		},
	}
}

// StepTable is an ordered, validated list of steps
type StepTable struct {
	steps []Step
	owner map[string]int
}

// NewStepTable checks that steps are numbered 1..N in order, that no field
// belongs to two steps, and that together they cover every schema field.
func NewStepTable(schema *registration.Schema, steps []Step) (*StepTable, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("step table is empty")
	}

	t := &StepTable{
		steps: make([]Step, len(steps)),
		owner: make(map[string]int),
	}
	for i, s := range steps {
		if s.ID != i+1 {
			return nil, fmt.Errorf("step %d has id %d, want %d", i, s.ID, i+1)
		}
		for _, name := range s.Fields {
			if !schema.Has(name) {
				return nil, fmt.Errorf("step %d field %q: %w", s.ID, name, registration.ErrUnknownField)
			}
			if prev, dup := t.owner[name]; dup {
				return nil, fmt.Errorf("field %q is owned by steps %d and %d", name, prev, s.ID)
			}
			t.owner[name] = s.ID
		}
		s.Fields = append([]string(nil), s.Fields...)
		t.steps[i] = s
	}

	var orphans []string
	for _, name := range schema.Names() {
		if _, ok := t.owner[name]; !ok {
			orphans = append(orphans, name)
		}
	}
	if len(orphans) > 0 {
		sort.Strings(orphans)
		return nil, fmt.Errorf("fields not owned by any step: %s", strings.Join(orphans, ", "))
	}

	return t, nil
}

// Len returns the number of steps
func (t *StepTable) Len() int {
	return len(t.steps)
}

// Step returns the step with the given 1-based id
func (t *StepTable) Step(id int) (Step, bool) {
	if id < 1 || id > len(t.steps) {
		return Step{}, false
	}
	return t.steps[id-1], true
}

// Steps returns a copy of all steps in order
func (t *StepTable) Steps() []Step {
	out := make([]Step, len(t.steps))
	copy(out, t.steps)
	return out
}

// Owner returns the id of the step that owns a field, or 0
func (t *StepTable) Owner(field string) int {
	return t.owner[field]
}
