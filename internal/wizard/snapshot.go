package wizard

import (
	"github.com/muurk/skyreg/internal/registration"
)

// Action names an intent a renderer may currently send
type Action string

const (
	ActionEdit      Action = "edit"
	ActionAdvance   Action = "advance"
	ActionRetreat   Action = "retreat"
	ActionSettle    Action = "settle"
	ActionSubmit    Action = "submit"
	ActionStartOver Action = "start_over"
)

// Submit control labels
const (
	SubmitLabelIdle       = "Submit Registration"
	SubmitLabelSubmitting = "Submitting..."
)

// StepView is a step together with its indicator status
type StepView struct {
	Step
	Status StepStatus `json:"status"`
}

// FieldView is the renderer's view of one field
type FieldView struct {
	Name        string      `json:"name"`
	Label       string      `json:"label"`
	Kind        string      `json:"kind"`
	Value       interface{} `json:"value"`
	Display     string      `json:"display"`
	Options     []string    `json:"options,omitempty"`
	Placeholder string      `json:"placeholder,omitempty"`
	Required    bool        `json:"required"`
	SoftLimit   int         `json:"softLimit,omitempty"`
	Error       string      `json:"error,omitempty"`
	Dirty       bool        `json:"dirty"`
	Touched     bool        `json:"touched"`
}

// Snapshot is everything a renderer needs to draw the wizard
type Snapshot struct {
	SessionID    string                     `json:"sessionId"`
	Step         int                        `json:"step"`
	TotalSteps   int                        `json:"totalSteps"`
	Title        string                     `json:"title"`
	Description  string                     `json:"description"`
	Phase        string                     `json:"phase"`
	Progress     float64                    `json:"progress"`
	IsFirstStep  bool                       `json:"isFirstStep"`
	IsLastStep   bool                       `json:"isLastStep"`
	Steps        []StepView                 `json:"steps"`
	Fields       []FieldView                `json:"fields"`
	Errors       map[string]string          `json:"errors,omitempty"`
	Actions      []Action                   `json:"actions"`
	CanSubmit    bool                       `json:"canSubmit"`
	SubmitLabel  string                     `json:"submitLabel"`
	Review       *registration.Registration `json:"review,omitempty"`
	Confirmation *Confirmation              `json:"confirmation,omitempty"`
}

// Snapshot captures the current wizard and form state. Fields holds the
// fields of the current step in display order; Review carries the whole
// payload on the final step.
func (c *Controller) Snapshot() Snapshot {
	step := c.CurrentStep()
	statuses := c.StepStatuses()

	snap := Snapshot{
		SessionID:   c.sessionID,
		Step:        c.current,
		TotalSteps:  c.steps.Len(),
		Title:       step.Title,
		Description: step.Description,
		Phase:       c.phase.String(),
		Progress:    c.Progress(),
		IsFirstStep: c.IsFirstStep(),
		IsLastStep:  c.IsLastStep(),
		Actions:     c.Actions(),
		CanSubmit:   c.CanSubmit(),
		SubmitLabel: SubmitLabelIdle,
	}
	if c.phase == PhaseSubmitting {
		snap.SubmitLabel = SubmitLabelSubmitting
	}

	for i, s := range c.steps.Steps() {
		snap.Steps = append(snap.Steps, StepView{Step: s, Status: statuses[i]})
	}

	for _, name := range step.Fields {
		snap.Fields = append(snap.Fields, c.fieldView(name))
	}

	if errs := c.store.Errors(); len(errs) > 0 {
		snap.Errors = errs
	}
	if c.IsLastStep() {
		review := c.store.Registration()
		snap.Review = &review
	}
	if conf, ok := c.Confirmation(); ok {
		snap.Confirmation = &conf
	}
	return snap
}

func (c *Controller) fieldView(name string) FieldView {
	spec, _ := c.store.Schema().Lookup(name)
	fs, _ := c.store.Field(name)

	view := FieldView{
		Name:        name,
		Label:       spec.Label,
		Kind:        spec.Kind.String(),
		Value:       fs.Value.Interface(),
		Options:     spec.Options,
		Placeholder: spec.Placeholder,
		Required:    spec.Required,
		SoftLimit:   spec.SoftLimit,
		Error:       fs.Error,
		Dirty:       fs.Dirty,
		Touched:     fs.Touched,
	}
	if fs.Value.Kind() == registration.KindBool {
		view.Display = registration.FormatBool(fs.Value.Bool())
	} else {
		view.Display = registration.FormatValue(name, fs.Value.Text())
	}
	return view
}

// Actions lists the intents the current phase accepts
func (c *Controller) Actions() []Action {
	switch c.phase {
	case PhaseTransitioning:
		return []Action{ActionEdit, ActionSettle}
	case PhaseSubmitting:
		return nil
	case PhaseSubmitted:
		return []Action{ActionStartOver}
	}

	actions := []Action{ActionEdit}
	if !c.IsLastStep() {
		actions = append(actions, ActionAdvance)
	}
	if !c.IsFirstStep() {
		actions = append(actions, ActionRetreat)
	}
	if c.CanSubmit() {
		actions = append(actions, ActionSubmit)
	}
	return actions
}
