package wizard

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/muurk/skyreg/internal/form"
	"github.com/muurk/skyreg/internal/logging"
	"github.com/muurk/skyreg/internal/registration"
)

// Controller drives one wizard session: the current step, the machine phase
// and the validation gate in front of forward navigation.
//
// A Controller is owned by a single event loop and is not safe for
// concurrent use. Run one per session.
type Controller struct {
	store *form.Store
	steps *StepTable

	current int
	pending int // target step while transitioning
	phase   Phase

	animated     bool
	sessionID    string
	confirmation *Confirmation
}

// Option configures a Controller
type Option func(*Controller)

// WithAnimation holds accepted moves in PhaseTransitioning until Settle is
// called. Renderers use it to play a step transition; requests that arrive
// in the meantime are dropped.
func WithAnimation(enabled bool) Option {
	return func(c *Controller) {
		c.animated = enabled
	}
}

// WithSessionID sets the id used in logs and snapshots
func WithSessionID(id string) Option {
	return func(c *Controller) {
		c.sessionID = id
	}
}

// NewController creates a controller at step 1 over store and steps
func NewController(store *form.Store, steps *StepTable, opts ...Option) *Controller {
	c := &Controller{
		store:   store,
		steps:   steps,
		current: 1,
		phase:   PhaseIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.sessionID == "" {
		c.sessionID = uuid.NewString()
	}
	return c
}

// New creates a controller over the default schema and steps
func New(opts ...Option) *Controller {
	schema := registration.DefaultSchema()
	steps, err := NewStepTable(schema, DefaultSteps())
	if err != nil {
		panic(fmt.Sprintf("wizard: invalid built-in steps: %v", err))
	}
	return NewController(form.NewStore(schema), steps, opts...)
}

// SessionID returns the session id
func (c *Controller) SessionID() string { return c.sessionID }

// Store returns the form state store
func (c *Controller) Store() *form.Store { return c.store }

// Steps returns the step table
func (c *Controller) Steps() *StepTable { return c.steps }

// Phase returns the current machine phase
func (c *Controller) Phase() Phase { return c.phase }

// Current returns the active step id. While transitioning this is still the
// step being left.
func (c *Controller) Current() int { return c.current }

// CurrentStep returns the active step
func (c *Controller) CurrentStep() Step {
	s, _ := c.steps.Step(c.current)
	return s
}

// IsFirstStep reports whether the active step is the first one
func (c *Controller) IsFirstStep() bool { return c.current == 1 }

// IsLastStep reports whether the active step is the final one
func (c *Controller) IsLastStep() bool { return c.current == c.steps.Len() }

// Progress returns the step indicator fraction (current-1)/(N-1), in [0, 1]
func (c *Controller) Progress() float64 {
	n := c.steps.Len()
	if n <= 1 {
		return 1
	}
	return float64(c.current-1) / float64(n-1)
}

// StepStatuses returns the indicator status of every step in order
func (c *Controller) StepStatuses() []StepStatus {
	out := make([]StepStatus, c.steps.Len())
	for i := range out {
		switch id := i + 1; {
		case id < c.current || c.phase == PhaseSubmitted:
			out[i] = StatusCompleted
		case id == c.current:
			out[i] = StatusCurrent
		default:
			out[i] = StatusUpcoming
		}
	}
	return out
}

// Confirmation returns the stored confirmation once submitted
func (c *Controller) Confirmation() (Confirmation, bool) {
	if c.confirmation == nil {
		return Confirmation{}, false
	}
	return *c.confirmation, true
}

// Edit sets a field value. Edits are refused once a submission has started.
func (c *Controller) Edit(name string, v registration.Value) error {
	if err := c.editable(); err != nil {
		return err
	}
	return c.store.Set(name, v)
}

// EditText sets a field from raw input, see form.Store.SetText
func (c *Controller) EditText(name, raw string) error {
	if err := c.editable(); err != nil {
		return err
	}
	return c.store.SetText(name, raw)
}

func (c *Controller) editable() error {
	switch c.phase {
	case PhaseSubmitting:
		return ErrSubmissionInFlight
	case PhaseSubmitted:
		return ErrAlreadySubmitted
	}
	return nil
}

// busy returns the result for a navigation request the phase does not allow
func (c *Controller) busy() (NavResult, bool, error) {
	switch c.phase {
	case PhaseTransitioning:
		return NavIgnored, true, nil
	case PhaseSubmitting:
		return NavIgnored, true, ErrSubmissionInFlight
	case PhaseSubmitted:
		return NavIgnored, true, ErrAlreadySubmitted
	}
	return 0, false, nil
}

// Advance validates the fields of the current step and, if they all pass,
// moves to the next step. On failure the step does not change, the failing
// fields show their errors and the returned error is a
// registration.ValidationErrors.
func (c *Controller) Advance() (NavResult, error) {
	if res, busy, err := c.busy(); busy {
		logging.LogTransition(c.sessionID, c.current, c.current, res.String())
		return res, err
	}

	errs, err := c.store.Validate(c.CurrentStep().Fields...)
	if err != nil {
		return NavBlocked, err
	}
	if len(errs) > 0 {
		logging.LogTransition(c.sessionID, c.current, c.current, NavBlocked.String())
		return NavBlocked, errs
	}

	if c.IsLastStep() {
		return NavAtBoundary, nil
	}
	return c.move(c.current + 1), nil
}

// Retreat moves to the previous step without validating anything. At step 1
// it does nothing.
func (c *Controller) Retreat() (NavResult, error) {
	if res, busy, err := c.busy(); busy {
		logging.LogTransition(c.sessionID, c.current, c.current, res.String())
		return res, err
	}
	if c.IsFirstStep() {
		return NavAtBoundary, nil
	}
	return c.move(c.current - 1), nil
}

func (c *Controller) move(to int) NavResult {
	logging.LogTransition(c.sessionID, c.current, to, NavMoved.String())
	if c.animated {
		c.pending = to
		c.phase = PhaseTransitioning
		return NavMoved
	}
	c.current = to
	return NavMoved
}

// Settle commits a pending transition and returns to PhaseIdle. It reports
// whether a transition was pending.
func (c *Controller) Settle() bool {
	if c.phase != PhaseTransitioning {
		return false
	}
	c.current = c.pending
	c.pending = 0
	c.phase = PhaseIdle
	return true
}
