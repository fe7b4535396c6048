package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/muurk/skyreg/internal/logging"
	"github.com/muurk/skyreg/internal/registration"
)

// Confirmation is the submitter's acknowledgement of a registration
type Confirmation struct {
	Reference    string                    `json:"reference"`
	SubmittedAt  time.Time                 `json:"submittedAt"`
	Registration registration.Registration `json:"registration"`
}

// Submitter delivers a completed registration
type Submitter interface {
	Submit(ctx context.Context, r registration.Registration) (Confirmation, error)
}

// SubmitterFunc adapts a function to the Submitter interface
type SubmitterFunc func(ctx context.Context, r registration.Registration) (Confirmation, error)

// Submit calls f(ctx, r)
func (f SubmitterFunc) Submit(ctx context.Context, r registration.Registration) (Confirmation, error) {
	return f(ctx, r)
}

// DefaultSubmitDelay is how long the simulated submitter takes
const DefaultSubmitDelay = 2 * time.Second

// ErrSimulatedFailure is returned by a SimulatedSubmitter configured to fail
var ErrSimulatedFailure = errors.New("simulated submission failure")

// SimulatedSubmitter stands in for a registration backend. It waits for
// Delay and then accepts the registration, or fails when Fail is set.
type SimulatedSubmitter struct {
	Delay time.Duration
	Fail  bool
}

// NewSimulatedSubmitter creates a submitter with the default delay
func NewSimulatedSubmitter() *SimulatedSubmitter {
	return &SimulatedSubmitter{Delay: DefaultSubmitDelay}
}

// Submit waits for the configured delay. The context only cuts the wait
// short when the process is shutting down.
func (s *SimulatedSubmitter) Submit(ctx context.Context, r registration.Registration) (Confirmation, error) {
	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Confirmation{}, ctx.Err()
		case <-timer.C:
		}
	}

	if s.Fail {
		return Confirmation{}, ErrSimulatedFailure
	}

	return Confirmation{
		Reference:    NewReference(),
		SubmittedAt:  time.Now().UTC(),
		Registration: r,
	}, nil
}

// NewReference generates a booking-style confirmation reference
func NewReference() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "SKY-" + id[:8]
}

// CanSubmit reports whether the submit control should be enabled: final
// step, nothing in flight and the terms accepted.
func (c *Controller) CanSubmit() bool {
	if c.phase != PhaseIdle || !c.IsLastStep() {
		return false
	}
	v, err := c.store.Get(registration.FieldTermsAccepted)
	return err == nil && v.Bool()
}

// BeginSubmit re-validates the whole form and, if it passes, enters
// PhaseSubmitting and returns the payload to hand to a Submitter. Renderers
// that run the submitter asynchronously call CompleteSubmit with its result.
func (c *Controller) BeginSubmit() (registration.Registration, error) {
	switch c.phase {
	case PhaseSubmitting:
		return registration.Registration{}, ErrSubmissionInFlight
	case PhaseSubmitted:
		return registration.Registration{}, ErrAlreadySubmitted
	case PhaseTransitioning:
		return registration.Registration{}, ErrTransitionInProgress
	}
	if !c.IsLastStep() {
		return registration.Registration{}, ErrNotFinalStep
	}

	if v, _ := c.store.Get(registration.FieldTermsAccepted); !v.Bool() {
		_, _ = c.store.Validate(registration.FieldTermsAccepted)
		return registration.Registration{}, ErrTermsNotAccepted
	}

	if errs := c.store.ValidateAll(); len(errs) > 0 {
		logging.LogSubmission(c.sessionID, "rejected", zap.Strings("fields", errs.Fields()))
		return registration.Registration{}, errs
	}

	c.phase = PhaseSubmitting
	logging.LogSubmission(c.sessionID, "started")
	return c.store.Registration(), nil
}

// CompleteSubmit records the submitter's result. On success the wizard
// becomes Submitted; on failure it returns to Idle on the final step with
// every value intact and a *SubmissionError is returned.
func (c *Controller) CompleteSubmit(conf Confirmation, err error) error {
	if c.phase != PhaseSubmitting {
		return ErrNoSubmission
	}

	if err != nil {
		c.phase = PhaseIdle
		logging.LogSubmission(c.sessionID, "failed", zap.Error(err))
		return NewSubmissionError(err)
	}

	c.phase = PhaseSubmitted
	c.confirmation = &conf
	logging.LogSubmission(c.sessionID, "succeeded", zap.String("reference", conf.Reference))
	return nil
}

// Submit runs a whole submission synchronously: BeginSubmit, the submitter
// call, then CompleteSubmit.
func (c *Controller) Submit(ctx context.Context, s Submitter) (Confirmation, error) {
	payload, err := c.BeginSubmit()
	if err != nil {
		return Confirmation{}, fmt.Errorf("submit: %w", err)
	}

	conf, serr := s.Submit(ctx, payload)
	if err := c.CompleteSubmit(conf, serr); err != nil {
		return Confirmation{}, err
	}
	return conf, nil
}

// StartOver resets every field to its default and returns to step 1. It is
// only available once a registration has been submitted.
func (c *Controller) StartOver() error {
	if c.phase != PhaseSubmitted {
		return ErrNotSubmitted
	}

	c.store.Reset()
	c.current = 1
	c.pending = 0
	c.phase = PhaseIdle
	c.confirmation = nil
	logging.LogSubmission(c.sessionID, "reset")
	return nil
}
