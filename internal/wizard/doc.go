// Package wizard implements the registration step wizard: an ordered step
// table, a controller that gates forward navigation on per-step validation,
// and the submission lifecycle.
//
// # State Machine
//
// A session is always on one step (1..N) and in one phase:
//
//	Idle ──Advance/Retreat──▶ Transitioning ──Settle──▶ Idle
//	Idle ──BeginSubmit──▶ Submitting ──CompleteSubmit(ok)──▶ Submitted
//	                                 ──CompleteSubmit(err)─▶ Idle
//	Submitted ──StartOver──▶ Idle (step 1, defaults restored)
//
// Transitioning only occurs when the controller is built WithAnimation. It
// lets a renderer play a step change; navigation that arrives before Settle
// is ignored, not queued, so a double key press moves exactly one step.
//
// # Validation Gate
//
// Advance validates only the fields owned by the current step. If any fail,
// the step does not change and the failures are returned as a
// registration.ValidationErrors (and shown on the fields). Retreat never
// validates. BeginSubmit re-validates the whole form.
//
// # Usage
//
//	c := wizard.New(wizard.WithAnimation(true))
//	_ = c.Edit(registration.FieldFirstName, registration.Text("Ada"))
//	res, err := c.Advance() // NavBlocked: lastName, dateOfBirth missing
//
//	// after completing every step
//	conf, err := c.Submit(ctx, wizard.NewSimulatedSubmitter())
//	if wizard.IsSubmissionError(err) {
//	    // still on the final step, values intact, try again
//	}
//	_ = c.StartOver()
//
// Event-loop renderers that cannot block use BeginSubmit, run the Submitter
// in a command, and report back with CompleteSubmit.
//
// # Snapshots
//
// Snapshot returns a renderer-neutral view of the session (current step,
// fields, errors, step indicator, available actions) that the terminal UI
// draws and the session server sends over the wire.
package wizard
