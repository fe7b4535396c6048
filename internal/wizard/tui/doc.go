// Package tui is the terminal renderer for the registration wizard.
//
// It is a Bubble Tea program over a single wizard.Controller. The
// controller owns every value, error and phase; the models here hold only
// presentation state such as the field cursor and text input buffers, and
// translate key presses into controller calls.
//
// # Screens
//
// AppModel switches between three screens:
//   - Form: the four registration steps with a step indicator, progress bar
//     and inline field errors. The final step shows review cards and the
//     submit button.
//   - Success: the confirmation reference and a Start Over action.
//   - Failure: the submitter's error, with retry and edit actions. The form
//     keeps every value.
//
// BrowserModel is a separate program used by "skyreg discover". It lists
// session servers found over mDNS and accepts a manual address.
//
// Every screen renders through RenderApplicationContainer so the header,
// border and help footer stay consistent.
//
// # Transitions and submission
//
// With a non-zero transition delay, an accepted move leaves the controller
// transitioning and the form schedules a settle message with tea.Tick. A
// submission runs the Submitter inside a tea.Cmd and reports back with a
// message, so the spinner keeps animating and keys are ignored until the
// result arrives.
//
// # Usage
//
//	final, err := tui.Run(tui.Options{
//	    Submitter:       wizard.NewSimulatedSubmitter(),
//	    TransitionDelay: 150 * time.Millisecond,
//	})
//	if err != nil {
//	    return err
//	}
//	if final.Confirmation != nil {
//	    fmt.Println(final.Confirmation.Reference)
//	}
package tui
