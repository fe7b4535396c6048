// Package ui renders the styled, non-interactive output of the skyreg
// commands: validate, submit, discover and config.
//
// Unlike the interactive wizard, these components print once and exit.
// There are four building blocks:
//
//   - Header: command banner with ordered parameters
//   - Progress: bar and step list for multi-step runs
//   - Result: success, failure or warning box
//   - Listing: a box of preformatted text for verbose output
//
// Runner ties them together for commands that walk several steps:
//
//	runner := ui.NewRunner(ui.RunnerConfig{
//	    Title:     "Submit Registration",
//	    Command:   "skyreg submit",
//	    Params:    []ui.Param{{Key: "File", Value: path}},
//	    StepNames: []string{"Personal Info", "Contact Details", "Preferences", "Review", "Submit"},
//	})
//
//	details, err := runner.Run(ctx, func(ctx context.Context, onStep ui.StepCallback) ([]ui.Param, error) {
//	    onStep(1, ui.StepComplete, "")
//	    ...
//	})
//
// Logging stays silent unless SKYREG_LOG_LEVEL is set, so this output is
// not interleaved with zap lines.
package ui
