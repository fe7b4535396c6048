package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"
)

// RunnerConfig describes a multi-step command run
type RunnerConfig struct {
	Title           string   // e.g., "Submit Registration"
	Command         string   // e.g., "skyreg submit"
	Params          []Param  // Shown in the header
	StepNames       []string // One per step, in order
	Troubleshooting []string // Tips printed on failure
	Verbose         bool     // Print the listing after the result
	Output          io.Writer
	Width           int // 0 = terminal width
}

// Operation is the work a Runner drives. It reports progress through
// onStep and returns detail lines for the success box.
type Operation func(ctx context.Context, onStep StepCallback) ([]Param, error)

// Runner prints header, step progress and result around an Operation
type Runner struct {
	config   RunnerConfig
	header   *Header
	progress *Progress
	output   io.Writer
	width    int

	issues       []string
	listingTitle string
	listing      string
}

// NewRunner creates a runner for a command
func NewRunner(config RunnerConfig) *Runner {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	width := config.Width
	if width == 0 {
		width = GetTerminalWidth()
	}

	var prog *Progress
	if len(config.StepNames) > 0 {
		prog = NewProgress("", config.StepNames...)
		prog.SetWidth(width)
	}

	return &Runner{
		config:   config,
		header:   NewHeader(config.Title, config.Command, config.Params...).SetWidth(width),
		progress: prog,
		output:   config.Output,
		width:    width,
	}
}

// SetIssues records problem lines for the failure box
func (r *Runner) SetIssues(issues []string) {
	r.issues = issues
}

// SetListing stores content shown in verbose mode
func (r *Runner) SetListing(title, content string) {
	r.listingTitle = title
	r.listing = content
}

// Progress exposes the step tracker, nil when the run has no steps
func (r *Runner) Progress() *Progress {
	return r.progress
}

// Run prints the header, executes op and prints the result box
func (r *Runner) Run(ctx context.Context, op Operation) ([]Param, error) {
	start := time.Now()

	_, _ = fmt.Fprintln(r.output, r.header.Render())
	_, _ = fmt.Fprintln(r.output)

	details, err := op(ctx, r.onStep)
	duration := time.Since(start).Round(time.Millisecond)

	_, _ = fmt.Fprintln(r.output)
	if err != nil {
		res := NewFailureResult(r.config.Title+" failed", err, r.config.Troubleshooting...)
		res.AddIssues(r.issues...)
		_, _ = fmt.Fprintln(r.output, res.SetWidth(r.width).Render())
	} else {
		res := NewSuccessResult(r.config.Title+" complete", details...)
		res.AddDetail("Duration", duration.String())
		_, _ = fmt.Fprintln(r.output, res.SetWidth(r.width).Render())
	}

	if r.config.Verbose && r.listing != "" {
		_, _ = fmt.Fprintln(r.output)
		_, _ = fmt.Fprintln(r.output, NewListing(r.listingTitle, r.listing).SetWidth(r.width).Render())
	}

	return details, err
}

// onStep updates the tracker and prints each finished step
func (r *Runner) onStep(number int, status StepStatus, message string) {
	if r.progress == nil || number < 1 || number > r.progress.Total() {
		return
	}
	r.progress.UpdateStep(number, status, message)

	switch status {
	case StepComplete, StepFailed, StepSkipped:
		_, _ = fmt.Fprintln(r.output, r.progress.RenderStepLine(r.progress.Steps[number-1]))
	}
}
