package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/muurk/skyreg/internal/config"
	"github.com/muurk/skyreg/internal/discovery"
	"github.com/muurk/skyreg/internal/registration"
	"github.com/muurk/skyreg/internal/ui"
	"github.com/muurk/skyreg/internal/wizard"
	"github.com/muurk/skyreg/internal/wizard/tui"
)

// Command flags
var (
	answersPath string
	savePath    string
	verbose     bool
	scanTimeout int
	interactive bool
	serverName  string
)

func init() {
	wizardCmd.Flags().StringVar(&answersPath, "answers", "", "Answers file to start from (YAML or JSON)")
	wizardCmd.Flags().StringVar(&savePath, "save", "", "Write the entered answers to this file on exit")

	validateCmd.Flags().StringVarP(&answersPath, "file", "f", "", "Answers file to validate (required)")
	validateCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print the formatted registration")
	_ = validateCmd.MarkFlagRequired("file")

	submitCmd.Flags().StringVarP(&answersPath, "file", "f", "", "Answers file to submit (required)")
	submitCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print the submitted payload")
	_ = submitCmd.MarkFlagRequired("file")

	discoverCmd.Flags().IntVar(&scanTimeout, "timeout", 0, "Scan timeout in seconds (default from settings)")
	discoverCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Pick a server from a list")
	discoverCmd.Flags().StringVar(&serverName, "name", "", "Wait for the server with this instance name and print its URL")

	rootCmd.AddCommand(wizardCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(discoverCmd)
}

// newSubmitter builds the simulated backend from settings
func newSubmitter(s *config.Settings) wizard.Submitter {
	return &wizard.SimulatedSubmitter{
		Delay: s.SubmitDelay(),
		Fail:  s.Submission.SimulateFailure,
	}
}

// wizardCmd launches the interactive TUI wizard
var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Launch the interactive registration wizard",
	Long: `Launch the four-step registration wizard.

Each step is validated before the wizard moves on. The final step shows a
review of everything entered; accept the terms and press ctrl+s to submit.`,
	Example: `  # Launch the wizard
  skyreg wizard
  # Or simply (wizard is default):
  skyreg

  # Start from a partially filled answers file and keep what was entered
  skyreg wizard --answers draft.yaml --save draft.yaml`,
	RunE: runWizard,
}

func runWizard(cmd *cobra.Command, args []string) error {
	if !ui.IsTerminal(os.Stdin) || !ui.IsTerminal(os.Stdout) {
		return errors.New("the wizard needs an interactive terminal; use 'skyreg submit --file' for scripted registration")
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	opts := tui.Options{
		Submitter:       newSubmitter(settings),
		Countries:       settings.Countries,
		TransitionDelay: settings.TransitionDelay(),
	}
	if answersPath != "" {
		answers, err := config.LoadAnswers(answersPath)
		if err != nil {
			return err
		}
		opts.Answers = &answers
	}

	final, err := tui.Run(opts)
	if err != nil {
		return fmt.Errorf("wizard error: %w", err)
	}

	if savePath != "" {
		if err := config.WriteAnswers(savePath, final.Controller.Store().Registration()); err != nil {
			return err
		}
	}

	if final.Confirmation != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (reference %s)\n",
			final.Confirmation.Registration.FullName(), final.Confirmation.Reference)
	}
	return nil
}

// validateCmd checks an answers file against the schema
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check an answers file without submitting it",
	Example: `  skyreg validate --file answers.yaml
  skyreg validate -f answers.json --verbose`,
	RunE: func(cmd *cobra.Command, args []string) error {
		answers, err := config.LoadAnswers(answersPath)
		if err != nil {
			return err
		}
		return validateAnswers(cmd.OutOrStdout(), answersPath, answers, verbose, ui.IsTerminal(os.Stdout))
	},
}

// validateAnswers prints the outcome of validating answers. Plain output is
// used when stdout is not a terminal.
func validateAnswers(w io.Writer, path string, answers registration.Registration, verbose, styled bool) error {
	schema := registration.DefaultSchema()
	errs := answers.Validate(schema)

	if !styled {
		if len(errs) > 0 {
			fmt.Fprint(w, registration.FormatValidationErrors(errs))
			return fmt.Errorf("%s: %d invalid field(s)", path, len(errs))
		}
		fmt.Fprintf(w, "%s: OK (%s)\n", path, answers.Summary())
		if verbose {
			fmt.Fprintln(w, answers.FormatDetailed())
		}
		return nil
	}

	p := ui.NewPrinter(w)
	p.PrintHeader("Validate Answers", "skyreg validate", ui.Param{Key: "File", Value: path})

	if len(errs) > 0 {
		p.PrintFailure("Answers are incomplete",
			fmt.Errorf("%d invalid field(s)", len(errs)),
			fieldIssues(schema, errs),
			"Fix the listed fields and run validate again",
			"Run 'skyreg wizard --answers "+path+"' to finish interactively",
		)
		return fmt.Errorf("%s: %d invalid field(s)", path, len(errs))
	}

	p.PrintSuccess("Answers are complete",
		ui.Param{Key: "Name", Value: answers.FullName()},
		ui.Param{Key: "Email", Value: answers.Email},
		ui.Param{Key: "Travel Class", Value: registration.FormatValue(registration.FieldTravelClass, string(answers.TravelClass))},
	)
	if verbose {
		p.Newline()
		p.PrintListing("Registration", answers.FormatDetailed())
	}
	return nil
}

// fieldIssues turns validation errors into "Label: message" lines
func fieldIssues(schema *registration.Schema, errs registration.ValidationErrors) []string {
	issues := make([]string, 0, len(errs))
	for _, fe := range errs {
		label := fe.Field
		if spec, ok := schema.Lookup(fe.Field); ok {
			label = spec.Label
		}
		issues = append(issues, label+": "+fe.Message)
	}
	return issues
}

// submitCmd validates and submits an answers file
var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit an answers file without the interactive wizard",
	Long: `Walk an answers file through the same steps as the wizard and submit it.

Each step is validated in order, exactly as the wizard would, and the
terms must be accepted (termsAccepted: true) before submission.`,
	Example: `  skyreg submit --file answers.yaml
  skyreg submit -f answers.yaml --verbose`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		answers, err := config.LoadAnswers(answersPath)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		_, err = submitAnswers(ctx, cmd.OutOrStdout(), answersPath, answers, newSubmitter(settings), verbose, 0)
		return err
	},
}

// submitAnswers drives a controller through every step and submits. Width
// 0 uses the terminal width.
func submitAnswers(ctx context.Context, w io.Writer, path string, answers registration.Registration, submitter wizard.Submitter, verbose bool, width int) (wizard.Confirmation, error) {
	c := wizard.New(wizard.WithAnimation(false))
	c.Store().Load(answers)
	steps := c.Steps().Steps()

	names := make([]string, 0, len(steps)+1)
	for _, s := range steps {
		names = append(names, s.Title)
	}
	names = append(names, "Submit")

	runner := ui.NewRunner(ui.RunnerConfig{
		Title:     "Submit Registration",
		Command:   "skyreg submit",
		Params:    []ui.Param{{Key: "File", Value: path}},
		StepNames: names,
		Troubleshooting: []string{
			"Run 'skyreg validate --file " + path + "' to see every problem at once",
			"Set termsAccepted: true to accept the terms and conditions",
		},
		Verbose: verbose,
		Output:  w,
		Width:   width,
	})

	var conf wizard.Confirmation
	_, err := runner.Run(ctx, func(ctx context.Context, onStep ui.StepCallback) ([]ui.Param, error) {
		for i := range steps {
			n := i + 1
			onStep(n, ui.StepRunning, "")
			if c.IsLastStep() {
				if !c.CanSubmit() {
					onStep(n, ui.StepFailed, "terms not accepted")
					return nil, wizard.ErrTermsNotAccepted
				}
				onStep(n, ui.StepComplete, "")
				break
			}

			res, err := c.Advance()
			if res != wizard.NavMoved {
				var ve registration.ValidationErrors
				if errors.As(err, &ve) {
					runner.SetIssues(fieldIssues(c.Store().Schema(), ve))
					onStep(n, ui.StepFailed, fmt.Sprintf("%d field(s)", len(ve)))
				} else {
					onStep(n, ui.StepFailed, res.String())
				}
				return nil, fmt.Errorf("step %d (%s): %w", n, steps[i].Title, err)
			}
			onStep(n, ui.StepComplete, "")
		}

		submitStep := len(steps) + 1
		onStep(submitStep, ui.StepRunning, "")
		payload := c.Store().Registration()
		if data, err := yaml.Marshal(payload); err == nil {
			runner.SetListing("Payload", string(data))
		}

		var err error
		conf, err = c.Submit(ctx, submitter)
		if err != nil {
			var ve registration.ValidationErrors
			if errors.As(err, &ve) {
				runner.SetIssues(fieldIssues(c.Store().Schema(), ve))
			}
			onStep(submitStep, ui.StepFailed, wizard.GetShortErrorMessage(err))
			return nil, err
		}
		onStep(submitStep, ui.StepComplete, "")

		return []ui.Param{
			{Key: "Reference", Value: conf.Reference},
			{Key: "Name", Value: conf.Registration.FullName()},
			{Key: "Submitted", Value: conf.SubmittedAt.Format(time.RFC1123)},
		}, nil
	})

	return conf, err
}

// discoverCmd finds session servers on the local network
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find registration session servers on the local network",
	Long: `Browse mDNS for skyreg session servers (` + discovery.ServiceType + `).

Servers started with 'skyreg-server server --advertise' show up here with
the websocket URL a remote renderer connects to.`,
	Example: `  # Browse for 5 seconds (default)
  skyreg discover

  # Longer scan, then pick one from a list
  skyreg discover --timeout 15 --interactive

  # Print the URL of one server as soon as it answers
  skyreg discover --name "Front desk"`,
	RunE: runDiscover,
}

func runDiscover(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	timeout := settings.DiscoveryTimeout()
	if scanTimeout > 0 {
		timeout = time.Duration(scanTimeout) * time.Second
	}

	out := cmd.OutOrStdout()

	if interactive {
		if !ui.IsTerminal(os.Stdin) || !ui.IsTerminal(os.Stdout) {
			return errors.New("--interactive needs a terminal")
		}
		selected, err := tui.Browse(timeout)
		if err != nil {
			return err
		}
		if selected != nil {
			fmt.Fprintln(out, selected.SessionURL())
		}
		return nil
	}

	scanner := discovery.NewScanner()
	scanner.Timeout = timeout

	if serverName != "" {
		inst, err := scanner.WaitForInstance(cmd.Context(), serverName)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, inst.SessionURL())
		return nil
	}

	p := ui.NewPrinter(out)
	p.PrintHeader("Discover Session Servers", "skyreg discover",
		ui.Param{Key: "Service", Value: discovery.ServiceType},
		ui.Param{Key: "Timeout", Value: timeout.String()},
	)
	p.PrintPleaseWait("Browsing the local network", timeout.String())

	instances, err := scanner.Scan(cmd.Context())
	if err != nil {
		p.PrintFailure("Discovery failed", err, nil,
			"Check that multicast is allowed on this network",
			"Connect directly with the server's address instead",
		)
		return fmt.Errorf("discovery failed: %w", err)
	}

	printInstances(p, instances)
	return nil
}

// printInstances prints one detail line per server, or a warning
func printInstances(p *ui.Printer, instances []*discovery.Instance) {
	if len(instances) == 0 {
		p.PrintWarning("No session servers found",
			ui.Param{Key: "Hint", Value: "start one with 'skyreg-server server --advertise'"},
		)
		return
	}

	details := make([]ui.Param, 0, len(instances))
	for _, inst := range instances {
		details = append(details, ui.Param{Key: inst.Name, Value: inst.SessionURL()})
	}
	p.PrintSuccess(fmt.Sprintf("Found %d session server(s)", len(instances)), details...)
}
