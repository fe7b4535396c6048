package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/skyreg/internal/server"
	"github.com/muurk/skyreg/internal/ui"
)

var transcriptCmd = &cobra.Command{
	Use:   "transcript <file>...",
	Short: "Summarize session transcripts",
	Long: `Summarize one or more session transcripts written with --transcript-dir.

For each file this prints the session id, how long it ran, how far the user
got, how many advances validation refused, which fields were edited and
whether the registration was submitted.`,
	Example: `  skyreg-server transcript ./transcripts/session-20260301-100000-abc.jsonl
  skyreg-server transcript ./transcripts/*.jsonl`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := ui.NewPrinter(cmd.OutOrStdout())
		failed := 0
		for _, path := range args {
			if err := summarizeTranscript(p, path); err != nil {
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d transcript(s) could not be read", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(transcriptCmd)
}

func summarizeTranscript(p *ui.Printer, path string) error {
	p.PrintHeader("SESSION TRANSCRIPT", "skyreg-server transcript", ui.Param{Key: "File", Value: path})

	entries, err := server.ReadTranscriptFile(path)
	if err != nil {
		p.PrintFailure("Transcript could not be read", err, nil,
			"Transcripts are JSON lines written by 'skyreg-server server --transcript-dir'")
		return err
	}
	if len(entries) == 0 {
		p.PrintWarning("Transcript is empty", ui.Param{Key: "File", Value: path})
		return nil
	}

	s := server.Summarize(entries)
	details := []ui.Param{
		{Key: "Session", Value: s.Session},
		{Key: "Remote", Value: s.RemoteAddr},
		{Key: "Started", Value: s.Start.Format(time.RFC3339)},
		{Key: "Duration", Value: s.Duration().Round(time.Second).String()},
		{Key: "Furthest step", Value: strconv.Itoa(s.FurthestStep)},
		{Key: "Blocked", Value: strconv.Itoa(s.Blocked)},
		{Key: "Fields edited", Value: strconv.Itoa(len(s.FieldsEdited))},
	}
	if s.Failures > 0 {
		details = append(details, ui.Param{Key: "Failed submits", Value: strconv.Itoa(s.Failures)})
	}

	if s.Submitted {
		p.PrintSuccess("Registration submitted", details...)
	} else {
		p.PrintWarning("Session ended before submission", details...)
	}
	p.PrintListing("Intents", intentListing(s))
	return nil
}

// intentListing renders intent and error counts, one per line
func intentListing(s server.TranscriptSummary) string {
	var b strings.Builder
	for _, t := range s.IntentTypes() {
		fmt.Fprintf(&b, "%-12s %d\n", t, s.Intents[t])
	}
	codes := make([]string, 0, len(s.ErrorCodes))
	for code := range s.ErrorCodes {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		fmt.Fprintf(&b, "error %-6s %d\n", code, s.ErrorCodes[code])
	}
	if len(s.FieldsEdited) > 0 {
		fmt.Fprintf(&b, "fields       %s\n", strings.Join(s.FieldsEdited, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}
