package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/muurk/skyreg/internal/protocol"
	"github.com/muurk/skyreg/internal/wizard"
)

// TranscriptSummary is what a session transcript says about one session
type TranscriptSummary struct {
	Session    string
	RemoteAddr string
	Start      time.Time
	End        time.Time

	Intents      map[string]int // intent type -> count
	ErrorCodes   map[string]int // error envelope code -> count
	Blocked      int            // advances refused by validation
	FieldsEdited []string       // distinct fields, in first-edit order
	FurthestStep int
	Submitted    bool
	Failures     int // submission_failed errors
}

// Duration returns the time between the first and last entry
func (s TranscriptSummary) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// IntentTypes returns the intent types seen, sorted
func (s TranscriptSummary) IntentTypes() []string {
	types := make([]string, 0, len(s.Intents))
	for t := range s.Intents {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// ReadTranscript parses a JSONL transcript. Blank lines are skipped.
func ReadTranscript(r io.Reader) ([]TranscriptEntry, error) {
	var entries []TranscriptEntry

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		data := scanner.Bytes()
		if len(data) == 0 {
			continue
		}
		var entry TranscriptEntry
		if err := json.Unmarshal(data, &entry); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transcript: %w", err)
	}
	return entries, nil
}

// ReadTranscriptFile parses the transcript at path
func ReadTranscriptFile(path string) ([]TranscriptEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript: %w", err)
	}
	defer f.Close()

	entries, err := ReadTranscript(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// Summarize folds transcript entries into a TranscriptSummary
func Summarize(entries []TranscriptEntry) TranscriptSummary {
	s := TranscriptSummary{
		Intents:    make(map[string]int),
		ErrorCodes: make(map[string]int),
	}
	seen := make(map[string]bool)

	for i, e := range entries {
		if i == 0 {
			s.Session = e.Session
			s.RemoteAddr = e.RemoteAddr
			s.Start = e.Timestamp
		}
		s.End = e.Timestamp

		if e.Direction == "renderer->server" {
			if e.Intent != "" {
				s.Intents[e.Intent]++
			}
			if e.Field != "" && !seen[e.Field] {
				seen[e.Field] = true
				s.FieldsEdited = append(s.FieldsEdited, e.Field)
			}
			continue
		}

		if e.Step > s.FurthestStep {
			s.FurthestStep = e.Step
		}
		if e.Result == wizard.NavBlocked.String() {
			s.Blocked++
		}
		if e.ErrorCode != "" {
			s.ErrorCodes[e.ErrorCode]++
			if e.ErrorCode == protocol.CodeSubmissionFailed {
				s.Failures++
			}
		}
		switch {
		case e.Envelope == string(protocol.EnvelopeSubmitted):
			s.Submitted = true
		case e.Phase == wizard.PhaseSubmitted.String():
			s.Submitted = true
		}
	}

	return s
}
