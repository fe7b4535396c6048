package server

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/skyreg/internal/logging"
	"github.com/muurk/skyreg/internal/protocol"
)

// TranscriptEntry is one line of a session transcript. Field values are
// never recorded since they carry personal data.
type TranscriptEntry struct {
	Timestamp  time.Time `json:"timestamp"`
	Session    string    `json:"session"`
	RemoteAddr string    `json:"remote_addr"`
	Direction  string    `json:"direction"`
	Intent     string    `json:"intent,omitempty"`
	Field      string    `json:"field,omitempty"`
	Envelope   string    `json:"envelope,omitempty"`
	Seq        uint64    `json:"seq,omitempty"`
	Result     string    `json:"result,omitempty"`
	Step       int       `json:"step,omitempty"`
	Phase      string    `json:"phase,omitempty"`
	ErrorCode  string    `json:"error_code,omitempty"`
	Bytes      int       `json:"bytes"`
}

// Transcript appends a session's intents and envelopes to a JSONL file
// (one JSON object per line). A nil *Transcript discards everything, which
// is what OpenTranscript returns when transcripts are disabled.
type Transcript struct {
	mu         sync.Mutex
	f          *os.File
	path       string
	session    string
	remoteAddr string
}

// OpenTranscript creates the transcript file for a session. It returns nil
// when dir is empty or the file cannot be created; failures are logged, not
// returned, so a full disk never takes a session down.
func OpenTranscript(dir, session, remoteAddr string) *Transcript {
	if dir == "" {
		return nil
	}

	path := filepath.Join(dir, fmt.Sprintf("session-%s-%s.jsonl",
		time.Now().Format("20060102-150405"), session))

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		logging.Error("Failed to open transcript file",
			zap.String("filename", path),
			zap.Error(err),
		)
		return nil
	}

	return &Transcript{f: f, path: path, session: session, remoteAddr: remoteAddr}
}

// Path returns the transcript file path
func (t *Transcript) Path() string {
	if t == nil {
		return ""
	}
	return t.path
}

// RecordIntent records an incoming intent. Unparseable intents are recorded
// with their size only.
func (t *Transcript) RecordIntent(data []byte) {
	if t == nil {
		return
	}

	entry := TranscriptEntry{Direction: "renderer->server", Bytes: len(data)}
	if in, err := protocol.ParseIntent(data); err == nil {
		entry.Intent = string(in.Type)
		entry.Field = in.Field
	} else {
		entry.ErrorCode = protocol.CodeInvalidIntent
	}
	t.write(entry)
}

// RecordEnvelope records an outgoing envelope
func (t *Transcript) RecordEnvelope(env *protocol.Envelope) {
	if t == nil {
		return
	}

	entry := TranscriptEntry{
		Direction: "server->renderer",
		Envelope:  string(env.Type),
		Intent:    string(env.Intent),
		Seq:       env.Seq,
		Result:    env.Result,
	}
	if env.Snapshot != nil {
		entry.Step = env.Snapshot.Step
		entry.Phase = env.Snapshot.Phase
	}
	if env.Error != nil {
		entry.ErrorCode = env.Error.Code
	}
	t.write(entry)
}

func (t *Transcript) write(entry TranscriptEntry) {
	entry.Timestamp = time.Now()
	entry.Session = t.session
	entry.RemoteAddr = t.remoteAddr

	data, err := json.Marshal(entry)
	if err != nil {
		logging.Error("Failed to marshal transcript entry", zap.Error(err))
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, err := t.f.Write(append(data, '\n')); err != nil {
		logging.Error("Failed to write to transcript file",
			zap.String("filename", t.path),
			zap.Error(err),
		)
	}
}

// Close closes the transcript file
func (t *Transcript) Close() {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	_ = t.f.Close()
}
