package protocol

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/muurk/skyreg/internal/logging"
	"github.com/muurk/skyreg/internal/registration"
	"github.com/muurk/skyreg/internal/wizard"
)

// Session pairs a wizard controller with the submitter its submissions go to.
// It is driven by one read loop and is not safe for concurrent use.
type Session struct {
	Controller *wizard.Controller
	Submitter  wizard.Submitter
	RemoteAddr string
}

// HandleMessage parses a raw intent message and applies it to the session.
// It always returns an envelope to send back.
func (s *Session) HandleMessage(ctx context.Context, data []byte) *Envelope {
	in, err := ParseIntent(data)
	if err != nil {
		logging.Warn("Rejected intent",
			zap.String("remote_addr", s.RemoteAddr),
			zap.Error(err),
		)
		snap := s.Controller.Snapshot()
		return BuildError("", ErrorBody{Code: CodeInvalidIntent, Message: err.Error()}, &snap)
	}

	logging.LogIntent(s.RemoteAddr, string(in.Type), in.Field)
	return s.HandleIntent(ctx, in)
}

// HandleIntent applies a parsed intent to the session
func (s *Session) HandleIntent(ctx context.Context, in *Intent) *Envelope {
	c := s.Controller

	switch in.Type {
	case IntentSnapshot:
		return BuildSnapshot(in.Type, "", c.Snapshot())

	case IntentEdit:
		v, err := in.ValueFor(c.Store().Schema())
		if err == nil {
			err = c.Edit(in.Field, v)
		}
		if err != nil {
			return s.errorEnvelope(in.Type, err)
		}
		return BuildSnapshot(in.Type, "", c.Snapshot())

	case IntentAdvance, IntentRetreat:
		var res wizard.NavResult
		var err error
		if in.Type == IntentAdvance {
			res, err = c.Advance()
		} else {
			res, err = c.Retreat()
		}
		// A blocked advance is an expected outcome; the field errors are in
		// the snapshot.
		if err != nil && !registration.IsValidationError(err) {
			return s.errorEnvelope(in.Type, err)
		}
		return BuildSnapshot(in.Type, res.String(), c.Snapshot())

	case IntentSettle:
		result := "idle"
		if c.Settle() {
			result = "settled"
		}
		return BuildSnapshot(in.Type, result, c.Snapshot())

	case IntentSubmit:
		conf, err := c.Submit(ctx, s.Submitter)
		if err != nil {
			return s.errorEnvelope(in.Type, err)
		}
		return BuildSubmitted(conf, c.Snapshot())

	case IntentStartOver:
		if err := c.StartOver(); err != nil {
			return s.errorEnvelope(in.Type, err)
		}
		return BuildSnapshot(in.Type, "", c.Snapshot())
	}

	snap := c.Snapshot()
	return BuildError(in.Type, ErrorBody{Code: CodeInvalidIntent, Message: "unsupported intent"}, &snap)
}

func (s *Session) errorEnvelope(intent IntentType, err error) *Envelope {
	body := ErrorBody{
		Code:    ErrorCode(err),
		Message: wizard.GetShortErrorMessage(err),
	}

	var ve registration.ValidationErrors
	if errors.As(err, &ve) {
		body.Fields = make(map[string]string, len(ve))
		for _, fe := range ve {
			body.Fields[fe.Field] = fe.Message
		}
	}
	var se *wizard.SubmissionError
	if errors.As(err, &se) {
		body.Retryable = se.Retryable
	}

	logging.Debug("Intent refused",
		zap.String("remote_addr", s.RemoteAddr),
		zap.String("intent", string(intent)),
		zap.String("code", body.Code),
		zap.Error(err),
	)

	snap := s.Controller.Snapshot()
	return BuildError(intent, body, &snap)
}

// ErrorCode maps an error from the wizard to an envelope error code
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidIntent):
		return CodeInvalidIntent
	case errors.Is(err, registration.ErrUnknownField):
		return CodeUnknownField
	case errors.Is(err, registration.ErrKindMismatch):
		return CodeKindMismatch
	case registration.IsValidationError(err):
		return CodeValidationFailed
	case wizard.IsSubmissionError(err):
		return CodeSubmissionFailed
	case errors.Is(err, wizard.ErrTransitionInProgress),
		errors.Is(err, wizard.ErrSubmissionInFlight),
		errors.Is(err, wizard.ErrNotFinalStep),
		errors.Is(err, wizard.ErrTermsNotAccepted),
		errors.Is(err, wizard.ErrAlreadySubmitted),
		errors.Is(err, wizard.ErrNotSubmitted):
		return CodeNotAllowed
	default:
		return CodeInternal
	}
}
