// Package logging provides structured logging for skyreg.
//
// This package wraps a global zap logger with convenience functions for the
// events the wizard and the session server emit. Logging is silent unless a
// level is passed to Initialize or SKYREG_LOG_LEVEL is set, so CLI output and
// the terminal wizard are never interleaved with log lines by default.
//
// # Log Levels
//
//   - Debug: navigation outcomes, intents, ping/pong
//   - Info: connections, submissions, server lifecycle
//   - Warn: dropped connections, rejected intents
//   - Error: startup failures, transcript write failures
//
// # Structured Logging
//
//	logging.Info("Session server started",
//	    zap.String("addr", ":8090"),
//	    zap.Bool("advertise", true),
//	)
//
// # Specialized Logging
//
// Navigation:
//
//	logging.LogTransition(sessionID, 1, 2, "moved")
//
// Submission:
//
//	logging.LogSubmission(sessionID, "started")
//	logging.LogSubmission(sessionID, "succeeded", zap.String("reference", ref))
//
// Remote sessions:
//
//	logging.LogConnection(remoteAddr, "websocket_upgraded")
//	logging.LogIntent(remoteAddr, "edit", "email")
//
// # Output
//
// Logs go to stderr, or to the file named by SKYREG_LOG_FILE. Run the
// terminal wizard with SKYREG_LOG_FILE set when debugging, since the wizard
// redraws the whole screen.
package logging
