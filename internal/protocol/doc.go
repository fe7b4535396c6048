// Package protocol implements the remote session protocol spoken between a
// renderer and the skyreg session server.
//
// Messages are JSON text frames over a websocket. The renderer sends intents;
// the server answers every intent with exactly one envelope that carries the
// session snapshot after the intent was applied.
//
// # Intents (client -> server)
//
//	{"type":"snapshot"}
//	{"type":"edit","field":"firstName","value":"Ada"}
//	{"type":"edit","field":"termsAccepted","value":true}
//	{"type":"advance"}
//	{"type":"retreat"}
//	{"type":"settle"}
//	{"type":"submit"}
//	{"type":"start_over"}
//
// Edit values must match the field kind: JSON booleans for checkboxes, JSON
// strings for text and enum fields. Unknown keys are rejected.
//
// # Envelopes (server -> client)
//
//   - snapshot: the intent was applied (or, for navigation, its outcome is in
//     "result": moved, blocked, ignored, at-boundary)
//   - error: the intent was refused; "error.code" is one of invalid_intent,
//     unknown_field, kind_mismatch, validation_failed, submission_failed,
//     not_allowed, internal
//   - submitted: the registration was accepted; "confirmation" holds the
//     reference
//
// Every envelope has a process-wide increasing "seq".
//
// # Usage Example
//
//	sess := &protocol.Session{
//	    Controller: wizard.New(),
//	    Submitter:  wizard.NewSimulatedSubmitter(),
//	    RemoteAddr: conn.RemoteAddr().String(),
//	}
//	env := sess.HandleMessage(ctx, data)
//	out, _ := env.Encode()
//	conn.WriteMessage(websocket.TextMessage, out)
//
// # Thread Safety
//
// Parsing and construction functions are stateless and safe for concurrent
// use. A Session must be driven by a single goroutine.
package protocol
