// Package server hosts registration wizard sessions over WebSockets.
//
// A renderer (terminal, web page, test client) connects to /ws and drives a
// wizard by sending intents. The server answers every intent with one
// envelope carrying the session snapshot, so the renderer only ever draws
// what the server sends it.
//
// # Sessions
//
// Every connection owns its own wizard controller and submitter. Nothing is
// shared between sessions, and a dropped connection discards its form.
// Intents are handled strictly in order on the connection's read loop. A
// submit intent holds the loop until the submitter returns, so a second
// submit can never race the first.
//
// # Endpoints
//
//	GET /ws       WebSocket upgrade, one wizard session per connection
//	GET /healthz  JSON liveness report with version and open session count
//
// # Keepalive
//
// The server pings every 54 seconds and drops connections that have not
// answered within 60. Intents larger than protocol.MaxIntentSize close the
// connection.
//
// # Transcripts
//
// When Config.TranscriptDir is set each session writes a JSONL transcript
// of intent types, field names, results and error codes. Field values are
// never written. ReadTranscriptFile and Summarize read one back into
// per-session counts for "skyreg-server transcript".
//
// # Usage Example
//
//	srv, err := server.New(&server.Config{
//	    Port:      8080,
//	    LogLevel:  "info",
//	    Advertise: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Start blocks until SIGINT/SIGTERM or a listener error
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Graceful Shutdown
//
// On SIGINT or SIGTERM the server withdraws its mDNS advertisement, cancels
// in-flight submissions, sends a going-away close frame to every session
// and waits up to 10 seconds for the read loops to exit.
package server
