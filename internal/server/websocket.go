package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/skyreg/internal/logging"
	"github.com/muurk/skyreg/internal/protocol"
	"github.com/muurk/skyreg/internal/wizard"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10
)

// handleWebSocket upgrades the request and runs one wizard session on it
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error response
		logging.Warn("WebSocket upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}

	s.wg.Add(1)
	defer s.wg.Done()

	s.serveSession(conn, r.RemoteAddr)
}

// serveSession runs the read loop of a single session. Each connection gets
// its own controller, so sessions never share form state.
func (s *Server) serveSession(conn *websocket.Conn, remoteAddr string) {
	sessionID := uuid.NewString()

	s.trackConn(remoteAddr, conn)
	logging.LogConnection(remoteAddr, "websocket_upgraded")

	defer func() {
		_ = conn.Close()
		s.untrackConn(remoteAddr)
		logging.LogConnection(remoteAddr, "websocket_closed")
	}()

	sess := &protocol.Session{
		Controller: wizard.New(
			wizard.WithSessionID(sessionID),
			wizard.WithAnimation(s.config.Animated),
		),
		Submitter:  s.config.NewSubmitter(),
		RemoteAddr: remoteAddr,
	}

	transcript := OpenTranscript(s.config.TranscriptDir, sessionID, remoteAddr)
	defer transcript.Close()

	conn.SetReadLimit(protocol.MaxIntentSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		logging.Debug("Received pong", zap.String("remote_addr", remoteAddr))
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	stopPing := make(chan struct{})
	defer close(stopPing)
	go keepAlive(conn, remoteAddr, stopPing)

	// Greet with the initial state so the renderer can draw step 1
	if !s.send(conn, remoteAddr, transcript, protocol.BuildSnapshot(protocol.IntentSnapshot, "", sess.Controller.Snapshot())) {
		return
	}

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Warn("Session connection dropped",
					zap.String("remote_addr", remoteAddr),
					zap.Error(err),
				)
			}
			return
		}

		if msgType != websocket.TextMessage {
			snap := sess.Controller.Snapshot()
			env := protocol.BuildError("", protocol.ErrorBody{
				Code:    protocol.CodeInvalidIntent,
				Message: "intents must be text messages",
			}, &snap)
			if !s.send(conn, remoteAddr, transcript, env) {
				return
			}
			continue
		}

		transcript.RecordIntent(data)

		// Submit blocks here until the submitter returns; the session does
		// not read further intents until then.
		env := sess.HandleMessage(s.ctx, data)
		if !s.send(conn, remoteAddr, transcript, env) {
			return
		}
	}
}

// send writes an envelope and reports whether the connection is still usable
func (s *Server) send(conn *websocket.Conn, remoteAddr string, transcript *Transcript, env *protocol.Envelope) bool {
	data, err := env.Encode()
	if err != nil {
		logging.Error("Failed to encode envelope",
			zap.String("remote_addr", remoteAddr),
			zap.Error(err),
		)
		return false
	}

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return false
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		logging.Warn("Failed to send envelope",
			zap.String("remote_addr", remoteAddr),
			zap.Error(err),
		)
		return false
	}

	transcript.RecordEnvelope(env)
	return true
}

// keepAlive pings the peer until stop is closed. WriteControl may be called
// concurrently with the read loop's writes.
func keepAlive(conn *websocket.Conn, remoteAddr string, stop <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				logging.Debug("Ping failed",
					zap.String("remote_addr", remoteAddr),
					zap.Error(err),
				)
				return
			}
		}
	}
}
