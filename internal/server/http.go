package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/muurk/skyreg/internal/logging"
	"github.com/muurk/skyreg/internal/version"
)

// HealthStatus is the /healthz response body
type HealthStatus struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Commit   string `json:"commit"`
	Sessions int    `json:"sessions"`
}

// handleHealth reports liveness and the number of open sessions
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	status := HealthStatus{
		Status:   "ok",
		Version:  version.Version,
		Commit:   version.Commit,
		Sessions: s.GetActiveConnections(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(status); err != nil {
		logging.Warn("Failed to write health response",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
	}
}
