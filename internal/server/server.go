package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/skyreg/internal/discovery"
	"github.com/muurk/skyreg/internal/logging"
	"github.com/muurk/skyreg/internal/version"
	"github.com/muurk/skyreg/internal/wizard"
)

// Config holds the server configuration
type Config struct {
	Host          string
	Port          int
	CertPath      string // Serve TLS when both CertPath and KeyPath are set
	KeyPath       string
	LogLevel      string
	TranscriptDir string // Directory for per-session intent transcripts (empty = disabled)

	// Advertise registers the server over mDNS as InstanceName
	Advertise    bool
	InstanceName string

	// Animated makes sessions hold moves until the renderer sends "settle"
	Animated bool

	// NewSubmitter returns the submitter for a new session. Defaults to a
	// SimulatedSubmitter with the default delay.
	NewSubmitter func() wizard.Submitter
}

// Server serves isolated wizard sessions over websockets
type Server struct {
	config     *Config
	httpServer *http.Server
	listener   net.Listener
	tlsConfig  *tls.Config
	upgrader   websocket.Upgrader
	advert     *discovery.Advertisement

	// ctx is cancelled on shutdown so in-flight submissions stop waiting
	ctx    context.Context
	cancel context.CancelFunc

	wg          sync.WaitGroup
	mu          sync.Mutex
	activeConns map[string]*websocket.Conn
}

// New creates a new Server instance
func New(config *Config) (*Server, error) {
	if err := logging.Initialize(config.LogLevel); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	var tlsConfig *tls.Config
	if config.CertPath != "" || config.KeyPath != "" {
		var err error
		tlsConfig, err = NewTLSConfig(config.CertPath, config.KeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create TLS config: %w", err)
		}
	}

	if config.NewSubmitter == nil {
		config.NewSubmitter = func() wizard.Submitter {
			return wizard.NewSimulatedSubmitter()
		}
	}

	if config.TranscriptDir != "" {
		if err := os.MkdirAll(config.TranscriptDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create transcript directory: %w", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		config:      config,
		tlsConfig:   tlsConfig,
		ctx:         ctx,
		cancel:      cancel,
		activeConns: make(map[string]*websocket.Conn),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Renderers are local tools, not browsers on foreign origins.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler returns the HTTP handler serving /ws and /healthz
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(discovery.DefaultSessionPath, s.handleWebSocket)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// Start starts the server and blocks until shutdown
func (s *Server) Start() error {
	addr := net.JoinHostPort(s.config.Host, fmt.Sprintf("%d", s.config.Port))

	logging.Info("Starting skyreg session server",
		zap.String("addr", addr),
		zap.Bool("tls", s.tlsConfig != nil),
		zap.Bool("animated", s.config.Animated),
		zap.String("transcripts", s.config.TranscriptDir),
		zap.String("log_level", s.config.LogLevel),
	)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	if s.tlsConfig != nil {
		listener = tls.NewListener(listener, s.tlsConfig)
	}
	s.listener = listener

	logging.Info("Server listening for connections",
		zap.String("addr", listener.Addr().String()),
	)

	if s.config.Advertise {
		s.startAdvertising()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.httpServer.Serve(listener)
	}()

	select {
	case <-sigChan:
		logging.Info("Shutdown signal received, stopping server...")
		return s.Shutdown(context.Background())
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) startAdvertising() {
	port := s.config.Port
	if tcp, ok := s.listener.Addr().(*net.TCPAddr); ok {
		port = tcp.Port
	}

	name := s.config.InstanceName
	if name == "" {
		host, _ := os.Hostname()
		name = "skyreg on " + host
	}

	adv, err := discovery.Advertise(name, port, map[string]string{
		"version": version.Version,
		"path":    discovery.DefaultSessionPath,
	})
	if err != nil {
		// The server is still reachable by address.
		logging.Warn("mDNS advertisement failed", zap.Error(err))
		return
	}
	s.advert = adv
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")

	s.advert.Shutdown()

	// Stop in-flight submissions from waiting
	s.cancel()

	// Hijacked websocket connections are not closed by http.Server.Shutdown
	s.mu.Lock()
	for addr, conn := range s.activeConns {
		logging.Info("Closing active session", zap.String("remote_addr", addr))
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		_ = conn.Close()
	}
	s.mu.Unlock()

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Warn("HTTP shutdown incomplete", zap.Error(err))
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logging.Info("All sessions closed gracefully")
	case <-shutdownCtx.Done():
		logging.Warn("Shutdown timeout, forcing close")
	}

	logging.Sync()

	return nil
}

// GetActiveConnections returns the number of active sessions
func (s *Server) GetActiveConnections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.activeConns)
}

func (s *Server) trackConn(addr string, conn *websocket.Conn) {
	s.mu.Lock()
	s.activeConns[addr] = conn
	s.mu.Unlock()
}

func (s *Server) untrackConn(addr string) {
	s.mu.Lock()
	delete(s.activeConns, addr)
	s.mu.Unlock()
}
