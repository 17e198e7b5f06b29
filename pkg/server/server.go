package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"mercator-hq/jikan/pkg/telemetry/logging"
)

// DefaultShutdownTimeout bounds graceful shutdown when Config leaves it zero.
const DefaultShutdownTimeout = 5 * time.Second

// Config configures an admin server.
type Config struct {
	// Address is the listen address. Port 0 picks a free port.
	Address string

	// ReadHeaderTimeout bounds reading request headers.
	// Default: 5s
	ReadHeaderTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 5s
	ShutdownTimeout time.Duration
}

// Server serves operational endpoints (probes, version, metrics) next to a
// long-running command.
type Server struct {
	cfg     Config
	handler http.Handler
	logger  *logging.Logger

	mu         sync.RWMutex
	httpServer *http.Server
	addr       string
	running    bool
	errCh      chan error
}

// New creates a server for handler. The handler is wrapped with request
// logging and panic recovery.
func New(cfg Config, handler http.Handler, logger *logging.Logger) *Server {
	if cfg.ReadHeaderTimeout <= 0 {
		cfg.ReadHeaderTimeout = 5 * time.Second
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
	if logger == nil {
		logger = logging.Discard()
	}
	logger = logger.Component("admin")

	return &Server{
		cfg:     cfg,
		handler: Recovery(logger)(AccessLog(logger)(handler)),
		logger:  logger,
	}
}

// Start binds the listen address and serves in the background. It returns
// once the listener is ready, so Addr is valid afterwards.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("server is already running")
	}

	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Address, err)
	}

	s.httpServer = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
	}
	s.addr = ln.Addr().String()
	s.running = true
	s.errCh = make(chan error, 1)

	srv, errCh := s.httpServer, s.errCh
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("admin server failed", "error", err)
			errCh <- err
		}
		close(errCh)
	}()

	s.logger.Info("admin server listening", "address", s.addr)
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests,
// up to the configured timeout. Shutdown on a stopped server is a no-op.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	srv, errCh := s.httpServer, s.errCh
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("admin server shutdown: %w", err)
	}
	if err := <-errCh; err != nil {
		return err
	}
	s.logger.Info("admin server stopped")
	return nil
}

// Addr returns the bound address while the server is running.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.addr
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}
