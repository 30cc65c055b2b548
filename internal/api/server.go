// Package api exposes score reports over a local HTTP interface.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"cogview/internal/config"
	"cogview/internal/scan"
)

// Server is the HTTP surface of a running cogview daemon.
type Server struct {
	router  *http.ServeMux
	server  *http.Server
	addr    string
	root    string
	cfg     *config.Config
	scanner *scan.Scanner
	logger  *slog.Logger
	started time.Time
}

// NewServer creates a server bound to addr, serving scores for the project
// rooted at root.
func NewServer(addr, root string, cfg *config.Config, scanner *scan.Scanner, logger *slog.Logger) *Server {
	s := &Server{
		addr:    addr,
		root:    root,
		cfg:     cfg,
		scanner: scanner,
		logger:  logger,
		router:  http.NewServeMux(),
		started: time.Now(),
	}

	s.registerRoutes()

	handler := s.applyMiddleware(s.router)
	s.server = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", "addr", s.addr, "root", s.root)

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

// ServeHTTP implements http.Handler for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.server.Handler.ServeHTTP(w, r)
}

// applyMiddleware wraps the handler with middleware in reverse order.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	handler = RecoveryMiddleware(s.logger)(handler)
	handler = LoggingMiddleware(s.logger)(handler)
	handler = RequestIDMiddleware()(handler)
	handler = CORSMiddleware()(handler)
	return handler
}
