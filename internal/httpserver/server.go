// Package httpserver runs the itinerary HTTP listener with graceful shutdown.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"itinerary-planner/internal/logging"
)

const (
	defaultAddr         = "127.0.0.1"
	defaultReadTimeout  = 10 * time.Second
	defaultIdleTimeout  = 60 * time.Second
	defaultMaxHeaderLen = 64 << 10
)

// Config describes how the HTTP server should be initialised.
type Config struct {
	Addr         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration // zero leaves writes unbounded
	IdleTimeout  time.Duration
	Logger       logging.Logger
	Handler      http.Handler
}

// Server owns the http.Server and the listener it was started on.
type Server struct {
	Config
	httpServer *http.Server

	mu       sync.Mutex
	listener net.Listener
	ready    chan struct{}
}

// New builds a Server from the supplied configuration.
func New(config Config) (*Server, error) {
	if config.Port == "" {
		return nil, errors.New("a listen port must be set")
	}
	if config.Logger == nil {
		config.Logger = logging.New()
	}
	if config.Addr == "" {
		config.Addr = defaultAddr
	}
	if config.ReadTimeout <= 0 {
		config.ReadTimeout = defaultReadTimeout
	}
	if config.IdleTimeout <= 0 {
		config.IdleTimeout = defaultIdleTimeout
	}

	srv := &Server{Config: config, ready: make(chan struct{})}
	handler := config.Handler
	if handler == nil {
		handler = http.HandlerFunc(srv.fallbackHandler)
	}
	srv.httpServer = &http.Server{
		ReadHeaderTimeout: config.ReadTimeout,
		WriteTimeout:      config.WriteTimeout,
		IdleTimeout:       config.IdleTimeout,
		MaxHeaderBytes:    defaultMaxHeaderLen,
		Handler:           handler,
		ErrorLog:          logging.AsStdLogger(config.Logger),
	}
	return srv, nil
}

// ListenAndServe binds the configured address and serves until shutdown.
func (s *Server) ListenAndServe() error {
	addr := s.listenAddr()
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln. A clean shutdown returns nil.
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	if s.listener != nil {
		s.mu.Unlock()
		_ = ln.Close()
		return errors.New("server already started")
	}
	s.listener = ln
	close(s.ready)
	s.mu.Unlock()

	s.Logger.Printf("Listening on %s", ln.Addr())
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// Ready is closed once the listener is bound.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// BoundAddr reports the listener address, or "" before Serve.
func (s *Server) BoundAddr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) listenAddr() string {
	port := strings.TrimPrefix(s.Port, ":")
	if port == "" {
		return s.Addr
	}
	return net.JoinHostPort(s.Addr, port)
}

// Close stops the server without waiting for in-flight requests.
func (s *Server) Close() error {
	return s.httpServer.Close()
}

// Shutdown drains in-flight requests until ctx expires, then closes.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		_ = s.httpServer.Close()
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) fallbackHandler(w http.ResponseWriter, r *http.Request) {
	s.Logger.Printf("no handler configured for %s %s", r.Method, r.URL.Path)
	http.Error(w, "itinerary server has no routes configured", http.StatusServiceUnavailable)
}
