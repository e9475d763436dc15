// Package server owns the listen/serve lifecycle of the HTTP handler.
//
// Binding and serving are split so the caller learns the bound address (and
// sees the "Listening on port N" line) before the blocking serve loop starts:
//
//	srv := server.New(handler)
//	if _, err := srv.Listen(":8080"); err != nil {
//	    return err // port in use, permission denied, ...
//	}
//	return srv.Serve(ctx) // returns nil after ctx is cancelled and drained
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/shashiranjanraj/basecamp/pkg/logger"
)

const (
	DefaultShutdownTimeout   = 10 * time.Second
	defaultReadHeaderTimeout = 10 * time.Second
)

var (
	// ErrAlreadyListening is returned by Listen on a server that is bound.
	ErrAlreadyListening = errors.New("server: already listening")

	// ErrNotListening is returned by Serve before a successful Listen.
	ErrNotListening = errors.New("server: not listening")
)

type Option func(*Server)

// WithLogger replaces the package logger used for the bind message.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithShutdownTimeout bounds how long Serve waits for in-flight requests
// once its context is cancelled.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) { s.shutdownTimeout = d }
}

// Server is one HTTP listener. It binds at most once.
type Server struct {
	httpSrv         *http.Server
	log             *slog.Logger
	shutdownTimeout time.Duration

	mu    sync.Mutex
	ln    net.Listener
	ready chan struct{}
}

func New(handler http.Handler, opts ...Option) *Server {
	s := &Server{
		httpSrv: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: defaultReadHeaderTimeout,
		},
		log:             logger.L,
		shutdownTimeout: DefaultShutdownTimeout,
		ready:           make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.httpSrv.ErrorLog = slog.NewLogLogger(s.log.Handler(), slog.LevelError)
	return s
}

// Listen binds a TCP listener on addr and logs the bound port once.
// Bind failures are returned wrapped; they are not retried.
func (s *Server) Listen(addr string) (net.Addr, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ln != nil {
		return nil, ErrAlreadyListening
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	s.ln = ln

	port := Port(ln.Addr())
	s.log.Info(fmt.Sprintf("Listening on port %d", port), "port", port, "addr", ln.Addr().String())
	close(s.ready)

	return ln.Addr(), nil
}

// Ready is closed once Listen has bound the socket.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Serve accepts connections until ctx is cancelled, then shuts down
// gracefully and returns nil. Accept errors are returned as-is.
func (s *Server) Serve(ctx context.Context) error {
	s.mu.Lock()
	ln := s.ln
	s.mu.Unlock()

	if ln == nil {
		return ErrNotListening
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpSrv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close releases the listener immediately, dropping open connections.
func (s *Server) Close() error {
	s.mu.Lock()
	ln := s.ln
	s.mu.Unlock()

	err := s.httpSrv.Close()
	if ln != nil {
		if cerr := ln.Close(); cerr != nil && !errors.Is(cerr, net.ErrClosed) && err == nil {
			err = cerr
		}
	}
	return err
}

// Start binds addr and serves handler until ctx is cancelled.
func Start(ctx context.Context, handler http.Handler, addr string, opts ...Option) error {
	srv := New(handler, opts...)
	if _, err := srv.Listen(addr); err != nil {
		return err
	}
	return srv.Serve(ctx)
}

// Port extracts the TCP port from addr, or 0 if addr is not TCP.
func Port(addr net.Addr) int {
	if tcp, ok := addr.(*net.TCPAddr); ok {
		return tcp.Port
	}
	return 0
}
