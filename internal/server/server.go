package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"rollcall/internal/logger"
	"rollcall/internal/notifier"
	"rollcall/internal/storage"
)

const (
	readTimeout     = 10 * time.Second
	writeTimeout    = 10 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Server exposes the attendance data over REST. It is the single writer of
// punches and leave decisions; the admin CLI and the board TUI are clients.
type Server struct {
	store    storage.Provider
	clock    Clock
	loc      *time.Location
	version  string
	addr     string
	lockPath string
}

// Options configures a Server.
type Options struct {
	Addr     string
	Location *time.Location
	Version  string
	// LockPath is where the serve lock file is written. Empty disables it.
	LockPath string
	// Clock defaults to RealClock.
	Clock Clock
}

func New(store storage.Provider, opts Options) *Server {
	clock := opts.Clock
	if clock == nil {
		clock = RealClock{}
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	return &Server{
		store:    store,
		clock:    clock,
		loc:      loc,
		version:  opts.Version,
		addr:     opts.Addr,
		lockPath: opts.LockPath,
	}
}

// Start binds the listener and blocks until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if s.addr == "" {
		return fmt.Errorf("listen address is required")
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}

	srv := &http.Server{
		Handler:      s.Router(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	if s.lockPath != "" {
		port := ln.Addr().(*net.TCPAddr).Port
		if err := writeServeLock(s.lockPath, port); err != nil {
			ln.Close()
			return err
		}
		defer removeServeLock(s.lockPath)
	}

	serverError := make(chan error, 1)

	go func() {
		logger.Info("attendance service listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("attendance service stopping")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("server startup failed: %w", err)
	}
}

func writeServeLock(lockPath string, port int) error {
	secret, err := newSecret()
	if err != nil {
		return err
	}
	return notifier.WriteLock(lockPath, port, os.Getpid(), secret)
}

func removeServeLock(lockPath string) {
	if err := notifier.RemoveLock(lockPath); err != nil {
		logger.Warn("failed to remove serve lock file", "path", lockPath, "error", err)
	}
}

func newSecret() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
