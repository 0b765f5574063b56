package tui

import (
	"encoding/json"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"rollcall/internal/config"
	"rollcall/internal/constants"
	"rollcall/internal/logger"
	"rollcall/internal/notifier"
)

// StartRefreshListener binds a loopback listener for refresh nudges and
// records its coordinates in board.lock so punch and leave commands can find
// this board. The returned stop function closes the listener and removes the
// lock.
func StartRefreshListener(p *tea.Program) (func(), error) {
	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}

	secret := uuid.NewString()

	mux := http.NewServeMux()
	mux.HandleFunc("/refresh", refreshHandler(secret, func(reason string) {
		p.Send(RefreshMsg{Reason: reason})
	}))

	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 2 * time.Second,
	}
	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Warn("board refresh listener stopped", "error", err)
		}
	}()

	configDir, err := config.Dir()
	if err != nil {
		server.Close()
		return nil, err
	}
	lockPath := filepath.Join(configDir, constants.BoardLockfileName)

	port := listener.Addr().(*net.TCPAddr).Port
	if err := notifier.WriteLock(lockPath, port, os.Getpid(), secret); err != nil {
		server.Close()
		return nil, err
	}

	logger.Debug("board refresh listener started", "port", port)

	return func() {
		if err := notifier.RemoveLock(lockPath); err != nil {
			logger.Warn("failed to remove board lock", "error", err)
		}
		server.Close()
	}, nil
}

// refreshHandler checks the shared secret from the lock file before
// forwarding the refresh reason into the program.
func refreshHandler(secret string, send func(reason string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if r.Header.Get(constants.RefreshSecretHeader) != secret {
			http.Error(w, "invalid refresh secret", http.StatusForbidden)
			return
		}

		var payload notifier.RefreshPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}
		if payload.Reason == "" {
			payload.Reason = "refresh"
		}

		send(payload.Reason)
		w.WriteHeader(http.StatusOK)
	}
}
