package notifier

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"rollcall/internal/config"
	"rollcall/internal/constants"
)

var (
	findProcessFunc = ps.FindProcess
)

// Notifier pokes a running board TUI after an admin mutation so the board
// refetches immediately instead of waiting for its next poll.
type Notifier struct{}

type RefreshPayload struct {
	Reason string `json:"reason"`
}

func New() *Notifier {
	return &Notifier{}
}

// NotifyRefresh sends a refresh nudge to the board identified by board.lock.
// Returns an error when no live board is found; callers treat that as
// informational, never fatal.
func (n *Notifier) NotifyRefresh(reason string) error {
	configDir, err := config.Dir()
	if err != nil {
		return err
	}

	port, secret, err := ValidateLock(filepath.Join(configDir, constants.BoardLockfileName))
	if err != nil {
		return fmt.Errorf("no running board to notify: %w", err)
	}

	payload := RefreshPayload{Reason: reason}

	var lastErr error
	for attempt := 0; attempt < constants.NotifyMaxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(constants.NotifyRetryDelay)
		}
		if lastErr = sendRefresh(port, secret, payload); lastErr == nil {
			return nil
		}
	}
	return lastErr
}

// WriteLock records the listener coordinates of this process so other
// rollcall processes can find it. Format: port|pid|secret.
func WriteLock(lockfilePath string, port, pid int, secret string) error {
	if err := os.MkdirAll(filepath.Dir(lockfilePath), 0o755); err != nil {
		return fmt.Errorf("failed to create lock directory: %w", err)
	}
	content := fmt.Sprintf("%d|%d|%s", port, pid, secret)
	if err := os.WriteFile(lockfilePath, []byte(content), 0o600); err != nil {
		return fmt.Errorf("failed to write lock file: %w", err)
	}
	return nil
}

// RemoveLock deletes a lock file. Missing files are not an error.
func RemoveLock(lockfilePath string) error {
	err := os.Remove(lockfilePath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// ValidateLock reads a port|pid|secret lock file and confirms the process
// that wrote it is still a running rollcall process.
func ValidateLock(lockfilePath string) (string, string, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return "", "", errors.New("lock file not found")
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return "", "", errors.New("lock file is malformed")
	}

	port := parts[0]
	if strings.TrimSpace(port) == "" {
		return "", "", errors.New("port in lock file is empty")
	}
	// Validate port is a valid number in the valid TCP range (1-65535)
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return "", "", errors.New("invalid port number in lock file")
	}
	if portNum < 1 || portNum > 65535 {
		return "", "", fmt.Errorf("port number %d is outside valid range (1-65535)", portNum)
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", "", errors.New("invalid process ID in lock file")
	}
	secret := parts[2]
	if strings.TrimSpace(secret) == "" {
		return "", "", errors.New("secret in lock file is empty")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return "", "", errors.New("process in lock file is not running")
	}

	if !strings.HasPrefix(process.Executable(), constants.AppName) {
		return "", "", fmt.Errorf("process with PID %d is not %s (is %s)", pid, constants.AppName, process.Executable())
	}

	return port, secret, nil
}

func sendRefresh(port string, secret string, payload RefreshPayload) error {
	url := fmt.Sprintf("http://127.0.0.1:%s/refresh", port)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(constants.RefreshSecretHeader, secret)

	client := &http.Client{Timeout: 2 * time.Second}
	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	body, _ := io.ReadAll(res.Body)
	return fmt.Errorf("refresh nudge failed with status %d: %s", res.StatusCode, string(body))
}
