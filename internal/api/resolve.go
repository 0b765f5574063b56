package api

import (
	"fmt"
	"path/filepath"

	"rollcall/internal/config"
	"rollcall/internal/constants"
	"rollcall/internal/notifier"
)

// ResolveBaseURL picks the server address for admin commands.
// Precedence: explicit --server flag, configured server_url, then a live
// serve.lock written by a local `rollcall serve`.
func ResolveBaseURL(flagURL, configURL string) (string, error) {
	if flagURL != "" {
		return flagURL, nil
	}
	if configURL != "" {
		return configURL, nil
	}

	configDir, err := config.Dir()
	if err != nil {
		return "", err
	}

	port, _, err := notifier.ValidateLock(filepath.Join(configDir, constants.ServeLockfileName))
	if err != nil {
		return "", fmt.Errorf("no server configured: pass --server, set server_url in the config file, or start 'rollcall serve'")
	}
	return "http://127.0.0.1:" + port, nil
}
