package constants

import (
	tea "github.com/charmbracelet/bubbletea"
)

// SessionState represents the current state of the TUI application
type SessionState int

// ConfirmationMsg is a message to trigger a confirmation dialog
type ConfirmationMsg struct {
	Message string
	Action  func() tea.Cmd
}

const (
	AppName            = "rollcall"
	DefaultKeyringUser = "database-connection"
	Version            = "v0.3.0"

	// Database file name under the config directory (SQLite default)
	DBFileName = "rollcall.db"

	// ConfigFileName is the client settings file under the config directory
	ConfigFileName = "config.yaml"

	// Serve constants
	DefaultServeAddr  = ":7420"
	ServeLockfileName = "serve.lock"

	// Board refresh constants
	NotifyMaxRetries    = 3
	BoardLockfileName   = "board.lock"
	RefreshSecretHeader = "X-Rollcall-Refresh-Secret"
)

// Session States. The first NumMainTabs states are the top-level views the
// tab key cycles through; the reject note and confirmation states are
// reached through those views, never by tabbing.
const (
	StateBoard SessionState = iota
	StateSummary
	StateLeave
	StateActivity
	StateRejectNote
	StateConfirmation

	NumMainTabs = StateRejectNote
)
