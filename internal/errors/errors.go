// Package errors carries the error helpers shared by the command layer.
// Commands wrap failures with Format or Formatf and return them; only main
// terminates the process, through Fatal.
package errors

import (
	"fmt"
	"os"

	"rollcall/internal/logger"
)

// Format wraps err with a static context message. The wrapped error stays
// reachable through errors.Is and errors.As.
func Format(msg string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Formatf wraps err with a formatted context message.
func Formatf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Fatal logs err and exits with code 1. A nil err is a no-op.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
