package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"rollcall/internal/api"
	"rollcall/internal/config"
	"rollcall/internal/constants"
	"rollcall/internal/logger"
	"rollcall/internal/models"
	"rollcall/internal/notifier"
	"rollcall/internal/storage"
	"rollcall/internal/utils"
)

type Context struct {
	Store      storage.Provider
	Config     config.Config
	ServerFlag string
	Version    string

	client api.Client
}

// API returns the attendance service client. The base URL comes from the
// --server flag, then the configured server_url, then a locally running
// serve discovered through its lock file.
func (c *Context) API() (api.Client, error) {
	if c.client != nil {
		return c.client, nil
	}

	base, err := api.ResolveBaseURL(c.ServerFlag, c.Config.ServerURL)
	if err != nil {
		return nil, err
	}
	logger.Debug("using attendance service", "url", base)

	c.client = api.NewHTTPClient(base)
	return c.client, nil
}

// Location returns the configured timezone, falling back to local time when
// the configured name does not resolve.
func (c *Context) Location() *time.Location {
	loc, err := utils.LoadLocation(c.Config.Timezone)
	if err != nil {
		logger.Warn("invalid timezone in config, using local time", "timezone", c.Config.Timezone)
		return time.Local
	}
	return loc
}

// ResolveEmployee turns an employee reference, an ID or a (prefix of a)
// name, into the matching employee. Ambiguous references are an error.
func ResolveEmployee(ctx context.Context, client api.Client, ref string) (models.Employee, error) {
	employees, err := client.Employees(ctx, false)
	if err != nil {
		return models.Employee{}, err
	}

	for _, e := range employees {
		if e.ID == ref {
			return e, nil
		}
	}

	lower := strings.ToLower(ref)
	var matches []models.Employee
	for _, e := range employees {
		if strings.ToLower(e.Name) == lower {
			matches = append(matches, e)
		}
	}
	if len(matches) == 0 {
		for _, e := range employees {
			if strings.HasPrefix(strings.ToLower(e.Name), lower) {
				matches = append(matches, e)
			}
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.Employee{}, fmt.Errorf("no employee matches %q", ref)
	default:
		names := make([]string, len(matches))
		for i, e := range matches {
			names[i] = e.Name
		}
		return models.Employee{}, fmt.Errorf("employee reference %q is ambiguous: %s", ref, strings.Join(names, ", "))
	}
}

// FormatAttendanceLine renders one employee's attendance as a single line.
// displayed is the logout time to show, already extrapolated when live.
func FormatAttendanceLine(snap models.AttendanceSnapshot, displayed *time.Time, live bool, loc *time.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", snap.EmployeeName, snap.Status.Label())

	if snap.Break != nil {
		fmt.Fprintf(&b, " (%s, since %s)", snap.Break.Type, snap.Break.StartedAt.In(loc).Format(constants.TimeFormat))
	} else if snap.ClockedInAt != nil && snap.Status == models.StatusWorking {
		fmt.Fprintf(&b, " (since %s)", snap.ClockedInAt.In(loc).Format(constants.TimeFormat))
	}

	if displayed != nil {
		local := displayed.In(loc)
		fmt.Fprintf(&b, ", logout at %s", utils.FormatClock(&local))
		if live {
			b.WriteString(" (live)")
		}
	}

	if snap.ClockedInAt != nil {
		fmt.Fprintf(&b, ", worked %s", utils.FormatMinutes(snap.WorkedMinutes))
		if snap.BreakMinutes > 0 {
			fmt.Fprintf(&b, ", breaks %s", utils.FormatMinutes(snap.BreakMinutes))
		}
	}

	return b.String()
}

// DeciderName picks the name recorded on a leave decision: the flag if
// given, otherwise the OS user.
func DeciderName(flag string) string {
	if flag != "" {
		return flag
	}
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	return "admin"
}

// NotifyBoard pokes a running board TUI to re-poll. A failure only means no
// board is listening, so it is never surfaced to the user.
func NotifyBoard(reason string) {
	if err := notifier.New().NotifyRefresh(reason); err != nil {
		logger.Debug("board refresh skipped", "reason", reason, "error", err)
	}
}
