package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"rollcall/internal/errors"
	"rollcall/internal/poller"
)

type StatusCmd struct {
	Employee string `arg:"" optional:"" help:"Employee name or ID. Omit to show everyone."`
	Watch    bool   `short:"w" help:"Keep watching and update the line as the estimate changes."`
}

func (c *StatusCmd) Validate() error {
	if c.Watch && c.Employee == "" {
		return fmt.Errorf("pass an employee to watch, or run 'rollcall board' for the full live view")
	}
	return nil
}

func (c *StatusCmd) Run(ctx *Context) error {
	client, err := ctx.API()
	if err != nil {
		return err
	}
	loc := ctx.Location()

	if c.Employee == "" {
		snapshots, err := client.AllAttendance(context.Background())
		if err != nil {
			return errors.Format("failed to fetch attendance", err)
		}
		if len(snapshots) == 0 {
			fmt.Println("No employees found")
			return nil
		}
		for _, snap := range snapshots {
			fmt.Println(FormatAttendanceLine(snap, snap.RequiredLogout, false, loc))
		}
		return nil
	}

	employee, err := ResolveEmployee(context.Background(), client, c.Employee)
	if err != nil {
		return err
	}

	if !c.Watch {
		snap, err := client.Attendance(context.Background(), employee.ID)
		if err != nil {
			return errors.Format("failed to fetch attendance", err)
		}
		fmt.Println(FormatAttendanceLine(snap, snap.RequiredLogout, false, loc))
		return nil
	}

	return c.watch(ctx, employee.ID)
}

// watch rewrites a single status line as the poller publishes updates. While
// a shift-extending break is running the logout estimate moves every second.
func (c *StatusCmd) watch(ctx *Context, employeeID string) error {
	client, err := ctx.API()
	if err != nil {
		return err
	}

	p := poller.New(poller.Config{
		Client:   client,
		Interval: ctx.Config.PollInterval,
	})

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go p.Run(runCtx)

	loc := ctx.Location()
	for update := range p.Updates() {
		if update.EmployeeID != employeeID {
			continue
		}
		if update.Removed {
			fmt.Println()
			return fmt.Errorf("employee was removed while watching")
		}

		line := FormatAttendanceLine(update.State.Snapshot, update.State.Displayed, update.State.Live, loc)
		// Clear to end of line in case the previous line was longer.
		fmt.Printf("\r%s\033[K", line)
	}

	fmt.Println()
	return nil
}
