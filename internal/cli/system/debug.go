package system

import (
	"encoding/json"
	"fmt"
	"time"

	"rollcall/internal/cli"
	"rollcall/internal/constants"
	"rollcall/internal/errors"
)

type DebugCmd struct {
	DBPath       *DebugDBPathCmd       `cmd:"" help:"Show database path."`
	DumpEmployee *DebugDumpEmployeeCmd `cmd:"" help:"Dump employee data as JSON."`
	DumpPunches  *DebugDumpPunchesCmd  `cmd:"" help:"Dump one employee's punches for a day as JSON."`
	DumpLeave    *DebugDumpLeaveCmd    `cmd:"" help:"Dump leave request data as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	path := ctx.Store.GetConfigPath()

	// Output in machine-readable format
	output := map[string]string{
		"path": path,
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return errors.Format("failed to marshal output", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}

type DebugDumpEmployeeCmd struct {
	ID string `arg:"" help:"ID of the employee to dump."`
}

func (cmd *DebugDumpEmployeeCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return errors.Format("failed to load database", err)
	}

	// The store reports missing rows with a descriptive not-found error
	employee, err := ctx.Store.GetEmployee(cmd.ID)
	if err != nil {
		return err
	}

	jsonBytes, err := json.MarshalIndent(employee, "", "  ")
	if err != nil {
		return errors.Format("failed to marshal employee", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}

type DebugDumpPunchesCmd struct {
	Employee string `arg:"" help:"ID of the employee whose punches to dump."`
	Day      string `arg:"" optional:"" default:"today" help:"Day to dump (YYYY-MM-DD or 'today')."`
}

func (cmd *DebugDumpPunchesCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return errors.Format("failed to load database", err)
	}

	day := cmd.Day
	if day == "today" {
		day = getCurrentDate()
	}
	if !isValidDate(day) {
		return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD or 'today')", day)
	}

	punches, err := ctx.Store.ListPunches(cmd.Employee, day)
	if err != nil {
		return errors.Format("failed to list punches", err)
	}

	jsonBytes, err := json.MarshalIndent(punches, "", "  ")
	if err != nil {
		return errors.Format("failed to marshal punches", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}

type DebugDumpLeaveCmd struct {
	ID string `arg:"" help:"ID of the leave request to dump."`
}

func (cmd *DebugDumpLeaveCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return errors.Format("failed to load database", err)
	}

	leave, err := ctx.Store.GetLeave(cmd.ID)
	if err != nil {
		return err
	}

	jsonBytes, err := json.MarshalIndent(leave, "", "  ")
	if err != nil {
		return errors.Format("failed to marshal leave request", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}

func getCurrentDate() string {
	return time.Now().Format(constants.DateFormat)
}

func isValidDate(dateStr string) bool {
	_, err := time.Parse(constants.DateFormat, dateStr)
	return err == nil
}
