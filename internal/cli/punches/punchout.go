package punches

import (
	"context"
	"fmt"

	"rollcall/internal/api"
	"rollcall/internal/cli"
	"rollcall/internal/constants"
	"rollcall/internal/errors"
	"rollcall/internal/models"
	"rollcall/internal/utils"
)

type PunchOutCmd struct {
	Employee string `arg:"" help:"Employee name or ID."`
}

func (c *PunchOutCmd) Run(ctx *cli.Context) error {
	client, err := ctx.API()
	if err != nil {
		return err
	}

	employee, err := cli.ResolveEmployee(context.Background(), client, c.Employee)
	if err != nil {
		return err
	}

	punch, err := client.Punch(context.Background(), api.PunchRequest{
		EmployeeID: employee.ID,
		Kind:       models.PunchClockOut,
	})
	if err != nil {
		return errors.Format("failed to clock out", err)
	}

	fmt.Printf("Clocked out %s at %s\n", employee.Name, punch.At.In(ctx.Location()).Format(constants.ClockFormat))

	// Show the day that just ended.
	if snap, err := client.Attendance(context.Background(), employee.ID); err == nil && snap.ClockedInAt != nil {
		fmt.Printf("  Worked %s", utils.FormatMinutes(snap.WorkedMinutes))
		if snap.BreakMinutes > 0 {
			fmt.Printf(", breaks %s", utils.FormatMinutes(snap.BreakMinutes))
		}
		fmt.Println()
	}

	cli.NotifyBoard("clock out")
	return nil
}
