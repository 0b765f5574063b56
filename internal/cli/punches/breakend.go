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

type BreakEndCmd struct {
	Employee string `arg:"" help:"Employee name or ID."`
}

func (c *BreakEndCmd) Run(ctx *cli.Context) error {
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
		Kind:       models.PunchBreakEnd,
	})
	if err != nil {
		return errors.Format("failed to end break", err)
	}

	fmt.Printf("%s is back at %s\n", employee.Name, punch.At.In(ctx.Location()).Format(constants.ClockFormat))

	if snap, err := client.Attendance(context.Background(), employee.ID); err == nil && snap.RequiredLogout != nil {
		logout := snap.RequiredLogout.In(ctx.Location())
		fmt.Printf("  Required logout is now %s\n", utils.FormatClock(&logout))
	}

	cli.NotifyBoard("break end")
	return nil
}
