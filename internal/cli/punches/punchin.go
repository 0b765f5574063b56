package punches

import (
	"context"
	"fmt"

	"rollcall/internal/api"
	"rollcall/internal/cli"
	"rollcall/internal/constants"
	"rollcall/internal/errors"
	"rollcall/internal/models"
)

type PunchInCmd struct {
	Employee string `arg:"" help:"Employee name or ID."`
}

func (c *PunchInCmd) Run(ctx *cli.Context) error {
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
		Kind:       models.PunchClockIn,
	})
	if err != nil {
		return errors.Format("failed to clock in", err)
	}

	fmt.Printf("Clocked in %s at %s\n", employee.Name, punch.At.In(ctx.Location()).Format(constants.ClockFormat))
	cli.NotifyBoard("clock in")
	return nil
}
