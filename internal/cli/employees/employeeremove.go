package employees

import (
	"context"
	"fmt"

	"rollcall/internal/cli"
	"rollcall/internal/errors"
)

type EmployeeRemoveCmd struct {
	Employee string `arg:"" help:"Employee name or ID to remove."`
}

func (c *EmployeeRemoveCmd) Run(ctx *cli.Context) error {
	client, err := ctx.API()
	if err != nil {
		return err
	}

	employee, err := cli.ResolveEmployee(context.Background(), client, c.Employee)
	if err != nil {
		return err
	}

	if err := client.RemoveEmployee(context.Background(), employee.ID); err != nil {
		return errors.Format("failed to remove employee", err)
	}

	fmt.Printf("Removed employee: %s (ID: %s)\n", employee.Name, employee.ID)
	cli.NotifyBoard("employee removed")
	return nil
}
