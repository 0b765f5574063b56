package employees

import (
	"context"
	"fmt"

	"rollcall/internal/api"
	"rollcall/internal/cli"
	"rollcall/internal/errors"
	"rollcall/internal/utils"
)

type EmployeeAddCmd struct {
	Name       string `arg:"" help:"Employee name."`
	Email      string `short:"e" help:"Employee email address." required:""`
	Team       string `short:"t" help:"Team name."`
	ShiftStart string `short:"s" help:"Scheduled shift start (HH:MM)."`
	Workday    int    `short:"d" help:"Required workday length in minutes. Defaults to 8 hours."`
}

func (c *EmployeeAddCmd) Validate() error {
	if c.ShiftStart != "" {
		if !utils.ValidateTimeFormat(c.ShiftStart) {
			return fmt.Errorf("invalid shift start (expected HH:MM)")
		}
	}
	if c.Workday < 0 {
		return fmt.Errorf("workday minutes cannot be negative")
	}
	return nil
}

func (c *EmployeeAddCmd) Run(ctx *cli.Context) error {
	client, err := ctx.API()
	if err != nil {
		return err
	}

	employee, err := client.CreateEmployee(context.Background(), api.CreateEmployeeRequest{
		Name:           c.Name,
		Email:          c.Email,
		Team:           c.Team,
		ShiftStart:     c.ShiftStart,
		WorkdayMinutes: c.Workday,
	})
	if err != nil {
		return errors.Format("failed to add employee", err)
	}

	fmt.Printf("Added employee: %s (ID: %s)\n", employee.Name, employee.ID)
	cli.NotifyBoard("employee added")
	return nil
}
