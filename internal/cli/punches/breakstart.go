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

type BreakStartCmd struct {
	Employee string `arg:"" help:"Employee name or ID."`
	Type     string `short:"t" help:"Break type (paid|unpaid|extra)." default:"unpaid"`
}

func (c *BreakStartCmd) Validate() error {
	if !models.BreakType(c.Type).Valid() {
		return fmt.Errorf("invalid break type: %s (expected paid, unpaid or extra)", c.Type)
	}
	return nil
}

func (c *BreakStartCmd) Run(ctx *cli.Context) error {
	client, err := ctx.API()
	if err != nil {
		return err
	}

	employee, err := cli.ResolveEmployee(context.Background(), client, c.Employee)
	if err != nil {
		return err
	}

	breakType := models.BreakType(c.Type)
	punch, err := client.Punch(context.Background(), api.PunchRequest{
		EmployeeID: employee.ID,
		Kind:       models.PunchBreakStart,
		BreakType:  breakType,
	})
	if err != nil {
		return errors.Format("failed to start break", err)
	}

	fmt.Printf("%s started a %s break at %s\n", employee.Name, breakType, punch.At.In(ctx.Location()).Format(constants.ClockFormat))
	if breakType.ExtendsShift() {
		fmt.Println("  The required logout moves back while this break runs.")
	}

	cli.NotifyBoard("break start")
	return nil
}
