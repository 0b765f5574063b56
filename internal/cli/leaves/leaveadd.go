package leaves

import (
	"context"
	"fmt"

	"rollcall/internal/api"
	"rollcall/internal/cli"
	"rollcall/internal/errors"
	"rollcall/internal/models"
	"rollcall/internal/utils"
)

type LeaveAddCmd struct {
	Employee string `arg:"" help:"Employee name or ID."`
	From     string `short:"f" help:"First day of leave (YYYY-MM-DD)." required:""`
	To       string `short:"t" help:"Last day of leave (YYYY-MM-DD). Defaults to the first day."`
	Kind     string `short:"k" help:"Leave kind (vacation|sick|casual)." default:"vacation"`
	Reason   string `short:"r" help:"Reason shown to the approver."`
}

func (c *LeaveAddCmd) Validate() error {
	if !models.LeaveKind(c.Kind).Valid() {
		return fmt.Errorf("invalid leave kind: %s (expected vacation, sick or casual)", c.Kind)
	}
	if !utils.ValidateDateFormat(c.From) {
		return fmt.Errorf("invalid from date")
	}
	if c.To != "" {
		if !utils.ValidateDateFormat(c.To) {
			return fmt.Errorf("invalid to date")
		}
	}
	return nil
}

func (c *LeaveAddCmd) Run(ctx *cli.Context) error {
	client, err := ctx.API()
	if err != nil {
		return err
	}

	employee, err := cli.ResolveEmployee(context.Background(), client, c.Employee)
	if err != nil {
		return err
	}

	to := c.To
	if to == "" {
		to = c.From
	}

	leave, err := client.SubmitLeave(context.Background(), api.LeaveSubmission{
		EmployeeID: employee.ID,
		Kind:       models.LeaveKind(c.Kind),
		From:       c.From,
		To:         to,
		Reason:     c.Reason,
	})
	if err != nil {
		return errors.Format("failed to submit leave request", err)
	}

	fmt.Printf("Submitted %s leave for %s: %s to %s (ID: %s)\n", leave.Kind, employee.Name, leave.From, leave.To, leave.ID)
	cli.NotifyBoard("leave submitted")
	return nil
}
