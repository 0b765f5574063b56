package leaves

import (
	"context"
	"fmt"

	"rollcall/internal/cli"
	"rollcall/internal/errors"
)

type LeaveApproveCmd struct {
	ID string `arg:"" help:"Leave request ID to approve."`
	By string `short:"b" help:"Name recorded as the approver. Defaults to the OS user."`
}

func (c *LeaveApproveCmd) Run(ctx *cli.Context) error {
	client, err := ctx.API()
	if err != nil {
		return err
	}

	decidedBy := cli.DeciderName(c.By)
	if err := client.ApproveLeave(context.Background(), c.ID, decidedBy); err != nil {
		return errors.Format("failed to approve leave request", err)
	}

	fmt.Printf("Approved leave request %s (by %s)\n", c.ID, decidedBy)
	cli.NotifyBoard("leave approved")
	return nil
}
