package leaves

import (
	"context"
	"fmt"
	"strings"

	"rollcall/internal/cli"
	"rollcall/internal/errors"
)

type LeaveRejectCmd struct {
	ID   string `arg:"" help:"Leave request ID to reject."`
	Note string `short:"n" help:"Reason for the rejection, shown to the employee." required:""`
	By   string `short:"b" help:"Name recorded as the decider. Defaults to the OS user."`
}

func (c *LeaveRejectCmd) Validate() error {
	if strings.TrimSpace(c.Note) == "" {
		return fmt.Errorf("a rejection requires a note")
	}
	return nil
}

func (c *LeaveRejectCmd) Run(ctx *cli.Context) error {
	client, err := ctx.API()
	if err != nil {
		return err
	}

	decidedBy := cli.DeciderName(c.By)
	if err := client.RejectLeave(context.Background(), c.ID, decidedBy, c.Note); err != nil {
		return errors.Format("failed to reject leave request", err)
	}

	fmt.Printf("Rejected leave request %s (by %s)\n", c.ID, decidedBy)
	cli.NotifyBoard("leave rejected")
	return nil
}
