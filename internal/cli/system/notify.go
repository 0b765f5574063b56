package system

import (
	"fmt"

	"rollcall/internal/cli"
	"rollcall/internal/errors"
	"rollcall/internal/notifier"
)

type NotifyCmd struct {
	Reason string `arg:"" optional:"" help:"Reason shown in the board's log." default:"manual refresh"`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	if err := notifier.New().NotifyRefresh(c.Reason); err != nil {
		return errors.Format("failed to notify board", err)
	}

	fmt.Println("Board refresh sent")
	return nil
}
