package cli

import (
	"context"
	"fmt"

	"rollcall/internal/errors"
)

type SummaryCmd struct{}

func (c *SummaryCmd) Run(ctx *Context) error {
	client, err := ctx.API()
	if err != nil {
		return err
	}

	summary, err := client.Summary(context.Background())
	if err != nil {
		return errors.Format("failed to fetch summary", err)
	}

	fmt.Printf("Attendance for %s (%d employees):\n", summary.Date, summary.Total)
	fmt.Printf("  Working:   %d\n", summary.Working)
	fmt.Printf("  On break:  %d\n", summary.OnBreak)
	fmt.Printf("  On leave:  %d\n", summary.OnLeave)
	fmt.Printf("  Done:      %d\n", summary.Done)
	fmt.Printf("  Off:       %d\n", summary.Off)
	return nil
}
