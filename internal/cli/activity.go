package cli

import (
	"context"
	"fmt"

	"rollcall/internal/errors"
)

type ActivityCmd struct {
	Limit int `short:"n" help:"Maximum number of entries to show." default:"20"`
}

func (c *ActivityCmd) Validate() error {
	if c.Limit < 1 {
		return fmt.Errorf("limit must be at least 1")
	}
	return nil
}

func (c *ActivityCmd) Run(ctx *Context) error {
	client, err := ctx.API()
	if err != nil {
		return err
	}

	entries, err := client.Activity(context.Background(), c.Limit)
	if err != nil {
		return errors.Format("failed to fetch activity", err)
	}
	if len(entries) == 0 {
		fmt.Println("No recent activity")
		return nil
	}

	loc := ctx.Location()
	fmt.Println("Recent activity:")
	for _, entry := range entries {
		fmt.Printf("  %s  %s %s\n", entry.At.In(loc).Format("Jan 02 15:04"), entry.EmployeeName, entry.Detail)
	}
	return nil
}
