package employees

import (
	"context"
	"fmt"
	"strings"

	"rollcall/internal/cli"
	"rollcall/internal/errors"
)

type EmployeeRestoreCmd struct {
	Employee string `arg:"" help:"Employee name or ID to restore."`
}

func (c *EmployeeRestoreCmd) Run(ctx *cli.Context) error {
	client, err := ctx.API()
	if err != nil {
		return err
	}

	// Removed employees are not resolvable by name, so match against the
	// full roster here.
	employees, err := client.Employees(context.Background(), true)
	if err != nil {
		return errors.Format("failed to list employees", err)
	}

	ref := strings.ToLower(c.Employee)
	var id, name string
	for _, e := range employees {
		if e.DeletedAt == nil {
			continue
		}
		if e.ID == c.Employee || strings.ToLower(e.Name) == ref {
			id, name = e.ID, e.Name
			break
		}
	}
	if id == "" {
		return fmt.Errorf("no removed employee matches %q", c.Employee)
	}

	if err := client.RestoreEmployee(context.Background(), id); err != nil {
		return errors.Format("failed to restore employee", err)
	}

	fmt.Printf("Restored employee: %s (ID: %s)\n", name, id)
	cli.NotifyBoard("employee restored")
	return nil
}
