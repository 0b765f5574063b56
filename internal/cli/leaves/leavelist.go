package leaves

import (
	"context"
	"fmt"

	"rollcall/internal/cli"
	"rollcall/internal/errors"
	"rollcall/internal/models"
)

type LeaveListCmd struct {
	Status  string `short:"s" help:"Filter by status (pending|approved|rejected)."`
	ShowIDs bool   `help:"Show request IDs." name:"show-ids"`
}

func (c *LeaveListCmd) Validate() error {
	if c.Status != "" && !models.LeaveStatus(c.Status).Valid() {
		return fmt.Errorf("invalid leave status: %s (expected pending, approved or rejected)", c.Status)
	}
	return nil
}

func (c *LeaveListCmd) Run(ctx *cli.Context) error {
	client, err := ctx.API()
	if err != nil {
		return err
	}

	requests, err := client.Leave(context.Background(), models.LeaveStatus(c.Status))
	if err != nil {
		return errors.Format("failed to list leave requests", err)
	}
	if len(requests) == 0 {
		fmt.Println("No leave requests found")
		return nil
	}

	employees, err := client.Employees(context.Background(), true)
	if err != nil {
		return errors.Format("failed to list employees", err)
	}
	names := make(map[string]string, len(employees))
	for _, e := range employees {
		names[e.ID] = e.Name
	}

	fmt.Println("Leave requests:")
	for _, leave := range requests {
		name, ok := names[leave.EmployeeID]
		if !ok {
			name = leave.EmployeeID
		}

		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", leave.ID)
		}

		fmt.Printf("  [%s] %s: %s leave %s to %s%s\n", leave.Status, name, leave.Kind, leave.From, leave.To, idStr)
		if leave.Reason != "" {
			fmt.Printf("      Reason: %s\n", leave.Reason)
		}
		if leave.DecidedBy != "" {
			fmt.Printf("      Decided by %s", leave.DecidedBy)
			if leave.DecisionNote != "" {
				fmt.Printf(": %s", leave.DecisionNote)
			}
			fmt.Println()
		}
	}
	return nil
}
