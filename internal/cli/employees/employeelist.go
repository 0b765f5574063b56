package employees

import (
	"context"
	"fmt"

	"rollcall/internal/cli"
	"rollcall/internal/errors"
	"rollcall/internal/utils"
)

type EmployeeListCmd struct {
	All     bool `help:"Include removed employees."`
	ShowIDs bool `help:"Show employee IDs." name:"show-ids"`
}

func (c *EmployeeListCmd) Run(ctx *cli.Context) error {
	client, err := ctx.API()
	if err != nil {
		return err
	}

	employees, err := client.Employees(context.Background(), c.All)
	if err != nil {
		return errors.Format("failed to list employees", err)
	}
	if len(employees) == 0 {
		fmt.Println("No employees found")
		return nil
	}

	fmt.Println("Employees:")
	for _, employee := range employees {
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", employee.ID)
		}

		marker := ""
		if employee.DeletedAt != nil {
			marker = " [removed]"
		}

		team := employee.Team
		if team == "" {
			team = "no team"
		}

		fmt.Printf("  %s%s%s - %s, %s day", employee.Name, idStr, marker, team, utils.FormatMinutes(employee.WorkdayMinutes))
		if employee.ShiftStart != "" {
			fmt.Printf(", shift %s", employee.ShiftStart)
		}
		fmt.Println()
	}
	return nil
}
