package system

import (
	"fmt"
	"time"

	"rollcall/internal/cli"
	"rollcall/internal/errors"
	"rollcall/internal/validation"
)

// validatePunchLimit is how many recent punches a validate run audits.
const validatePunchLimit = 1000

type ValidateCmd struct{}

func (cmd *ValidateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return errors.Format("failed to load storage", err)
	}
	defer ctx.Store.Close()

	employees, err := ctx.Store.ListEmployees(true)
	if err != nil {
		return errors.Format("failed to load employees", err)
	}

	requests, err := ctx.Store.ListLeave("")
	if err != nil {
		return errors.Format("failed to load leave requests", err)
	}

	punches, err := ctx.Store.ListRecentPunches(validatePunchLimit)
	if err != nil {
		return errors.Format("failed to load punches", err)
	}

	validator := validation.New()

	fmt.Println("Validating employees...")
	employeeResult := validator.ValidateEmployees(employees)

	fmt.Println("Validating leave requests...")
	leaveResult := validator.ValidateLeave(requests, employees)

	fmt.Println("Validating punches...")
	punchResult := validator.ValidatePunches(punches, employees, ctx.Location(), time.Now())

	allConflicts := append(employeeResult.Conflicts, leaveResult.Conflicts...)
	allConflicts = append(allConflicts, punchResult.Conflicts...)
	combined := validation.ValidationResult{Conflicts: allConflicts}

	fmt.Println()
	fmt.Println(combined.FormatReport())

	// Conflicts are reported, not treated as a command failure
	return nil
}
