package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// NewRejectForm builds the note prompt shown before a rejection is submitted.
func NewRejectForm(fm *RejectFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Rejection note").
				Description("Recorded on the request and shown to the employee").
				Value(&fm.Note).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("a rejection requires a note")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewConfirmationForm builds a yes/no dialog for a pending action.
func NewConfirmationForm(fm *ConfirmationFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fm.Message).
				Affirmative("Yes").
				Negative("No").
				Value(&fm.Confirmed),
		),
	).WithTheme(huh.ThemeDracula())
}
