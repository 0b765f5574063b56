package models

import (
	"fmt"
	"strings"
	"time"
)

type Employee struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email,omitempty"`
	Team           string     `json:"team,omitempty"`
	ShiftStart     string     `json:"shift_start,omitempty"` // HH:MM format
	WorkdayMinutes int        `json:"workday_minutes"`
	CreatedAt      time.Time  `json:"created_at"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"` // RFC3339 timestamp
}

func (e *Employee) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("employee name cannot be empty")
	}

	if e.Email != "" && !strings.Contains(e.Email, "@") {
		return fmt.Errorf("invalid email address: %s", e.Email)
	}

	if e.ShiftStart != "" {
		// Validate time format (HH:MM)
		if _, err := time.Parse("15:04", e.ShiftStart); err != nil {
			return fmt.Errorf("invalid shift start %q, expected HH:MM", e.ShiftStart)
		}
	}

	if e.WorkdayMinutes < 0 {
		return fmt.Errorf("workday minutes cannot be negative")
	}

	return nil
}
