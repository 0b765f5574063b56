package api

import (
	"time"

	"rollcall/internal/models"
)

// Wire types shared by the HTTP client and the server handlers.

type HealthInfo struct {
	Status  string    `json:"status"`
	Version string    `json:"version"`
	Time    time.Time `json:"time"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type CreateEmployeeRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email,omitempty"`
	Team           string `json:"team,omitempty"`
	ShiftStart     string `json:"shift_start,omitempty"` // HH:MM format
	WorkdayMinutes int    `json:"workday_minutes,omitempty"`
}

// PunchRequest records one punch. At defaults to server time when omitted.
type PunchRequest struct {
	EmployeeID string           `json:"employee_id"`
	Kind       models.PunchKind `json:"kind"`
	BreakType  models.BreakType `json:"break_type,omitempty"`
	At         *time.Time       `json:"at,omitempty"`
}

type LeaveSubmission struct {
	EmployeeID string           `json:"employee_id"`
	Kind       models.LeaveKind `json:"kind"`
	From       string           `json:"from"` // YYYY-MM-DD format
	To         string           `json:"to"`   // YYYY-MM-DD format
	Reason     string           `json:"reason,omitempty"`
}

type DecisionRequest struct {
	DecidedBy string `json:"decided_by"`
	Note      string `json:"note,omitempty"`
}
