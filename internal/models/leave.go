package models

import (
	"fmt"
	"strings"
	"time"
)

type LeaveKind string

const (
	LeaveVacation LeaveKind = "vacation"
	LeaveSick     LeaveKind = "sick"
	LeaveCasual   LeaveKind = "casual"
)

func (k LeaveKind) Valid() bool {
	switch k {
	case LeaveVacation, LeaveSick, LeaveCasual:
		return true
	}
	return false
}

type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

func (s LeaveStatus) Valid() bool {
	switch s {
	case LeavePending, LeaveApproved, LeaveRejected:
		return true
	}
	return false
}

type LeaveRequest struct {
	ID           string      `json:"id"`
	EmployeeID   string      `json:"employee_id"`
	Kind         LeaveKind   `json:"kind"`
	From         string      `json:"from"` // YYYY-MM-DD format
	To           string      `json:"to"`   // YYYY-MM-DD format
	Reason       string      `json:"reason,omitempty"`
	Status       LeaveStatus `json:"status"`
	DecidedBy    string      `json:"decided_by,omitempty"`
	DecisionNote string      `json:"decision_note,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	DecidedAt    *time.Time  `json:"decided_at,omitempty"`
}

func (l *LeaveRequest) Validate() error {
	if l.EmployeeID == "" {
		return fmt.Errorf("leave request employee id cannot be empty")
	}

	if !l.Kind.Valid() {
		return fmt.Errorf("invalid leave kind: %s", l.Kind)
	}

	from, err := time.Parse("2006-01-02", l.From)
	if err != nil {
		return fmt.Errorf("invalid from date %q, expected YYYY-MM-DD", l.From)
	}

	to, err := time.Parse("2006-01-02", l.To)
	if err != nil {
		return fmt.Errorf("invalid to date %q, expected YYYY-MM-DD", l.To)
	}

	if to.Before(from) {
		return fmt.Errorf("leave end date %s is before start date %s", l.To, l.From)
	}

	return nil
}

// Covers reports whether the request's date range includes the given day.
func (l *LeaveRequest) Covers(day time.Time) bool {
	from, err := time.Parse("2006-01-02", l.From)
	if err != nil {
		return false
	}
	to, err := time.Parse("2006-01-02", l.To)
	if err != nil {
		return false
	}

	d := day.Format("2006-01-02")
	return d >= from.Format("2006-01-02") && d <= to.Format("2006-01-02")
}

// DecisionFor validates a status transition for an admin decision.
func DecisionFor(status LeaveStatus, note string) error {
	switch status {
	case LeaveApproved:
		return nil
	case LeaveRejected:
		if strings.TrimSpace(note) == "" {
			return fmt.Errorf("a rejection requires a note")
		}
		return nil
	default:
		return fmt.Errorf("invalid leave decision: %s", status)
	}
}
