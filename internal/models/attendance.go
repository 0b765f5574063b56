package models

import (
	"fmt"
	"time"
)

type PunchKind string

const (
	PunchClockIn    PunchKind = "clock_in"
	PunchClockOut   PunchKind = "clock_out"
	PunchBreakStart PunchKind = "break_start"
	PunchBreakEnd   PunchKind = "break_end"
)

func (k PunchKind) Valid() bool {
	switch k {
	case PunchClockIn, PunchClockOut, PunchBreakStart, PunchBreakEnd:
		return true
	}
	return false
}

// BreakType classifies a break taken during a shift.
type BreakType string

const (
	BreakPaid   BreakType = "paid"
	BreakUnpaid BreakType = "unpaid"
	BreakExtra  BreakType = "extra"
)

func (b BreakType) Valid() bool {
	switch b {
	case BreakPaid, BreakUnpaid, BreakExtra:
		return true
	}
	return false
}

// ExtendsShift reports whether time spent on this kind of break pushes the
// required logout time back. Paid breaks are part of the workday; unpaid and
// extra breaks are not, so their duration is owed at the end of the shift.
// Unknown types are treated as non-extending.
func (b BreakType) ExtendsShift() bool {
	return b == BreakUnpaid || b == BreakExtra
}

type Punch struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Kind       PunchKind `json:"kind"`
	BreakType  BreakType `json:"break_type,omitempty"` // set on break punches only
	At         time.Time `json:"at"`
	CreatedAt  time.Time `json:"created_at"`
}

func (p *Punch) Validate() error {
	if p.EmployeeID == "" {
		return fmt.Errorf("punch employee id cannot be empty")
	}

	if !p.Kind.Valid() {
		return fmt.Errorf("invalid punch kind: %s", p.Kind)
	}

	if p.Kind == PunchBreakStart && !p.BreakType.Valid() {
		return fmt.Errorf("invalid break type: %s", p.BreakType)
	}

	if p.At.IsZero() {
		return fmt.Errorf("punch time cannot be zero")
	}

	return nil
}

// ActiveBreak is a break that has started and not yet ended.
type ActiveBreak struct {
	Type      BreakType `json:"type"`
	StartedAt time.Time `json:"started_at"`
}

// AttendanceStatus summarizes where an employee is in their workday.
type AttendanceStatus string

const (
	StatusOff     AttendanceStatus = "off"
	StatusWorking AttendanceStatus = "working"
	StatusOnBreak AttendanceStatus = "on_break"
	StatusDone    AttendanceStatus = "done"
	StatusOnLeave AttendanceStatus = "on_leave"
)

// Label renders the status for people instead of JSON.
func (s AttendanceStatus) Label() string {
	switch s {
	case StatusWorking:
		return "working"
	case StatusOnBreak:
		return "on break"
	case StatusOnLeave:
		return "on leave"
	case StatusDone:
		return "done for the day"
	case StatusOff:
		return "off"
	default:
		return string(s)
	}
}

// AttendanceSnapshot is the server-derived view of one employee's day.
// RequiredLogout already includes completed shift-extending breaks; a still
// running one is reported via Break and extrapolated by the consumer.
type AttendanceSnapshot struct {
	EmployeeID     string           `json:"employee_id"`
	EmployeeName   string           `json:"employee_name"`
	Status         AttendanceStatus `json:"status"`
	ClockedInAt    *time.Time       `json:"clocked_in_at,omitempty"`
	RequiredLogout *time.Time       `json:"required_logout,omitempty"`
	Break          *ActiveBreak     `json:"break,omitempty"`
	WorkedMinutes  int              `json:"worked_minutes"`
	BreakMinutes   int              `json:"break_minutes"`
}
