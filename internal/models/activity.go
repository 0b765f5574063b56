package models

import "time"

type ActivityKind string

const (
	ActivityPunch ActivityKind = "punch"
	ActivityLeave ActivityKind = "leave"
)

// ActivityEntry is one row of the recent-activity feed, derived from punches
// and leave decisions.
type ActivityEntry struct {
	At           time.Time    `json:"at"`
	EmployeeID   string       `json:"employee_id"`
	EmployeeName string       `json:"employee_name"`
	Kind         ActivityKind `json:"kind"`
	Detail       string       `json:"detail"`
}

// Summary is the headcount breakdown for a single day.
type Summary struct {
	Date    string `json:"date"` // YYYY-MM-DD format
	Total   int    `json:"total"`
	Working int    `json:"working"`
	OnBreak int    `json:"on_break"`
	OnLeave int    `json:"on_leave"`
	Done    int    `json:"done"`
	Off     int    `json:"off"`
}
