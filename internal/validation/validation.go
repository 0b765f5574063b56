// Package validation detects cross-record inconsistencies in stored
// attendance data. The write paths keep new records well-formed; these checks
// cover what they cannot see, like history imported from another tool or rows
// edited by hand.
package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"rollcall/internal/attendance"
	"rollcall/internal/constants"
	"rollcall/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateEmployeeName ConflictType = "duplicate_employee_name"
	ConflictInvalidShiftStart     ConflictType = "invalid_shift_start"
	ConflictUnknownEmployee       ConflictType = "unknown_employee"
	ConflictInvalidLeaveRange     ConflictType = "invalid_leave_range"
	ConflictOverlappingLeave      ConflictType = "overlapping_leave"
	ConflictIrregularPunches      ConflictType = "irregular_punches"
	ConflictStaleSession          ConflictType = "stale_session"
)

// Conflict represents a detected inconsistency in the stored data
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD format (if applicable)
	Items       []string // Employee names involved
	IDs         []string // IDs of the records involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator validates stored employees, leave requests and punches
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateEmployees checks the roster for conflicts
func (v *Validator) ValidateEmployees(employees []models.Employee) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	// Names resolve case-insensitively on the command line, so differing
	// case still collides.
	nameCount := make(map[string][]string)
	for _, employee := range employees {
		if employee.DeletedAt != nil {
			continue // Removed employees no longer take part in resolution
		}
		name := strings.ToLower(strings.TrimSpace(employee.Name))
		if name == "" {
			continue
		}
		nameCount[name] = append(nameCount[name], employee.ID)
	}

	names := make([]string, 0, len(nameCount))
	for name := range nameCount {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ids := nameCount[name]
		if len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateEmployeeName,
				Description: fmt.Sprintf("Duplicate employee name: \"%s\" (IDs: %v)", name, ids),
				Items:       []string{name},
				IDs:         ids,
			})
		}
	}

	for _, employee := range employees {
		if employee.DeletedAt != nil || employee.ShiftStart == "" {
			continue
		}
		if _, err := time.Parse(constants.TimeFormat, employee.ShiftStart); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidShiftStart,
				Description: fmt.Sprintf("Employee \"%s\" has invalid shift start: %s", employee.Name, employee.ShiftStart),
				Items:       []string{employee.Name},
				IDs:         []string{employee.ID},
			})
		}
	}

	return result
}

// ValidateLeave checks leave requests against the roster and each other.
// Only approved requests are checked for overlap; pending requests may
// overlap anything until they are decided.
func (v *Validator) ValidateLeave(requests []models.LeaveRequest, employees []models.Employee) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	names := employeeNames(employees)

	approvedByEmployee := make(map[string][]models.LeaveRequest)
	for _, request := range requests {
		if _, known := names[request.EmployeeID]; !known {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictUnknownEmployee,
				Description: fmt.Sprintf("Leave request %s references unknown employee ID: %s", request.ID, request.EmployeeID),
				IDs:         []string{request.ID},
			})
		}

		if !validDateRange(request.From, request.To) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidLeaveRange,
				Description: fmt.Sprintf("Leave request %s has invalid date range: %q to %q", request.ID, request.From, request.To),
				IDs:         []string{request.ID},
			})
			continue // An unparseable range cannot be checked for overlap
		}

		if request.Status == models.LeaveApproved {
			approvedByEmployee[request.EmployeeID] = append(approvedByEmployee[request.EmployeeID], request)
		}
	}

	employeeIDs := make([]string, 0, len(approvedByEmployee))
	for id := range approvedByEmployee {
		employeeIDs = append(employeeIDs, id)
	}
	sort.Strings(employeeIDs)

	for _, id := range employeeIDs {
		approved := approvedByEmployee[id]
		sort.Slice(approved, func(i, j int) bool { return approved[i].From < approved[j].From })

		// O(n²) per employee - approved requests per person stay small
		for i := 0; i < len(approved); i++ {
			for j := i + 1; j < len(approved); j++ {
				r1 := approved[i]
				r2 := approved[j]
				// Inclusive YYYY-MM-DD ranges compare correctly as strings
				if r1.From <= r2.To && r2.From <= r1.To {
					name := names[id]
					result.Conflicts = append(result.Conflicts, Conflict{
						Type: ConflictOverlappingLeave,
						Description: fmt.Sprintf("Approved leave overlaps for \"%s\": %s to %s and %s to %s",
							name, r1.From, r1.To, r2.From, r2.To),
						Date:  r1.From,
						Items: []string{name},
						IDs:   []string{r1.ID, r2.ID},
					})
				}
			}
		}
	}

	return result
}

// ValidatePunches checks recorded punches for sequences the live punch
// endpoints would have refused, and for sessions left open on past days.
func (v *Validator) ValidatePunches(punches []models.Punch, employees []models.Employee, loc *time.Location, now time.Time) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	names := employeeNames(employees)
	today := now.In(loc).Format(constants.DateFormat)

	type dayKey struct {
		employeeID string
		day        string
	}
	byDay := make(map[dayKey][]models.Punch)
	flaggedUnknown := make(map[string]bool)

	for _, punch := range punches {
		if _, known := names[punch.EmployeeID]; !known && !flaggedUnknown[punch.EmployeeID] {
			flaggedUnknown[punch.EmployeeID] = true
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictUnknownEmployee,
				Description: fmt.Sprintf("Punch %s references unknown employee ID: %s", punch.ID, punch.EmployeeID),
				IDs:         []string{punch.ID},
			})
		}
		key := dayKey{punch.EmployeeID, punch.At.In(loc).Format(constants.DateFormat)}
		byDay[key] = append(byDay[key], punch)
	}

	keys := make([]dayKey, 0, len(byDay))
	for key := range byDay {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].employeeID != keys[j].employeeID {
			return keys[i].employeeID < keys[j].employeeID
		}
		return keys[i].day < keys[j].day
	})

	for _, key := range keys {
		dayPunches := byDay[key]
		name := names[key.employeeID]
		if name == "" {
			name = key.employeeID
		}

		if misfits := irregularPunches(dayPunches); len(misfits) > 0 {
			ids := make([]string, len(misfits))
			for i, p := range misfits {
				ids[i] = p.ID
			}
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictIrregularPunches,
				Description: fmt.Sprintf("%s: %d punch(es) for \"%s\" do not fit the day's sequence", key.day, len(misfits), name),
				Date:        key.day,
				Items:       []string{name},
				IDs:         ids,
			})
		}

		day := attendance.Replay(dayPunches)
		if day.ClockIn != nil && day.ClockOut == nil && key.day < today {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictStaleSession,
				Description: fmt.Sprintf("%s: \"%s\" clocked in and never out", key.day, name),
				Date:        key.day,
				Items:       []string{name},
			})
		}
	}

	return result
}

// Helper functions

func employeeNames(employees []models.Employee) map[string]string {
	names := make(map[string]string, len(employees))
	for _, employee := range employees {
		names[employee.ID] = employee.Name
	}
	return names
}

func validDateRange(from, to string) bool {
	f, err := time.Parse(constants.DateFormat, from)
	if err != nil {
		return false
	}
	t, err := time.Parse(constants.DateFormat, to)
	if err != nil {
		return false
	}
	return !t.Before(f)
}

// irregularPunches returns the punches a day's replay would skip. The walk
// mirrors the transition rules the server enforces on new punches.
func irregularPunches(punches []models.Punch) []models.Punch {
	sorted := append([]models.Punch(nil), punches...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].At.Before(sorted[j].At) })

	var clockedIn, clockedOut, onBreak bool
	var misfits []models.Punch
	for _, p := range sorted {
		switch p.Kind {
		case models.PunchClockIn:
			if clockedIn {
				misfits = append(misfits, p)
				continue
			}
			clockedIn = true
		case models.PunchClockOut:
			if !clockedIn || clockedOut {
				misfits = append(misfits, p)
				continue
			}
			clockedOut = true
			onBreak = false
		case models.PunchBreakStart:
			if !clockedIn || clockedOut || onBreak {
				misfits = append(misfits, p)
				continue
			}
			onBreak = true
		case models.PunchBreakEnd:
			if !onBreak {
				misfits = append(misfits, p)
				continue
			}
			onBreak = false
		default:
			misfits = append(misfits, p)
		}
	}
	return misfits
}
