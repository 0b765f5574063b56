package storage

import "rollcall/internal/models"

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Employees
	SaveEmployee(models.Employee) error
	GetEmployee(id string) (models.Employee, error)
	ListEmployees(includeDeleted bool) ([]models.Employee, error)
	DeleteEmployee(id string) error
	RestoreEmployee(id string) error

	// Punches
	AddPunch(models.Punch) error
	// ListPunches returns one employee's punches for a day (YYYY-MM-DD),
	// ordered by punch time.
	ListPunches(employeeID, day string) ([]models.Punch, error)
	// ListPunchesForDay returns every employee's punches for a day,
	// ordered by punch time.
	ListPunchesForDay(day string) ([]models.Punch, error)
	ListRecentPunches(limit int) ([]models.Punch, error)

	// Leave
	SaveLeave(models.LeaveRequest) error
	GetLeave(id string) (models.LeaveRequest, error)
	// ListLeave filters by status; an empty status returns all requests.
	ListLeave(status models.LeaveStatus) ([]models.LeaveRequest, error)
	// ListLeaveForDay returns requests whose range covers the day.
	ListLeaveForDay(day string, status models.LeaveStatus) ([]models.LeaveRequest, error)
	// DecideLeave moves a pending request to approved or rejected.
	DecideLeave(id string, status models.LeaveStatus, decidedBy, note string) error
	ListRecentDecisions(limit int) ([]models.LeaveRequest, error)

	// Utils
	GetConfigPath() string
}
