package server_test

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rollcall/internal/api"
	"rollcall/internal/models"
	"rollcall/internal/server"
	"rollcall/internal/storage/sqlite"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// testNow is mid-afternoon so same-day punch timelines fit before it.
var testNow = time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) *api.HTTPClient {
	t.Helper()

	store := sqlite.NewStore(filepath.Join(t.TempDir(), "rollcall.db"))
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })

	srv := server.New(store, server.Options{
		Location: time.UTC,
		Version:  "test",
		Clock:    fixedClock{now: testNow},
	})

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	return api.NewHTTPClient(ts.URL)
}

func createEmployee(t *testing.T, client *api.HTTPClient, name string) models.Employee {
	t.Helper()

	employee, err := client.CreateEmployee(context.Background(), api.CreateEmployeeRequest{
		Name:  name,
		Email: name + "@example.com",
		Team:  "Engineering",
	})
	require.NoError(t, err)
	return employee
}

func punchAt(t *testing.T, client *api.HTTPClient, employeeID string, kind models.PunchKind, breakType models.BreakType, at time.Time) {
	t.Helper()

	_, err := client.Punch(context.Background(), api.PunchRequest{
		EmployeeID: employeeID,
		Kind:       kind,
		BreakType:  breakType,
		At:         &at,
	})
	require.NoError(t, err)
}

func TestHealth(t *testing.T) {
	client := newTestServer(t)

	info, err := client.Health(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "ok", info.Status)
	assert.Equal(t, "test", info.Version)
	assert.True(t, info.Time.Equal(testNow))
}

func TestCreateEmployeeDefaults(t *testing.T) {
	client := newTestServer(t)

	employee := createEmployee(t, client, "Ada")

	assert.NotEmpty(t, employee.ID)
	assert.Equal(t, "Ada", employee.Name)
	assert.Equal(t, 480, employee.WorkdayMinutes)
	assert.True(t, employee.CreatedAt.Equal(testNow))
}

func TestCreateEmployeeValidation(t *testing.T) {
	client := newTestServer(t)

	_, err := client.CreateEmployee(context.Background(), api.CreateEmployeeRequest{Email: "no-name@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name cannot be empty")
}

func TestListEmployees(t *testing.T) {
	client := newTestServer(t)

	employees, err := client.Employees(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, employees)

	ada := createEmployee(t, client, "Ada")
	createEmployee(t, client, "Grace")

	require.NoError(t, client.RemoveEmployee(context.Background(), ada.ID))

	active, err := client.Employees(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Grace", active[0].Name)

	all, err := client.Employees(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRemoveEmployeeNotFound(t *testing.T) {
	client := newTestServer(t)

	err := client.RemoveEmployee(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "employee not found")
}

func TestRestoreEmployee(t *testing.T) {
	client := newTestServer(t)
	ctx := context.Background()
	ada := createEmployee(t, client, "Ada")

	err := client.RestoreEmployee(ctx, ada.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not deleted")

	require.NoError(t, client.RemoveEmployee(ctx, ada.ID))
	require.NoError(t, client.RestoreEmployee(ctx, ada.ID))

	active, err := client.Employees(ctx, false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Nil(t, active[0].DeletedAt)

	err = client.RestoreEmployee(ctx, "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "employee not found")
}

func TestAttendanceLifecycle(t *testing.T) {
	client := newTestServer(t)
	employee := createEmployee(t, client, "Ada")

	// Before any punches the employee is off with no derived times.
	snap, err := client.Attendance(context.Background(), employee.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusOff, snap.Status)
	assert.Nil(t, snap.ClockedInAt)
	assert.Nil(t, snap.RequiredLogout)

	clockIn := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	punchAt(t, client, employee.ID, models.PunchClockIn, "", clockIn)

	snap, err = client.Attendance(context.Background(), employee.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusWorking, snap.Status)
	require.NotNil(t, snap.ClockedInAt)
	assert.True(t, snap.ClockedInAt.Equal(clockIn))
	require.NotNil(t, snap.RequiredLogout)
	assert.True(t, snap.RequiredLogout.Equal(clockIn.Add(8*time.Hour)))
	assert.Equal(t, 360, snap.WorkedMinutes)
}

func TestAttendanceUnpaidBreakExtendsLogout(t *testing.T) {
	client := newTestServer(t)
	employee := createEmployee(t, client, "Ada")

	clockIn := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	punchAt(t, client, employee.ID, models.PunchClockIn, "", clockIn)
	punchAt(t, client, employee.ID, models.PunchBreakStart, models.BreakUnpaid, clockIn.Add(3*time.Hour))
	punchAt(t, client, employee.ID, models.PunchBreakEnd, "", clockIn.Add(3*time.Hour+30*time.Minute))

	snap, err := client.Attendance(context.Background(), employee.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusWorking, snap.Status)
	require.NotNil(t, snap.RequiredLogout)
	assert.True(t, snap.RequiredLogout.Equal(clockIn.Add(8*time.Hour+30*time.Minute)))
	assert.Equal(t, 30, snap.BreakMinutes)
}

func TestAttendanceOnBreakReportsActiveBreak(t *testing.T) {
	client := newTestServer(t)
	employee := createEmployee(t, client, "Ada")

	clockIn := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	breakStart := time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)
	punchAt(t, client, employee.ID, models.PunchClockIn, "", clockIn)
	punchAt(t, client, employee.ID, models.PunchBreakStart, models.BreakPaid, breakStart)

	snap, err := client.Attendance(context.Background(), employee.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusOnBreak, snap.Status)
	require.NotNil(t, snap.Break)
	assert.Equal(t, models.BreakPaid, snap.Break.Type)
	assert.True(t, snap.Break.StartedAt.Equal(breakStart))
	// A paid break does not move the required logout.
	require.NotNil(t, snap.RequiredLogout)
	assert.True(t, snap.RequiredLogout.Equal(clockIn.Add(8*time.Hour)))
}

func TestAttendanceOnApprovedLeave(t *testing.T) {
	client := newTestServer(t)
	employee := createEmployee(t, client, "Ada")

	leave, err := client.SubmitLeave(context.Background(), api.LeaveSubmission{
		EmployeeID: employee.ID,
		Kind:       models.LeaveVacation,
		From:       "2026-03-01",
		To:         "2026-03-03",
	})
	require.NoError(t, err)
	require.NoError(t, client.ApproveLeave(context.Background(), leave.ID, "admin"))

	snap, err := client.Attendance(context.Background(), employee.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusOnLeave, snap.Status)
}

func TestAttendanceUnknownEmployee(t *testing.T) {
	client := newTestServer(t)

	_, err := client.Attendance(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "employee not found")
}

func TestPunchSequenceConflicts(t *testing.T) {
	client := newTestServer(t)
	employee := createEmployee(t, client, "Ada")
	ctx := context.Background()

	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	at := func(minutes int) *time.Time {
		ts := base.Add(time.Duration(minutes) * time.Minute)
		return &ts
	}

	_, err := client.Punch(ctx, api.PunchRequest{EmployeeID: employee.ID, Kind: models.PunchClockOut, At: at(0)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not clocked in")

	_, err = client.Punch(ctx, api.PunchRequest{EmployeeID: employee.ID, Kind: models.PunchBreakEnd, At: at(0)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not on break")

	_, err = client.Punch(ctx, api.PunchRequest{EmployeeID: employee.ID, Kind: models.PunchClockIn, At: at(0)})
	require.NoError(t, err)

	_, err = client.Punch(ctx, api.PunchRequest{EmployeeID: employee.ID, Kind: models.PunchClockIn, At: at(10)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already clocked in")

	_, err = client.Punch(ctx, api.PunchRequest{EmployeeID: employee.ID, Kind: models.PunchBreakStart, BreakType: models.BreakUnpaid, At: at(20)})
	require.NoError(t, err)

	_, err = client.Punch(ctx, api.PunchRequest{EmployeeID: employee.ID, Kind: models.PunchBreakStart, BreakType: models.BreakPaid, At: at(30)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already on break")

	_, err = client.Punch(ctx, api.PunchRequest{EmployeeID: employee.ID, Kind: models.PunchBreakEnd, At: at(40)})
	require.NoError(t, err)

	_, err = client.Punch(ctx, api.PunchRequest{EmployeeID: employee.ID, Kind: models.PunchClockOut, At: at(50)})
	require.NoError(t, err)

	_, err = client.Punch(ctx, api.PunchRequest{EmployeeID: employee.ID, Kind: models.PunchClockOut, At: at(60)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already clocked out")
}

func TestPunchValidation(t *testing.T) {
	client := newTestServer(t)
	employee := createEmployee(t, client, "Ada")
	ctx := context.Background()

	_, err := client.Punch(ctx, api.PunchRequest{EmployeeID: employee.ID, Kind: "nap"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid punch kind")

	_, err = client.Punch(ctx, api.PunchRequest{EmployeeID: employee.ID, Kind: models.PunchClockIn})
	require.NoError(t, err)
	_, err = client.Punch(ctx, api.PunchRequest{EmployeeID: employee.ID, Kind: models.PunchBreakStart})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid break type")

	_, err = client.Punch(ctx, api.PunchRequest{EmployeeID: "missing", Kind: models.PunchClockIn})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "employee not found")
}

func TestPunchDefaultsToServerTime(t *testing.T) {
	client := newTestServer(t)
	employee := createEmployee(t, client, "Ada")

	punch, err := client.Punch(context.Background(), api.PunchRequest{
		EmployeeID: employee.ID,
		Kind:       models.PunchClockIn,
	})
	require.NoError(t, err)
	assert.True(t, punch.At.Equal(testNow))
}

func TestSummaryCounts(t *testing.T) {
	client := newTestServer(t)
	ctx := context.Background()

	working := createEmployee(t, client, "Ada")
	onLeave := createEmployee(t, client, "Grace")
	createEmployee(t, client, "Linus")

	punchAt(t, client, working.ID, models.PunchClockIn, "", time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))

	leave, err := client.SubmitLeave(ctx, api.LeaveSubmission{
		EmployeeID: onLeave.ID,
		Kind:       models.LeaveSick,
		From:       "2026-03-02",
		To:         "2026-03-02",
	})
	require.NoError(t, err)
	require.NoError(t, client.ApproveLeave(ctx, leave.ID, "admin"))

	summary, err := client.Summary(ctx)
	require.NoError(t, err)

	assert.Equal(t, "2026-03-02", summary.Date)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.Working)
	assert.Equal(t, 1, summary.OnLeave)
	assert.Equal(t, 1, summary.Off)
	assert.Equal(t, 0, summary.OnBreak)
	assert.Equal(t, 0, summary.Done)
}

func TestAllAttendance(t *testing.T) {
	client := newTestServer(t)

	ada := createEmployee(t, client, "Ada")
	createEmployee(t, client, "Grace")
	punchAt(t, client, ada.ID, models.PunchClockIn, "", time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))

	snapshots, err := client.AllAttendance(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshots, 2)

	byID := make(map[string]models.AttendanceSnapshot)
	for _, snap := range snapshots {
		byID[snap.EmployeeID] = snap
	}
	assert.Equal(t, models.StatusWorking, byID[ada.ID].Status)
}

func TestLeaveDecisionFlow(t *testing.T) {
	client := newTestServer(t)
	employee := createEmployee(t, client, "Ada")
	ctx := context.Background()

	leave, err := client.SubmitLeave(ctx, api.LeaveSubmission{
		EmployeeID: employee.ID,
		Kind:       models.LeaveVacation,
		From:       "2026-04-01",
		To:         "2026-04-05",
		Reason:     "spring trip",
	})
	require.NoError(t, err)
	assert.Equal(t, models.LeavePending, leave.Status)

	pending, err := client.Leave(ctx, models.LeavePending)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	// Rejection without a note is refused before anything is stored.
	err = client.RejectLeave(ctx, leave.ID, "admin", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a note")

	require.NoError(t, client.ApproveLeave(ctx, leave.ID, "admin"))

	err = client.ApproveLeave(ctx, leave.ID, "admin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already decided")

	approved, err := client.Leave(ctx, models.LeaveApproved)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, "admin", approved[0].DecidedBy)
	require.NotNil(t, approved[0].DecidedAt)
}

func TestLeaveValidation(t *testing.T) {
	client := newTestServer(t)
	employee := createEmployee(t, client, "Ada")
	ctx := context.Background()

	_, err := client.SubmitLeave(ctx, api.LeaveSubmission{
		EmployeeID: employee.ID,
		Kind:       "sabbatical",
		From:       "2026-04-01",
		To:         "2026-04-05",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid leave kind")

	_, err = client.SubmitLeave(ctx, api.LeaveSubmission{
		EmployeeID: employee.ID,
		Kind:       models.LeaveVacation,
		From:       "2026-04-05",
		To:         "2026-04-01",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before start date")

	_, err = client.SubmitLeave(ctx, api.LeaveSubmission{
		EmployeeID: "missing",
		Kind:       models.LeaveVacation,
		From:       "2026-04-01",
		To:         "2026-04-05",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "employee not found")
}

func TestActivityFeed(t *testing.T) {
	client := newTestServer(t)
	employee := createEmployee(t, client, "Ada")
	ctx := context.Background()

	punchAt(t, client, employee.ID, models.PunchClockIn, "", time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	punchAt(t, client, employee.ID, models.PunchBreakStart, models.BreakUnpaid, time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC))

	leave, err := client.SubmitLeave(ctx, api.LeaveSubmission{
		EmployeeID: employee.ID,
		Kind:       models.LeaveVacation,
		From:       "2026-04-01",
		To:         "2026-04-05",
	})
	require.NoError(t, err)
	require.NoError(t, client.ApproveLeave(ctx, leave.ID, "admin"))

	entries, err := client.Activity(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	details := make(map[string]models.ActivityKind, len(entries))
	for _, entry := range entries {
		details[entry.Detail] = entry.Kind
		assert.Equal(t, "Ada", entry.EmployeeName)
	}
	assert.Equal(t, models.ActivityPunch, details["clocked in"])
	assert.Equal(t, models.ActivityPunch, details["started unpaid break"])
	assert.Equal(t, models.ActivityLeave, details["vacation leave approved by admin"])
}

func TestActivityLimit(t *testing.T) {
	client := newTestServer(t)
	employee := createEmployee(t, client, "Ada")

	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	punchAt(t, client, employee.ID, models.PunchClockIn, "", base)
	punchAt(t, client, employee.ID, models.PunchBreakStart, models.BreakPaid, base.Add(time.Hour))
	punchAt(t, client, employee.ID, models.PunchBreakEnd, "", base.Add(90*time.Minute))

	entries, err := client.Activity(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "back from break", entries[0].Detail)
}
