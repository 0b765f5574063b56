package system

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"rollcall/internal/cli"
	"rollcall/internal/models"
	"rollcall/internal/storage/sqlite"
)

func setupTestDebugDB(t *testing.T) *cli.Context {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	return &cli.Context{Store: store}
}

func TestDebugDBPathCmd(t *testing.T) {
	ctx := setupTestDebugDB(t)

	cmd := &DebugDBPathCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("debug db-path command failed: %v", err)
	}
}

func TestDebugDumpEmployeeCmd_Success(t *testing.T) {
	ctx := setupTestDebugDB(t)

	employee := models.Employee{
		ID:             "emp-debug",
		Name:           "Debug Employee",
		Team:           "ops",
		ShiftStart:     "09:00",
		WorkdayMinutes: 480,
		CreatedAt:      time.Now().UTC(),
	}
	if err := ctx.Store.SaveEmployee(employee); err != nil {
		t.Fatalf("failed to save employee: %v", err)
	}

	cmd := &DebugDumpEmployeeCmd{ID: "emp-debug"}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("debug dump-employee command failed: %v", err)
	}
}

func TestDebugDumpEmployeeCmd_NotFound(t *testing.T) {
	ctx := setupTestDebugDB(t)

	cmd := &DebugDumpEmployeeCmd{ID: "nonexistent-id"}
	err := cmd.Run(ctx)
	if err == nil {
		t.Error("debug dump-employee should fail for non-existent employee")
	}

	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected 'not found' error, got: %v", err)
	}
}

func TestDebugDumpPunchesCmd(t *testing.T) {
	ctx := setupTestDebugDB(t)

	at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	punch := models.Punch{
		ID:         "punch-debug",
		EmployeeID: "emp-debug",
		Kind:       models.PunchClockIn,
		At:         at,
		CreatedAt:  at,
	}
	if err := ctx.Store.AddPunch(punch); err != nil {
		t.Fatalf("failed to add punch: %v", err)
	}

	cmd := &DebugDumpPunchesCmd{Employee: "emp-debug", Day: "2026-03-02"}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("debug dump-punches command failed: %v", err)
	}
}

func TestDebugDumpPunchesCmd_InvalidDate(t *testing.T) {
	ctx := setupTestDebugDB(t)

	cmd := &DebugDumpPunchesCmd{Employee: "emp-debug", Day: "invalid-date"}
	err := cmd.Run(ctx)
	if err == nil {
		t.Error("debug dump-punches should fail for invalid date")
	}

	if !strings.Contains(err.Error(), "invalid date") {
		t.Errorf("expected 'invalid date' error, got: %v", err)
	}
}

func TestDebugDumpPunchesCmd_TodayAlias(t *testing.T) {
	ctx := setupTestDebugDB(t)

	cmd := &DebugDumpPunchesCmd{Employee: "emp-debug", Day: "today"}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("debug dump-punches with 'today' failed: %v", err)
	}
}

func TestDebugDumpLeaveCmd_NotFound(t *testing.T) {
	ctx := setupTestDebugDB(t)

	cmd := &DebugDumpLeaveCmd{ID: "nonexistent-id"}
	err := cmd.Run(ctx)
	if err == nil {
		t.Error("debug dump-leave should fail for non-existent request")
	}

	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected 'not found' error, got: %v", err)
	}
}

func TestGetCurrentDate(t *testing.T) {
	date := getCurrentDate()

	// Should be in YYYY-MM-DD format
	if len(date) != 10 {
		t.Errorf("expected date format YYYY-MM-DD, got: %s", date)
	}

	if !isValidDate(date) {
		t.Errorf("getCurrentDate returned invalid date: %s", date)
	}
}

func TestIsValidDate(t *testing.T) {
	tests := []struct {
		date  string
		valid bool
	}{
		{"2023-01-01", true},
		{"2023-12-31", true},
		{"2023-13-01", false},
		{"2023-01-32", false},
		{"invalid", false},
		{"2023/01/01", false},
		{"01-01-2023", false},
	}

	for _, tt := range tests {
		result := isValidDate(tt.date)
		if result != tt.valid {
			t.Errorf("isValidDate(%s) = %v, want %v", tt.date, result, tt.valid)
		}
	}
}
