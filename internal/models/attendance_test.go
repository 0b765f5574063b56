package models

import (
	"testing"
	"time"
)

func TestBreakType_ExtendsShift(t *testing.T) {
	tests := []struct {
		name string
		b    BreakType
		want bool
	}{
		{name: "unpaid extends", b: BreakUnpaid, want: true},
		{name: "extra extends", b: BreakExtra, want: true},
		{name: "paid does not extend", b: BreakPaid, want: false},
		{name: "unknown does not extend", b: BreakType("lunch"), want: false},
		{name: "empty does not extend", b: BreakType(""), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.b.ExtendsShift(); got != tt.want {
				t.Errorf("BreakType(%q).ExtendsShift() = %v, want %v", tt.b, got, tt.want)
			}
		})
	}
}

func TestPunch_Validate(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		punch   Punch
		wantErr bool
	}{
		{
			name: "valid clock in",
			punch: Punch{
				ID:         "test-id",
				EmployeeID: "emp-1",
				Kind:       PunchClockIn,
				At:         now,
			},
			wantErr: false,
		},
		{
			name: "valid break start",
			punch: Punch{
				ID:         "test-id",
				EmployeeID: "emp-1",
				Kind:       PunchBreakStart,
				BreakType:  BreakUnpaid,
				At:         now,
			},
			wantErr: false,
		},
		{
			name: "break start without break type",
			punch: Punch{
				ID:         "test-id",
				EmployeeID: "emp-1",
				Kind:       PunchBreakStart,
				At:         now,
			},
			wantErr: true,
		},
		{
			name: "break start with unknown break type",
			punch: Punch{
				ID:         "test-id",
				EmployeeID: "emp-1",
				Kind:       PunchBreakStart,
				BreakType:  BreakType("siesta"),
				At:         now,
			},
			wantErr: true,
		},
		{
			name: "break end does not require break type",
			punch: Punch{
				ID:         "test-id",
				EmployeeID: "emp-1",
				Kind:       PunchBreakEnd,
				At:         now,
			},
			wantErr: false,
		},
		{
			name: "missing employee",
			punch: Punch{
				ID:   "test-id",
				Kind: PunchClockIn,
				At:   now,
			},
			wantErr: true,
		},
		{
			name: "invalid kind",
			punch: Punch{
				ID:         "test-id",
				EmployeeID: "emp-1",
				Kind:       PunchKind("lunch"),
				At:         now,
			},
			wantErr: true,
		},
		{
			name: "zero time",
			punch: Punch{
				ID:         "test-id",
				EmployeeID: "emp-1",
				Kind:       PunchClockIn,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.punch.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Punch.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEmployee_Validate(t *testing.T) {
	tests := []struct {
		name     string
		employee Employee
		wantErr  bool
	}{
		{
			name: "valid employee",
			employee: Employee{
				ID:             "test-id",
				Name:           "Asha Rao",
				Email:          "asha@example.com",
				ShiftStart:     "09:00",
				WorkdayMinutes: 480,
			},
			wantErr: false,
		},
		{
			name: "name only is enough",
			employee: Employee{
				ID:   "test-id",
				Name: "Asha Rao",
			},
			wantErr: false,
		},
		{
			name: "empty name",
			employee: Employee{
				ID:   "test-id",
				Name: "   ",
			},
			wantErr: true,
		},
		{
			name: "bad email",
			employee: Employee{
				ID:    "test-id",
				Name:  "Asha Rao",
				Email: "not-an-email",
			},
			wantErr: true,
		},
		{
			name: "bad shift start",
			employee: Employee{
				ID:         "test-id",
				Name:       "Asha Rao",
				ShiftStart: "25:00",
			},
			wantErr: true,
		},
		{
			name: "negative workday",
			employee: Employee{
				ID:             "test-id",
				Name:           "Asha Rao",
				WorkdayMinutes: -1,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.employee.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Employee.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
