package models

import (
	"testing"
	"time"
)

func TestLeaveRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		leave   LeaveRequest
		wantErr bool
	}{
		{
			name: "valid request",
			leave: LeaveRequest{
				ID:         "test-id",
				EmployeeID: "emp-1",
				Kind:       LeaveVacation,
				From:       "2026-03-02",
				To:         "2026-03-06",
				Status:     LeavePending,
			},
			wantErr: false,
		},
		{
			name: "single day",
			leave: LeaveRequest{
				ID:         "test-id",
				EmployeeID: "emp-1",
				Kind:       LeaveSick,
				From:       "2026-03-02",
				To:         "2026-03-02",
			},
			wantErr: false,
		},
		{
			name: "missing employee",
			leave: LeaveRequest{
				ID:   "test-id",
				Kind: LeaveVacation,
				From: "2026-03-02",
				To:   "2026-03-06",
			},
			wantErr: true,
		},
		{
			name: "unknown kind",
			leave: LeaveRequest{
				ID:         "test-id",
				EmployeeID: "emp-1",
				Kind:       LeaveKind("sabbatical"),
				From:       "2026-03-02",
				To:         "2026-03-06",
			},
			wantErr: true,
		},
		{
			name: "bad from date",
			leave: LeaveRequest{
				ID:         "test-id",
				EmployeeID: "emp-1",
				Kind:       LeaveVacation,
				From:       "02/03/2026",
				To:         "2026-03-06",
			},
			wantErr: true,
		},
		{
			name: "end before start",
			leave: LeaveRequest{
				ID:         "test-id",
				EmployeeID: "emp-1",
				Kind:       LeaveVacation,
				From:       "2026-03-06",
				To:         "2026-03-02",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.leave.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("LeaveRequest.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLeaveRequest_Covers(t *testing.T) {
	leave := LeaveRequest{
		From: "2026-03-02",
		To:   "2026-03-06",
	}

	tests := []struct {
		name string
		day  time.Time
		want bool
	}{
		{name: "first day", day: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC), want: true},
		{name: "middle day", day: time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), want: true},
		{name: "last day", day: time.Date(2026, 3, 6, 23, 59, 0, 0, time.UTC), want: true},
		{name: "day before", day: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), want: false},
		{name: "day after", day: time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := leave.Covers(tt.day); got != tt.want {
				t.Errorf("LeaveRequest.Covers(%v) = %v, want %v", tt.day, got, tt.want)
			}
		})
	}
}

func TestDecisionFor(t *testing.T) {
	tests := []struct {
		name    string
		status  LeaveStatus
		note    string
		wantErr bool
	}{
		{name: "approve without note", status: LeaveApproved, note: "", wantErr: false},
		{name: "approve with note", status: LeaveApproved, note: "enjoy", wantErr: false},
		{name: "reject with note", status: LeaveRejected, note: "release week", wantErr: false},
		{name: "reject without note", status: LeaveRejected, note: "  ", wantErr: true},
		{name: "pending is not a decision", status: LeavePending, note: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := DecisionFor(tt.status, tt.note)
			if (err != nil) != tt.wantErr {
				t.Errorf("DecisionFor(%s, %q) error = %v, wantErr %v", tt.status, tt.note, err, tt.wantErr)
			}
		})
	}
}
