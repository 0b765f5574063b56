package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"rollcall/internal/api"
	"rollcall/internal/attendance"
	"rollcall/internal/constants"
	"rollcall/internal/logger"
	"rollcall/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, api.ErrorResponse{Error: msg})
}

func (s *Server) now() time.Time {
	return s.clock.Now().In(s.loc)
}

func (s *Server) today() string {
	return s.now().Format(constants.DateFormat)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.HealthInfo{
		Status:  "ok",
		Version: s.version,
		Time:    s.now(),
	})
}

func (s *Server) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	includeDeleted := r.URL.Query().Get("all") == "1"

	employees, err := s.store.ListEmployees(includeDeleted)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list employees")
		return
	}
	if employees == nil {
		employees = []models.Employee{}
	}
	writeJSON(w, http.StatusOK, employees)
}

func (s *Server) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req api.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	employee := models.Employee{
		ID:             uuid.New().String(),
		Name:           req.Name,
		Email:          req.Email,
		Team:           req.Team,
		ShiftStart:     req.ShiftStart,
		WorkdayMinutes: req.WorkdayMinutes,
		CreatedAt:      s.now(),
	}
	if employee.WorkdayMinutes == 0 {
		employee.WorkdayMinutes = constants.DefaultWorkdayMinutes
	}

	if err := employee.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.SaveEmployee(employee); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save employee")
		return
	}
	writeJSON(w, http.StatusCreated, employee)
}

func (s *Server) handleRemoveEmployee(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if _, err := s.store.GetEmployee(id); err != nil {
		writeError(w, http.StatusNotFound, "employee not found")
		return
	}
	if err := s.store.DeleteEmployee(id); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to remove employee")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRestoreEmployee(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := s.store.RestoreEmployee(id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, http.StatusNotFound, "employee not found")
			return
		}
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleAttendance(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	employee, err := s.store.GetEmployee(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "employee not found")
		return
	}

	now := s.now()
	day := now.Format(constants.DateFormat)

	punches, err := s.store.ListPunches(id, day)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load punches")
		return
	}

	onLeave, err := s.onApprovedLeave(day)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load leave")
		return
	}

	snapshot := attendance.Derive(employee, punches, onLeave[id], now)
	writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleAllAttendance(w http.ResponseWriter, r *http.Request) {
	snapshots, err := s.deriveAll()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to derive attendance")
		return
	}
	writeJSON(w, http.StatusOK, snapshots)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	snapshots, err := s.deriveAll()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to derive attendance")
		return
	}

	summary := models.Summary{Date: s.today(), Total: len(snapshots)}
	for _, snap := range snapshots {
		switch snap.Status {
		case models.StatusWorking:
			summary.Working++
		case models.StatusOnBreak:
			summary.OnBreak++
		case models.StatusOnLeave:
			summary.OnLeave++
		case models.StatusDone:
			summary.Done++
		default:
			summary.Off++
		}
	}
	writeJSON(w, http.StatusOK, summary)
}

// deriveAll builds today's snapshots for every active employee in two
// queries instead of one per employee.
func (s *Server) deriveAll() ([]models.AttendanceSnapshot, error) {
	now := s.now()
	day := now.Format(constants.DateFormat)

	employees, err := s.store.ListEmployees(false)
	if err != nil {
		return nil, err
	}

	punches, err := s.store.ListPunchesForDay(day)
	if err != nil {
		return nil, err
	}
	byEmployee := make(map[string][]models.Punch)
	for _, p := range punches {
		byEmployee[p.EmployeeID] = append(byEmployee[p.EmployeeID], p)
	}

	onLeave, err := s.onApprovedLeave(day)
	if err != nil {
		return nil, err
	}

	snapshots := make([]models.AttendanceSnapshot, 0, len(employees))
	for _, employee := range employees {
		snapshots = append(snapshots, attendance.Derive(employee, byEmployee[employee.ID], onLeave[employee.ID], now))
	}
	return snapshots, nil
}

func (s *Server) onApprovedLeave(day string) (map[string]bool, error) {
	requests, err := s.store.ListLeaveForDay(day, models.LeaveApproved)
	if err != nil {
		return nil, err
	}
	covered := make(map[string]bool, len(requests))
	for _, leave := range requests {
		covered[leave.EmployeeID] = true
	}
	return covered, nil
}

func (s *Server) handlePunch(w http.ResponseWriter, r *http.Request) {
	var req api.PunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := s.store.GetEmployee(req.EmployeeID); err != nil {
		writeError(w, http.StatusNotFound, "employee not found")
		return
	}

	at := s.now()
	if req.At != nil {
		at = req.At.In(s.loc)
	}

	punch := models.Punch{
		ID:         uuid.New().String(),
		EmployeeID: req.EmployeeID,
		Kind:       req.Kind,
		BreakType:  req.BreakType,
		At:         at,
		CreatedAt:  s.now(),
	}
	if err := punch.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.checkPunchSequence(punch); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}

	if err := s.store.AddPunch(punch); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to record punch")
		return
	}
	writeJSON(w, http.StatusCreated, punch)
}

// checkPunchSequence rejects punches that do not fit the replayed state of
// the punch's day. Stored history stays append-only and well-formed.
func (s *Server) checkPunchSequence(punch models.Punch) error {
	day := punch.At.In(s.loc).Format(constants.DateFormat)
	punches, err := s.store.ListPunches(punch.EmployeeID, day)
	if err != nil {
		return fmt.Errorf("failed to load punches")
	}

	replayed := attendance.Replay(punches)
	switch punch.Kind {
	case models.PunchClockIn:
		if replayed.ClockIn != nil {
			return fmt.Errorf("already clocked in")
		}
	case models.PunchClockOut:
		if replayed.ClockIn == nil {
			return fmt.Errorf("not clocked in")
		}
		if replayed.ClockOut != nil {
			return fmt.Errorf("already clocked out")
		}
	case models.PunchBreakStart:
		if replayed.ClockIn == nil {
			return fmt.Errorf("not clocked in")
		}
		if replayed.ClockOut != nil {
			return fmt.Errorf("already clocked out")
		}
		if replayed.OpenBreak() != nil {
			return fmt.Errorf("already on break")
		}
	case models.PunchBreakEnd:
		if replayed.OpenBreak() == nil {
			return fmt.Errorf("not on break")
		}
	}
	return nil
}

func (s *Server) handleListLeave(w http.ResponseWriter, r *http.Request) {
	status := models.LeaveStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid leave status: %s", status))
		return
	}

	requests, err := s.store.ListLeave(status)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list leave requests")
		return
	}
	if requests == nil {
		requests = []models.LeaveRequest{}
	}
	writeJSON(w, http.StatusOK, requests)
}

func (s *Server) handleSubmitLeave(w http.ResponseWriter, r *http.Request) {
	var req api.LeaveSubmission
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := s.store.GetEmployee(req.EmployeeID); err != nil {
		writeError(w, http.StatusNotFound, "employee not found")
		return
	}

	leave := models.LeaveRequest{
		ID:         uuid.New().String(),
		EmployeeID: req.EmployeeID,
		Kind:       req.Kind,
		From:       req.From,
		To:         req.To,
		Reason:     req.Reason,
		Status:     models.LeavePending,
		CreatedAt:  s.now(),
	}
	if err := leave.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.SaveLeave(leave); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save leave request")
		return
	}
	writeJSON(w, http.StatusCreated, leave)
}

func (s *Server) handleApproveLeave(w http.ResponseWriter, r *http.Request) {
	s.decideLeave(w, r, models.LeaveApproved)
}

func (s *Server) handleRejectLeave(w http.ResponseWriter, r *http.Request) {
	s.decideLeave(w, r, models.LeaveRejected)
}

func (s *Server) decideLeave(w http.ResponseWriter, r *http.Request, status models.LeaveStatus) {
	id := mux.Vars(r)["id"]

	var req api.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	leave, err := s.store.GetLeave(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "leave request not found")
		return
	}
	if leave.Status != models.LeavePending {
		writeError(w, http.StatusConflict, fmt.Sprintf("leave request already decided (%s)", leave.Status))
		return
	}
	if err := models.DecisionFor(status, req.Note); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.DecideLeave(id, status, req.DecidedBy, req.Note); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to record decision")
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	entries, err := s.buildActivity(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build activity feed")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// buildActivity merges recent punches and leave decisions into one feed,
// newest first.
func (s *Server) buildActivity(limit int) ([]models.ActivityEntry, error) {
	employees, err := s.store.ListEmployees(true)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(employees))
	for _, e := range employees {
		names[e.ID] = e.Name
	}
	nameFor := func(id string) string {
		if name, ok := names[id]; ok {
			return name
		}
		return id
	}

	punches, err := s.store.ListRecentPunches(limit)
	if err != nil {
		return nil, err
	}
	decisions, err := s.store.ListRecentDecisions(limit)
	if err != nil {
		return nil, err
	}

	entries := make([]models.ActivityEntry, 0, len(punches)+len(decisions))
	for _, p := range punches {
		entries = append(entries, models.ActivityEntry{
			At:           p.At,
			EmployeeID:   p.EmployeeID,
			EmployeeName: nameFor(p.EmployeeID),
			Kind:         models.ActivityPunch,
			Detail:       punchDetail(p),
		})
	}
	for _, leave := range decisions {
		if leave.DecidedAt == nil {
			continue
		}
		entries = append(entries, models.ActivityEntry{
			At:           *leave.DecidedAt,
			EmployeeID:   leave.EmployeeID,
			EmployeeName: nameFor(leave.EmployeeID),
			Kind:         models.ActivityLeave,
			Detail:       fmt.Sprintf("%s leave %s by %s", leave.Kind, leave.Status, leave.DecidedBy),
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].At.After(entries[j].At) })
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func punchDetail(p models.Punch) string {
	switch p.Kind {
	case models.PunchClockIn:
		return "clocked in"
	case models.PunchClockOut:
		return "clocked out"
	case models.PunchBreakStart:
		return fmt.Sprintf("started %s break", p.BreakType)
	case models.PunchBreakEnd:
		return "back from break"
	default:
		return string(p.Kind)
	}
}
