package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"rollcall/internal/models"
)

func (s *Store) SaveLeave(leave models.LeaveRequest) error {
	var decidedAt sql.NullString
	if leave.DecidedAt != nil {
		decidedAt = sql.NullString{String: leave.DecidedAt.UTC().Format(time.RFC3339), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO leave_requests (
			id, employee_id, kind, from_day, to_day, reason, status,
			decided_by, decision_note, created_at, decided_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		leave.ID, leave.EmployeeID, leave.Kind, leave.From, leave.To, leave.Reason, leave.Status,
		leave.DecidedBy, leave.DecisionNote, leave.CreatedAt.UTC().Format(time.RFC3339), decidedAt,
	)
	return err
}

func (s *Store) GetLeave(id string) (models.LeaveRequest, error) {
	row := s.db.QueryRow(`
		SELECT id, employee_id, kind, from_day, to_day, reason, status,
		       decided_by, decision_note, created_at, decided_at
		FROM leave_requests WHERE id = ?`, id)

	leave, err := scanLeave(row)
	if err == sql.ErrNoRows {
		return models.LeaveRequest{}, fmt.Errorf("leave request with id %s not found", id)
	}
	return leave, err
}

func (s *Store) ListLeave(status models.LeaveStatus) ([]models.LeaveRequest, error) {
	query := `
		SELECT id, employee_id, kind, from_day, to_day, reason, status,
		       decided_by, decision_note, created_at, decided_at
		FROM leave_requests`
	args := []any{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLeave(rows)
}

func (s *Store) ListLeaveForDay(day string, status models.LeaveStatus) ([]models.LeaveRequest, error) {
	query := `
		SELECT id, employee_id, kind, from_day, to_day, reason, status,
		       decided_by, decision_note, created_at, decided_at
		FROM leave_requests WHERE from_day <= ? AND to_day >= ?`
	args := []any{day, day}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, status)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLeave(rows)
}

func (s *Store) DecideLeave(id string, status models.LeaveStatus, decidedBy, note string) error {
	leave, err := s.GetLeave(id)
	if err != nil {
		return err
	}

	if leave.Status != models.LeavePending {
		return fmt.Errorf("leave request %s has already been decided (%s)", id, leave.Status)
	}

	if err := models.DecisionFor(status, note); err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec(`
		UPDATE leave_requests
		SET status = ?, decided_by = ?, decision_note = ?, decided_at = ?
		WHERE id = ?`,
		status, decidedBy, note, now, id,
	)
	return err
}

func (s *Store) ListRecentDecisions(limit int) ([]models.LeaveRequest, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT id, employee_id, kind, from_day, to_day, reason, status,
		       decided_by, decision_note, created_at, decided_at
		FROM leave_requests WHERE decided_at IS NOT NULL
		ORDER BY decided_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLeave(rows)
}

func scanLeave(row rowScanner) (models.LeaveRequest, error) {
	var l models.LeaveRequest
	var kind, status, createdAt string
	var decidedAt sql.NullString

	err := row.Scan(&l.ID, &l.EmployeeID, &kind, &l.From, &l.To, &l.Reason, &status,
		&l.DecidedBy, &l.DecisionNote, &createdAt, &decidedAt)
	if err != nil {
		return models.LeaveRequest{}, err
	}

	l.Kind = models.LeaveKind(kind)
	l.Status = models.LeaveStatus(status)
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		l.CreatedAt = t
	}
	if decidedAt.Valid {
		if t, err := time.Parse(time.RFC3339, decidedAt.String); err == nil {
			l.DecidedAt = &t
		}
	}

	return l, nil
}

func collectLeave(rows *sql.Rows) ([]models.LeaveRequest, error) {
	var requests []models.LeaveRequest
	for rows.Next() {
		leave, err := scanLeave(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, leave)
	}

	return requests, rows.Err()
}
