package sqlite

import (
	"database/sql"
	"time"

	"rollcall/internal/constants"
	"rollcall/internal/models"
)

func (s *Store) AddPunch(punch models.Punch) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO punches (
			id, employee_id, kind, break_type, at, day, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		punch.ID, punch.EmployeeID, punch.Kind, punch.BreakType,
		punch.At.UTC().Format(time.RFC3339), punch.At.Format(constants.DateFormat),
		punch.CreatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

func (s *Store) ListPunches(employeeID, day string) ([]models.Punch, error) {
	rows, err := s.db.Query(`
		SELECT id, employee_id, kind, break_type, at, created_at
		FROM punches WHERE employee_id = ? AND day = ?
		ORDER BY at`, employeeID, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPunches(rows)
}

func (s *Store) ListPunchesForDay(day string) ([]models.Punch, error) {
	rows, err := s.db.Query(`
		SELECT id, employee_id, kind, break_type, at, created_at
		FROM punches WHERE day = ?
		ORDER BY at`, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPunches(rows)
}

func (s *Store) ListRecentPunches(limit int) ([]models.Punch, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT id, employee_id, kind, break_type, at, created_at
		FROM punches ORDER BY at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPunches(rows)
}

func collectPunches(rows *sql.Rows) ([]models.Punch, error) {
	var punches []models.Punch
	for rows.Next() {
		var p models.Punch
		var kind, breakType, at, createdAt string

		if err := rows.Scan(&p.ID, &p.EmployeeID, &kind, &breakType, &at, &createdAt); err != nil {
			return nil, err
		}

		p.Kind = models.PunchKind(kind)
		p.BreakType = models.BreakType(breakType)
		if t, err := time.Parse(time.RFC3339, at); err == nil {
			p.At = t
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			p.CreatedAt = t
		}

		punches = append(punches, p)
	}

	return punches, rows.Err()
}
