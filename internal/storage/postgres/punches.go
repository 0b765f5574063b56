package postgres

import (
	"database/sql"

	"rollcall/internal/constants"
	"rollcall/internal/models"
)

func (s *Store) AddPunch(punch models.Punch) error {
	_, err := s.db.Exec(`
INSERT INTO punches (
id, employee_id, kind, break_type, at, day, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE SET
kind = EXCLUDED.kind,
break_type = EXCLUDED.break_type,
at = EXCLUDED.at,
day = EXCLUDED.day`,
		punch.ID, punch.EmployeeID, punch.Kind, punch.BreakType,
		punch.At.UTC(), punch.At.Format(constants.DateFormat), punch.CreatedAt.UTC(),
	)
	return err
}

func (s *Store) ListPunches(employeeID, day string) ([]models.Punch, error) {
	rows, err := s.db.Query(`
SELECT id, employee_id, kind, break_type, at, created_at
FROM punches WHERE employee_id = $1 AND day = $2
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
FROM punches WHERE day = $1
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
FROM punches ORDER BY at DESC LIMIT $1`, limit)
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
		var kind, breakType string

		if err := rows.Scan(&p.ID, &p.EmployeeID, &kind, &breakType, &p.At, &p.CreatedAt); err != nil {
			return nil, err
		}

		p.Kind = models.PunchKind(kind)
		p.BreakType = models.BreakType(breakType)
		punches = append(punches, p)
	}

	return punches, rows.Err()
}
