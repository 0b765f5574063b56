package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"rollcall/internal/models"
)

func (s *Store) SaveEmployee(employee models.Employee) error {
	var deletedAt sql.NullTime
	if employee.DeletedAt != nil {
		deletedAt = sql.NullTime{Time: employee.DeletedAt.UTC(), Valid: true}
	}

	// PostgreSQL uses INSERT ... ON CONFLICT for upsert
	_, err := s.db.Exec(`
INSERT INTO employees (
id, name, email, team, shift_start, workday_minutes, created_at, deleted_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE SET
name = EXCLUDED.name,
email = EXCLUDED.email,
team = EXCLUDED.team,
shift_start = EXCLUDED.shift_start,
workday_minutes = EXCLUDED.workday_minutes,
deleted_at = EXCLUDED.deleted_at`,
		employee.ID, employee.Name, employee.Email, employee.Team, employee.ShiftStart,
		employee.WorkdayMinutes, employee.CreatedAt.UTC(), deletedAt,
	)
	return err
}

func (s *Store) GetEmployee(id string) (models.Employee, error) {
	row := s.db.QueryRow(`
SELECT id, name, email, team, shift_start, workday_minutes, created_at, deleted_at
FROM employees WHERE id = $1 AND deleted_at IS NULL`, id)

	employee, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return models.Employee{}, fmt.Errorf("employee with id %s not found", id)
	}
	return employee, err
}

func (s *Store) ListEmployees(includeDeleted bool) ([]models.Employee, error) {
	query := `
SELECT id, name, email, team, shift_start, workday_minutes, created_at, deleted_at
FROM employees`
	if !includeDeleted {
		query += ` WHERE deleted_at IS NULL`
	}
	query += ` ORDER BY name`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []models.Employee
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}

	return employees, rows.Err()
}

func (s *Store) DeleteEmployee(id string) error {
	var deletedAt sql.NullTime
	err := s.db.QueryRow("SELECT deleted_at FROM employees WHERE id = $1", id).Scan(&deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("employee with id %s not found", id)
		}
		return fmt.Errorf("failed to check employee existence: %w", err)
	}

	if deletedAt.Valid {
		return fmt.Errorf("employee with id %s is already deleted", id)
	}

	_, err = s.db.Exec("UPDATE employees SET deleted_at = $1 WHERE id = $2", time.Now().UTC(), id)
	return err
}

func (s *Store) RestoreEmployee(id string) error {
	var deletedAt sql.NullTime
	err := s.db.QueryRow("SELECT deleted_at FROM employees WHERE id = $1", id).Scan(&deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("employee with id %s not found", id)
		}
		return fmt.Errorf("failed to check employee existence: %w", err)
	}

	if !deletedAt.Valid {
		return fmt.Errorf("cannot restore an employee that is not deleted: %s", id)
	}

	_, err = s.db.Exec("UPDATE employees SET deleted_at = NULL WHERE id = $1", id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (models.Employee, error) {
	var e models.Employee
	var createdAt time.Time
	var deletedAt sql.NullTime

	err := row.Scan(&e.ID, &e.Name, &e.Email, &e.Team, &e.ShiftStart, &e.WorkdayMinutes, &createdAt, &deletedAt)
	if err != nil {
		return models.Employee{}, err
	}

	e.CreatedAt = createdAt
	if deletedAt.Valid {
		t := deletedAt.Time
		e.DeletedAt = &t
	}

	return e, nil
}
