package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"rollcall/internal/models"
)

func (s *Store) SaveEmployee(employee models.Employee) error {
	var deletedAt sql.NullString
	if employee.DeletedAt != nil {
		deletedAt = sql.NullString{String: employee.DeletedAt.UTC().Format(time.RFC3339), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO employees (
			id, name, email, team, shift_start, workday_minutes, created_at, deleted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		employee.ID, employee.Name, employee.Email, employee.Team, employee.ShiftStart,
		employee.WorkdayMinutes, employee.CreatedAt.UTC().Format(time.RFC3339), deletedAt,
	)
	return err
}

func (s *Store) GetEmployee(id string) (models.Employee, error) {
	row := s.db.QueryRow(`
		SELECT id, name, email, team, shift_start, workday_minutes, created_at, deleted_at
		FROM employees WHERE id = ? AND deleted_at IS NULL`, id)

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
	// Soft delete: set deleted_at timestamp instead of removing the record
	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM employees WHERE id = ?", id).Scan(&deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("employee with id %s not found", id)
		}
		return fmt.Errorf("failed to check employee existence: %w", err)
	}

	if deletedAt.Valid {
		return fmt.Errorf("employee with id %s is already deleted", id)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec("UPDATE employees SET deleted_at = ? WHERE id = ?", now, id)
	return err
}

func (s *Store) RestoreEmployee(id string) error {
	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM employees WHERE id = ?", id).Scan(&deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("employee with id %s not found", id)
		}
		return fmt.Errorf("failed to check employee existence: %w", err)
	}

	if !deletedAt.Valid {
		return fmt.Errorf("cannot restore an employee that is not deleted: %s", id)
	}

	_, err = s.db.Exec("UPDATE employees SET deleted_at = NULL WHERE id = ?", id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (models.Employee, error) {
	var e models.Employee
	var createdAt string
	var deletedAt sql.NullString

	err := row.Scan(&e.ID, &e.Name, &e.Email, &e.Team, &e.ShiftStart, &e.WorkdayMinutes, &createdAt, &deletedAt)
	if err != nil {
		return models.Employee{}, err
	}

	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		e.CreatedAt = t
	}
	if deletedAt.Valid {
		if t, err := time.Parse(time.RFC3339, deletedAt.String); err == nil {
			e.DeletedAt = &t
		}
	}

	return e, nil
}
