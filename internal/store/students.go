package store

import (
	"context"
	"database/sql"
	"fmt"

	"pustaka/internal/model"
)

const studentColumns = `id, name, email, password_hash, role, gender, banned, created_at, updated_at, deleted_at`

func scanStudent(row *sql.Row) (*model.Student, error) {
	s := &model.Student{}
	err := row.Scan(&s.ID, &s.Name, &s.Email, &s.PasswordHash, &s.Role, &s.Gender,
		&s.Banned, &s.CreatedAt, &s.UpdatedAt, &s.DeletedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// CreateStudent creates a new account. Returns ErrDuplicateEmail if an active
// account already uses the email.
func CreateStudent(ctx context.Context, db *sql.DB, name, email, passwordHash, role, gender string) (*model.Student, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO students (name, email, password_hash, role, gender) VALUES (?, ?, ?, ?, ?)`,
		name, email, passwordHash, role, gender,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("creating student: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting student id: %w", err)
	}

	return GetStudent(ctx, db, id)
}

// GetStudent returns an account by ID.
func GetStudent(ctx context.Context, db *sql.DB, id int64) (*model.Student, error) {
	s, err := scanStudent(db.QueryRowContext(ctx,
		`SELECT `+studentColumns+` FROM students WHERE id = ?`, id,
	))
	if err != nil {
		return nil, fmt.Errorf("getting student: %w", err)
	}
	return s, nil
}

// GetStudentByEmail returns an active account by email.
func GetStudentByEmail(ctx context.Context, db *sql.DB, email string) (*model.Student, error) {
	s, err := scanStudent(db.QueryRowContext(ctx,
		`SELECT `+studentColumns+` FROM students WHERE email = ? AND deleted_at IS NULL`, email,
	))
	if err != nil {
		return nil, fmt.Errorf("getting student by email: %w", err)
	}
	return s, nil
}

// ListStudents returns all non-deleted accounts.
func ListStudents(ctx context.Context, db *sql.DB) ([]model.Student, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+studentColumns+` FROM students WHERE deleted_at IS NULL ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing students: %w", err)
	}
	defer rows.Close()

	var students []model.Student
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.PasswordHash, &s.Role, &s.Gender,
			&s.Banned, &s.CreatedAt, &s.UpdatedAt, &s.DeletedAt); err != nil {
			return nil, fmt.Errorf("scanning student: %w", err)
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// UpdateStudent updates an account's profile fields.
func UpdateStudent(ctx context.Context, db *sql.DB, id int64, name, email, role, gender string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE students SET name = ?, email = ?, role = ?, gender = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND deleted_at IS NULL`,
		name, email, role, gender, id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("updating student: %w", err)
	}
	return nil
}

// SetStudentBan sets or clears an account's ban flag.
func SetStudentBan(ctx context.Context, db *sql.DB, id int64, banned bool) error {
	_, err := db.ExecContext(ctx,
		`UPDATE students SET banned = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND deleted_at IS NULL`,
		banned, id,
	)
	if err != nil {
		return fmt.Errorf("setting ban flag: %w", err)
	}
	return nil
}

// UpdateStudentPassword updates an account's password hash.
func UpdateStudentPassword(ctx context.Context, db *sql.DB, id int64, passwordHash string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE students SET password_hash = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND deleted_at IS NULL`,
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("updating student password: %w", err)
	}
	return nil
}

// DeleteStudent soft-deletes an account.
func DeleteStudent(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx,
		`UPDATE students SET deleted_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("deleting student: %w", err)
	}
	return nil
}
