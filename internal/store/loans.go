package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"pustaka/internal/model"
)

// writeRetries bounds how often a borrow/return transaction is retried after
// losing the race for the SQLite write lock.
const writeRetries = 3

// BorrowBook creates an open loan and decrements the book's stock in a single
// transaction. Preconditions are checked in order: the book must exist and not
// be soft-deleted (ErrBookNotFound), the student must not already hold an open
// loan for it (ErrAlreadyBorrowed), and stock must be positive (ErrOutOfStock).
// Either both writes commit or neither does.
func BorrowBook(ctx context.Context, db *sql.DB, studentID, bookID int64, notes string) (*model.Loan, error) {
	var loanID int64

	err := withWriteRetry(ctx, func() error {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("beginning transaction: %w", err)
		}
		defer tx.Rollback()

		// Book must exist and be active.
		var deletedAt *time.Time
		err = tx.QueryRowContext(ctx,
			`SELECT deleted_at FROM books WHERE id = ?`, bookID,
		).Scan(&deletedAt)
		if err == sql.ErrNoRows || (err == nil && deletedAt != nil) {
			return ErrBookNotFound
		}
		if err != nil {
			return fmt.Errorf("checking book: %w", err)
		}

		// No second open loan for the same (student, book) pair.
		var open int
		err = tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM loans WHERE student_id = ? AND book_id = ? AND returned_at IS NULL`,
			studentID, bookID,
		).Scan(&open)
		if err != nil {
			return fmt.Errorf("checking open loan: %w", err)
		}
		if open > 0 {
			return ErrAlreadyBorrowed
		}

		// Compare-and-decrement: only succeeds while stock is positive, so
		// stock can never go negative even when two borrows race.
		result, err := tx.ExecContext(ctx,
			`UPDATE books SET stock = stock - 1, updated_at = CURRENT_TIMESTAMP
			 WHERE id = ? AND stock > 0`, bookID,
		)
		if err != nil {
			return fmt.Errorf("decrementing stock: %w", err)
		}
		if n, _ := result.RowsAffected(); n == 0 {
			return ErrOutOfStock
		}

		result, err = tx.ExecContext(ctx,
			`INSERT INTO loans (student_id, book_id, notes) VALUES (?, ?, ?)`,
			studentID, bookID, notes,
		)
		if err != nil {
			// The partial unique index on open loans catches the race where
			// two borrows for the same pair both passed the read above.
			if isUniqueViolation(err) {
				return ErrAlreadyBorrowed
			}
			return fmt.Errorf("creating loan: %w", err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing loan: %w", err)
		}

		loanID, _ = result.LastInsertId()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return GetLoan(ctx, db, loanID)
}

// ReturnBook closes the open loan for (student, book) and increments the
// book's stock in a single transaction. The loan row is kept with its
// returned_at timestamp so the ledger retains history. Returns ErrNotBorrowed
// if no open loan exists.
func ReturnBook(ctx context.Context, db *sql.DB, studentID, bookID int64) error {
	return withWriteRetry(ctx, func() error {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("beginning transaction: %w", err)
		}
		defer tx.Rollback()

		result, err := tx.ExecContext(ctx,
			`UPDATE loans SET returned_at = CURRENT_TIMESTAMP
			 WHERE student_id = ? AND book_id = ? AND returned_at IS NULL`,
			studentID, bookID,
		)
		if err != nil {
			return fmt.Errorf("closing loan: %w", err)
		}
		if n, _ := result.RowsAffected(); n == 0 {
			return ErrNotBorrowed
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE books SET stock = stock + 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
			bookID,
		)
		if err != nil {
			return fmt.Errorf("incrementing stock: %w", err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing return: %w", err)
		}
		return nil
	})
}

// GetLoan returns a loan by ID with joined student and book names.
func GetLoan(ctx context.Context, db *sql.DB, id int64) (*model.Loan, error) {
	l := &model.Loan{}
	var notes sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT l.id, l.student_id, l.book_id, l.notes, l.borrowed_at, l.returned_at,
		        s.name AS student_name, b.title AS book_title
		 FROM loans l
		 JOIN students s ON s.id = l.student_id
		 JOIN books b ON b.id = l.book_id
		 WHERE l.id = ?`, id,
	).Scan(&l.ID, &l.StudentID, &l.BookID, &notes, &l.BorrowedAt, &l.ReturnedAt,
		&l.StudentName, &l.BookTitle)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting loan: %w", err)
	}
	l.Notes = notes.String
	return l, nil
}

// ListLoans returns loans ordered newest first, optionally filtered by
// student, book, or open-only.
func ListLoans(ctx context.Context, db *sql.DB, studentID, bookID int64, openOnly bool) ([]model.Loan, error) {
	query := `SELECT l.id, l.student_id, l.book_id, l.notes, l.borrowed_at, l.returned_at,
	                 s.name AS student_name, b.title AS book_title
	          FROM loans l
	          JOIN students s ON s.id = l.student_id
	          JOIN books b ON b.id = l.book_id
	          WHERE 1=1`
	var args []any

	if studentID > 0 {
		query += ` AND l.student_id = ?`
		args = append(args, studentID)
	}
	if bookID > 0 {
		query += ` AND l.book_id = ?`
		args = append(args, bookID)
	}
	if openOnly {
		query += ` AND l.returned_at IS NULL`
	}

	query += ` ORDER BY l.borrowed_at DESC, l.id DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing loans: %w", err)
	}
	defer rows.Close()

	var loans []model.Loan
	for rows.Next() {
		var l model.Loan
		var notes sql.NullString
		if err := rows.Scan(&l.ID, &l.StudentID, &l.BookID, &notes, &l.BorrowedAt, &l.ReturnedAt,
			&l.StudentName, &l.BookTitle); err != nil {
			return nil, fmt.Errorf("scanning loan: %w", err)
		}
		l.Notes = notes.String
		loans = append(loans, l)
	}
	return loans, rows.Err()
}

// withWriteRetry runs fn, retrying a bounded number of times when the
// transaction lost the write-lock race (SQLITE_BUSY). Business-rule errors are
// never retried. After retries are exhausted the error wraps ErrConflict so
// callers can tell a lost race apart from an internal failure.
func withWriteRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; attempt < writeRetries; attempt++ {
		err = fn()
		if err == nil || !isLocked(err) {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt+1) * 10 * time.Millisecond):
		}
	}
	return fmt.Errorf("%w: %v", ErrConflict, err)
}

// isLocked reports whether err is SQLite's busy/locked error.
func isLocked(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

// isUniqueViolation reports whether err is a unique-constraint failure.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "SQLITE_CONSTRAINT_UNIQUE")
}
