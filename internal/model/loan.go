package model

import "time"

// Loan records a student holding (or having held) a book. A nil ReturnedAt
// means the loan is still open; at most one open loan may exist per
// (student, book) pair.
type Loan struct {
	ID         int64      `json:"id"`
	StudentID  int64      `json:"student_id"`
	BookID     int64      `json:"book_id"`
	Notes      string     `json:"notes,omitempty"`
	BorrowedAt time.Time  `json:"borrowed_at"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`

	// Joined fields (not always populated).
	StudentName string `json:"student_name,omitempty"`
	BookTitle   string `json:"book_title,omitempty"`
}

// Open reports whether the loan has not been returned yet.
func (l *Loan) Open() bool {
	return l.ReturnedAt == nil
}
