package model

import "time"

// Book represents a catalog entry. Stock counts physical copies currently
// available for borrowing; it is mutated only by admin updates and the loan
// ledger.
type Book struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Author      string     `json:"author"`
	ISBN        string     `json:"isbn"`
	Description string     `json:"description,omitempty"`
	Stock       int        `json:"stock"`
	CoverMime   string     `json:"cover_mime,omitempty"`
	PublisherID int64      `json:"publisher_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`

	// Joined fields (not always populated).
	PublisherName string  `json:"publisher_name,omitempty"`
	Genres        []Genre `json:"genres,omitempty"`
}

// Genre categorizes books; a book can carry several genres.
type Genre struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Publisher is the publishing house a book belongs to.
type Publisher struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}
