package store

import "errors"

// Business-rule errors. Handlers match these with errors.Is to pick response
// status codes; anything else from the store is an internal failure.
var (
	ErrBookNotFound    = errors.New("book not found")
	ErrAlreadyBorrowed = errors.New("book already borrowed, return it first")
	ErrOutOfStock      = errors.New("book is out of stock")
	ErrNotBorrowed     = errors.New("book is not borrowed")
	ErrDuplicateTitle  = errors.New("book already exists")
	ErrDuplicateEmail  = errors.New("email already exists")
	ErrInUse           = errors.New("still referenced by active books")

	// ErrConflict is returned when a write transaction repeatedly lost the
	// race for the database write lock and retries were exhausted.
	ErrConflict = errors.New("storage conflict, retry the request")
)
