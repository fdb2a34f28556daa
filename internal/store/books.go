package store

import (
	"context"
	"database/sql"
	"fmt"

	"pustaka/internal/model"
)

// CreateBook creates a book and its genre links in a single transaction.
// Returns ErrDuplicateTitle if an active book with the same title exists.
func CreateBook(ctx context.Context, db *sql.DB, title, author, isbn, description string, stock int, publisherID int64, genreIDs []int64) (*model.Book, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM books WHERE title = ? AND deleted_at IS NULL`, title,
	).Scan(&count)
	if err != nil {
		return nil, fmt.Errorf("checking title: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateTitle
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO books (title, author, isbn, description, stock, publisher_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		title, author, isbn, description, stock, publisherID,
	)
	if err != nil {
		return nil, fmt.Errorf("creating book: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting book id: %w", err)
	}

	for _, genreID := range genreIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO book_genres (book_id, genre_id) VALUES (?, ?)`, id, genreID,
		); err != nil {
			return nil, fmt.Errorf("linking genre %d: %w", genreID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing book: %w", err)
	}

	return GetBook(ctx, db, id)
}

// GetBook returns a book by ID with its publisher name and genres.
func GetBook(ctx context.Context, db *sql.DB, id int64) (*model.Book, error) {
	b := &model.Book{}
	var description, coverMime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT b.id, b.title, b.author, b.isbn, b.description, b.stock, b.cover_mime,
		        b.publisher_id, b.created_at, b.updated_at, b.deleted_at, p.name AS publisher_name
		 FROM books b
		 JOIN publishers p ON p.id = b.publisher_id
		 WHERE b.id = ?`, id,
	).Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &description, &b.Stock, &coverMime,
		&b.PublisherID, &b.CreatedAt, &b.UpdatedAt, &b.DeletedAt, &b.PublisherName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting book: %w", err)
	}
	b.Description = description.String
	b.CoverMime = coverMime.String

	rows, err := db.QueryContext(ctx,
		`SELECT g.id, g.name, g.created_at, g.deleted_at
		 FROM genres g
		 JOIN book_genres bg ON bg.genre_id = g.id
		 WHERE bg.book_id = ?
		 ORDER BY g.name`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("getting book genres: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var g model.Genre
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedAt, &g.DeletedAt); err != nil {
			return nil, fmt.Errorf("scanning genre: %w", err)
		}
		b.Genres = append(b.Genres, g)
	}
	return b, rows.Err()
}

// ListBooks returns all non-deleted books with publisher names.
func ListBooks(ctx context.Context, db *sql.DB) ([]model.Book, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT b.id, b.title, b.author, b.isbn, b.description, b.stock, b.cover_mime,
		        b.publisher_id, b.created_at, b.updated_at, b.deleted_at, p.name AS publisher_name
		 FROM books b
		 JOIN publishers p ON p.id = b.publisher_id
		 WHERE b.deleted_at IS NULL
		 ORDER BY b.title`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing books: %w", err)
	}
	defer rows.Close()

	var books []model.Book
	for rows.Next() {
		var b model.Book
		var description, coverMime sql.NullString
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &description, &b.Stock, &coverMime,
			&b.PublisherID, &b.CreatedAt, &b.UpdatedAt, &b.DeletedAt, &b.PublisherName); err != nil {
			return nil, fmt.Errorf("scanning book: %w", err)
		}
		b.Description = description.String
		b.CoverMime = coverMime.String
		books = append(books, b)
	}
	return books, rows.Err()
}

// UpdateBook updates a book's metadata and replaces its genre links in one
// transaction. Returns ErrBookNotFound if the book does not exist or is
// soft-deleted.
func UpdateBook(ctx context.Context, db *sql.DB, id int64, title, author, isbn, description string, stock int, publisherID int64, genreIDs []int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE books SET title = ?, author = ?, isbn = ?, description = ?, stock = ?,
		        publisher_id = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND deleted_at IS NULL`,
		title, author, isbn, description, stock, publisherID, id,
	)
	if err != nil {
		return fmt.Errorf("updating book: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrBookNotFound
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM book_genres WHERE book_id = ?`, id,
	); err != nil {
		return fmt.Errorf("clearing genre links: %w", err)
	}

	for _, genreID := range genreIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO book_genres (book_id, genre_id) VALUES (?, ?)`, id, genreID,
		); err != nil {
			return fmt.Errorf("linking genre %d: %w", genreID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing book update: %w", err)
	}
	return nil
}

// DeleteBook soft-deletes a book. The row is kept so loan history stays
// resolvable.
func DeleteBook(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx,
		`UPDATE books SET deleted_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrBookNotFound
	}
	return nil
}

// SetBookCover stores a book's cover image.
func SetBookCover(ctx context.Context, db *sql.DB, id int64, cover []byte, mime string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE books SET cover = ?, cover_mime = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND deleted_at IS NULL`,
		cover, mime, id,
	)
	if err != nil {
		return fmt.Errorf("setting book cover: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrBookNotFound
	}
	return nil
}

// GetBookCover returns a book's cover image data and MIME type.
func GetBookCover(ctx context.Context, db *sql.DB, id int64) ([]byte, string, error) {
	var cover []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT cover, cover_mime FROM books WHERE id = ?`, id,
	).Scan(&cover, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting book cover: %w", err)
	}
	return cover, mime.String, nil
}
