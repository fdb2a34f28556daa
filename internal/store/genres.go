package store

import (
	"context"
	"database/sql"
	"fmt"

	"pustaka/internal/model"
)

// CreateGenre creates a new genre.
func CreateGenre(ctx context.Context, db *sql.DB, name string) (*model.Genre, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO genres (name) VALUES (?)`, name,
	)
	if err != nil {
		return nil, fmt.Errorf("creating genre: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting genre id: %w", err)
	}

	return GetGenre(ctx, db, id)
}

// GetGenre returns a genre by ID.
func GetGenre(ctx context.Context, db *sql.DB, id int64) (*model.Genre, error) {
	g := &model.Genre{}
	err := db.QueryRowContext(ctx,
		`SELECT id, name, created_at, deleted_at FROM genres WHERE id = ?`, id,
	).Scan(&g.ID, &g.Name, &g.CreatedAt, &g.DeletedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting genre: %w", err)
	}
	return g, nil
}

// ListGenres returns all non-deleted genres.
func ListGenres(ctx context.Context, db *sql.DB) ([]model.Genre, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, created_at, deleted_at FROM genres WHERE deleted_at IS NULL ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing genres: %w", err)
	}
	defer rows.Close()

	var genres []model.Genre
	for rows.Next() {
		var g model.Genre
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedAt, &g.DeletedAt); err != nil {
			return nil, fmt.Errorf("scanning genre: %w", err)
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

// UpdateGenre renames a genre.
func UpdateGenre(ctx context.Context, db *sql.DB, id int64, name string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE genres SET name = ? WHERE id = ? AND deleted_at IS NULL`, name, id,
	)
	if err != nil {
		return fmt.Errorf("updating genre: %w", err)
	}
	return nil
}

// DeleteGenre soft-deletes a genre. Fails with ErrInUse while the genre is
// linked to any active book.
func DeleteGenre(ctx context.Context, db *sql.DB, id int64) error {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM book_genres bg
		 JOIN books b ON b.id = bg.book_id
		 WHERE bg.genre_id = ? AND b.deleted_at IS NULL`, id,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("checking genre usage: %w", err)
	}
	if count > 0 {
		return ErrInUse
	}

	_, err = db.ExecContext(ctx,
		`UPDATE genres SET deleted_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("deleting genre: %w", err)
	}
	return nil
}
