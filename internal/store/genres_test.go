package store

import (
	"context"
	"errors"
	"testing"

	"pustaka/internal/db"
)

func TestGenreLifecycle(t *testing.T) {
	ctx := context.Background()
	database := db.NewTestDB(t)

	genre, err := CreateGenre(ctx, database, "Scifi")
	if err != nil {
		t.Fatalf("creating genre: %v", err)
	}

	if err := UpdateGenre(ctx, database, genre.ID, "Science Fiction"); err != nil {
		t.Fatalf("updating genre: %v", err)
	}

	genres, err := ListGenres(ctx, database)
	if err != nil {
		t.Fatalf("listing genres: %v", err)
	}
	if len(genres) != 1 || genres[0].Name != "Science Fiction" {
		t.Fatalf("genres = %v, want [Science Fiction]", genres)
	}

	if err := DeleteGenre(ctx, database, genre.ID); err != nil {
		t.Fatalf("deleting genre: %v", err)
	}
	genres, _ = ListGenres(ctx, database)
	if len(genres) != 0 {
		t.Errorf("listed %d genres after delete, want 0", len(genres))
	}
}

func TestDeleteGenreInUse(t *testing.T) {
	ctx := context.Background()
	database := db.NewTestDB(t)

	pub, err := CreatePublisher(ctx, database, "Gramedia")
	if err != nil {
		t.Fatalf("creating publisher: %v", err)
	}
	genre, err := CreateGenre(ctx, database, "Fiction")
	if err != nil {
		t.Fatalf("creating genre: %v", err)
	}
	book, err := CreateBook(ctx, database, "Laskar Pelangi", "Andrea Hirata", "9789793062792", "", 5, pub.ID, []int64{genre.ID})
	if err != nil {
		t.Fatalf("creating book: %v", err)
	}

	if err := DeleteGenre(ctx, database, genre.ID); !errors.Is(err, ErrInUse) {
		t.Fatalf("deleting linked genre error = %v, want ErrInUse", err)
	}

	// Once the book is gone the genre can go too.
	if err := DeleteBook(ctx, database, book.ID); err != nil {
		t.Fatalf("deleting book: %v", err)
	}
	if err := DeleteGenre(ctx, database, genre.ID); err != nil {
		t.Errorf("deleting unlinked genre: %v", err)
	}
}

func TestDeletePublisherInUse(t *testing.T) {
	ctx := context.Background()
	database := db.NewTestDB(t)

	pub, err := CreatePublisher(ctx, database, "Erlangga")
	if err != nil {
		t.Fatalf("creating publisher: %v", err)
	}
	book, err := CreateBook(ctx, database, "Sapiens", "Yuval Noah Harari", "9780062316097", "", 2, pub.ID, nil)
	if err != nil {
		t.Fatalf("creating book: %v", err)
	}

	if err := DeletePublisher(ctx, database, pub.ID); !errors.Is(err, ErrInUse) {
		t.Fatalf("deleting used publisher error = %v, want ErrInUse", err)
	}

	if err := DeleteBook(ctx, database, book.ID); err != nil {
		t.Fatalf("deleting book: %v", err)
	}
	if err := DeletePublisher(ctx, database, pub.ID); err != nil {
		t.Errorf("deleting unused publisher: %v", err)
	}

	pubs, err := ListPublishers(ctx, database)
	if err != nil {
		t.Fatalf("listing publishers: %v", err)
	}
	if len(pubs) != 0 {
		t.Errorf("listed %d publishers after delete, want 0", len(pubs))
	}
}
