package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"pustaka/internal/db"
)

func newCatalogDB(t *testing.T) (*sql.DB, int64, int64) {
	t.Helper()
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
	return database, pub.ID, genre.ID
}

func TestCreateGetBook(t *testing.T) {
	ctx := context.Background()
	database, pubID, genreID := newCatalogDB(t)

	book, err := CreateBook(ctx, database, "Bumi Manusia", "Pramoedya Ananta Toer", "9789799731234", "colonial Java", 3, pubID, []int64{genreID})
	if err != nil {
		t.Fatalf("creating book: %v", err)
	}

	if book.Title != "Bumi Manusia" {
		t.Errorf("title = %q, want %q", book.Title, "Bumi Manusia")
	}
	if book.Stock != 3 {
		t.Errorf("stock = %d, want 3", book.Stock)
	}
	if book.PublisherName != "Gramedia" {
		t.Errorf("publisher name = %q, want %q", book.PublisherName, "Gramedia")
	}
	if len(book.Genres) != 1 || book.Genres[0].Name != "Fiction" {
		t.Errorf("genres = %v, want [Fiction]", book.Genres)
	}

	got, err := GetBook(ctx, database, book.ID)
	if err != nil {
		t.Fatalf("getting book: %v", err)
	}
	if got == nil || got.ID != book.ID {
		t.Fatalf("got %v, want book %d", got, book.ID)
	}
}

func TestCreateBookDuplicateTitle(t *testing.T) {
	ctx := context.Background()
	database, pubID, genreID := newCatalogDB(t)

	if _, err := CreateBook(ctx, database, "Sapiens", "Yuval Noah Harari", "9780062316097", "", 2, pubID, []int64{genreID}); err != nil {
		t.Fatalf("creating book: %v", err)
	}

	_, err := CreateBook(ctx, database, "Sapiens", "Someone Else", "0000000000000", "", 1, pubID, nil)
	if !errors.Is(err, ErrDuplicateTitle) {
		t.Fatalf("duplicate title error = %v, want ErrDuplicateTitle", err)
	}
}

func TestGetBookMissing(t *testing.T) {
	database, _, _ := newCatalogDB(t)

	book, err := GetBook(context.Background(), database, 999)
	if err != nil {
		t.Fatalf("getting missing book: %v", err)
	}
	if book != nil {
		t.Errorf("got %v, want nil", book)
	}
}

func TestUpdateBook(t *testing.T) {
	ctx := context.Background()
	database, pubID, genreID := newCatalogDB(t)

	book, err := CreateBook(ctx, database, "The Hobbit", "J.R.R. Tolkien", "9780547928227", "", 6, pubID, []int64{genreID})
	if err != nil {
		t.Fatalf("creating book: %v", err)
	}

	fantasy, err := CreateGenre(ctx, database, "Fantasy")
	if err != nil {
		t.Fatalf("creating genre: %v", err)
	}

	err = UpdateBook(ctx, database, book.ID, "The Hobbit", "J.R.R. Tolkien", "9780547928227", "there and back again", 4, pubID, []int64{fantasy.ID})
	if err != nil {
		t.Fatalf("updating book: %v", err)
	}

	got, err := GetBook(ctx, database, book.ID)
	if err != nil {
		t.Fatalf("getting book: %v", err)
	}
	if got.Description != "there and back again" {
		t.Errorf("description = %q, want %q", got.Description, "there and back again")
	}
	if got.Stock != 4 {
		t.Errorf("stock = %d, want 4", got.Stock)
	}
	if len(got.Genres) != 1 || got.Genres[0].Name != "Fantasy" {
		t.Errorf("genres = %v, want [Fantasy]", got.Genres)
	}

	if err := UpdateBook(ctx, database, 999, "x", "y", "z", "", 1, pubID, nil); !errors.Is(err, ErrBookNotFound) {
		t.Errorf("updating missing book error = %v, want ErrBookNotFound", err)
	}
}

func TestDeleteBookSoft(t *testing.T) {
	ctx := context.Background()
	database, pubID, genreID := newCatalogDB(t)

	book, err := CreateBook(ctx, database, "Laskar Pelangi", "Andrea Hirata", "9789793062792", "", 5, pubID, []int64{genreID})
	if err != nil {
		t.Fatalf("creating book: %v", err)
	}

	if err := DeleteBook(ctx, database, book.ID); err != nil {
		t.Fatalf("deleting book: %v", err)
	}

	got, err := GetBook(ctx, database, book.ID)
	if err != nil {
		t.Fatalf("getting deleted book: %v", err)
	}
	if got == nil || got.DeletedAt == nil {
		t.Fatalf("deleted book = %v, want row with deleted_at set", got)
	}

	books, err := ListBooks(ctx, database)
	if err != nil {
		t.Fatalf("listing books: %v", err)
	}
	if len(books) != 0 {
		t.Errorf("listed %d books after delete, want 0", len(books))
	}

	// The title becomes reusable once the old book is gone.
	if _, err := CreateBook(ctx, database, "Laskar Pelangi", "Andrea Hirata", "9789793062792", "", 2, pubID, nil); err != nil {
		t.Errorf("recreating deleted title: %v", err)
	}
}

func TestBookCover(t *testing.T) {
	ctx := context.Background()
	database, pubID, _ := newCatalogDB(t)

	book, err := CreateBook(ctx, database, "A Brief History of Time", "Stephen Hawking", "9780553380163", "", 2, pubID, nil)
	if err != nil {
		t.Fatalf("creating book: %v", err)
	}

	cover := []byte{0xff, 0xd8, 0xff, 0xe0}
	if err := SetBookCover(ctx, database, book.ID, cover, "image/jpeg"); err != nil {
		t.Fatalf("setting cover: %v", err)
	}

	got, mime, err := GetBookCover(ctx, database, book.ID)
	if err != nil {
		t.Fatalf("getting cover: %v", err)
	}
	if mime != "image/jpeg" {
		t.Errorf("mime = %q, want image/jpeg", mime)
	}
	if len(got) != len(cover) {
		t.Errorf("cover length = %d, want %d", len(got), len(cover))
	}

	if err := SetBookCover(ctx, database, 999, cover, "image/jpeg"); !errors.Is(err, ErrBookNotFound) {
		t.Errorf("setting cover on missing book error = %v, want ErrBookNotFound", err)
	}
}
