package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"pustaka/internal/db"
	"pustaka/internal/store"
)

// seed populates an existing database with sample catalog data for
// development. Running it twice skips rows that already exist.
func main() {
	_ = godotenv.Load()

	dbPath := flag.String("db", envOr("PUSTAKA_DB", "pustaka.sqlite3"), "SQLite database path")
	flag.Parse()

	if _, err := os.Stat(*dbPath); err != nil {
		fmt.Fprintf(os.Stderr, "database %s not found, start the server once to create it\n", *dbPath)
		os.Exit(1)
	}

	database, err := db.Open(*dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	existingGenres, err := store.ListGenres(ctx, database)
	if err != nil {
		slog.Error("failed to list genres", "error", err)
		os.Exit(1)
	}
	genreIDs := make(map[string]int64)
	for _, g := range existingGenres {
		genreIDs[g.Name] = g.ID
	}
	for _, name := range []string{"Fiction", "Non-fiction", "Science", "History", "Fantasy", "Technology"} {
		if _, ok := genreIDs[name]; ok {
			continue
		}
		g, err := store.CreateGenre(ctx, database, name)
		if err != nil {
			slog.Warn("skipping genre", "name", name, "error", err)
			continue
		}
		genreIDs[name] = g.ID
		slog.Info("created genre", "id", g.ID, "name", name)
	}

	existingPublishers, err := store.ListPublishers(ctx, database)
	if err != nil {
		slog.Error("failed to list publishers", "error", err)
		os.Exit(1)
	}
	publisherIDs := make(map[string]int64)
	for _, p := range existingPublishers {
		publisherIDs[p.Name] = p.ID
	}
	for _, name := range []string{"Gramedia", "Erlangga", "Mizan", "O'Reilly Media"} {
		if _, ok := publisherIDs[name]; ok {
			continue
		}
		p, err := store.CreatePublisher(ctx, database, name)
		if err != nil {
			slog.Warn("skipping publisher", "name", name, "error", err)
			continue
		}
		publisherIDs[name] = p.ID
		slog.Info("created publisher", "id", p.ID, "name", name)
	}

	books := []struct {
		title, author, isbn, description string
		stock                            int
		publisher                        string
		genres                           []string
	}{
		{"Laskar Pelangi", "Andrea Hirata", "9789793062792", "Ten students in Belitung chase an education against the odds.", 5, "Gramedia", []string{"Fiction"}},
		{"Bumi Manusia", "Pramoedya Ananta Toer", "9789799731234", "A young Javanese man comes of age in colonial Indonesia.", 3, "Gramedia", []string{"Fiction", "History"}},
		{"Sapiens", "Yuval Noah Harari", "9780062316097", "A brief history of humankind.", 4, "Mizan", []string{"Non-fiction", "History"}},
		{"A Brief History of Time", "Stephen Hawking", "9780553380163", "From the Big Bang to black holes.", 2, "Erlangga", []string{"Science"}},
		{"The Hobbit", "J.R.R. Tolkien", "9780547928227", "Bilbo Baggins goes on an unexpected journey.", 6, "Gramedia", []string{"Fantasy"}},
		{"The Go Programming Language", "Alan Donovan", "9780134190440", "The authoritative resource for Go programmers.", 3, "O'Reilly Media", []string{"Technology"}},
	}

	for _, b := range books {
		pubID, ok := publisherIDs[b.publisher]
		if !ok {
			slog.Warn("skipping book, publisher missing", "title", b.title)
			continue
		}
		var gIDs []int64
		for _, g := range b.genres {
			if id, ok := genreIDs[g]; ok {
				gIDs = append(gIDs, id)
			}
		}
		created, err := store.CreateBook(ctx, database, b.title, b.author, b.isbn, b.description, b.stock, pubID, gIDs)
		if err != nil {
			slog.Warn("skipping book", "title", b.title, "error", err)
			continue
		}
		slog.Info("created book", "id", created.ID, "title", b.title, "stock", b.stock)
	}

	slog.Info("seed complete")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
