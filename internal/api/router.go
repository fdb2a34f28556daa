package api

import (
	"database/sql"
	"net/http"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	booksHandler := &BooksHandler{DB: db}
	loansHandler := &LoansHandler{DB: db}
	genresHandler := &GenresHandler{DB: db}
	publishersHandler := &PublishersHandler{DB: db}
	usersHandler := &UsersHandler{DB: db}

	authMW := AuthMiddleware(jwtSecret, db)
	requireAdmin := RequireAdmin()

	// Public: registration and login.
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))

	// Catalog browsing (any authenticated account).
	mux.Handle("GET /api/books", authMW(http.HandlerFunc(booksHandler.List)))
	mux.Handle("GET /api/books/{id}", authMW(http.HandlerFunc(booksHandler.Get)))
	mux.Handle("GET /api/books/{id}/cover", authMW(http.HandlerFunc(booksHandler.GetCover)))
	mux.Handle("GET /api/genres", authMW(http.HandlerFunc(genresHandler.List)))
	mux.Handle("GET /api/publishers", authMW(http.HandlerFunc(publishersHandler.List)))

	// Loan ledger (any authenticated account).
	mux.Handle("POST /api/book/borrow", authMW(http.HandlerFunc(loansHandler.Borrow)))
	mux.Handle("POST /api/book/return", authMW(http.HandlerFunc(loansHandler.Return)))
	mux.Handle("GET /api/loans", authMW(http.HandlerFunc(loansHandler.List)))

	// Admin: book management.
	mux.Handle("POST /api/admin/books", authMW(requireAdmin(http.HandlerFunc(booksHandler.Create))))
	mux.Handle("PUT /api/admin/books/{id}", authMW(requireAdmin(http.HandlerFunc(booksHandler.Update))))
	mux.Handle("DELETE /api/admin/books/{id}", authMW(requireAdmin(http.HandlerFunc(booksHandler.Delete))))
	mux.Handle("PUT /api/admin/books/{id}/cover", authMW(requireAdmin(http.HandlerFunc(booksHandler.UploadCover))))

	// Admin: genres and publishers.
	mux.Handle("POST /api/admin/genres", authMW(requireAdmin(http.HandlerFunc(genresHandler.Create))))
	mux.Handle("PUT /api/admin/genres/{id}", authMW(requireAdmin(http.HandlerFunc(genresHandler.Update))))
	mux.Handle("DELETE /api/admin/genres/{id}", authMW(requireAdmin(http.HandlerFunc(genresHandler.Delete))))
	mux.Handle("POST /api/admin/publishers", authMW(requireAdmin(http.HandlerFunc(publishersHandler.Create))))
	mux.Handle("PUT /api/admin/publishers/{id}", authMW(requireAdmin(http.HandlerFunc(publishersHandler.Update))))
	mux.Handle("DELETE /api/admin/publishers/{id}", authMW(requireAdmin(http.HandlerFunc(publishersHandler.Delete))))

	// Admin: user management.
	mux.Handle("GET /api/admin/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.List))))
	mux.Handle("PUT /api/admin/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Update))))
	mux.Handle("PUT /api/admin/users/{id}/ban", authMW(requireAdmin(http.HandlerFunc(usersHandler.Ban))))
	mux.Handle("DELETE /api/admin/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Delete))))

	return mux
}
