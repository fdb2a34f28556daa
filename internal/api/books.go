package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"pustaka/internal/covers"
	"pustaka/internal/model"
	"pustaka/internal/store"
	"pustaka/internal/validation"
)

// BooksHandler handles catalog browsing and the admin book CRUD.
type BooksHandler struct {
	DB *sql.DB
}

type bookRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Author      string  `json:"author" validate:"required,max=255"`
	ISBN        string  `json:"isbn" validate:"required,max=255"`
	Description string  `json:"description" validate:"omitempty,max=255"`
	Stock       int     `json:"stock" validate:"gte=0"`
	PublisherID int64   `json:"publisher_id" validate:"required"`
	Genres      []int64 `json:"genres" validate:"required,min=1"`
}

// List handles GET /api/books.
func (h *BooksHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := store.ListBooks(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to list books", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list books")
		return
	}
	if books == nil {
		books = []model.Book{}
	}
	jsonData(w, http.StatusOK, books)
}

// Get handles GET /api/books/{id}.
func (h *BooksHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid book id")
		return
	}

	book, err := store.GetBook(r.Context(), h.DB, id)
	if err != nil {
		slog.Error("failed to get book", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get book")
		return
	}
	if book == nil || book.DeletedAt != nil {
		jsonError(w, http.StatusNotFound, "book not found")
		return
	}

	jsonData(w, http.StatusOK, book)
}

// GetCover handles GET /api/books/{id}/cover.
func (h *BooksHandler) GetCover(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid book id")
		return
	}

	data, mime, err := store.GetBookCover(r.Context(), h.DB, id)
	if err != nil {
		slog.Error("failed to get cover", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get cover")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no cover")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}

// checkPublisher verifies the referenced publisher exists and is active.
func (h *BooksHandler) checkPublisher(w http.ResponseWriter, r *http.Request, id int64) bool {
	publisher, err := store.GetPublisher(r.Context(), h.DB, id)
	if err != nil {
		slog.Error("failed to check publisher", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return false
	}
	if publisher == nil || publisher.DeletedAt != nil {
		jsonError(w, http.StatusBadRequest, "publisher not found")
		return false
	}
	return true
}

// Create handles POST /api/admin/books.
func (h *BooksHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validation.Struct(req); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !h.checkPublisher(w, r, req.PublisherID) {
		return
	}

	book, err := store.CreateBook(r.Context(), h.DB, req.Title, req.Author, req.ISBN,
		req.Description, req.Stock, req.PublisherID, req.Genres)
	if err != nil {
		storeError(w, err)
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("book created", "admin", claims.Name, "title", book.Title)
	jsonData(w, http.StatusOK, book)
}

// Update handles PUT /api/admin/books/{id}.
func (h *BooksHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid book id")
		return
	}

	var req bookRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validation.Struct(req); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !h.checkPublisher(w, r, req.PublisherID) {
		return
	}

	if err := store.UpdateBook(r.Context(), h.DB, id, req.Title, req.Author, req.ISBN,
		req.Description, req.Stock, req.PublisherID, req.Genres); err != nil {
		storeError(w, err)
		return
	}

	book, _ := store.GetBook(r.Context(), h.DB, id)
	claims := GetClaims(r.Context())
	slog.Info("book updated", "admin", claims.Name, "book_id", id)
	jsonData(w, http.StatusOK, book)
}

// Delete handles DELETE /api/admin/books/{id}.
func (h *BooksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid book id")
		return
	}

	if err := store.DeleteBook(r.Context(), h.DB, id); err != nil {
		storeError(w, err)
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("book deleted", "admin", claims.Name, "book_id", id)
	jsonData(w, http.StatusOK, map[string]string{"message": "Delete successfully"})
}

// UploadCover handles PUT /api/admin/books/{id}/cover.
func (h *BooksHandler) UploadCover(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid book id")
		return
	}

	// Limit to 5 MB.
	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("cover")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "cover file required")
		return
	}
	defer file.Close()

	data, mime, err := covers.Process(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.SetBookCover(r.Context(), h.DB, id, data, mime); err != nil {
		storeError(w, err)
		return
	}

	jsonData(w, http.StatusOK, map[string]string{"message": "cover uploaded"})
}
