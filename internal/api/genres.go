package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"pustaka/internal/model"
	"pustaka/internal/store"
	"pustaka/internal/validation"
)

// GenresHandler handles genre browsing and the admin genre CRUD.
type GenresHandler struct {
	DB *sql.DB
}

type genreRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// List handles GET /api/genres.
func (h *GenresHandler) List(w http.ResponseWriter, r *http.Request) {
	genres, err := store.ListGenres(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to list genres", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list genres")
		return
	}
	if genres == nil {
		genres = []model.Genre{}
	}
	jsonData(w, http.StatusOK, genres)
}

// Create handles POST /api/admin/genres.
func (h *GenresHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req genreRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validation.Struct(req); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	genre, err := store.CreateGenre(r.Context(), h.DB, req.Name)
	if err != nil {
		slog.Error("failed to create genre", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create genre")
		return
	}

	jsonData(w, http.StatusOK, genre)
}

// Update handles PUT /api/admin/genres/{id}.
func (h *GenresHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid genre id")
		return
	}

	var req genreRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validation.Struct(req); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.UpdateGenre(r.Context(), h.DB, id, req.Name); err != nil {
		slog.Error("failed to update genre", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to update genre")
		return
	}

	genre, _ := store.GetGenre(r.Context(), h.DB, id)
	jsonData(w, http.StatusOK, genre)
}

// Delete handles DELETE /api/admin/genres/{id}.
func (h *GenresHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid genre id")
		return
	}

	if err := store.DeleteGenre(r.Context(), h.DB, id); err != nil {
		storeError(w, err)
		return
	}

	jsonData(w, http.StatusOK, map[string]string{"message": "genre deleted"})
}
