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

// PublishersHandler handles publisher browsing and the admin publisher CRUD.
type PublishersHandler struct {
	DB *sql.DB
}

type publisherRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// List handles GET /api/publishers.
func (h *PublishersHandler) List(w http.ResponseWriter, r *http.Request) {
	publishers, err := store.ListPublishers(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to list publishers", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list publishers")
		return
	}
	if publishers == nil {
		publishers = []model.Publisher{}
	}
	jsonData(w, http.StatusOK, publishers)
}

// Create handles POST /api/admin/publishers.
func (h *PublishersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req publisherRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validation.Struct(req); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	publisher, err := store.CreatePublisher(r.Context(), h.DB, req.Name)
	if err != nil {
		slog.Error("failed to create publisher", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create publisher")
		return
	}

	jsonData(w, http.StatusOK, publisher)
}

// Update handles PUT /api/admin/publishers/{id}.
func (h *PublishersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid publisher id")
		return
	}

	var req publisherRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validation.Struct(req); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.UpdatePublisher(r.Context(), h.DB, id, req.Name); err != nil {
		slog.Error("failed to update publisher", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to update publisher")
		return
	}

	publisher, _ := store.GetPublisher(r.Context(), h.DB, id)
	jsonData(w, http.StatusOK, publisher)
}

// Delete handles DELETE /api/admin/publishers/{id}.
func (h *PublishersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid publisher id")
		return
	}

	if err := store.DeletePublisher(r.Context(), h.DB, id); err != nil {
		storeError(w, err)
		return
	}

	jsonData(w, http.StatusOK, map[string]string{"message": "publisher deleted"})
}
