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

// UsersHandler handles account management (admin only).
type UsersHandler struct {
	DB *sql.DB
}

type updateUserRequest struct {
	Name   string `json:"name" validate:"required,max=255"`
	Email  string `json:"email" validate:"required,email"`
	Role   string `json:"role" validate:"required,oneof=Admin Student"`
	Gender string `json:"gender" validate:"required,oneof=Male Female"`
}

type banUserRequest struct {
	Banned *bool `json:"banned" validate:"required"`
}

// List handles GET /api/admin/users.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := store.ListStudents(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to list users", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	if users == nil {
		users = []model.Student{}
	}
	jsonData(w, http.StatusOK, users)
}

// Update handles PUT /api/admin/users/{id}.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validation.Struct(req); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	existing, err := store.GetStudent(r.Context(), h.DB, id)
	if err != nil {
		slog.Error("failed to get user", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if existing == nil || existing.DeletedAt != nil {
		jsonError(w, http.StatusNotFound, "user not found")
		return
	}

	if err := store.UpdateStudent(r.Context(), h.DB, id, req.Name, req.Email, req.Role, req.Gender); err != nil {
		storeError(w, err)
		return
	}

	user, _ := store.GetStudent(r.Context(), h.DB, id)
	claims := GetClaims(r.Context())
	slog.Info("user updated", "admin", claims.Name, "user_id", id, "role", req.Role)
	jsonData(w, http.StatusOK, user)
}

// Ban handles PUT /api/admin/users/{id}/ban.
func (h *UsersHandler) Ban(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req banUserRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validation.Struct(req); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	// An admin cannot ban their own account.
	claims := GetClaims(r.Context())
	if claims != nil && claims.AccountID == id {
		jsonError(w, http.StatusBadRequest, "cannot ban yourself")
		return
	}

	existing, err := store.GetStudent(r.Context(), h.DB, id)
	if err != nil {
		slog.Error("failed to get user", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if existing == nil || existing.DeletedAt != nil {
		jsonError(w, http.StatusNotFound, "user not found")
		return
	}

	if err := store.SetStudentBan(r.Context(), h.DB, id, *req.Banned); err != nil {
		slog.Error("failed to set ban flag", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to update ban status")
		return
	}

	slog.Info("user ban status changed", "admin", claims.Name, "user_id", id, "banned", *req.Banned)
	jsonData(w, http.StatusOK, map[string]string{"message": "ban status updated"})
}

// Delete handles DELETE /api/admin/users/{id}.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	// Prevent self-deletion.
	claims := GetClaims(r.Context())
	if claims != nil && claims.AccountID == id {
		jsonError(w, http.StatusBadRequest, "cannot delete yourself")
		return
	}

	existing, err := store.GetStudent(r.Context(), h.DB, id)
	if err != nil {
		slog.Error("failed to get user", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if existing == nil || existing.DeletedAt != nil {
		jsonError(w, http.StatusNotFound, "user not found")
		return
	}

	if err := store.DeleteStudent(r.Context(), h.DB, id); err != nil {
		slog.Error("failed to delete user", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to delete user")
		return
	}

	slog.Info("user deleted", "admin", claims.Name, "deleted_user", existing.Email)
	jsonData(w, http.StatusOK, map[string]string{"message": "user deleted"})
}
