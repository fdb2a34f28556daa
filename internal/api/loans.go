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

// LoansHandler exposes the loan ledger: borrowing, returning, and history.
type LoansHandler struct {
	DB *sql.DB
}

type borrowRequest struct {
	StudentID int64  `json:"student_id" validate:"required"`
	BookID    int64  `json:"book_id" validate:"required"`
	Notes     string `json:"notes" validate:"omitempty,max=100"`
}

type returnRequest struct {
	StudentID int64  `json:"student_id" validate:"required"`
	BookID    int64  `json:"book_id" validate:"required"`
}

// Borrow handles POST /api/book/borrow.
func (h *LoansHandler) Borrow(w http.ResponseWriter, r *http.Request) {
	var req borrowRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validation.Struct(req); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	loan, err := store.BorrowBook(r.Context(), h.DB, req.StudentID, req.BookID, req.Notes)
	if err != nil {
		storeError(w, err)
		return
	}

	slog.Info("book borrowed",
		"student", loan.StudentName, "book", loan.BookTitle, "loan_id", loan.ID)
	jsonData(w, http.StatusOK, loan)
}

// Return handles POST /api/book/return.
func (h *LoansHandler) Return(w http.ResponseWriter, r *http.Request) {
	var req returnRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validation.Struct(req); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.ReturnBook(r.Context(), h.DB, req.StudentID, req.BookID); err != nil {
		storeError(w, err)
		return
	}

	slog.Info("book returned", "student_id", req.StudentID, "book_id", req.BookID)
	jsonData(w, http.StatusOK, map[string]string{"message": "Book returned successfully"})
}

// List handles GET /api/loans. Admins can filter by student, book, and open
// status; students only ever see their own loans.
func (h *LoansHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var studentID, bookID int64
	openOnly := r.URL.Query().Get("open") == "true"

	if claims.Role == model.RoleAdmin {
		if v := r.URL.Query().Get("student_id"); v != "" {
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				jsonError(w, http.StatusBadRequest, "invalid student_id")
				return
			}
			studentID = id
		}
		if v := r.URL.Query().Get("book_id"); v != "" {
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				jsonError(w, http.StatusBadRequest, "invalid book_id")
				return
			}
			bookID = id
		}
	} else {
		studentID = claims.AccountID
	}

	loans, err := store.ListLoans(r.Context(), h.DB, studentID, bookID, openOnly)
	if err != nil {
		slog.Error("failed to list loans", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list loans")
		return
	}
	if loans == nil {
		loans = []model.Loan{}
	}
	jsonData(w, http.StatusOK, loans)
}
