package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"pustaka/internal/store"
)

// envelope is the wire format for every response: {status, data} on success,
// {status, errors} on failure.
type envelope struct {
	Status int    `json:"status"`
	Data   any    `json:"data,omitempty"`
	Errors string `json:"errors,omitempty"`
}

// jsonData writes a success envelope with the given status code.
func jsonData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Status: status, Data: data}); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

// jsonError writes an error envelope.
func jsonError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Status: status, Errors: message}); err != nil {
		slog.Error("encoding error response", "error", err)
	}
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// storeError maps store-layer errors onto responses. Business-rule violations
// carry their own message; anything unexpected becomes a generic 500 so
// internals never leak.
func storeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrBookNotFound):
		jsonError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrAlreadyBorrowed),
		errors.Is(err, store.ErrOutOfStock),
		errors.Is(err, store.ErrNotBorrowed),
		errors.Is(err, store.ErrDuplicateTitle),
		errors.Is(err, store.ErrDuplicateEmail),
		errors.Is(err, store.ErrInUse):
		jsonError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrConflict):
		jsonError(w, http.StatusConflict, err.Error())
	default:
		slog.Error("storage failure", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
	}
}
