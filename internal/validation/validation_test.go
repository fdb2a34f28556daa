package validation

import (
	"strings"
	"testing"
)

type borrowPayload struct {
	StudentID int64  `json:"student_id" validate:"required"`
	BookID    int64  `json:"book_id" validate:"required"`
	Notes     string `json:"notes" validate:"omitempty,max=100"`
}

type registerPayload struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Gender   string `json:"gender" validate:"required,oneof=Male Female"`
}

func TestStructValid(t *testing.T) {
	tests := []struct {
		name    string
		payload any
	}{
		{"borrow with notes", borrowPayload{StudentID: 1, BookID: 7, Notes: "handle with care"}},
		{"borrow without notes", borrowPayload{StudentID: 1, BookID: 7}},
		{"register", registerPayload{Name: "Alice", Email: "alice@example.com", Password: "secret-pw", Gender: "Female"}},
	}

	for _, tt := range tests {
		if err := Struct(tt.payload); err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
		}
	}
}

func TestStructInvalid(t *testing.T) {
	tests := []struct {
		name     string
		payload  any
		wantPart string
	}{
		{"missing student_id", borrowPayload{BookID: 7}, "student_id is required"},
		{"missing book_id", borrowPayload{StudentID: 1}, "book_id is required"},
		{"notes too long", borrowPayload{StudentID: 1, BookID: 7, Notes: strings.Repeat("x", 101)}, "notes must be at most 100"},
		{"bad email", registerPayload{Name: "Bob", Email: "not-an-email", Password: "pw", Gender: "Male"}, "email must be a valid email"},
		{"bad gender", registerPayload{Name: "Bob", Email: "bob@example.com", Password: "pw", Gender: "other"}, "gender must be one of"},
	}

	for _, tt := range tests {
		err := Struct(tt.payload)
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.wantPart) {
			t.Errorf("%s: error %q does not contain %q", tt.name, err, tt.wantPart)
		}
	}
}

func TestStructMultipleErrors(t *testing.T) {
	err := Struct(borrowPayload{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "student_id") || !strings.Contains(err.Error(), "book_id") {
		t.Errorf("expected both fields reported, got %q", err)
	}
}
