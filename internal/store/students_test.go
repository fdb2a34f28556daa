package store

import (
	"context"
	"errors"
	"testing"

	"pustaka/internal/db"
	"pustaka/internal/model"
)

func TestCreateGetStudent(t *testing.T) {
	ctx := context.Background()
	database := db.NewTestDB(t)

	student, err := CreateStudent(ctx, database, "Andi", "andi@example.com", "hash", model.RoleStudent, model.GenderMale)
	if err != nil {
		t.Fatalf("creating student: %v", err)
	}
	if student.Role != model.RoleStudent {
		t.Errorf("role = %q, want %q", student.Role, model.RoleStudent)
	}
	if student.Banned {
		t.Error("new student is banned")
	}

	got, err := GetStudentByEmail(ctx, database, "andi@example.com")
	if err != nil {
		t.Fatalf("getting student by email: %v", err)
	}
	if got == nil || got.ID != student.ID {
		t.Fatalf("got %v, want student %d", got, student.ID)
	}
}

func TestCreateStudentDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	database := db.NewTestDB(t)

	if _, err := CreateStudent(ctx, database, "Andi", "andi@example.com", "hash", model.RoleStudent, model.GenderMale); err != nil {
		t.Fatalf("creating student: %v", err)
	}

	_, err := CreateStudent(ctx, database, "Other", "andi@example.com", "hash", model.RoleStudent, model.GenderFemale)
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("duplicate email error = %v, want ErrDuplicateEmail", err)
	}
}

func TestSetStudentBan(t *testing.T) {
	ctx := context.Background()
	database := db.NewTestDB(t)

	student, err := CreateStudent(ctx, database, "Budi", "budi@example.com", "hash", model.RoleStudent, model.GenderMale)
	if err != nil {
		t.Fatalf("creating student: %v", err)
	}

	if err := SetStudentBan(ctx, database, student.ID, true); err != nil {
		t.Fatalf("banning student: %v", err)
	}

	got, err := GetStudent(ctx, database, student.ID)
	if err != nil {
		t.Fatalf("getting student: %v", err)
	}
	if !got.Banned {
		t.Error("student not banned after SetStudentBan(true)")
	}

	if err := SetStudentBan(ctx, database, student.ID, false); err != nil {
		t.Fatalf("unbanning student: %v", err)
	}
	got, _ = GetStudent(ctx, database, student.ID)
	if got.Banned {
		t.Error("student still banned after SetStudentBan(false)")
	}
}

func TestDeleteStudentSoft(t *testing.T) {
	ctx := context.Background()
	database := db.NewTestDB(t)

	student, err := CreateStudent(ctx, database, "Citra", "citra@example.com", "hash", model.RoleStudent, model.GenderFemale)
	if err != nil {
		t.Fatalf("creating student: %v", err)
	}

	if err := DeleteStudent(ctx, database, student.ID); err != nil {
		t.Fatalf("deleting student: %v", err)
	}

	// Login lookups no longer find the account.
	got, err := GetStudentByEmail(ctx, database, "citra@example.com")
	if err != nil {
		t.Fatalf("getting deleted student by email: %v", err)
	}
	if got != nil {
		t.Errorf("got %v, want nil after delete", got)
	}

	students, err := ListStudents(ctx, database)
	if err != nil {
		t.Fatalf("listing students: %v", err)
	}
	if len(students) != 0 {
		t.Errorf("listed %d students after delete, want 0", len(students))
	}

	// The email is free again.
	if _, err := CreateStudent(ctx, database, "Citra", "citra@example.com", "hash", model.RoleStudent, model.GenderFemale); err != nil {
		t.Errorf("recreating deleted email: %v", err)
	}
}

func TestUpdateStudentPassword(t *testing.T) {
	ctx := context.Background()
	database := db.NewTestDB(t)

	student, err := CreateStudent(ctx, database, "Dewi", "dewi@example.com", "old", model.RoleStudent, model.GenderFemale)
	if err != nil {
		t.Fatalf("creating student: %v", err)
	}

	if err := UpdateStudentPassword(ctx, database, student.ID, "new"); err != nil {
		t.Fatalf("updating password: %v", err)
	}

	got, err := GetStudent(ctx, database, student.ID)
	if err != nil {
		t.Fatalf("getting student: %v", err)
	}
	if got.PasswordHash != "new" {
		t.Errorf("password hash = %q, want %q", got.PasswordHash, "new")
	}
}
