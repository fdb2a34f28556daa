package model

import (
	"fmt"
	"time"
)

// Student represents a library account, either a regular student or an admin.
type Student struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	Gender       string     `json:"gender"`
	Banned       bool       `json:"banned"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

// Roles.
const (
	RoleAdmin   = "Admin"
	RoleStudent = "Student"
)

// Genders.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

// ValidRole reports whether role is a known account role.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleStudent
}

// ValidGender reports whether gender is a known value.
func ValidGender(gender string) bool {
	return gender == GenderMale || gender == GenderFemale
}

// ValidatePassword checks password strength requirements.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}
