package model

import "testing"

func TestValidRole(t *testing.T) {
	tests := []struct {
		role     string
		expected bool
	}{
		{RoleAdmin, true},
		{RoleStudent, true},
		{"admin", false},
		{"Manager", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidRole(tt.role); got != tt.expected {
			t.Errorf("ValidRole(%q) = %v, want %v", tt.role, got, tt.expected)
		}
	}
}

func TestValidGender(t *testing.T) {
	tests := []struct {
		gender   string
		expected bool
	}{
		{GenderMale, true},
		{GenderFemale, true},
		{"male", false},
		{"Other", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidGender(tt.gender); got != tt.expected {
			t.Errorf("ValidGender(%q) = %v, want %v", tt.gender, got, tt.expected)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		wantErr  bool
	}{
		{"", true},
		{"short", true},
		{"1234567", true},
		{"12345678", false},
		{"a-valid-password", false},
	}

	for _, tt := range tests {
		err := ValidatePassword(tt.password)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
		}
	}
}
