package sql

import (
	"strings"
	"testing"
)

func TestValidateIdentifier_Valid(t *testing.T) {
	valid := []string{
		"users",
		"app_name",
		"_private",
		"Column1",
		"a",
		"snake_case_name_2",
	}
	for _, name := range valid {
		if err := ValidateIdentifier(name); err != nil {
			t.Errorf("ValidateIdentifier(%q) = %v, want nil", name, err)
		}
	}
}

func TestValidateIdentifier_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		wantReason string
	}{
		{
			name:       "empty string",
			identifier: "",
			wantReason: "empty",
		},
		{
			name:       "starts with digit",
			identifier: "1users",
			wantReason: "starts with invalid character",
		},
		{
			name:       "starts with dash",
			identifier: "-users",
			wantReason: "starts with invalid character",
		},
		{
			name:       "embedded space",
			identifier: "user name",
			wantReason: "invalid characters",
		},
		{
			name:       "embedded quote",
			identifier: "users'--",
			wantReason: "invalid characters",
		},
		{
			name:       "semicolon injection",
			identifier: "users;DROP",
			wantReason: "invalid characters",
		},
		{
			name:       "reserved keyword lowercase",
			identifier: "select",
			wantReason: "reserved keyword",
		},
		{
			name:       "reserved keyword uppercase",
			identifier: "DROP",
			wantReason: "reserved keyword",
		},
		{
			name:       "reserved keyword mixed case",
			identifier: "Delete",
			wantReason: "reserved keyword",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIdentifier(tt.identifier)
			if err == nil {
				t.Fatalf("ValidateIdentifier(%q) = nil, want error", tt.identifier)
			}
			if !strings.Contains(err.Error(), tt.wantReason) {
				t.Errorf("ValidateIdentifier(%q) = %q, want reason containing %q", tt.identifier, err, tt.wantReason)
			}
		})
	}
}
