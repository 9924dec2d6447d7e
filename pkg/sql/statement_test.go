package sql

import (
	"errors"
	"testing"
)

func TestNormalizeStatement(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"no semicolon", "SELECT 1", "SELECT 1"},
		{"trailing semicolon", "SELECT 1;", "SELECT 1"},
		{"trailing semicolon and whitespace", "SELECT 1;  ", "SELECT 1"},
		{"leading and trailing whitespace", "  SELECT 1  ", "SELECT 1"},
		{"semicolon inside single quotes", "SELECT * FROM t WHERE name = 'a;b'", "SELECT * FROM t WHERE name = 'a;b'"},
		{"semicolon inside double quotes", `SELECT * FROM "t;name"`, `SELECT * FROM "t;name"`},
		{"doubled quote escape", "SELECT * FROM t WHERE name = 'O''Brien'", "SELECT * FROM t WHERE name = 'O''Brien'"},
		{"quoted semicolon with trailing semicolon", "SELECT * FROM t WHERE name = 'a;b';", "SELECT * FROM t WHERE name = 'a;b'"},
		{"empty string", "", ""},
		{"whitespace only", "   ", ""},
		{"newlines preserved", "UPDATE t\nSET x = 1\nWHERE id = 2;", "UPDATE t\nSET x = 1\nWHERE id = 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeStatement(tt.input)
			if err != nil {
				t.Fatalf("NormalizeStatement(%q) error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("NormalizeStatement(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeStatement_MultipleStatements(t *testing.T) {
	inputs := []string{
		"SELECT 1; SELECT 2",
		"SELECT 1; SELECT 2;",
		"INSERT INTO t (x) VALUES (1); DROP TABLE t",
		"SELECT 1;;",
	}
	for _, input := range inputs {
		if _, err := NormalizeStatement(input); !errors.Is(err, ErrMultipleStatements) {
			t.Errorf("NormalizeStatement(%q) = %v, want ErrMultipleStatements", input, err)
		}
	}
}
