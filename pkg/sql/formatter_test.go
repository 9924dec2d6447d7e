package sql

import (
	"testing"

	"github.com/formflow-inc/formflow-engine/pkg/models"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name         string
		value        models.AnswerValue
		questionType models.QuestionType
		expected     string
	}{
		{
			name:         "null is NULL regardless of type",
			value:        models.NullValue(),
			questionType: models.QuestionTypeText,
			expected:     "NULL",
		},
		{
			name:         "null for number type",
			value:        models.NullValue(),
			questionType: models.QuestionTypeNumber,
			expected:     "NULL",
		},
		{
			name:         "plain text is quoted",
			value:        models.StringValue("Acme"),
			questionType: models.QuestionTypeText,
			expected:     "'Acme'",
		},
		{
			name:         "embedded single quote is doubled",
			value:        models.StringValue("O'Brien"),
			questionType: models.QuestionTypeText,
			expected:     "'O''Brien'",
		},
		{
			name:         "email is quoted like text",
			value:        models.StringValue("a@b.co"),
			questionType: models.QuestionTypeEmail,
			expected:     "'a@b.co'",
		},
		{
			name:         "single-select is quoted like text",
			value:        models.StringValue("active"),
			questionType: models.QuestionTypeSingleSelect,
			expected:     "'active'",
		},
		{
			name:         "integer number stays unquoted",
			value:        models.NumberValue(42),
			questionType: models.QuestionTypeNumber,
			expected:     "42",
		},
		{
			name:         "decimal number keeps its fraction",
			value:        models.NumberValue(10.5),
			questionType: models.QuestionTypeNumber,
			expected:     "10.5",
		},
		{
			name:         "non-numeric string in a number slot passes through unquoted",
			value:        models.StringValue("abc"),
			questionType: models.QuestionTypeNumber,
			expected:     "abc",
		},
		{
			name:         "boolean true is 1",
			value:        models.BoolValue(true),
			questionType: models.QuestionTypeYesNo,
			expected:     "1",
		},
		{
			name:         "boolean false is 0",
			value:        models.BoolValue(false),
			questionType: models.QuestionTypeYesNo,
			expected:     "0",
		},
		{
			name:         "string yes is 1",
			value:        models.StringValue("yes"),
			questionType: models.QuestionTypeYesNo,
			expected:     "1",
		},
		{
			name:         "string no is 0",
			value:        models.StringValue("no"),
			questionType: models.QuestionTypeYesNo,
			expected:     "0",
		},
		{
			name:         "ISO date renders as quoted date",
			value:        models.StringValue("2024-01-15"),
			questionType: models.QuestionTypeDate,
			expected:     "'2024-01-15'",
		},
		{
			name:         "RFC3339 timestamp reduces to date",
			value:        models.StringValue("2024-01-15T10:30:00Z"),
			questionType: models.QuestionTypeDate,
			expected:     "'2024-01-15'",
		},
		{
			name:         "unparseable date falls back to escaped string",
			value:        models.StringValue("not a date"),
			questionType: models.QuestionTypeDate,
			expected:     "'not a date'",
		},
		{
			name:         "multi-select joins with comma-space",
			value:        models.ListValue([]string{"red", "blue"}),
			questionType: models.QuestionTypeMultiSelect,
			expected:     "'red, blue'",
		},
		{
			name:         "multi-select escapes joined result",
			value:        models.ListValue([]string{"it's red", "blue"}),
			questionType: models.QuestionTypeMultiSelect,
			expected:     "'it''s red, blue'",
		},
		{
			name:         "non-list multi-select coerces to string",
			value:        models.StringValue("red"),
			questionType: models.QuestionTypeMultiSelect,
			expected:     "'red'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatValue(tt.value, tt.questionType); got != tt.expected {
				t.Errorf("FormatValue(%v, %s) = %q, want %q", tt.value, tt.questionType, got, tt.expected)
			}
		})
	}
}

func TestEscapeString_SinglePass(t *testing.T) {
	// The escape rule is exactly one pass of ' -> ''. Verify it is not
	// naively reapplied: escaping an already-escaped string doubles again,
	// so the compiler must apply it exactly once per value.
	if got := EscapeString("O'Brien"); got != "O''Brien" {
		t.Errorf("EscapeString = %q, want %q", got, "O''Brien")
	}
	if got := EscapeString("O''Brien"); got != "O''''Brien" {
		t.Errorf("double escape = %q, want %q", got, "O''''Brien")
	}
	if got := EscapeString("no quotes"); got != "no quotes" {
		t.Errorf("EscapeString should not touch quote-free input, got %q", got)
	}
}
