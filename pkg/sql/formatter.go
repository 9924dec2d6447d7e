package sql

import (
	"strconv"
	"strings"
	"time"

	"github.com/formflow-inc/formflow-engine/pkg/models"
)

// dateLayouts are tried in order when formatting a date-typed answer.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
}

// EscapeString doubles every embedded single quote. This is the entire
// escaping policy for literal values: no other characters are touched, and
// the rule is applied exactly once per value on its way into a statement.
func EscapeString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// quote escapes s and wraps it in single quotes.
func quote(s string) string {
	return "'" + EscapeString(s) + "'"
}

// FormatValue converts an answer into a SQL literal according to the
// question's declared type. Null answers become NULL regardless of type.
//
// Number-typed answers are emitted without quoting; a string answer in a
// number slot passes through as-is, which preserves the upstream behavior
// of trusting the caller to have validated numeric-ness.
func FormatValue(value models.AnswerValue, questionType models.QuestionType) string {
	if value.IsNull() {
		return "NULL"
	}

	switch questionType {
	case models.QuestionTypeNumber:
		return value.Raw()

	case models.QuestionTypeYesNo:
		if value.Kind == models.AnswerBool && value.Bool {
			return "1"
		}
		if value.Kind == models.AnswerString && value.Str == "yes" {
			return "1"
		}
		return "0"

	case models.QuestionTypeDate:
		raw := value.Raw()
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return "'" + t.Format("2006-01-02") + "'"
			}
		}
		return quote(raw)

	case models.QuestionTypeMultiSelect:
		if value.Kind == models.AnswerList {
			return quote(strings.Join(value.List, ", "))
		}
		return quote(value.Raw())

	default:
		return quote(value.Raw())
	}
}

// formatStatic escape-and-quotes a static condition literal. Numeric-looking
// statics stay quoted too; the database coerces them where needed.
func formatStatic(literal string) string {
	return quote(literal)
}

// parseNumber parses a raw answer string as a float for numeric
// comparisons. The bool result is false for non-numeric input.
func parseNumber(raw string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	return f, err == nil
}
