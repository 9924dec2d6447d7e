package ddl

import (
	"strings"

	"github.com/formflow-inc/formflow-engine/pkg/models"
)

// numericTypeFragments are matched as substrings of the uppercased raw type.
var numericTypeFragments = []string{"INT", "NUMERIC", "DECIMAL", "FLOAT", "DOUBLE", "REAL", "NUMBER"}

// InferType maps a raw SQL column type, plus an optional CHECK-constraint
// value list, onto a question type. The precedence order is a contract:
// first match wins, and a CHECK list beats everything else, so a BOOLEAN
// column with CHECK values still becomes a single-select.
func InferType(rawType string, checkValues []string) models.QuestionType {
	if len(checkValues) > 0 {
		return models.QuestionTypeSingleSelect
	}

	upper := strings.ToUpper(strings.TrimSpace(rawType))
	compact := strings.ReplaceAll(upper, " ", "")

	if strings.Contains(upper, "BOOL") || compact == "BIT" || compact == "TINYINT(1)" {
		return models.QuestionTypeYesNo
	}
	for _, fragment := range numericTypeFragments {
		if strings.Contains(upper, fragment) {
			return models.QuestionTypeNumber
		}
	}
	if strings.Contains(upper, "DATE") || strings.Contains(upper, "TIME") {
		return models.QuestionTypeDate
	}
	if strings.Contains(upper, "EMAIL") {
		return models.QuestionTypeEmail
	}
	return models.QuestionTypeText
}
