package ddl

import (
	"strings"
	"unicode"

	"github.com/jinzhu/inflection"
)

// Label synthesizes a human-readable question label from a column name:
// underscores become spaces, camelCase boundaries split, and each word is
// title-cased. "signup_date" -> "Signup Date", "appName" -> "App Name".
func Label(columnName string) string {
	spaced := strings.ReplaceAll(columnName, "_", " ")

	var b strings.Builder
	var prev rune
	for _, r := range spaced {
		if unicode.IsUpper(r) && unicode.IsLower(prev) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
		prev = r
	}

	words := strings.Fields(b.String())
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// FlowName suggests a flow title for a table: the singular form of the
// table name, humanized, with an "Intake" suffix. "customer_accounts" ->
// "Customer Account Intake".
func FlowName(tableName string) string {
	singular := inflection.Singular(tableName)
	if singular == "" {
		singular = tableName
	}
	return Label(singular) + " Intake"
}
