// Package sql compiles flow definitions and collected responses into SQL
// statement text, and validates identifiers, statements, and operations
// before they are allowed anywhere near a database.
package sql

import (
	"fmt"
	"regexp"
	"strings"
)

// identifierPattern is the shape every table or column name must match.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// reservedKeywords are names rejected outright even when they lex as valid
// identifiers. Quoting is not an escape hatch here: the compiler emits bare
// identifiers, so a reserved word would change the meaning of the statement.
var reservedKeywords = map[string]struct{}{
	"SELECT":   {},
	"INSERT":   {},
	"UPDATE":   {},
	"DELETE":   {},
	"DROP":     {},
	"CREATE":   {},
	"ALTER":    {},
	"TRUNCATE": {},
	"TABLE":    {},
	"FROM":     {},
	"WHERE":    {},
	"JOIN":     {},
	"UNION":    {},
	"GRANT":    {},
	"REVOKE":   {},
	"EXEC":     {},
	"EXECUTE":  {},
	"ORDER":    {},
	"GROUP":    {},
	"HAVING":   {},
	"INDEX":    {},
	"VIEW":     {},
	"SCHEMA":   {},
	"DATABASE": {},
}

// ValidateIdentifier reports whether name is safe to embed as a bare SQL
// identifier. Every table or column name that originates from free text
// (pasted DDL, AI output, manual entry) passes through here before it can
// become part of an executable operation.
func ValidateIdentifier(name string) error {
	if name == "" {
		return fmt.Errorf("identifier is empty")
	}
	if !identifierPattern.MatchString(name) {
		first := rune(name[0])
		if !(first == '_' || (first >= 'a' && first <= 'z') || (first >= 'A' && first <= 'Z')) {
			return fmt.Errorf("identifier %q starts with invalid character", name)
		}
		return fmt.Errorf("identifier %q contains invalid characters", name)
	}
	if _, ok := reservedKeywords[strings.ToUpper(name)]; ok {
		return fmt.Errorf("identifier %q is a reserved keyword", name)
	}
	return nil
}
