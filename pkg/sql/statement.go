package sql

import (
	"errors"
	"strings"
)

// ErrMultipleStatements indicates pasted SQL contains more than one
// statement. Hand-authored and AI-proposed SQL is normalized to a single
// statement before the danger scan so a tail like "; DROP TABLE x" cannot
// ride along unnoticed.
var ErrMultipleStatements = errors.New("multiple SQL statements not allowed; only single statements are permitted")

// NormalizeStatement trims whitespace, strips a trailing semicolon, and
// rejects text containing additional statements. Semicolons inside single-
// or double-quoted literals do not count.
func NormalizeStatement(sqlText string) (string, error) {
	sqlText = strings.TrimSpace(sqlText)
	if sqlText == "" {
		return "", nil
	}

	normalized := stripTrailingSemicolon(sqlText)
	if hasSemicolonOutsideStrings(normalized) {
		return "", ErrMultipleStatements
	}
	return normalized, nil
}

// hasSemicolonOutsideStrings walks the text with a small quote-aware state
// machine. Both backslash escapes (\') and SQL standard doubled quotes ('')
// are handled: a doubled quote exits and immediately re-enters the string
// state, which keeps the scan correct.
func hasSemicolonOutsideStrings(sqlText string) bool {
	const (
		stateNormal = iota
		stateSingleQuote
		stateDoubleQuote
	)

	state := stateNormal
	prev := rune(0)

	for _, ch := range sqlText {
		switch state {
		case stateNormal:
			switch ch {
			case ';':
				return true
			case '\'':
				state = stateSingleQuote
			case '"':
				state = stateDoubleQuote
			}
		case stateSingleQuote:
			if ch == '\'' && prev != '\\' {
				state = stateNormal
			}
		case stateDoubleQuote:
			if ch == '"' && prev != '\\' {
				state = stateNormal
			}
		}
		prev = ch
	}

	return false
}

func stripTrailingSemicolon(sqlText string) string {
	sqlText = strings.TrimRight(sqlText, " \t\n\r")
	if strings.HasSuffix(sqlText, ";") {
		sqlText = strings.TrimRight(strings.TrimSuffix(sqlText, ";"), " \t\n\r")
	}
	return sqlText
}
