// Package ddl parses a constrained CREATE TABLE subset into column
// metadata and inferred question definitions. Parsing is best-effort:
// malformed clauses are skipped, never fatal.
package ddl

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/formflow-inc/formflow-engine/pkg/models"
)

// createTableRegex locates each CREATE TABLE header up to its opening
// paren. The table name may be bare or quoted with double quotes,
// backticks, or square brackets. The body is NOT captured here: extracting
// it needs a depth counter, not a regex.
var createTableRegex = regexp.MustCompile(
	`(?is)CREATE\s+TABLE\s+(?:IF\s+NOT\s+EXISTS\s+)?("[^"]+"|` + "`[^`]+`" + `|\[[^\]]+\]|[A-Za-z_][A-Za-z0-9_.]*)\s*\(`)

// columnClauseRegex splits a column clause into its name (first token,
// optionally quoted) and the remainder. Clauses that do not match are
// silently skipped.
var columnClauseRegex = regexp.MustCompile(
	`(?s)^("[^"]+"|` + "`[^`]+`" + `|\[[^\]]+\]|[A-Za-z_][A-Za-z0-9_]*)\s+(.+)$`)

// rawTypeRegex extracts the leading type token including an optional
// parenthesized size or precision, e.g. "NUMERIC(10,2)".
var rawTypeRegex = regexp.MustCompile(`^([A-Za-z]+(?:\s*\([^)]*\))?)`)

// checkInRegex extracts the literal list from a column-level
// CHECK (col IN ('a', 'b')) constraint.
var checkInRegex = regexp.MustCompile(`(?is)CHECK\s*\(\s*[^\s(]+\s+IN\s*\(([^)]*)\)\s*\)`)

// tableConstraintKeywords start table-level constraint clauses, which
// produce no column.
var tableConstraintKeywords = []string{
	"PRIMARY KEY", "UNIQUE", "FOREIGN KEY", "INDEX", "KEY", "CONSTRAINT",
}

// Parse scans ddlText for CREATE TABLE statements and returns one
// ParsedTable per match: the parsed column metadata, a question per
// non-primary-key column, and a suggested INSERT operation covering the
// generated mappings.
func Parse(ddlText string) []models.ParsedTable {
	var tables []models.ParsedTable

	offset := 0
	for offset < len(ddlText) {
		loc := createTableRegex.FindStringSubmatchIndex(ddlText[offset:])
		if loc == nil {
			break
		}

		name := unquoteIdentifier(ddlText[offset+loc[2] : offset+loc[3]])
		bodyStart := offset + loc[1] // just past the opening paren
		body, bodyEnd := extractBody(ddlText, bodyStart)

		tables = append(tables, parseTable(name, body))
		offset = bodyEnd
	}

	return tables
}

// extractBody returns the text between the opening paren ending at start
// and its matching close paren, found by depth counting.
func extractBody(text string, start int) (string, int) {
	depth := 1
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return text[start:i], i + 1
			}
		}
	}
	return text[start:], len(text)
}

func parseTable(tableName, body string) models.ParsedTable {
	table := models.ParsedTable{TableName: tableName}

	order := 0
	var mappings []models.ColumnMapping

	for _, clause := range splitClauses(body) {
		clause = strings.TrimSpace(clause)
		if clause == "" || isTableConstraint(clause) {
			continue
		}

		col, ok := parseColumn(clause)
		if !ok {
			continue
		}
		table.Columns = append(table.Columns, col)

		// Primary key columns are assumed auto-populated: kept in the
		// column metadata, excluded from the questions.
		if col.IsPrimaryKey {
			continue
		}

		q := models.Question{
			ID:            "q_" + col.Name,
			Type:          InferType(col.RawType, col.CheckValues),
			Label:         Label(col.Name),
			Options:       col.CheckValues,
			Required:      !col.Nullable,
			SQLColumnName: col.Name,
			TableName:     tableName,
			Order:         order,
		}
		order++

		table.Questions = append(table.Questions, q)
		mappings = append(mappings, models.ColumnMapping{
			QuestionID: q.ID,
			ColumnName: col.Name,
		})
	}

	table.SuggestedOperation = models.SQLOperation{
		ID:             uuid.NewString(),
		OperationType:  models.OperationInsert,
		TableName:      tableName,
		Label:          "Insert into " + tableName,
		ColumnMappings: mappings,
		Conditions:     []models.SQLCondition{},
		Order:          0,
	}

	return table
}

// splitClauses splits a CREATE TABLE body on commas at paren depth 0. The
// depth counter is what keeps "NUMERIC(10,2)" and "CHECK (x IN (1,2))"
// intact as single clauses.
func splitClauses(body string) []string {
	var clauses []string
	var current strings.Builder
	depth := 0

	for _, ch := range body {
		switch ch {
		case '(':
			depth++
			current.WriteRune(ch)
		case ')':
			depth--
			current.WriteRune(ch)
		case ',':
			if depth == 0 {
				clauses = append(clauses, current.String())
				current.Reset()
			} else {
				current.WriteRune(ch)
			}
		default:
			current.WriteRune(ch)
		}
	}

	if current.Len() > 0 {
		clauses = append(clauses, current.String())
	}

	return clauses
}

func isTableConstraint(clause string) bool {
	upper := strings.ToUpper(clause)
	for _, kw := range tableConstraintKeywords {
		if strings.HasPrefix(upper, kw) {
			return true
		}
	}
	return false
}

func parseColumn(clause string) (models.ParsedColumn, bool) {
	m := columnClauseRegex.FindStringSubmatch(clause)
	if m == nil {
		return models.ParsedColumn{}, false
	}

	name := unquoteIdentifier(m[1])
	rest := m[2]

	typeMatch := rawTypeRegex.FindStringSubmatch(rest)
	if typeMatch == nil {
		return models.ParsedColumn{}, false
	}

	upperRest := strings.ToUpper(rest)
	col := models.ParsedColumn{
		Name:         name,
		RawType:      strings.TrimSpace(typeMatch[1]),
		Nullable:     !strings.Contains(upperRest, "NOT NULL"),
		IsPrimaryKey: strings.Contains(upperRest, "PRIMARY KEY"),
	}

	if check := checkInRegex.FindStringSubmatch(rest); check != nil {
		for _, v := range strings.Split(check[1], ",") {
			v = strings.TrimSpace(v)
			v = strings.Trim(v, `'"`)
			if v != "" {
				col.CheckValues = append(col.CheckValues, v)
			}
		}
	}

	return col, true
}

func unquoteIdentifier(name string) string {
	name = strings.TrimSpace(name)
	if len(name) >= 2 {
		first, last := name[0], name[len(name)-1]
		if (first == '"' && last == '"') ||
			(first == '`' && last == '`') ||
			(first == '[' && last == ']') {
			return name[1 : len(name)-1]
		}
	}
	return name
}
