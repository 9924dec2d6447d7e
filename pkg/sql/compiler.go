package sql

import (
	"regexp"
	"sort"
	"strings"

	"github.com/formflow-inc/formflow-engine/pkg/models"
)

// questionTemplateRegex matches the ${questionId} form a condition value
// takes when it resolves from a collected response instead of a literal.
var questionTemplateRegex = regexp.MustCompile(`^\$\{(.+)\}$`)

// Compile renders the operations into SQL statement text, joined by blank
// lines with each statement terminated by a semicolon. Operations compile
// in ascending Order (stable: ties keep their original relative order);
// within an operation, mappings and conditions compile in array order.
//
// Missing references never fail compilation: a mapping whose question no
// longer exists is skipped, and a condition template with no matching
// response resolves to NULL.
func Compile(operations []models.SQLOperation, responses []models.Response, questions []models.Question) string {
	sorted := make([]models.SQLOperation, len(operations))
	copy(sorted, operations)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})

	statements := make([]string, 0, len(sorted))
	for i := range sorted {
		stmt := compileOperation(&sorted[i], responses, questions)
		if stmt != "" {
			statements = append(statements, stmt)
		}
	}

	return strings.Join(statements, "\n\n")
}

func compileOperation(op *models.SQLOperation, responses []models.Response, questions []models.Question) string {
	switch op.OperationType {
	case models.OperationInsert:
		return compileInsert(op, responses, questions)
	case models.OperationUpdate:
		return compileUpdate(op, responses, questions)
	case models.OperationDelete:
		return compileDelete(op, responses, questions)
	default:
		return ""
	}
}

// resolveMapping looks up the question and formatted value for one column
// mapping. ok is false when the question no longer exists and the mapping
// should be skipped entirely.
func resolveMapping(m models.ColumnMapping, responses []models.Response, questions []models.Question) (value string, ok bool) {
	q := findQuestion(questions, m.QuestionID)
	if q == nil {
		return "", false
	}
	answer := models.NullValue()
	if r := models.FindResponse(responses, m.QuestionID); r != nil {
		answer = r.Value
	}
	return FormatValue(answer, q.Type), true
}

func compileInsert(op *models.SQLOperation, responses []models.Response, questions []models.Question) string {
	var cols, vals []string
	for _, m := range op.ColumnMappings {
		value, ok := resolveMapping(m, responses, questions)
		if !ok {
			continue
		}
		cols = append(cols, m.ColumnName)
		vals = append(vals, value)
	}
	if len(cols) == 0 {
		return ""
	}
	return "INSERT INTO " + op.TableName + " (" + strings.Join(cols, ", ") + ")\n" +
		"VALUES (" + strings.Join(vals, ", ") + ");"
}

func compileUpdate(op *models.SQLOperation, responses []models.Response, questions []models.Question) string {
	var sets []string
	for _, m := range op.ColumnMappings {
		value, ok := resolveMapping(m, responses, questions)
		if !ok {
			continue
		}
		sets = append(sets, m.ColumnName+" = "+value)
	}
	if len(sets) == 0 {
		return ""
	}
	stmt := "UPDATE " + op.TableName + "\nSET " + strings.Join(sets, ", ")
	if where := buildWhereClause(op.Conditions, responses, questions); where != "" {
		stmt += "\n" + where
	}
	return stmt + ";"
}

func compileDelete(op *models.SQLOperation, responses []models.Response, questions []models.Question) string {
	stmt := "DELETE FROM " + op.TableName
	if where := buildWhereClause(op.Conditions, responses, questions); where != "" {
		stmt += "\n" + where
	}
	return stmt + ";"
}

// buildWhereClause renders the conditions joined with AND. OR is
// deliberately unsupported here; execution-level OR logic belongs to the
// flow's RunCondition, which gates whether an operation compiles at all.
func buildWhereClause(conditions []models.SQLCondition, responses []models.Response, questions []models.Question) string {
	if len(conditions) == 0 {
		return ""
	}
	parts := make([]string, 0, len(conditions))
	for _, cond := range conditions {
		value := resolveConditionValue(cond, responses, questions)
		switch cond.Operator {
		case models.SQLOpNotEquals:
			parts = append(parts, cond.ColumnName+" != "+value)
		case models.SQLOpGreaterThan:
			parts = append(parts, cond.ColumnName+" > "+value)
		case models.SQLOpLessThan:
			parts = append(parts, cond.ColumnName+" < "+value)
		case models.SQLOpLike:
			parts = append(parts, cond.ColumnName+" LIKE "+value)
		case models.SQLOpIn:
			parts = append(parts, cond.ColumnName+" IN ("+value+")")
		default:
			// equals, and anything unrecognized, falls back to =
			parts = append(parts, cond.ColumnName+" = "+value)
		}
	}
	return "WHERE " + strings.Join(parts, " AND ")
}

// resolveConditionValue turns a condition's value into a SQL literal.
// Static values are escaped and quoted. Question templates resolve through
// the referenced question's declared type so a yes-no answer renders as
// 1/0, a number stays unquoted, and so on; an unresolvable template
// renders as NULL.
func resolveConditionValue(cond models.SQLCondition, responses []models.Response, questions []models.Question) string {
	if cond.ValueType != models.ConditionValueQuestion {
		return formatStatic(cond.Value)
	}

	m := questionTemplateRegex.FindStringSubmatch(cond.Value)
	if m == nil {
		return formatStatic(cond.Value)
	}
	questionID := m[1]

	q := findQuestion(questions, questionID)
	r := models.FindResponse(responses, questionID)
	if q == nil || r == nil {
		return "NULL"
	}
	return FormatValue(r.Value, q.Type)
}

// CompileLegacyInsert is the single-table fallback for flows authored
// before declarative operations existed: one INSERT built directly from the
// flow's table and questions. Questions with no response are skipped unless
// required, in which case they emit NULL.
func CompileLegacyInsert(flow *models.Flow, responses []models.Response) string {
	var cols, vals []string
	for i := range flow.Questions {
		q := &flow.Questions[i]
		r := models.FindResponse(responses, q.ID)
		if r == nil && !q.Required {
			continue
		}
		answer := models.NullValue()
		if r != nil {
			answer = r.Value
		}
		cols = append(cols, q.SQLColumnName)
		vals = append(vals, FormatValue(answer, q.Type))
	}
	if len(cols) == 0 {
		return ""
	}
	return "INSERT INTO " + flow.TableName + " (" + strings.Join(cols, ", ") + ")\n" +
		"VALUES (" + strings.Join(vals, ", ") + ");"
}

// ShouldRun evaluates a flow-level run condition against the collected
// responses. A nil condition or one with no predicates always runs. String
// comparisons are case-insensitive; numeric comparisons that fail to parse
// count as unsatisfied.
func ShouldRun(rc *models.RunCondition, responses []models.Response) bool {
	if rc == nil || len(rc.Predicates) == 0 {
		return true
	}
	for _, pred := range rc.Predicates {
		ok := evaluatePredicate(pred, responses)
		if rc.Logic == models.RunLogicOr {
			if ok {
				return true
			}
		} else if !ok {
			return false
		}
	}
	return rc.Logic != models.RunLogicOr
}

func evaluatePredicate(pred models.SQLCondition, responses []models.Response) bool {
	r := models.FindResponse(responses, pred.ColumnName)
	if r == nil {
		return false
	}
	actual := r.Value.Raw()

	switch pred.Operator {
	case models.SQLOpEquals:
		return strings.EqualFold(actual, pred.Value)
	case models.SQLOpNotEquals:
		return !strings.EqualFold(actual, pred.Value)
	case models.SQLOpLike:
		return strings.Contains(strings.ToLower(actual), strings.ToLower(pred.Value))
	case models.SQLOpGreaterThan:
		a, aok := parseNumber(actual)
		b, bok := parseNumber(pred.Value)
		return aok && bok && a > b
	case models.SQLOpLessThan:
		a, aok := parseNumber(actual)
		b, bok := parseNumber(pred.Value)
		return aok && bok && a < b
	default:
		return false
	}
}

func findQuestion(questions []models.Question, id string) *models.Question {
	for i := range questions {
		if questions[i].ID == id {
			return &questions[i]
		}
	}
	return nil
}
