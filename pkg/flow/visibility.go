// Package flow evaluates conditional question visibility, validates
// answers against their rules, and walks a submission session through a
// flow one visible question at a time.
package flow

import (
	"strconv"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/formflow-inc/formflow-engine/pkg/models"
)

// IsVisible decides whether a question is shown given the responses
// collected so far. A question with no conditional logic is always
// visible. If the gating question has not been answered yet, the question
// is hidden. String comparisons are case-insensitive; numeric comparisons
// that fail to parse count as unsatisfied rather than erroring.
//
// An unknown operator defaults to visible. Authoring-time validation
// rejects unknown operators, so this path only matters for legacy data.
func IsVisible(q *models.Question, responses []models.Response) bool {
	logic := q.ConditionalLogic
	if logic == nil {
		return true
	}

	if logic.Expression != "" {
		return evaluateExpression(logic.Expression, responseEnv(responses))
	}

	r := models.FindResponse(responses, logic.QuestionID)
	if r == nil {
		return false
	}
	actual := r.Value.Raw()

	switch logic.Operator {
	case models.ConditionalEquals:
		return strings.EqualFold(actual, logic.Value)
	case models.ConditionalNotEquals:
		return !strings.EqualFold(actual, logic.Value)
	case models.ConditionalContains:
		return strings.Contains(strings.ToLower(actual), strings.ToLower(logic.Value))
	case models.ConditionalGreaterThan:
		a, aok := parseFloat(actual)
		b, bok := parseFloat(logic.Value)
		return aok && bok && a > b
	case models.ConditionalLessThan:
		a, aok := parseFloat(actual)
		b, bok := parseFloat(logic.Value)
		return aok && bok && a < b
	default:
		return true
	}
}

// NextQuestion scans forward from fromIndex and returns the index of the
// first visible question. ok is false when no further question is visible,
// which signals flow completion.
func NextQuestion(questions []models.Question, fromIndex int, responses []models.Response) (int, bool) {
	if fromIndex < 0 {
		fromIndex = 0
	}
	for i := fromIndex; i < len(questions); i++ {
		if IsVisible(&questions[i], responses) {
			return i, true
		}
	}
	return 0, false
}

// VisibleCount counts currently visible questions. Recompute it whenever
// the responses grow: a later answer can reveal or hide questions that
// have not been shown yet.
func VisibleCount(questions []models.Question, responses []models.Response) int {
	count := 0
	for i := range questions {
		if IsVisible(&questions[i], responses) {
			count++
		}
	}
	return count
}

// responseEnv builds the expression environment: prior responses keyed by
// question id, as their native values.
func responseEnv(responses []models.Response) map[string]any {
	env := make(map[string]any, len(responses))
	for _, r := range responses {
		env[r.QuestionID] = r.Value.Native()
	}
	return env
}

// evaluateExpression compiles and runs a boolean visibility expression.
// Any compile or runtime error, or a non-boolean result, means not
// visible: a broken expression must not leak a gated question.
func evaluateExpression(expression string, env map[string]any) bool {
	program, err := expr.Compile(expression, expr.Env(env), expr.AllowUndefinedVariables())
	if err != nil {
		return false
	}
	output, err := expr.Run(program, env)
	if err != nil {
		return false
	}
	result, ok := output.(bool)
	return ok && result
}

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f, err == nil
}
