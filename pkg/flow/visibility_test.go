package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formflow-inc/formflow-engine/pkg/models"
)

func gated(id, on string, op models.ConditionalOperator, value string) models.Question {
	return models.Question{
		ID:   id,
		Type: models.QuestionTypeText,
		ConditionalLogic: &models.ConditionalLogic{
			QuestionID: on,
			Operator:   op,
			Value:      value,
		},
	}
}

func TestIsVisible_NoLogicAlwaysVisible(t *testing.T) {
	q := models.Question{ID: "q1", Type: models.QuestionTypeText}
	assert.True(t, IsVisible(&q, nil))
}

func TestIsVisible_GatingQuestionUnanswered(t *testing.T) {
	q := gated("q2", "q1", models.ConditionalEquals, "yes")
	assert.False(t, IsVisible(&q, nil), "question gated on an unanswered question must stay hidden")
}

func TestIsVisible_Equals(t *testing.T) {
	q := gated("q2", "q1", models.ConditionalEquals, "yes")

	responses := []models.Response{{QuestionID: "q1", Value: models.StringValue("yes")}}
	assert.True(t, IsVisible(&q, responses))

	responses = []models.Response{{QuestionID: "q1", Value: models.StringValue("YES")}}
	assert.True(t, IsVisible(&q, responses), "string comparison is case-insensitive")

	responses = []models.Response{{QuestionID: "q1", Value: models.StringValue("no")}}
	assert.False(t, IsVisible(&q, responses))
}

func TestIsVisible_NotEquals(t *testing.T) {
	q := gated("q2", "q1", models.ConditionalNotEquals, "no")

	assert.True(t, IsVisible(&q, []models.Response{{QuestionID: "q1", Value: models.StringValue("yes")}}))
	assert.False(t, IsVisible(&q, []models.Response{{QuestionID: "q1", Value: models.StringValue("No")}}))
}

func TestIsVisible_Contains(t *testing.T) {
	q := gated("q2", "q1", models.ConditionalContains, "cloud")

	assert.True(t, IsVisible(&q, []models.Response{{QuestionID: "q1", Value: models.StringValue("Cloud Hosting")}}))
	assert.False(t, IsVisible(&q, []models.Response{{QuestionID: "q1", Value: models.StringValue("on-prem")}}))
}

func TestIsVisible_NumericComparisons(t *testing.T) {
	gt := gated("q2", "q1", models.ConditionalGreaterThan, "10")
	lt := gated("q2", "q1", models.ConditionalLessThan, "10")

	big := []models.Response{{QuestionID: "q1", Value: models.NumberValue(25)}}
	small := []models.Response{{QuestionID: "q1", Value: models.NumberValue(3)}}

	assert.True(t, IsVisible(&gt, big))
	assert.False(t, IsVisible(&gt, small))
	assert.True(t, IsVisible(&lt, small))
	assert.False(t, IsVisible(&lt, big))

	// A non-numeric answer never satisfies a numeric comparison.
	words := []models.Response{{QuestionID: "q1", Value: models.StringValue("many")}}
	assert.False(t, IsVisible(&gt, words))
	assert.False(t, IsVisible(&lt, words))
}

func TestIsVisible_UnknownOperatorDefaultsVisible(t *testing.T) {
	q := gated("q2", "q1", models.ConditionalOperator("fuzzy-match"), "x")
	responses := []models.Response{{QuestionID: "q1", Value: models.StringValue("anything")}}
	assert.True(t, IsVisible(&q, responses))
}

func TestIsVisible_Expression(t *testing.T) {
	q := models.Question{
		ID:   "q3",
		Type: models.QuestionTypeText,
		ConditionalLogic: &models.ConditionalLogic{
			QuestionID: "q1",
			Expression: `q_plan == "pro" and q_seats > 10`,
		},
	}

	responses := []models.Response{
		{QuestionID: "q_plan", Value: models.StringValue("pro")},
		{QuestionID: "q_seats", Value: models.NumberValue(25)},
	}
	assert.True(t, IsVisible(&q, responses))

	responses[1].Value = models.NumberValue(2)
	assert.False(t, IsVisible(&q, responses))
}

func TestIsVisible_BrokenExpressionHides(t *testing.T) {
	q := models.Question{
		ID:   "q3",
		Type: models.QuestionTypeText,
		ConditionalLogic: &models.ConditionalLogic{
			QuestionID: "q1",
			Expression: `1 + `,
		},
	}
	assert.False(t, IsVisible(&q, nil), "a broken expression must not leak a gated question")

	q.ConditionalLogic.Expression = `1 + 1`
	assert.False(t, IsVisible(&q, nil), "a non-boolean expression result hides the question")
}

func TestNextQuestion(t *testing.T) {
	questions := []models.Question{
		{ID: "q1", Type: models.QuestionTypeText},
		gated("q2", "q1", models.ConditionalEquals, "yes"),
		{ID: "q3", Type: models.QuestionTypeText},
	}

	idx, ok := NextQuestion(questions, 0, nil)
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	// q1 answered "no": q2 stays hidden, the scan lands on q3.
	responses := []models.Response{{QuestionID: "q1", Value: models.StringValue("no")}}
	idx, ok = NextQuestion(questions, 1, responses)
	require.True(t, ok)
	assert.Equal(t, 2, idx)

	// q1 answered "yes": q2 becomes visible.
	responses = []models.Response{{QuestionID: "q1", Value: models.StringValue("yes")}}
	idx, ok = NextQuestion(questions, 1, responses)
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = NextQuestion(questions, 3, responses)
	assert.False(t, ok, "scanning past the end signals completion")
}

func TestVisibleCount(t *testing.T) {
	questions := []models.Question{
		{ID: "q1", Type: models.QuestionTypeText},
		gated("q2", "q1", models.ConditionalEquals, "yes"),
		{ID: "q3", Type: models.QuestionTypeText},
	}

	assert.Equal(t, 2, VisibleCount(questions, nil))

	responses := []models.Response{{QuestionID: "q1", Value: models.StringValue("yes")}}
	assert.Equal(t, 3, VisibleCount(questions, responses),
		"a later answer can reveal an earlier-indexed question")
}
