package flow

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/formflow-inc/formflow-engine/pkg/models"
)

// Violation is one failed validation rule for an answer.
type Violation struct {
	Rule    models.ValidationRuleType `json:"rule"`
	Message string                    `json:"message"`
}

// CheckRules applies every validation rule of the question to the answer
// and returns all violations. Rules are independent; an answer must
// satisfy all of them. A required question also implicitly rejects null
// and empty answers.
func CheckRules(q *models.Question, value models.AnswerValue) []Violation {
	var violations []Violation

	if q.Required && isEmpty(value) {
		violations = append(violations, Violation{
			Rule:    models.ValidationRuleRequired,
			Message: fmt.Sprintf("%s is required", q.Label),
		})
	}

	raw := value.Raw()
	for _, rule := range q.ValidationRules {
		switch rule.Type {
		case models.ValidationRuleRequired:
			if isEmpty(value) {
				violations = append(violations, violation(rule, fmt.Sprintf("%s is required", q.Label)))
			}
		case models.ValidationRuleMinLength:
			if n, err := strconv.Atoi(rule.Value); err == nil && len(raw) < n {
				violations = append(violations, violation(rule, fmt.Sprintf("%s must be at least %d characters", q.Label, n)))
			}
		case models.ValidationRuleMaxLength:
			if n, err := strconv.Atoi(rule.Value); err == nil && len(raw) > n {
				violations = append(violations, violation(rule, fmt.Sprintf("%s must be at most %d characters", q.Label, n)))
			}
		case models.ValidationRulePattern:
			re, err := regexp.Compile(rule.Value)
			if err == nil && !isEmpty(value) && !re.MatchString(raw) {
				violations = append(violations, violation(rule, fmt.Sprintf("%s has an invalid format", q.Label)))
			}
		case models.ValidationRuleMin:
			bound, berr := strconv.ParseFloat(rule.Value, 64)
			actual, aok := parseFloat(raw)
			if berr == nil && aok && actual < bound {
				violations = append(violations, violation(rule, fmt.Sprintf("%s must be at least %v", q.Label, bound)))
			}
		case models.ValidationRuleMax:
			bound, berr := strconv.ParseFloat(rule.Value, 64)
			actual, aok := parseFloat(raw)
			if berr == nil && aok && actual > bound {
				violations = append(violations, violation(rule, fmt.Sprintf("%s must be at most %v", q.Label, bound)))
			}
		}
	}

	return violations
}

func violation(rule models.ValidationRule, fallback string) Violation {
	msg := rule.Message
	if msg == "" {
		msg = fallback
	}
	return Violation{Rule: rule.Type, Message: msg}
}

func isEmpty(value models.AnswerValue) bool {
	switch value.Kind {
	case models.AnswerNull:
		return true
	case models.AnswerString:
		return value.Str == ""
	case models.AnswerList:
		return len(value.List) == 0
	default:
		return false
	}
}
