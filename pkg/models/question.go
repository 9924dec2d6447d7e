package models

import "fmt"

// ============================================================================
// Question Types
// ============================================================================

// QuestionType represents the input type of a form question.
type QuestionType string

const (
	QuestionTypeText         QuestionType = "text"
	QuestionTypeEmail        QuestionType = "email"
	QuestionTypePhone        QuestionType = "phone"
	QuestionTypeNumber       QuestionType = "number"
	QuestionTypeDate         QuestionType = "date"
	QuestionTypeSingleSelect QuestionType = "single-select"
	QuestionTypeMultiSelect  QuestionType = "multi-select"
	QuestionTypeYesNo        QuestionType = "yes-no"
)

// ValidQuestionTypes contains all valid question type values.
var ValidQuestionTypes = []QuestionType{
	QuestionTypeText,
	QuestionTypeEmail,
	QuestionTypePhone,
	QuestionTypeNumber,
	QuestionTypeDate,
	QuestionTypeSingleSelect,
	QuestionTypeMultiSelect,
	QuestionTypeYesNo,
}

// IsValidQuestionType checks if the given type is valid.
func IsValidQuestionType(t QuestionType) bool {
	for _, v := range ValidQuestionTypes {
		if v == t {
			return true
		}
	}
	return false
}

// IsSelect reports whether the type carries an options list.
func (t QuestionType) IsSelect() bool {
	return t == QuestionTypeSingleSelect || t == QuestionTypeMultiSelect
}

// ============================================================================
// Conditional Logic
// ============================================================================

// ConditionalOperator compares an earlier response against a literal value.
type ConditionalOperator string

const (
	ConditionalEquals      ConditionalOperator = "equals"
	ConditionalNotEquals   ConditionalOperator = "not-equals"
	ConditionalContains    ConditionalOperator = "contains"
	ConditionalGreaterThan ConditionalOperator = "greater-than"
	ConditionalLessThan    ConditionalOperator = "less-than"
)

// ValidConditionalOperators contains all valid conditional operator values.
var ValidConditionalOperators = []ConditionalOperator{
	ConditionalEquals,
	ConditionalNotEquals,
	ConditionalContains,
	ConditionalGreaterThan,
	ConditionalLessThan,
}

// IsValidConditionalOperator checks if the given operator is valid.
func IsValidConditionalOperator(op ConditionalOperator) bool {
	for _, v := range ValidConditionalOperators {
		if v == op {
			return true
		}
	}
	return false
}

// ConditionalLogic gates a question's visibility on an earlier response.
// Either Operator+Value or Expression is set. Expression is a boolean
// expression evaluated against a map of prior responses keyed by question id;
// when present it takes precedence over the operator form.
type ConditionalLogic struct {
	QuestionID string              `json:"questionId"`
	Operator   ConditionalOperator `json:"operator,omitempty"`
	Value      string              `json:"value,omitempty"`
	Expression string              `json:"expression,omitempty"`
}

// Validate rejects conditional logic with an unknown operator at authoring
// time. The runtime evaluator stays permissive for legacy data, so this is
// the only place unknown operators are refused.
func (c *ConditionalLogic) Validate() error {
	if c.QuestionID == "" {
		return fmt.Errorf("conditional logic must reference a question id")
	}
	if c.Expression != "" {
		return nil
	}
	if !IsValidConditionalOperator(c.Operator) {
		return fmt.Errorf("unknown conditional operator %q", c.Operator)
	}
	return nil
}

// ============================================================================
// Validation Rules
// ============================================================================

// ValidationRuleType identifies the kind of constraint a rule applies.
type ValidationRuleType string

const (
	ValidationRuleRequired  ValidationRuleType = "required"
	ValidationRuleMinLength ValidationRuleType = "min-length"
	ValidationRuleMaxLength ValidationRuleType = "max-length"
	ValidationRulePattern   ValidationRuleType = "pattern"
	ValidationRuleMin       ValidationRuleType = "min"
	ValidationRuleMax       ValidationRuleType = "max"
)

// ValidationRule is a single constraint on a question's answer. Value holds
// the rule parameter in string form (length, bound, or pattern); Message
// overrides the default violation text when set.
type ValidationRule struct {
	Type    ValidationRuleType `json:"type"`
	Value   string             `json:"value,omitempty"`
	Message string             `json:"message,omitempty"`
}

// ============================================================================
// Question
// ============================================================================

// Question is a single form question mapped to a table column.
type Question struct {
	ID               string            `json:"id"`
	Type             QuestionType      `json:"type"`
	Label            string            `json:"label"`
	Placeholder      string            `json:"placeholder,omitempty"`
	HelpText         string            `json:"helpText,omitempty"`
	Options          []string          `json:"options,omitempty"`
	Required         bool              `json:"required"`
	ValidationRules  []ValidationRule  `json:"validationRules,omitempty"`
	SQLColumnName    string            `json:"sqlColumnName"`
	TableName        string            `json:"tableName,omitempty"`
	ConditionalLogic *ConditionalLogic `json:"conditionalLogic,omitempty"`
	Order            int               `json:"order"`
}

// Validate checks a finalized question definition.
func (q *Question) Validate() error {
	if q.ID == "" {
		return fmt.Errorf("question is missing an id")
	}
	if !IsValidQuestionType(q.Type) {
		return fmt.Errorf("question %s: unknown type %q", q.ID, q.Type)
	}
	if q.Type.IsSelect() && len(q.Options) == 0 {
		return fmt.Errorf("question %s: %s questions need at least one option", q.ID, q.Type)
	}
	if q.ConditionalLogic != nil {
		if err := q.ConditionalLogic.Validate(); err != nil {
			return fmt.Errorf("question %s: %w", q.ID, err)
		}
	}
	return nil
}
