package models

import (
	"time"

	"github.com/google/uuid"
)

// RunLogic joins run-condition predicates with AND or OR.
type RunLogic string

const (
	RunLogicAnd RunLogic = "and"
	RunLogicOr  RunLogic = "or"
)

// RunCondition gates whether a flow's operations execute at all. It sits
// one layer above the WHERE builder: predicates here are evaluated against
// the collected responses, not rendered into SQL text. A predicate's
// ColumnName holds the id of the question whose response it tests.
type RunCondition struct {
	Logic      RunLogic       `json:"logic"`
	Predicates []SQLCondition `json:"predicates"`
}

// Flow is an authored set of questions plus SQL operations defining one
// onboarding form. Questions and operations are read-only during a
// submission session.
type Flow struct {
	ID           uuid.UUID      `json:"id"`
	Name         string         `json:"name"`
	TableName    string         `json:"tableName"`
	Questions    []Question     `json:"questions"`
	Operations   []SQLOperation `json:"operations,omitempty"`
	RunCondition *RunCondition  `json:"runCondition,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// Submission is one end-user walk through a flow. Append-only once
// Completed is set.
type Submission struct {
	ID          uuid.UUID  `json:"id"`
	FlowID      uuid.UUID  `json:"flow_id"`
	Responses   []Response `json:"responses"`
	Completed   bool       `json:"completed"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// ============================================================================
// DDL Parser Output
// ============================================================================

// ParsedColumn is the raw column metadata extracted from a CREATE TABLE
// clause. Primary key columns are kept here for schema display even though
// they generate no question.
type ParsedColumn struct {
	Name         string   `json:"name"`
	RawType      string   `json:"rawType"`
	Nullable     bool     `json:"nullable"`
	IsPrimaryKey bool     `json:"isPrimaryKey"`
	CheckValues  []string `json:"checkValues,omitempty"`
}

// ParsedTable is the transient result of parsing one CREATE TABLE
// statement: inferred questions plus a suggested INSERT operation covering
// them.
type ParsedTable struct {
	TableName          string         `json:"tableName"`
	Columns            []ParsedColumn `json:"columns"`
	Questions          []Question     `json:"questions"`
	SuggestedOperation SQLOperation   `json:"suggestedOperation"`
}
