package models

// ============================================================================
// Operation Types
// ============================================================================

// OperationType is the kind of mutation an operation performs.
type OperationType string

const (
	OperationInsert OperationType = "INSERT"
	OperationUpdate OperationType = "UPDATE"
	OperationDelete OperationType = "DELETE"
)

// ValidOperationTypes contains all valid operation type values.
var ValidOperationTypes = []OperationType{
	OperationInsert,
	OperationUpdate,
	OperationDelete,
}

// IsValidOperationType checks if the given operation type is valid.
func IsValidOperationType(t OperationType) bool {
	for _, v := range ValidOperationTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ============================================================================
// WHERE Conditions
// ============================================================================

// SQLOperator is a comparison operator in a WHERE condition.
type SQLOperator string

const (
	SQLOpEquals      SQLOperator = "equals"
	SQLOpNotEquals   SQLOperator = "not-equals"
	SQLOpGreaterThan SQLOperator = "greater-than"
	SQLOpLessThan    SQLOperator = "less-than"
	SQLOpLike        SQLOperator = "like"
	SQLOpIn          SQLOperator = "in"
)

// ConditionValueType says whether a condition value is a literal or a
// ${questionId} template resolved from the collected responses.
type ConditionValueType string

const (
	ConditionValueStatic   ConditionValueType = "static"
	ConditionValueQuestion ConditionValueType = "question"
)

// SQLCondition is one predicate in an operation's WHERE clause. When
// ValueType is "question", Value holds the literal template "${questionId}".
type SQLCondition struct {
	ColumnName string             `json:"columnName"`
	Operator   SQLOperator        `json:"operator"`
	Value      string             `json:"value"`
	ValueType  ConditionValueType `json:"valueType"`
}

// ============================================================================
// Operations
// ============================================================================

// ColumnMapping associates one question's answer with one target column.
type ColumnMapping struct {
	QuestionID string `json:"questionId"`
	ColumnName string `json:"columnName"`
}

// SQLOperation is a declarative INSERT/UPDATE/DELETE definition compiled
// against collected responses. Operations compile in ascending Order.
type SQLOperation struct {
	ID             string          `json:"id"`
	OperationType  OperationType   `json:"operationType"`
	TableName      string          `json:"tableName"`
	Label          string          `json:"label,omitempty"`
	ColumnMappings []ColumnMapping `json:"columnMappings"`
	Conditions     []SQLCondition  `json:"conditions"`
	Order          int             `json:"order"`
}

// IsMutationWithoutConditions reports whether the operation updates or
// deletes with an empty WHERE clause. The guardrail treats this as a
// critical warning rather than a hard rejection.
func (op *SQLOperation) IsMutationWithoutConditions() bool {
	if op.OperationType != OperationUpdate && op.OperationType != OperationDelete {
		return false
	}
	return len(op.Conditions) == 0
}
