package sql

import (
	"fmt"
	"regexp"

	libinjection "github.com/corazawaf/libinjection-go"

	"github.com/formflow-inc/formflow-engine/pkg/models"
)

// dangerousPatterns are the destructive shapes the text scanner looks for.
// The scan is advisory: a match produces a warning for a human to
// acknowledge, not a rejection.
var dangerousPatterns = []struct {
	pattern *regexp.Regexp
	warning string
}{
	{regexp.MustCompile(`(?i)\bDROP\s+(TABLE|DATABASE|INDEX|VIEW|SCHEMA)\b`), "DROP statement detected - this will permanently remove database objects"},
	{regexp.MustCompile(`(?i)\bTRUNCATE\s+TABLE\b`), "TRUNCATE statement detected - this will remove all rows from a table"},
	{regexp.MustCompile(`(?i)\bALTER\s+TABLE\b`), "ALTER TABLE detected - this will change table structure"},
	{regexp.MustCompile(`(?i)\bGRANT\b`), "GRANT statement detected - this will change access permissions"},
	{regexp.MustCompile(`(?i)\bREVOKE\b`), "REVOKE statement detected - this will change access permissions"},
	{regexp.MustCompile(`(?i)\bDELETE\s+FROM\b`), "DELETE statement detected - verify the WHERE clause before running"},
	{regexp.MustCompile(`(?i)\bUPDATE\s+\w+\s+SET\b`), "UPDATE statement detected - verify the WHERE clause before running"},
}

// DangerScan is the result of scanning SQL text for destructive patterns.
type DangerScan struct {
	Dangerous bool     `json:"dangerous"`
	Warnings  []string `json:"warnings"`
}

// ScanDangerousSQL regex-scans arbitrary SQL text for destructive
// statements, collecting one warning per matched pattern. Dangerous is true
// iff any warning fired.
func ScanDangerousSQL(sqlText string) DangerScan {
	var scan DangerScan
	for _, p := range dangerousPatterns {
		if p.pattern.MatchString(sqlText) {
			scan.Warnings = append(scan.Warnings, p.warning)
		}
	}
	scan.Dangerous = len(scan.Warnings) > 0
	return scan
}

// OperationAudit is the result of statically checking structured operations.
// Safe is true iff no critical warnings fired; non-critical warnings are
// informational.
type OperationAudit struct {
	Safe             bool     `json:"safe"`
	CriticalWarnings []string `json:"criticalWarnings"`
	Warnings         []string `json:"warnings"`
}

// ValidateOperations checks a list of operations for WHERE-less mutations.
// An UPDATE or DELETE with no conditions is a critical warning; a DELETE
// with conditions still earns an informational warning so the operator
// looks at it twice.
func ValidateOperations(operations []models.SQLOperation) OperationAudit {
	audit := OperationAudit{}
	for i := range operations {
		op := &operations[i]
		switch op.OperationType {
		case models.OperationDelete:
			if len(op.Conditions) == 0 {
				audit.CriticalWarnings = append(audit.CriticalWarnings,
					fmt.Sprintf("DELETE on %s has no WHERE conditions - this will delete ALL rows", op.TableName))
			} else {
				audit.Warnings = append(audit.Warnings,
					fmt.Sprintf("DELETE on %s - confirm the WHERE conditions target the intended rows", op.TableName))
			}
		case models.OperationUpdate:
			if len(op.Conditions) == 0 {
				audit.CriticalWarnings = append(audit.CriticalWarnings,
					fmt.Sprintf("UPDATE on %s has no WHERE conditions - this will update ALL rows", op.TableName))
			}
		}
	}
	audit.Safe = len(audit.CriticalWarnings) == 0
	return audit
}

// ValidateOperationIdentifiers rejects an operation whose table or column
// names fail identifier validation. Unlike the advisory checks above, this
// one is applied unconditionally before an operation reaches the compiler.
func ValidateOperationIdentifiers(op *models.SQLOperation) error {
	if err := ValidateIdentifier(op.TableName); err != nil {
		return fmt.Errorf("operation %s: table name: %w", op.ID, err)
	}
	for _, m := range op.ColumnMappings {
		if err := ValidateIdentifier(m.ColumnName); err != nil {
			return fmt.Errorf("operation %s: column mapping: %w", op.ID, err)
		}
	}
	for _, c := range op.Conditions {
		if err := ValidateIdentifier(c.ColumnName); err != nil {
			return fmt.Errorf("operation %s: condition column: %w", op.ID, err)
		}
	}
	return nil
}

// InjectionFinding reports a response value that matched a SQL injection
// fingerprint.
type InjectionFinding struct {
	QuestionID  string `json:"questionId"`
	Fingerprint string `json:"fingerprint"`
	Value       string `json:"value"`
}

// CheckAnswersForInjection runs libinjection over every string-valued
// response before it is formatted into a literal. Non-string answers cannot
// carry injection payloads and are skipped. Like the other guardrails this
// is advisory; the value formatter's escaping remains the hard boundary.
func CheckAnswersForInjection(responses []models.Response) []InjectionFinding {
	var findings []InjectionFinding
	for _, r := range responses {
		if r.Value.Kind != models.AnswerString {
			continue
		}
		if isSQLi, fingerprint := libinjection.IsSQLi(r.Value.Str); isSQLi {
			findings = append(findings, InjectionFinding{
				QuestionID:  r.QuestionID,
				Fingerprint: string(fingerprint),
				Value:       r.Value.Str,
			})
		}
	}
	return findings
}
