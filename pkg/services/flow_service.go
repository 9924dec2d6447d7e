// Package services orchestrates the form-to-SQL pipeline: DDL import,
// submission sessions, and guarded SQL preview.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/formflow-inc/formflow-engine/pkg/apperrors"
	"github.com/formflow-inc/formflow-engine/pkg/config"
	"github.com/formflow-inc/formflow-engine/pkg/ddl"
	"github.com/formflow-inc/formflow-engine/pkg/flow"
	"github.com/formflow-inc/formflow-engine/pkg/logging"
	"github.com/formflow-inc/formflow-engine/pkg/models"
	"github.com/formflow-inc/formflow-engine/pkg/schema"
	"github.com/formflow-inc/formflow-engine/pkg/sql"
)

// Preview is the compiled SQL for a flow plus every guardrail finding the
// caller must surface before anything is executed.
type Preview struct {
	SQL               string                 `json:"sql"`
	Skipped           []string               `json:"skipped,omitempty"` // operation ids gated out by the run condition
	DangerScan        sql.DangerScan         `json:"dangerScan"`
	OperationAudit    sql.OperationAudit     `json:"operationAudit"`
	InjectionFindings []sql.InjectionFinding `json:"injectionFindings,omitempty"`
}

// FlowService builds flows from DDL or live schema and compiles guarded
// SQL previews from collected responses.
type FlowService interface {
	// ImportDDL parses CREATE TABLE text into one flow per table.
	ImportDDL(ddlText string) ([]*models.Flow, error)

	// ImportTable builds a flow from a live table via the schema provider.
	ImportTable(ctx context.Context, provider schema.Provider, schemaName, tableName string) (*models.Flow, error)

	// StartSession begins a submission session for a flow.
	StartSession(f *models.Flow) *flow.Session

	// Preview compiles the flow's operations against the responses and
	// attaches guardrail findings. With guardrail blocking configured, a
	// critical finding returns apperrors.ErrUnsafeOperation alongside the
	// preview so the caller can still show what was refused.
	Preview(f *models.Flow, responses []models.Response) (*Preview, error)

	// CheckStatement normalizes operator-pasted SQL and scans it for
	// destructive patterns.
	CheckStatement(sqlText string) (string, sql.DangerScan, error)
}

type flowService struct {
	cfg    config.GuardrailConfig
	logger *zap.Logger
}

// NewFlowService creates a FlowService. If logger is nil, a no-op logger
// is used.
func NewFlowService(cfg config.GuardrailConfig, logger *zap.Logger) FlowService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &flowService{cfg: cfg, logger: logger}
}

func (s *flowService) ImportDDL(ddlText string) ([]*models.Flow, error) {
	parsed := ddl.Parse(ddlText)
	if len(parsed) == 0 {
		return nil, fmt.Errorf("no CREATE TABLE statements found: %w", apperrors.ErrNotFound)
	}

	flows := make([]*models.Flow, 0, len(parsed))
	for _, table := range parsed {
		f := s.assembleFlow(table.TableName, table.Questions, table.SuggestedOperation)
		flows = append(flows, f)

		s.logger.Info("imported table from DDL",
			zap.String("table", table.TableName),
			zap.Int("questions", len(table.Questions)))
	}
	return flows, nil
}

func (s *flowService) ImportTable(ctx context.Context, provider schema.Provider, schemaName, tableName string) (*models.Flow, error) {
	columns, err := provider.Columns(ctx, schemaName, tableName)
	if err != nil {
		s.logger.Warn("schema introspection failed",
			zap.String("table", tableName),
			zap.String("error", logging.SanitizeError(err)))
		return nil, fmt.Errorf("introspect %s.%s: %w", schemaName, tableName, err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s.%s has no columns: %w", schemaName, tableName, apperrors.ErrNotFound)
	}

	var questions []models.Question
	var mappings []models.ColumnMapping
	order := 0
	for _, col := range columns {
		if col.IsPrimaryKey {
			continue
		}
		q := models.Question{
			ID:            "q_" + col.Name,
			Type:          ddl.InferType(col.DataType, nil),
			Label:         ddl.Label(col.Name),
			Required:      !col.IsNullable,
			SQLColumnName: col.Name,
			TableName:     tableName,
			Order:         order,
		}
		order++
		questions = append(questions, q)
		mappings = append(mappings, models.ColumnMapping{QuestionID: q.ID, ColumnName: col.Name})
	}

	op := models.SQLOperation{
		ID:             uuid.NewString(),
		OperationType:  models.OperationInsert,
		TableName:      tableName,
		Label:          "Insert into " + tableName,
		ColumnMappings: mappings,
		Conditions:     []models.SQLCondition{},
		Order:          0,
	}

	s.logger.Info("imported table from live schema",
		zap.String("table", tableName),
		zap.Int("questions", len(questions)))

	return s.assembleFlow(tableName, questions, op), nil
}

func (s *flowService) assembleFlow(tableName string, questions []models.Question, op models.SQLOperation) *models.Flow {
	now := time.Now()
	return &models.Flow{
		ID:         uuid.New(),
		Name:       ddl.FlowName(tableName),
		TableName:  tableName,
		Questions:  questions,
		Operations: []models.SQLOperation{op},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (s *flowService) StartSession(f *models.Flow) *flow.Session {
	return flow.NewSession(f)
}

func (s *flowService) Preview(f *models.Flow, responses []models.Response) (*Preview, error) {
	// Identifier validation is the one unconditional gate: invalid names
	// never reach the compiler, operator override or not.
	for i := range f.Operations {
		if err := sql.ValidateOperationIdentifiers(&f.Operations[i]); err != nil {
			return nil, err
		}
	}

	var compiled string
	var skipped []string
	if len(f.Operations) == 0 {
		compiled = sql.CompileLegacyInsert(f, responses)
	} else if sql.ShouldRun(f.RunCondition, responses) {
		compiled = sql.Compile(f.Operations, responses, f.Questions)
	} else {
		for _, op := range f.Operations {
			skipped = append(skipped, op.ID)
		}
	}

	preview := &Preview{
		SQL:               compiled,
		Skipped:           skipped,
		DangerScan:        sql.ScanDangerousSQL(compiled),
		OperationAudit:    sql.ValidateOperations(f.Operations),
		InjectionFindings: sql.CheckAnswersForInjection(responses),
	}

	s.logger.Info("compiled flow preview",
		zap.String("flow", f.Name),
		zap.String("sql", logging.SanitizeSQL(compiled)),
		zap.Bool("dangerous", preview.DangerScan.Dangerous),
		zap.Bool("safe", preview.OperationAudit.Safe),
		zap.Int("injection_findings", len(preview.InjectionFindings)))

	if s.cfg.BlockOnCritical && !preview.OperationAudit.Safe {
		return preview, fmt.Errorf("critical guardrail warnings present: %w", apperrors.ErrUnsafeOperation)
	}
	if s.cfg.BlockOnInjection && len(preview.InjectionFindings) > 0 {
		return preview, fmt.Errorf("injection patterns detected in answers: %w", apperrors.ErrUnsafeOperation)
	}
	return preview, nil
}

func (s *flowService) CheckStatement(sqlText string) (string, sql.DangerScan, error) {
	normalized, err := sql.NormalizeStatement(sqlText)
	if err != nil {
		return "", sql.DangerScan{}, err
	}
	return normalized, sql.ScanDangerousSQL(normalized), nil
}
