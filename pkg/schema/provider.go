// Package schema supplies the table and column context the form compiler
// consumes. Providers are read-only introspectors: the engine never
// executes generated SQL through them.
package schema

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/formflow-inc/formflow-engine/pkg/apperrors"
	"github.com/formflow-inc/formflow-engine/pkg/config"
)

// Table identifies one table known to the provider.
type Table struct {
	Schema string `json:"schema"`
	Name   string `json:"name"`
}

// Column is the introspected metadata for one column.
type Column struct {
	Name            string `json:"name"`
	DataType        string `json:"data_type"`
	IsNullable      bool   `json:"is_nullable"`
	IsPrimaryKey    bool   `json:"is_primary_key"`
	OrdinalPosition int    `json:"ordinal_position"`
}

// Provider exposes the current set of known tables and columns. Config is
// passed in explicitly when a provider is constructed; nothing here reads
// ambient state.
type Provider interface {
	// Tables returns all user tables, excluding system schemas.
	Tables(ctx context.Context) ([]Table, error)

	// Columns returns the columns of one table in ordinal order.
	Columns(ctx context.Context, schemaName, tableName string) ([]Column, error)

	// Close releases the provider's connection.
	Close() error
}

// NewProvider constructs the provider selected by cfg.Type. If logger is
// nil, a no-op logger is used.
func NewProvider(ctx context.Context, cfg config.ProviderConfig, logger *zap.Logger) (Provider, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch cfg.Type {
	case "postgres":
		return NewPostgresProvider(ctx, cfg, logger)
	case "mssql":
		return NewMSSQLProvider(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownProvider, cfg.Type)
	}
}
