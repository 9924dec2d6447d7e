package schema

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	_ "github.com/microsoft/go-mssqldb"
	"go.uber.org/zap"

	"github.com/formflow-inc/formflow-engine/pkg/config"
)

// MSSQLProvider introspects a SQL Server database.
type MSSQLProvider struct {
	db     *sql.DB
	logger *zap.Logger
}

func mssqlDSN(cfg config.ProviderConfig) string {
	query := url.Values{}
	query.Set("database", cfg.Database)
	u := url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		RawQuery: query.Encode(),
	}
	return u.String()
}

// NewMSSQLProvider connects a SQL Server introspector.
func NewMSSQLProvider(ctx context.Context, cfg config.ProviderConfig, logger *zap.Logger) (*MSSQLProvider, error) {
	db, err := sql.Open("sqlserver", mssqlDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("open sqlserver connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlserver: %w", err)
	}
	return &MSSQLProvider{db: db, logger: logger}, nil
}

// Close releases the database handle.
func (p *MSSQLProvider) Close() error {
	return p.db.Close()
}

// Tables returns all user tables, excluding system tables.
func (p *MSSQLProvider) Tables(ctx context.Context) ([]Table, error) {
	const query = `
	SELECT SCHEMA_NAME(t.schema_id) AS table_schema, t.name AS table_name
	FROM sys.tables t
	WHERE t.is_ms_shipped = 0
	ORDER BY table_schema, table_name
	`

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query tables: %w", err)
	}
	defer rows.Close()

	var tables []Table
	for rows.Next() {
		var t Table
		if err := rows.Scan(&t.Schema, &t.Name); err != nil {
			return nil, fmt.Errorf("scan table: %w", err)
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tables: %w", err)
	}

	p.logger.Debug("discovered tables", zap.Int("count", len(tables)))
	return tables, nil
}

// Columns returns the columns of one table in ordinal order.
func (p *MSSQLProvider) Columns(ctx context.Context, schemaName, tableName string) ([]Column, error) {
	const query = `
	SELECT
	    c.name,
	    ty.name AS data_type,
	    c.is_nullable,
	    CASE WHEN pk.column_id IS NOT NULL THEN 1 ELSE 0 END AS is_primary_key,
	    c.column_id AS ordinal_position
	FROM sys.columns c
	JOIN sys.tables t ON t.object_id = c.object_id
	JOIN sys.types ty ON ty.user_type_id = c.user_type_id
	LEFT JOIN (
	    SELECT ic.object_id, ic.column_id
	    FROM sys.index_columns ic
	    JOIN sys.indexes i ON i.object_id = ic.object_id AND i.index_id = ic.index_id
	    WHERE i.is_primary_key = 1
	) pk ON pk.object_id = c.object_id AND pk.column_id = c.column_id
	WHERE SCHEMA_NAME(t.schema_id) = @p1 AND t.name = @p2
	ORDER BY c.column_id
	`

	rows, err := p.db.QueryContext(ctx, query, schemaName, tableName)
	if err != nil {
		return nil, fmt.Errorf("query columns: %w", err)
	}
	defer rows.Close()

	var columns []Column
	for rows.Next() {
		var c Column
		if err := rows.Scan(&c.Name, &c.DataType, &c.IsNullable, &c.IsPrimaryKey, &c.OrdinalPosition); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		columns = append(columns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate columns: %w", err)
	}

	return columns, nil
}
