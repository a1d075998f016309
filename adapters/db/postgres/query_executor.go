// Package postgres implements the read-only query capability on top
// of PostgreSQL via sqlx.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"varstats/ports"
)

// QueryExecutorAdapter implements ports.QueryExecutor for PostgreSQL.
// Each call runs inside its own read-only transaction so the analysis
// core can never mutate the store, and the session is released on
// every exit path. Safe for concurrent use.
type QueryExecutorAdapter struct {
	db *sqlx.DB
}

// NewQueryExecutorAdapter creates a new query executor adapter
func NewQueryExecutorAdapter(db *sqlx.DB) *QueryExecutorAdapter {
	return &QueryExecutorAdapter{db: db}
}

// ReadOnlyQuery runs the query and materializes all result rows in
// order. Rows come back as generic tuples; shape validation belongs
// to the consuming engine.
func (a *QueryExecutorAdapter) ReadOnlyQuery(ctx context.Context, query string) ([]ports.Row, error) {
	tx, err := a.db.BeginTxx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open read-only transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var result []ports.Row
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("failed to scan row %d: %w", len(result), err)
		}
		result = append(result, ports.Row(values))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration failed: %w", err)
	}

	return result, nil
}
