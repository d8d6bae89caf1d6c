package common

import (
	"context"
	"database/sql"
)

// Querier is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Dialect hides the SQL differences between supported stores.
type Dialect interface {
	// DriverName is the database/sql driver to open.
	DriverName() string

	// DSN turns the configured location into a data source name.
	// memory requests an ephemeral in-process store.
	DSN(location string, memory bool) (string, error)

	// Configure runs once on a freshly opened handle.
	Configure(ctx context.Context, db *sql.DB) error

	// QuoteIdent quotes a table or column identifier.
	QuoteIdent(name string) string

	// Placeholder returns the bind marker for the 1-based parameter n.
	Placeholder(n int) string

	// ColumnsQuery returns a query yielding (name, type) rows for the table
	// in column order. A missing table must yield no rows.
	ColumnsQuery(table string) (string, []any)
}
