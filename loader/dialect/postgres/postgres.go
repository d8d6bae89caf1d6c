// Package postgres registers the PostgreSQL dialect through pgx's
// database/sql adapter.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/sflanaga/csvtolite/loader"
	"github.com/sflanaga/csvtolite/loader/common"
)

// Name is the dialect name used in configuration.
const Name = "postgres"

func init() {
	loader.Register(Name, Dialect{})
}

// Dialect implements common.Dialect for PostgreSQL.
type Dialect struct{}

var _ common.Dialect = Dialect{}

func (Dialect) DriverName() string { return "pgx" }

func (Dialect) DSN(location string, memory bool) (string, error) {
	if memory {
		return "", fmt.Errorf("postgres: in-memory stores are not supported")
	}
	if location == "" {
		return "", fmt.Errorf("postgres: connection string is required")
	}
	return location, nil
}

func (Dialect) Configure(context.Context, *sql.DB) error { return nil }

func (Dialect) QuoteIdent(name string) string { return common.QuoteWith(name, '"', '"') }

func (Dialect) Placeholder(n int) string { return "$" + strconv.Itoa(n) }

func (Dialect) ColumnsQuery(table string) (string, []any) {
	return `SELECT column_name, data_type
FROM information_schema.columns
WHERE table_schema = current_schema() AND table_name = $1
ORDER BY ordinal_position`, []any{table}
}
