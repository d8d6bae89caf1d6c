// Package mysql registers the MySQL dialect.
package mysql

import (
	"context"
	"database/sql"
	"fmt"

	driver "github.com/go-sql-driver/mysql"

	"github.com/sflanaga/csvtolite/loader"
	"github.com/sflanaga/csvtolite/loader/common"
)

// Name is the dialect name used in configuration.
const Name = "mysql"

func init() {
	loader.Register(Name, Dialect{})
}

// Dialect implements common.Dialect for MySQL.
type Dialect struct{}

var _ common.Dialect = Dialect{}

func (Dialect) DriverName() string { return "mysql" }

// DSN validates the go-sql-driver DSN and makes sure multi statements stay off.
func (Dialect) DSN(location string, memory bool) (string, error) {
	if memory {
		return "", fmt.Errorf("mysql: in-memory stores are not supported")
	}
	cfg, err := driver.ParseDSN(location)
	if err != nil {
		return "", fmt.Errorf("mysql: %w", err)
	}
	cfg.MultiStatements = false
	return cfg.FormatDSN(), nil
}

func (Dialect) Configure(context.Context, *sql.DB) error { return nil }

func (Dialect) QuoteIdent(name string) string { return common.QuoteWith(name, '`', '`') }

func (Dialect) Placeholder(int) string { return "?" }

func (Dialect) ColumnsQuery(table string) (string, []any) {
	return `SELECT column_name, data_type
FROM information_schema.columns
WHERE table_schema = DATABASE() AND table_name = ?
ORDER BY ordinal_position`, []any{table}
}
