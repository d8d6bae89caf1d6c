// Package sqlite registers the SQLite dialect, backed by the pure Go
// modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sflanaga/csvtolite/loader"
	"github.com/sflanaga/csvtolite/loader/common"

	_ "modernc.org/sqlite"
)

// Name is the dialect name used in configuration.
const Name = "sqlite"

func init() {
	loader.Register(Name, Dialect{})
}

// Dialect implements common.Dialect for SQLite.
type Dialect struct{}

var _ common.Dialect = Dialect{}

func (Dialect) DriverName() string { return "sqlite" }

func (Dialect) DSN(location string, memory bool) (string, error) {
	if memory {
		return ":memory:", nil
	}
	if location == "" {
		return "", fmt.Errorf("sqlite: database file is required unless running in memory")
	}
	return location, nil
}

// Configure sets PRAGMA page_size and cache_size for bulk loading.
func (Dialect) Configure(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, "PRAGMA page_size = 65536; PRAGMA cache_size = -2000;"); err != nil {
		return fmt.Errorf("failed to set PRAGMAs: %w", err)
	}
	return nil
}

func (Dialect) QuoteIdent(name string) string { return common.QuoteWith(name, '[', ']') }

func (Dialect) Placeholder(n int) string { return fmt.Sprintf("?%d", n) }

func (Dialect) ColumnsQuery(table string) (string, []any) {
	return "SELECT name, type FROM pragma_table_info(?) ORDER BY cid", []any{table}
}
