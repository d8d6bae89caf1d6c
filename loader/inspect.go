package loader

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sflanaga/csvtolite/loader/common"
)

// Inspect returns the current schema of table. A table that does not exist
// yields an empty schema and no error. Declared types are lower-cased.
func Inspect(ctx context.Context, q common.Querier, d common.Dialect, table string) (common.Schema, error) {
	logger := zerolog.Ctx(ctx)

	query, args := d.ColumnsQuery(table)
	logger.Debug().Str("sql", query).Msg("running sql")

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &common.StoreAccessError{Op: "inspect", Table: table, Err: err}
	}
	defer rows.Close()

	var schema common.Schema
	for rows.Next() {
		var name, typ string
		if err := rows.Scan(&name, &typ); err != nil {
			return nil, &common.StoreAccessError{Op: "inspect", Table: table, Err: err}
		}
		schema = append(schema, common.Field{Position: len(schema), Name: name, Type: strings.ToLower(strings.TrimSpace(typ))})
	}
	if err := rows.Err(); err != nil {
		return nil, &common.StoreAccessError{Op: "inspect", Table: table, Err: err}
	}
	return schema, nil
}
