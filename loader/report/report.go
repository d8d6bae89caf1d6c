package report

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
)

// RowSource calls yield once per row. If yield returns an error, iteration
// stops and that error is returned.
type RowSource func(yield func([]Value) error) error

// Sink receives result sets. Begin and End bracket one query; Close finishes
// the whole report.
type Sink interface {
	Begin(title string, columns []string) error
	Row(values []Value) error
	End() error
	Close() error
}

// Emit writes one result set to sink.
func Emit(sink Sink, title string, columns []string, rows RowSource) error {
	if err := sink.Begin(title, columns); err != nil {
		return err
	}
	if err := rows(sink.Row); err != nil {
		return err
	}
	return sink.End()
}

// Queryer is satisfied by *sql.DB.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// RunQueries executes each query in order and emits its result set to sink.
func RunQueries(ctx context.Context, db Queryer, queries []string, sink Sink) error {
	logger := zerolog.Ctx(ctx)

	for _, q := range queries {
		logger.Debug().Str("sql", q).Msg("running report query")
		if err := runQuery(ctx, db, q, sink); err != nil {
			return fmt.Errorf("report query %q: %w", q, err)
		}
	}
	return nil
}

func runQuery(ctx context.Context, db Queryer, query string, sink Sink) error {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return err
	}

	return Emit(sink, query, cols, func(yield func([]Value) error) error {
		raw := make([]any, len(cols))
		dest := make([]any, len(cols))
		for i := range raw {
			dest[i] = &raw[i]
		}
		values := make([]Value, len(cols))
		for rows.Next() {
			if err := rows.Scan(dest...); err != nil {
				return err
			}
			for i, v := range raw {
				values[i] = ValueOf(v)
			}
			if err := yield(values); err != nil {
				return err
			}
		}
		return rows.Err()
	})
}
