package loader

import (
	"context"
	"database/sql"
	"errors"
	"io"

	"github.com/rs/zerolog"

	"github.com/sflanaga/csvtolite/loader/common"
	"github.com/sflanaga/csvtolite/loader/csv"
)

// BulkOptions controls the data pass.
type BulkOptions struct {
	HeaderPresent    bool // skip the first record
	IgnoreFieldCount bool // pad or truncate records instead of failing
}

// Load inserts every data record of r into table inside a single transaction.
//
// Either every record is committed or none is: any error, including a record
// whose width differs from schema while width policing is on, rolls the whole
// file back. The Outcome is only returned after a successful commit.
func Load(ctx context.Context, db *sql.DB, d common.Dialect, r *csv.Reader, table string, schema common.Schema, opts BulkOptions) (out common.Outcome, err error) {
	logger := zerolog.Ctx(ctx)

	insertSQL, err := common.GenInsertSQL(d, table, schema)
	if err != nil {
		return out, err
	}
	logger.Info().Str("sql", insertSQL).Msg("SQL for load")

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return out, &common.StoreAccessError{Op: "begin", Table: table, Err: err}
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		p := recover()
		logger.Error().Str("table", table).Msg("rollback in defer for load")
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			logger.Error().Err(rbErr).Msg("there was a problem with deferred rollback")
		}
		if p != nil {
			panic(p)
		}
	}()

	stmt, err := tx.PrepareContext(ctx, insertSQL)
	if err != nil {
		return out, &common.StoreAccessError{Op: "prepare", Table: table, Err: err}
	}
	defer stmt.Close()

	width := len(schema)
	args := make([]any, 0, width)
	first := true
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return common.Outcome{}, err
		}
		if first {
			first = false
			if opts.HeaderPresent {
				continue
			}
		}

		if !opts.IgnoreFieldCount && len(rec) != width {
			return common.Outcome{}, &common.RowWidthError{Line: r.Line(), Expected: width, Found: len(rec)}
		}

		args = common.BindText(rec, width, args)
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return common.Outcome{}, &common.StoreAccessError{Op: "insert", Table: table, Err: err}
		}
		out.Rows++
		out.Fields += uint64(width)
	}

	if err := stmt.Close(); err != nil {
		return common.Outcome{}, &common.StoreAccessError{Op: "finalize", Table: table, Err: err}
	}
	if err := tx.Commit(); err != nil {
		return common.Outcome{}, &common.StoreAccessError{Op: "commit", Table: table, Err: err}
	}
	committed = true
	return out, nil
}
