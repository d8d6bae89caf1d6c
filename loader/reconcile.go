package loader

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/sflanaga/csvtolite/loader/common"
)

// Action is the outcome of reconciling a file schema with the store.
type Action int

const (
	// Create means the table was created from the probed schema.
	Create Action = iota
	// Validate means an existing table accepted the probed schema.
	Validate
)

func (a Action) String() string {
	if a == Create {
		return "create"
	}
	return "validate"
}

// ReconcileOptions mirrors the reconciliation switches of LoadOptions.
type ReconcileOptions struct {
	Overwrite        bool
	IgnoreFieldCount bool
}

// Reconciliation tells the loader which schema to insert with.
type Reconciliation struct {
	Action Action
	// Schema is the probed schema after Create and the table schema after
	// Validate, so tolerated width differences bind against real columns.
	Schema common.Schema
}

// Reconcile makes table ready to receive rows shaped like probed.
//
// With Overwrite the table is dropped first and always recreated. A failed drop
// is logged and ignored: it cannot be told apart from the table being absent.
func Reconcile(ctx context.Context, q common.Querier, d common.Dialect, table string, probed common.Schema, opts ReconcileOptions) (*Reconciliation, error) {
	logger := zerolog.Ctx(ctx)

	var current common.Schema
	if opts.Overwrite {
		drop := common.GenDropTableSQL(d, table)
		logger.Warn().Str("sql", drop).Msg("executing sql")
		if _, err := q.ExecContext(ctx, drop); err != nil {
			// TODO: tell "no such table" apart from real drop failures per dialect.
			logger.Warn().Err(err).Msg("overwrite set so this error during drop table ignored")
		}
	} else {
		var err error
		current, err = Inspect(ctx, q, d, table)
		if err != nil {
			return nil, err
		}
		logger.Trace().Interface("schema", current).Msg("table schema")
	}

	if len(current) == 0 {
		if err := createTable(ctx, q, d, table, probed); err != nil {
			return nil, err
		}
		return &Reconciliation{Action: Create, Schema: probed}, nil
	}

	if err := compareSchemas(table, current, probed, opts.IgnoreFieldCount); err != nil {
		return nil, err
	}
	return &Reconciliation{Action: Validate, Schema: current}, nil
}

// compareSchemas checks the table schema against the file schema by position.
func compareSchemas(table string, current, probed common.Schema, ignoreFieldCount bool) error {
	if !ignoreFieldCount && len(current) != len(probed) {
		return &common.SchemaMismatchError{
			Kind:     common.FieldCount,
			Table:    table,
			Position: -1,
			Expected: strconv.Itoa(len(current)),
			Found:    strconv.Itoa(len(probed)),
		}
	}

	shared := min(len(current), len(probed))
	for i := 0; i < shared; i++ {
		have, want := current[i], probed[i]
		if have.Name != want.Name {
			return &common.SchemaMismatchError{
				Kind: common.Name, Table: table, Position: i,
				Expected: have.Name, Found: want.Name,
			}
		}
		if !common.SameType(have.Type, want.Type) {
			return &common.SchemaMismatchError{
				Kind: common.Type, Table: table, Position: i,
				Expected: have.Type, Found: want.Type,
			}
		}
	}
	return nil
}

func createTable(ctx context.Context, q common.Querier, d common.Dialect, table string, schema common.Schema) error {
	logger := zerolog.Ctx(ctx)

	ddl, err := common.GenCreateTableSQL(d, table, schema)
	if err != nil {
		return &common.StoreAccessError{Op: "create", Table: table, Err: err}
	}
	logger.Info().Str("sql", ddl).Msg("executing create sql")

	if _, err := q.ExecContext(ctx, ddl); err != nil {
		return &common.StoreAccessError{Op: "create", Table: table, Err: err}
	}
	return nil
}
