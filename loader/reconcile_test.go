package loader_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sflanaga/csvtolite/loader"
	"github.com/sflanaga/csvtolite/loader/common"
)

func TestInspectMissingTable(t *testing.T) {
	db, d := openMemory(t)
	schema, err := loader.Inspect(context.Background(), db, d, "nothing_here")
	require.NoError(t, err)
	assert.Empty(t, schema)
}

func TestInspectLowersDeclaredTypes(t *testing.T) {
	ctx := context.Background()
	db, d := openMemory(t)
	_, err := db.Exec("CREATE TABLE u (a TEXT, b Integer, c text)")
	require.NoError(t, err)

	schema, err := loader.Inspect(ctx, db, d, "u")
	require.NoError(t, err)
	assert.Equal(t, common.Schema{
		{Position: 0, Name: "a", Type: "text"},
		{Position: 1, Name: "b", Type: "integer"},
		{Position: 2, Name: "c", Type: "text"},
	}, schema)
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		name     string
		ddl      string
		probed   []string
		opts     loader.ReconcileOptions
		action   loader.Action
		kind     common.MismatchKind
		position int
		wantErr  bool
	}{
		{
			name:   "CreateWhenAbsent",
			probed: []string{"a", "b"},
			action: loader.Create,
		},
		{
			name:   "ValidateIdentical",
			ddl:    "CREATE TABLE t (a text, b text)",
			probed: []string{"a", "b"},
			action: loader.Validate,
		},
		{
			name:   "ValidateIgnoresTypeCase",
			ddl:    "CREATE TABLE t (a TEXT, b Text)",
			probed: []string{"a", "b"},
			action: loader.Validate,
		},
		{
			name:     "ReorderedIsNameMismatch",
			ddl:      "CREATE TABLE t (a text, b text)",
			probed:   []string{"b", "a"},
			wantErr:  true,
			kind:     common.Name,
			position: 0,
		},
		{
			name:     "FieldCount",
			ddl:      "CREATE TABLE t (a text, b text)",
			probed:   []string{"a", "b", "c"},
			wantErr:  true,
			kind:     common.FieldCount,
			position: -1,
		},
		{
			name:   "FieldCountTolerated",
			ddl:    "CREATE TABLE t (a text, b text)",
			probed: []string{"a", "b", "c"},
			opts:   loader.ReconcileOptions{IgnoreFieldCount: true},
			action: loader.Validate,
		},
		{
			name:     "NameStillFailsWhenCountTolerated",
			ddl:      "CREATE TABLE t (a text, x text)",
			probed:   []string{"a", "b", "c"},
			opts:     loader.ReconcileOptions{IgnoreFieldCount: true},
			wantErr:  true,
			kind:     common.Name,
			position: 1,
		},
		{
			name:     "Type",
			ddl:      "CREATE TABLE t (a text, b integer)",
			probed:   []string{"a", "b"},
			wantErr:  true,
			kind:     common.Type,
			position: 1,
		},
		{
			name:   "OverwriteRecreates",
			ddl:    "CREATE TABLE t (x integer)",
			probed: []string{"a", "b"},
			opts:   loader.ReconcileOptions{Overwrite: true},
			action: loader.Create,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			db, d := openMemory(t)
			if tt.ddl != "" {
				_, err := db.Exec(tt.ddl)
				require.NoError(t, err)
			}

			rec, err := loader.Reconcile(ctx, db, d, "t", common.TextSchema(tt.probed), tt.opts)
			if tt.wantErr {
				var mismatch *common.SchemaMismatchError
				require.ErrorAs(t, err, &mismatch)
				assert.Equal(t, tt.kind, mismatch.Kind)
				assert.Equal(t, tt.position, mismatch.Position)
				assert.Equal(t, "t", mismatch.Table)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.action, rec.Action)

			schema, err := loader.Inspect(ctx, db, d, "t")
			require.NoError(t, err)
			if tt.action == loader.Create {
				assert.Equal(t, common.TextSchema(tt.probed), schema)
			}
			assert.Equal(t, schema, rec.Schema)
		})
	}
}

func TestReconcileQuotesReservedNames(t *testing.T) {
	ctx := context.Background()
	db, d := openMemory(t)

	probed := common.TextSchema([]string{"select", "from", "first name"})
	_, err := loader.Reconcile(ctx, db, d, "order", probed, loader.ReconcileOptions{})
	require.NoError(t, err)

	schema, err := loader.Inspect(ctx, db, d, "order")
	require.NoError(t, err)
	assert.Equal(t, probed, schema)
}
