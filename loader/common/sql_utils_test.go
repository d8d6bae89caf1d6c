package common

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bracketDialect struct{}

func (bracketDialect) DriverName() string                          { return "test" }
func (bracketDialect) DSN(location string, _ bool) (string, error) { return location, nil }
func (bracketDialect) Configure(context.Context, *sql.DB) error    { return nil }
func (bracketDialect) QuoteIdent(name string) string               { return QuoteWith(name, '[', ']') }
func (bracketDialect) Placeholder(n int) string                    { return fmt.Sprintf("?%d", n) }
func (bracketDialect) ColumnsQuery(table string) (string, []any)   { return "", nil }

func TestGenCreateTableSQL(t *testing.T) {
	sql, err := GenCreateTableSQL(bracketDialect{}, "t", TextSchema([]string{"a", "select"}))
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE [t] (\n\t[a] text,\n\t[select] text\n)", sql)

	_, err = GenCreateTableSQL(bracketDialect{}, "t", nil)
	assert.Error(t, err)
}

func TestGenInsertSQL(t *testing.T) {
	sql, err := GenInsertSQL(bracketDialect{}, "flights", TextSchema([]string{"a", "b", "c"}))
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO [flights] ( [a], [b], [c] )\nVALUES ( ?1, ?2, ?3 )", sql)

	_, err = GenInsertSQL(bracketDialect{}, "", TextSchema([]string{"a"}))
	assert.Error(t, err)
}

func TestGenDropTableSQL(t *testing.T) {
	assert.Equal(t, "DROP TABLE [t]", GenDropTableSQL(bracketDialect{}, "t"))
}

func TestQuoteWith(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"Plain", "abc", `"abc"`},
		{"Empty", "", `""`},
		{"Embedded", `a"b`, `"a""b"`},
		{"Spaces", "first name", `"first name"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, QuoteWith(tt.in, '"', '"'))
		})
	}
}

func TestBindText(t *testing.T) {
	args := BindText([]string{"1", "2"}, 2, nil)
	assert.Equal(t, []any{"1", "2"}, args)

	args = BindText([]string{"1"}, 3, args)
	assert.Equal(t, []any{"1", nil, nil}, args)

	args = BindText([]string{"1", "2", "3"}, 2, args)
	assert.Equal(t, []any{"1", "2"}, args)
}
