package mysql

import (
	"testing"

	driver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	tests := []struct {
		name     string
		location string
		memory   bool
		wantErr  bool
	}{
		{"Plain", "user:pw@tcp(localhost:3306)/loads", false, false},
		{"MultiStatementsForcedOff", "user:pw@tcp(localhost:3306)/loads?multiStatements=true", false, false},
		{"Memory", "user:pw@tcp(localhost:3306)/loads", true, true},
		{"Malformed", "user:pw@tcp(localhost:3306", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn, err := Dialect{}.DSN(tt.location, tt.memory)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			cfg, err := driver.ParseDSN(dsn)
			require.NoError(t, err)
			assert.False(t, cfg.MultiStatements)
			assert.Equal(t, "loads", cfg.DBName)
			assert.Equal(t, "localhost:3306", cfg.Addr)
		})
	}
}

func TestQuoteIdent(t *testing.T) {
	tests := []struct {
		in, expected string
	}{
		{"a", "`a`"},
		{"first name", "`first name`"},
		{"we`ird", "`we``ird`"},
		{"select", "`select`"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Dialect{}.QuoteIdent(tt.in))
	}
}

func TestPlaceholder(t *testing.T) {
	for _, n := range []int{1, 2, 10} {
		assert.Equal(t, "?", Dialect{}.Placeholder(n))
	}
}

func TestColumnsQuery(t *testing.T) {
	query, args := Dialect{}.ColumnsQuery("flights")
	assert.Contains(t, query, "information_schema.columns")
	assert.Contains(t, query, "DATABASE()")
	assert.Contains(t, query, "ORDER BY ordinal_position")
	assert.Equal(t, []any{"flights"}, args)
	assert.Equal(t, "mysql", Dialect{}.DriverName())
}
