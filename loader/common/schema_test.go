package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaCompatiblePositional(t *testing.T) {
	ab := TextSchema([]string{"a", "b"})
	ba := TextSchema([]string{"b", "a"})

	assert.True(t, ab.Compatible(TextSchema([]string{"a", "b"})))
	assert.False(t, ab.Compatible(ba), "reordered columns must not be compatible")
	assert.False(t, ab.Compatible(TextSchema([]string{"a"})))

	upper := Schema{{0, "a", "TEXT"}, {1, "b", "Text"}}
	assert.True(t, ab.Compatible(upper))

	typed := Schema{{0, "a", "text"}, {1, "b", "integer"}}
	assert.False(t, ab.Compatible(typed))
}

func TestSyntheticNames(t *testing.T) {
	assert.Equal(t, []string{"f0", "f1", "f2"}, SyntheticNames(3))
	assert.Empty(t, SyntheticNames(0))
}

func TestTextSchema(t *testing.T) {
	s := TextSchema([]string{"x", "y"})
	assert.Equal(t, Schema{{0, "x", TextType}, {1, "y", TextType}}, s)
	assert.Equal(t, []string{"x", "y"}, s.Names())
}

func TestErrorSentinels(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"IO", &IOError{Path: "a.csv", Err: errors.New("boom")}, ErrIO},
		{"Malformed", &MalformedRecordError{Line: 3}, ErrMalformedRecord},
		{"Empty", &EmptySchemaError{}, ErrEmptySchema},
		{"Inconsistent", &SchemaInconsistencyError{Line: 2, Found: 3, Expected: 2}, ErrSchemaInconsistency},
		{"Mismatch", &SchemaMismatchError{Kind: Name}, ErrSchemaMismatch},
		{"Width", &RowWidthError{Line: 4, Expected: 2, Found: 3}, ErrRowWidth},
		{"Store", &StoreAccessError{Op: "insert", Table: "t", Err: errors.New("x")}, ErrStoreAccess},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.target)
		})
	}
}

func TestSchemaMismatchMessage(t *testing.T) {
	err := &SchemaMismatchError{Kind: Name, Table: "t", Position: 0, Expected: "a", Found: "b"}
	assert.Contains(t, err.Error(), "schema diff in name at position 0")
	assert.Contains(t, err.Error(), "table field a vs file field b")
}
