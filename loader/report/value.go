// Package report runs post-load queries and writes their result sets as
// delimited text, an HTML table or an Excel workbook.
package report

import (
	"fmt"
	"strconv"
	"time"
)

// Kind is the storage class of a result value.
type Kind int

const (
	Null Kind = iota
	Integer
	Real
	Text
	Blob
)

const (
	// NullLiteral is printed for NULL values.
	NullLiteral = "NULL"
	// BlobPlaceholder is printed instead of raw blob bytes.
	BlobPlaceholder = "..BLOB.."
)

// Value is one scalar of a result row.
type Value struct {
	Kind Kind
	Int  int64
	Real float64
	Text string
	Blob []byte
}

// ValueOf classifies a value scanned by database/sql into an any.
func ValueOf(v any) Value {
	switch x := v.(type) {
	case nil:
		return Value{Kind: Null}
	case int64:
		return Value{Kind: Integer, Int: x}
	case int:
		return Value{Kind: Integer, Int: int64(x)}
	case int32:
		return Value{Kind: Integer, Int: int64(x)}
	case bool:
		if x {
			return Value{Kind: Integer, Int: 1}
		}
		return Value{Kind: Integer}
	case float64:
		return Value{Kind: Real, Real: x}
	case float32:
		return Value{Kind: Real, Real: float64(x)}
	case string:
		return Value{Kind: Text, Text: x}
	case []byte:
		return Value{Kind: Blob, Blob: x}
	case time.Time:
		return Value{Kind: Text, Text: x.Format(time.RFC3339Nano)}
	}
	return Value{Kind: Text, Text: fmt.Sprint(v)}
}

// String renders the value the way the delimited report prints it.
func (v Value) String() string {
	switch v.Kind {
	case Null:
		return NullLiteral
	case Integer:
		return strconv.FormatInt(v.Int, 10)
	case Real:
		return strconv.FormatFloat(v.Real, 'f', -1, 64)
	case Blob:
		return BlobPlaceholder
	}
	return v.Text
}
