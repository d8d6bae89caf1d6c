package common

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks against the typed errors below.
var (
	ErrIO                  = errors.New("io error")
	ErrMalformedRecord     = errors.New("malformed record")
	ErrEmptySchema         = errors.New("empty schema")
	ErrSchemaInconsistency = errors.New("field count inconsistency")
	ErrSchemaMismatch      = errors.New("schema mismatch")
	ErrRowWidth            = errors.New("row width mismatch")
	ErrStoreAccess         = errors.New("store access")
)

// IOError wraps a failure to open or read an input stream.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("read input: %v", e.Err)
	}
	return fmt.Sprintf("read input %q: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error        { return e.Err }
func (e *IOError) Is(target error) bool { return target == ErrIO }

// MalformedRecordError reports a quoting violation in the record starting at Line.
type MalformedRecordError struct {
	Line   int
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record at line %d: %s", e.Line, e.Reason)
}

func (e *MalformedRecordError) Is(target error) bool { return target == ErrMalformedRecord }

// EmptySchemaError means probing found nothing to derive a schema from.
type EmptySchemaError struct {
	HeaderPresent bool
}

func (e *EmptySchemaError) Error() string {
	if e.HeaderPresent {
		return "no data records after header, cannot confirm field count"
	}
	return "no records found (empty?), cannot derive schema"
}

func (e *EmptySchemaError) Is(target error) bool { return target == ErrEmptySchema }

// SchemaInconsistencyError is raised by the prober when a sampled record
// disagrees with the reference width.
type SchemaInconsistencyError struct {
	Line     int
	Found    int
	Expected int
}

func (e *SchemaInconsistencyError) Error() string {
	return fmt.Sprintf("field count inconsistency: line: %d  field count: %d  expected field count: %d",
		e.Line, e.Found, e.Expected)
}

func (e *SchemaInconsistencyError) Is(target error) bool { return target == ErrSchemaInconsistency }

// MismatchKind tells which property of the schemas diverged.
type MismatchKind int

const (
	FieldCount MismatchKind = iota
	Name
	Type
)

func (k MismatchKind) String() string {
	switch k {
	case FieldCount:
		return "number of fields"
	case Name:
		return "name"
	case Type:
		return "type"
	}
	return fmt.Sprintf("MismatchKind(%d)", int(k))
}

// SchemaMismatchError reports a table schema that does not accept the file schema.
// Position is -1 for FieldCount mismatches.
type SchemaMismatchError struct {
	Kind     MismatchKind
	Table    string
	Position int
	Expected string
	Found    string
}

func (e *SchemaMismatchError) Error() string {
	if e.Kind == FieldCount {
		return fmt.Sprintf("schema diff in %s: table fields %s vs file fields %s  table: %s",
			e.Kind, e.Expected, e.Found, e.Table)
	}
	return fmt.Sprintf("schema diff in %s at position %d: table field %s vs file field %s  table: %s",
		e.Kind, e.Position, e.Expected, e.Found, e.Table)
}

func (e *SchemaMismatchError) Is(target error) bool { return target == ErrSchemaMismatch }

// RowWidthError is raised during loading; it always rolls the file back.
type RowWidthError struct {
	Line     int
	Expected int
	Found    int
}

func (e *RowWidthError) Error() string {
	return fmt.Sprintf("record at line %d: fields expected: %d  fields found: %d", e.Line, e.Expected, e.Found)
}

func (e *RowWidthError) Is(target error) bool { return target == ErrRowWidth }

// StoreAccessError wraps a metadata, DDL or DML failure against the store.
type StoreAccessError struct {
	Op    string
	Table string
	Err   error
}

func (e *StoreAccessError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Table, e.Err)
}

func (e *StoreAccessError) Unwrap() error        { return e.Err }
func (e *StoreAccessError) Is(target error) bool { return target == ErrStoreAccess }
