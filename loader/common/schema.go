package common

import (
	"fmt"
	"strings"
)

// TextType is the declared type given to every probed column.
const TextType = "text"

// Field describes one column of a file or a table.
type Field struct {
	Position int
	Name     string
	Type     string
}

func (f Field) String() string {
	return fmt.Sprintf("%d:%s %s", f.Position, f.Name, f.Type)
}

// Schema is an ordered list of fields. Positions run 0..len-1.
type Schema []Field

// TextSchema builds a schema of text columns from names, in order.
func TextSchema(names []string) Schema {
	s := make(Schema, len(names))
	for i, name := range names {
		s[i] = Field{Position: i, Name: name, Type: TextType}
	}
	return s
}

// SyntheticNames returns f0, f1, ... f{n-1}.
func SyntheticNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("f%d", i)
	}
	return names
}

// Names returns the column names in positional order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}

// Compatible reports whether two schemas match position by position.
// Reordered columns are a mismatch even when the name sets agree.
func (s Schema) Compatible(other Schema) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i].Name != other[i].Name || !SameType(s[i].Type, other[i].Type) {
			return false
		}
	}
	return true
}

// SameType compares declared SQL types, which are case-insensitive.
func SameType(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
