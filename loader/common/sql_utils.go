package common

import (
	"fmt"
	"strings"
)

// GenCreateTableSQL generates the CREATE TABLE statement for a schema.
func GenCreateTableSQL(d Dialect, table string, s Schema) (string, error) {
	if table == "" || len(s) == 0 {
		return "", fmt.Errorf("table name and fields are required")
	}

	var builder strings.Builder
	builder.Grow(len(table) + len(s)*20)

	builder.WriteString("CREATE TABLE ")
	builder.WriteString(d.QuoteIdent(table))
	builder.WriteString(" (\n")
	for i, f := range s {
		builder.WriteByte('\t')
		builder.WriteString(d.QuoteIdent(f.Name))
		builder.WriteByte(' ')
		if f.Type == "" {
			builder.WriteString(TextType)
		} else {
			builder.WriteString(f.Type)
		}
		if i < len(s)-1 {
			builder.WriteByte(',')
		}
		builder.WriteByte('\n')
	}
	builder.WriteByte(')')
	return builder.String(), nil
}

// GenInsertSQL generates a positional parameterized insert for every column of s.
func GenInsertSQL(d Dialect, table string, s Schema) (string, error) {
	if table == "" || len(s) == 0 {
		return "", fmt.Errorf("table name and fields are required")
	}

	cols := make([]string, len(s))
	marks := make([]string, len(s))
	for i, f := range s {
		cols[i] = d.QuoteIdent(f.Name)
		marks[i] = d.Placeholder(i + 1)
	}

	return fmt.Sprintf("INSERT INTO %s ( %s )\nVALUES ( %s )",
		d.QuoteIdent(table),
		strings.Join(cols, ", "),
		strings.Join(marks, ", "),
	), nil
}

// GenDropTableSQL generates a plain DROP TABLE. It fails when the table is absent.
func GenDropTableSQL(d Dialect, table string) string {
	return "DROP TABLE " + d.QuoteIdent(table)
}

// QuoteWith wraps name in left/right, doubling any right inside it.
func QuoteWith(name string, left, right byte) string {
	var b strings.Builder
	b.Grow(len(name) + 2)
	b.WriteByte(left)
	for i := 0; i < len(name); i++ {
		if name[i] == right {
			b.WriteByte(right)
		}
		b.WriteByte(name[i])
	}
	b.WriteByte(right)
	return b.String()
}

// BindText binds record fields positionally to width parameters.
// Missing trailing fields bind as NULL and surplus fields are dropped.
func BindText(fields []string, width int, args []any) []any {
	args = args[:0]
	for i := 0; i < width; i++ {
		if i < len(fields) {
			args = append(args, fields[i])
		} else {
			args = append(args, nil)
		}
	}
	return args
}
