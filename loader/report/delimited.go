package report

import (
	"bufio"
	"io"
)

// Delimited writes a header line of column names and one line per row, with
// fields joined by Delimiter. It performs no quoting.
type Delimited struct {
	w         *bufio.Writer
	Delimiter string
}

var _ Sink = (*Delimited)(nil)

// NewDelimited returns a delimited sink writing to w.
func NewDelimited(w io.Writer, delimiter string) *Delimited {
	return &Delimited{w: bufio.NewWriter(w), Delimiter: delimiter}
}

func (d *Delimited) Begin(_ string, columns []string) error {
	for i, c := range columns {
		if i > 0 {
			if _, err := d.w.WriteString(d.Delimiter); err != nil {
				return err
			}
		}
		if _, err := d.w.WriteString(c); err != nil {
			return err
		}
	}
	return d.w.WriteByte('\n')
}

func (d *Delimited) Row(values []Value) error {
	for i, v := range values {
		if i > 0 {
			if _, err := d.w.WriteString(d.Delimiter); err != nil {
				return err
			}
		}
		if _, err := d.w.WriteString(v.String()); err != nil {
			return err
		}
	}
	return d.w.WriteByte('\n')
}

func (d *Delimited) End() error { return d.w.Flush() }

func (d *Delimited) Close() error { return d.w.Flush() }
