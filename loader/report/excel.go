package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// XLSX writes each result set to its own worksheet and the workbook to w on Close.
type XLSX struct {
	w      io.Writer
	file   *excelize.File
	stream *excelize.StreamWriter
	sheets int
	row    int
}

var _ Sink = (*XLSX)(nil)

// NewXLSX returns an Excel sink writing to w.
func NewXLSX(w io.Writer) *XLSX {
	return &XLSX{w: w, file: excelize.NewFile()}
}

func (x *XLSX) Begin(_ string, columns []string) error {
	x.sheets++
	name := fmt.Sprintf("Query%d", x.sheets)
	if x.sheets == 1 {
		if err := x.file.SetSheetName(x.file.GetSheetName(0), name); err != nil {
			return err
		}
	} else if _, err := x.file.NewSheet(name); err != nil {
		return err
	}

	sw, err := x.file.NewStreamWriter(name)
	if err != nil {
		return err
	}
	x.stream = sw
	x.row = 0

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	return x.setRow(header)
}

func (x *XLSX) Row(values []Value) error {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		switch v.Kind {
		case Null:
			cells[i] = nil
		case Integer:
			cells[i] = v.Int
		case Real:
			cells[i] = v.Real
		default:
			cells[i] = v.String()
		}
	}
	return x.setRow(cells)
}

func (x *XLSX) setRow(cells []interface{}) error {
	x.row++
	cell, err := excelize.CoordinatesToCellName(1, x.row)
	if err != nil {
		return err
	}
	return x.stream.SetRow(cell, cells)
}

func (x *XLSX) End() error {
	err := x.stream.Flush()
	x.stream = nil
	return err
}

func (x *XLSX) Close() error {
	defer x.file.Close()
	return x.file.Write(x.w)
}
