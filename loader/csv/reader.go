package csv

import (
	"bufio"
	"errors"
	"io"

	"github.com/sflanaga/csvtolite/loader/common"
)

// Reader decodes delimited records from a byte stream.
//
// It is flexible: records may have any number of fields and width checks are
// left to the caller. Blank lines and lines starting with the comment byte are
// skipped. A Reader is single pass; reopen the source to read it again.
type Reader struct {
	br   *bufio.Reader
	opts common.ParseOptions

	line      int // physical line the cursor is on
	startLine int // line the last record started on
	field     []byte
	record    []string
}

// NewReader returns a Reader over r. A zero Separator or Quote falls back to
// the defaults.
func NewReader(r io.Reader, opts common.ParseOptions) *Reader {
	def := common.DefaultParseOptions()
	if opts.Separator == 0 {
		opts.Separator = def.Separator
	}
	if opts.Quote == 0 {
		opts.Quote = def.Quote
	}
	return &Reader{
		br:   bufio.NewReaderSize(r, 65536),
		opts: opts,
		line: 1,
	}
}

// Line returns the physical line on which the last returned record started.
func (r *Reader) Line() int {
	return r.startLine
}

// Read returns the next record. The returned slice is reused by the next call.
// It returns io.EOF once the stream is exhausted.
func (r *Reader) Read() ([]string, error) {
	for {
		b, err := r.br.ReadByte()
		if err != nil {
			return nil, r.wrap(err)
		}
		switch {
		case b == '\n':
			r.line++
			continue
		case b == '\r':
			if err := r.eatLF(); err != nil {
				return nil, err
			}
			r.line++
			continue
		case r.opts.Comment != 0 && b == r.opts.Comment:
			if err := r.skipLine(); err != nil {
				return nil, err
			}
			continue
		}
		if err := r.br.UnreadByte(); err != nil {
			return nil, r.wrap(err)
		}
		return r.readRecord()
	}
}

func (r *Reader) readRecord() ([]string, error) {
	r.startLine = r.line
	r.record = r.record[:0]

	for {
		done, err := r.readField()
		if err != nil {
			return nil, err
		}
		r.record = append(r.record, string(r.field))
		if done {
			return r.record, nil
		}
	}
}

// readField consumes one field into r.field. done is true when the field ended
// the record.
func (r *Reader) readField() (done bool, err error) {
	r.field = r.field[:0]

	b, err := r.br.ReadByte()
	if err == io.EOF {
		return true, nil
	}
	if err != nil {
		return false, r.wrap(err)
	}
	if b == r.opts.Quote {
		if err := r.readQuoted(); err != nil {
			return false, err
		}
	} else if err := r.br.UnreadByte(); err != nil {
		return false, r.wrap(err)
	}

	for {
		b, err := r.br.ReadByte()
		if err == io.EOF {
			return true, nil
		}
		if err != nil {
			return false, r.wrap(err)
		}
		switch b {
		case r.opts.Separator:
			return false, nil
		case '\n':
			r.line++
			return true, nil
		case '\r':
			if err := r.eatLF(); err != nil {
				return false, err
			}
			r.line++
			return true, nil
		}
		r.field = append(r.field, b)
	}
}

// readQuoted consumes a quoted section up to and including its closing quote.
func (r *Reader) readQuoted() error {
	for {
		b, err := r.br.ReadByte()
		if err == io.EOF {
			return &common.MalformedRecordError{Line: r.startLine, Reason: "unterminated quoted field"}
		}
		if err != nil {
			return r.wrap(err)
		}

		switch {
		case r.opts.Escape != 0 && b == r.opts.Escape && r.opts.Escape != r.opts.Quote:
			next, err := r.br.ReadByte()
			if err == io.EOF {
				return &common.MalformedRecordError{Line: r.startLine, Reason: "escape at end of input"}
			}
			if err != nil {
				return r.wrap(err)
			}
			r.countLine(next)
			r.field = append(r.field, next)
		case b == r.opts.Quote:
			next, err := r.br.ReadByte()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return r.wrap(err)
			}
			if next == r.opts.Quote {
				r.field = append(r.field, b)
				continue
			}
			return r.wrap(r.br.UnreadByte())
		default:
			r.countLine(b)
			r.field = append(r.field, b)
		}
	}
}

func (r *Reader) countLine(b byte) {
	if b == '\n' {
		r.line++
	}
}

func (r *Reader) eatLF() error {
	b, err := r.br.ReadByte()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return r.wrap(err)
	}
	if b != '\n' {
		return r.wrap(r.br.UnreadByte())
	}
	return nil
}

func (r *Reader) skipLine() error {
	for {
		b, err := r.br.ReadByte()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return r.wrap(err)
		}
		if b == '\n' {
			r.line++
			return nil
		}
		if b == '\r' {
			r.line++
			return r.eatLF()
		}
	}
}

func (r *Reader) wrap(err error) error {
	if err == nil || errors.Is(err, io.EOF) {
		return err
	}
	return &common.IOError{Err: err}
}
