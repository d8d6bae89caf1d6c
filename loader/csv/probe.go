package csv

import (
	"fmt"
	"io"

	"github.com/sflanaga/csvtolite/loader/common"
)

// ProbeOptions controls how much of a file the prober looks at.
type ProbeOptions struct {
	HeaderPresent    bool
	SampleSize       uint64 // data records to check, 0 means every record
	IgnoreFieldCount bool
}

// ProbeResult is the schema inferred from the head of a file.
type ProbeResult struct {
	Schema        common.Schema
	Width         int
	HeaderPresent bool
	Sampled       uint64 // data records examined
}

// Probe infers a schema from the leading records of r.
//
// With a header the first record names the columns and sets the reference
// width. Without one the first data record sets the width and the columns are
// named f0..f{n-1}. Every sampled data record must match the reference width
// unless IgnoreFieldCount is set. A file with no data records has no schema.
func Probe(r *Reader, opts ProbeOptions) (*ProbeResult, error) {
	res := &ProbeResult{HeaderPresent: opts.HeaderPresent}

	var names []string
	if opts.HeaderPresent {
		header, err := r.Read()
		if err == io.EOF {
			return nil, &common.EmptySchemaError{HeaderPresent: true}
		}
		if err != nil {
			return nil, err
		}
		names = make([]string, len(header))
		for i, h := range header {
			if h == "" {
				h = fmt.Sprintf("f%d", i)
			}
			names[i] = h
		}
		res.Width = len(names)
	}

	for opts.SampleSize == 0 || res.Sampled < opts.SampleSize {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if res.Sampled == 0 && !opts.HeaderPresent {
			res.Width = len(rec)
			names = common.SyntheticNames(len(rec))
		} else if len(rec) != res.Width && !opts.IgnoreFieldCount {
			return nil, &common.SchemaInconsistencyError{
				Line:     r.Line(),
				Found:    len(rec),
				Expected: res.Width,
			}
		}
		res.Sampled++
	}

	if res.Sampled == 0 || res.Width == 0 {
		return nil, &common.EmptySchemaError{HeaderPresent: opts.HeaderPresent}
	}

	res.Schema = common.TextSchema(names)
	return res, nil
}
