package loader

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sflanaga/csvtolite/loader/common"
	"github.com/sflanaga/csvtolite/loader/csv"
	"github.com/sflanaga/csvtolite/loader/source"
)

// Job is one file to load and the table it goes into.
type Job struct {
	Path  string
	Table string
}

// FileError ties a failure to the file and table it happened on.
type FileError struct {
	Path  string
	Table string
	Err   error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("file %s (table %s): %v", e.Path, e.Table, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// LoadFile probes path, reconciles table with the result and loads the file
// in one transaction. Probing and loading read the file in two separate passes.
func LoadFile(ctx context.Context, db *sql.DB, d common.Dialect, job Job, opts common.LoadOptions) (common.Outcome, error) {
	logger := zerolog.Ctx(ctx).With().Str("file", job.Path).Str("table", job.Table).Logger()
	ctx = logger.WithContext(ctx)

	logger.Warn().Msgf("tablename: %s from file: %s", job.Table, job.Path)
	start := time.Now()

	probed, err := probeFile(job.Path, opts)
	if err != nil {
		return common.Outcome{}, err
	}
	logger.Trace().Interface("schema", probed.Schema).Uint64("sampled", probed.Sampled).Msg("file schema")

	rec, err := Reconcile(ctx, db, d, job.Table, probed.Schema, ReconcileOptions{
		Overwrite:        opts.Overwrite,
		IgnoreFieldCount: opts.IgnoreFieldCount,
	})
	if err != nil {
		return common.Outcome{}, err
	}
	logger.Debug().Stringer("action", rec.Action).Msg("schema reconciled")

	stream, err := source.Open(job.Path)
	if err != nil {
		return common.Outcome{}, err
	}
	defer stream.Close()

	out, err := Load(ctx, db, d, csv.NewReader(stream, opts.Parse), job.Table, rec.Schema, BulkOptions{
		HeaderPresent:    probed.HeaderPresent,
		IgnoreFieldCount: opts.IgnoreFieldCount,
	})
	if err != nil {
		return common.Outcome{}, err
	}

	logger.Warn().Msgf("Loaded %d/%d rows/fields into %q in %.3f seconds",
		out.Rows, out.Fields, job.Table, time.Since(start).Seconds())
	return out, nil
}

func probeFile(path string, opts common.LoadOptions) (*csv.ProbeResult, error) {
	stream, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	return csv.Probe(csv.NewReader(stream, opts.Parse), csv.ProbeOptions{
		HeaderPresent:    opts.HeaderPresent,
		SampleSize:       opts.SampleSize,
		IgnoreFieldCount: opts.IgnoreFieldCount,
	})
}

// Run loads each job in order. A failing file is rolled back and reported but
// does not stop the remaining files. The returned error joins every failure.
func Run(ctx context.Context, db *sql.DB, d common.Dialect, jobs []Job, opts common.LoadOptions) ([]common.Outcome, error) {
	logger := zerolog.Ctx(ctx)

	outcomes := make([]common.Outcome, len(jobs))
	var errs []error
	for i, job := range jobs {
		out, err := LoadFile(ctx, db, d, job, opts)
		if err != nil {
			ferr := &FileError{Path: job.Path, Table: job.Table, Err: err}
			logger.Error().Err(err).Str("file", job.Path).Str("table", job.Table).Msg("load failed")
			errs = append(errs, ferr)
			continue
		}
		outcomes[i] = out
	}
	return outcomes, errors.Join(errs...)
}
