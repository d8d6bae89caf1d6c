package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sflanaga/csvtolite/config"
	"github.com/sflanaga/csvtolite/loader"
	_ "github.com/sflanaga/csvtolite/loader/dialect/all"
	"github.com/sflanaga/csvtolite/loader/report"
	"github.com/sflanaga/csvtolite/logging"
)

const about = `Import csv files into sqlite3

e.g. csvtolite -f flights_1.csv -f flights_2.csv -r '^(.+)_\d+\.csv' -s '|' -d mytest.db
    writes flight data into a table called flights into mytest.db sqlite3 database`

type flags struct {
	configPath  string
	writeConfig string
}

func newRootCmd() *cobra.Command {
	cfg := config.DefaultConfig()
	var fl flags

	cmd := &cobra.Command{
		Use:           "csvtolite [flags] [file...]",
		Short:         "Import csv files into sqlite3",
		Long:          about,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			effective, err := resolveConfig(cmd, cfg, fl.configPath)
			if err != nil {
				return err
			}
			effective.Files = append(effective.Files, args...)

			if err := effective.Validate(); err != nil {
				return fmt.Errorf("error in cli options: %w", err)
			}
			if fl.writeConfig != "" {
				if err := config.Export(fl.writeConfig, effective); err != nil {
					return err
				}
			}
			return run(context.Background(), effective, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	f := cmd.Flags()
	f.StringArrayVarP(&cfg.Files, "file", "f", nil, "list of input files")
	f.StringVarP(&cfg.FileRegex, "filere", "r", "", "regex to parse tablename out of the filename(s) using the 1st sub group")
	f.StringVarP(&cfg.TableName, "tablename", "t", "", "tablename into which to write data")
	f.StringVarP(&cfg.Database, "open_db", "d", "", "existing database to import into (or a DSN for postgres/mysql)")
	f.CountVarP(&cfg.Verbose, "verbose", "v", "verbosity - use more than one v for greater detail")
	f.StringVarP(&cfg.Separator, "field_sep", "s", cfg.Separator, "field separator used in the csv file")
	f.BoolVarP(&cfg.Overwrite, "overwrite_tables", "o", false, `replace tables if they already exist via a "drop"`)
	f.StringVar(&cfg.Quote, "quote", cfg.Quote, "quote used for field parsing")
	f.StringVar(&cfg.Escape, "escape", "", `escape used for field parsing - typically a \`)
	f.StringVar(&cfg.Comment, "comment", "", "comment character for lines to skip in csv")
	f.BoolVar(&cfg.HeaderOn, "headeron", false, "use the first line as field names instead of f0, f1, f2...")
	f.Uint64Var(&cfg.SanitySample, "sanity_sample", 0, "number of rows to sanity check against header and schema - zero means all")
	f.BoolVar(&cfg.IgnoreFieldCount, "ignore_field_count", false, "allow import of records that have different number of fields from header or table")
	f.StringArrayVar(&cfg.SQLs, "sqls", nil, "run 1 or more sql after the import, good especially for memory based DBs")
	f.StringVar(&cfg.OutDelimiter, "out_delimiter", cfg.OutDelimiter, "field delimiter for --sqls output")
	f.StringVar(&cfg.OutFormat, "out_format", cfg.OutFormat, "format for --sqls output: csv, html or xlsx")
	f.StringVar(&cfg.OutFile, "out_file", "", "write --sqls output to this file instead of stdout")
	f.BoolVar(&cfg.Memory, "memory", false, "create the database in memory - use with --sqls as it will disappear")
	f.StringVar(&cfg.Driver, "driver", cfg.Driver, "store dialect: sqlite, postgres or mysql")
	f.BoolVar(&cfg.Pretty, "pretty", false, "human readable log output")
	f.StringVar(&fl.configPath, "config", "", "HCL file with default settings, flags override it")
	f.StringVar(&fl.writeConfig, "write-config", "", "write the effective settings to this HCL file")

	return cmd
}

// resolveConfig layers explicitly set flags over the config file, if any.
func resolveConfig(cmd *cobra.Command, fromFlags *config.Config, path string) (*config.Config, error) {
	if path == "" {
		return fromFlags, nil
	}
	base, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	set := map[string]func(){
		"file":               func() { base.Files = fromFlags.Files },
		"filere":             func() { base.FileRegex = fromFlags.FileRegex },
		"tablename":          func() { base.TableName = fromFlags.TableName },
		"open_db":            func() { base.Database = fromFlags.Database },
		"verbose":            func() { base.Verbose = fromFlags.Verbose },
		"field_sep":          func() { base.Separator = fromFlags.Separator },
		"overwrite_tables":   func() { base.Overwrite = fromFlags.Overwrite },
		"quote":              func() { base.Quote = fromFlags.Quote },
		"escape":             func() { base.Escape = fromFlags.Escape },
		"comment":            func() { base.Comment = fromFlags.Comment },
		"headeron":           func() { base.HeaderOn = fromFlags.HeaderOn },
		"sanity_sample":      func() { base.SanitySample = fromFlags.SanitySample },
		"ignore_field_count": func() { base.IgnoreFieldCount = fromFlags.IgnoreFieldCount },
		"sqls":               func() { base.SQLs = fromFlags.SQLs },
		"out_delimiter":      func() { base.OutDelimiter = fromFlags.OutDelimiter },
		"out_format":         func() { base.OutFormat = fromFlags.OutFormat },
		"out_file":           func() { base.OutFile = fromFlags.OutFile },
		"memory":             func() { base.Memory = fromFlags.Memory },
		"driver":             func() { base.Driver = fromFlags.Driver },
		"pretty":             func() { base.Pretty = fromFlags.Pretty },
	}
	for name, apply := range set {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
	return base, nil
}

func run(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer) error {
	logger := newLogger(cfg, stderr)
	ctx = logger.WithContext(ctx)
	logger.Trace().Interface("config", cfg).Msg("cli cfg")

	if cfg.Driver == "sqlite" && !cfg.Memory {
		if _, err := os.Stat(cfg.Database); errors.Is(err, os.ErrNotExist) {
			logger.Warn().Msgf("No existing data so creating new one at file: %s", cfg.Database)
		}
	}

	db, d, err := loader.OpenStore(ctx, cfg.Driver, cfg.Database, cfg.Memory)
	if err != nil {
		return err
	}
	defer db.Close()

	var errs []error
	jobs := make([]loader.Job, 0, len(cfg.Files))
	for _, path := range cfg.Files {
		table, err := cfg.TableNameFor(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		jobs = append(jobs, loader.Job{Path: path, Table: table})
	}

	if _, err := loader.Run(ctx, db, d, jobs, cfg.LoadOptions()); err != nil {
		errs = append(errs, err)
	}

	if len(cfg.SQLs) > 0 {
		if err := runReports(ctx, db, cfg, stdout); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func newLogger(cfg *config.Config, w io.Writer) zerolog.Logger {
	return logging.New(w, cfg.Verbose, cfg.Pretty).With().Str("run_id", uuid.NewString()).Logger()
}

func runReports(ctx context.Context, db report.Queryer, cfg *config.Config, stdout io.Writer) error {
	out := stdout
	if cfg.OutFile != "" {
		f, err := os.Create(cfg.OutFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	var sink report.Sink
	switch cfg.OutFormat {
	case "html":
		sink = report.NewHTML(out)
	case "xlsx":
		sink = report.NewXLSX(out)
	default:
		sink = report.NewDelimited(out, cfg.OutDelimiter)
	}

	if err := report.RunQueries(ctx, db, cfg.SQLs, sink); err != nil {
		sink.Close()
		return err
	}
	return sink.Close()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		_, _ = errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
