package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/sflanaga/csvtolite/loader/common"
)

// Config represents the application configuration.
type Config struct {
	Files     []string `hcl:"files,optional"`
	TableName string   `hcl:"table,optional"`
	FileRegex string   `hcl:"file_regex,optional"`

	Database string `hcl:"database,optional"`
	Memory   bool   `hcl:"memory,optional"`
	Driver   string `hcl:"driver,optional" validate:"oneof=sqlite postgres mysql"`

	Separator        string `hcl:"separator,optional" validate:"len=1,ascii"`
	Quote            string `hcl:"quote,optional" validate:"len=1,ascii"`
	Escape           string `hcl:"escape,optional" validate:"omitempty,len=1,ascii"`
	Comment          string `hcl:"comment,optional" validate:"omitempty,len=1,ascii"`
	HeaderOn         bool   `hcl:"header_on,optional"`
	SanitySample     uint64 `hcl:"sanity_sample,optional"`
	IgnoreFieldCount bool   `hcl:"ignore_field_count,optional"`
	Overwrite        bool   `hcl:"overwrite_tables,optional"`

	SQLs         []string `hcl:"sqls,optional"`
	OutDelimiter string   `hcl:"out_delimiter,optional"`
	OutFormat    string   `hcl:"out_format,optional" validate:"oneof=csv html xlsx"`
	OutFile      string   `hcl:"out_file,optional"`

	Verbose int  `hcl:"verbose,optional" validate:"min=0"`
	Pretty  bool `hcl:"pretty,optional"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Driver:       "sqlite",
		Separator:    ",",
		Quote:        `"`,
		OutDelimiter: ",",
		OutFormat:    "csv",
	}
}

// Load reads the configuration from the given HCL file on top of the defaults.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(content, path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file: %s", diags.Error())
	}

	cfg := DefaultConfig()
	diags = gohcl.DecodeBody(file.Body, nil, cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config: %s", diags.Error())
	}

	return cfg, nil
}

func stringList(values []string) cty.Value {
	if len(values) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(values))
	for i, v := range values {
		vals[i] = cty.StringVal(v)
	}
	return cty.ListVal(vals)
}

// Export writes the configuration to the specified file in HCL format.
func Export(path string, cfg *Config) error {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	root.SetAttributeValue("files", stringList(cfg.Files))
	root.SetAttributeValue("table", cty.StringVal(cfg.TableName))
	root.SetAttributeValue("file_regex", cty.StringVal(cfg.FileRegex))
	root.AppendNewline()
	root.SetAttributeValue("database", cty.StringVal(cfg.Database))
	root.SetAttributeValue("memory", cty.BoolVal(cfg.Memory))
	root.SetAttributeValue("driver", cty.StringVal(cfg.Driver))
	root.AppendNewline()
	root.SetAttributeValue("separator", cty.StringVal(cfg.Separator))
	root.SetAttributeValue("quote", cty.StringVal(cfg.Quote))
	root.SetAttributeValue("escape", cty.StringVal(cfg.Escape))
	root.SetAttributeValue("comment", cty.StringVal(cfg.Comment))
	root.SetAttributeValue("header_on", cty.BoolVal(cfg.HeaderOn))
	root.SetAttributeValue("sanity_sample", cty.NumberUIntVal(cfg.SanitySample))
	root.SetAttributeValue("ignore_field_count", cty.BoolVal(cfg.IgnoreFieldCount))
	root.SetAttributeValue("overwrite_tables", cty.BoolVal(cfg.Overwrite))
	root.AppendNewline()
	root.SetAttributeValue("sqls", stringList(cfg.SQLs))
	root.SetAttributeValue("out_delimiter", cty.StringVal(cfg.OutDelimiter))
	root.SetAttributeValue("out_format", cty.StringVal(cfg.OutFormat))
	root.SetAttributeValue("out_file", cty.StringVal(cfg.OutFile))
	root.AppendNewline()
	root.SetAttributeValue("verbose", cty.NumberIntVal(int64(cfg.Verbose)))
	root.SetAttributeValue("pretty", cty.BoolVal(cfg.Pretty))

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	_, err = file.Write(f.Bytes())
	if err != nil {
		return fmt.Errorf("failed to write config to file: %w", err)
	}

	return nil
}

var validate = validator.New()

// Validate checks field formats and the cross-field rules: exactly one of
// table and file_regex when files are given, a regex with a capture group,
// readable input files and a database location that is not a directory.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if len(c.Files) > 0 && (c.TableName == "") == (c.FileRegex == "") {
		return errors.New("one of file_regex or tablename must be specified and not both")
	}
	if c.FileRegex != "" {
		re, err := regexp.Compile(c.FileRegex)
		if err != nil {
			return fmt.Errorf("invalid file_regex: %w", err)
		}
		if re.NumSubexp() < 1 {
			return fmt.Errorf("file_regex %q needs a capture group for the table name", c.FileRegex)
		}
	}

	for _, f := range c.Files {
		info, err := os.Stat(f)
		if err != nil || !info.Mode().IsRegular() {
			return fmt.Errorf("CSV file does not exist or is not a file: %s", f)
		}
	}

	if c.Driver == "sqlite" && !c.Memory {
		if c.Database == "" {
			return errors.New("a database file is required unless memory is set")
		}
		if info, err := os.Stat(c.Database); err == nil && !info.Mode().IsRegular() {
			return fmt.Errorf("file %s is not a file", c.Database)
		}
	}
	return nil
}

// TableNameFor resolves the target table for an input path, either the fixed
// table name or the first capture group of file_regex matched against path.
func (c *Config) TableNameFor(path string) (string, error) {
	if c.FileRegex == "" {
		return c.TableName, nil
	}
	re, err := regexp.Compile(c.FileRegex)
	if err != nil {
		return "", fmt.Errorf("invalid file_regex: %w", err)
	}
	m := re.FindStringSubmatch(path)
	if m == nil {
		return "", fmt.Errorf("was not able to match path %s to file re %s", path, c.FileRegex)
	}
	if len(m) < 2 || m[1] == "" {
		return "", fmt.Errorf("sub group from file re did not match or is not available: %s", path)
	}
	return m[1], nil
}

func firstByte(s string) byte {
	if s == "" {
		return 0
	}
	return s[0]
}

// LoadOptions converts the parsing and reconciliation settings.
func (c *Config) LoadOptions() common.LoadOptions {
	return common.LoadOptions{
		Parse: common.ParseOptions{
			Separator: firstByte(c.Separator),
			Quote:     firstByte(c.Quote),
			Escape:    firstByte(c.Escape),
			Comment:   firstByte(c.Comment),
		},
		HeaderPresent:    c.HeaderOn,
		SampleSize:       c.SanitySample,
		IgnoreFieldCount: c.IgnoreFieldCount,
		Overwrite:        c.Overwrite,
	}
}
