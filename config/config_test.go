package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sflanaga/csvtolite/loader/common"
)

func TestExportAndLoad(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.hcl")

	cfg := DefaultConfig()
	cfg.Files = []string{"a.csv", "b.csv"}
	cfg.FileRegex = `^(.+)_\d+\.csv`
	cfg.Separator = "\t"
	cfg.Escape = `\`
	cfg.HeaderOn = true
	cfg.SanitySample = 500
	cfg.SQLs = []string{"select count(*) from flights"}
	cfg.Verbose = 2

	require.NoError(t, Export(configPath, cfg))

	loaded, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "empty.hcl")
	require.NoError(t, os.WriteFile(configPath, []byte(""), 0644))

	loaded, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), loaded)
}

func TestLoadPartial(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "partial.hcl")
	content := `
table     = "flights"
separator = "|"
header_on = true
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	loaded, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "flights", loaded.TableName)
	assert.Equal(t, "|", loaded.Separator)
	assert.True(t, loaded.HeaderOn)
	assert.Equal(t, `"`, loaded.Quote)
}

func TestLoadBadSyntax(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bad.hcl")
	require.NoError(t, os.WriteFile(configPath, []byte("table = "), 0644))

	_, err := Load(configPath)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "flights_1.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("a\n1\n"), 0644))

	valid := func() *Config {
		cfg := DefaultConfig()
		cfg.Files = []string{csvPath}
		cfg.TableName = "flights"
		cfg.Database = filepath.Join(dir, "out.db")
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"Valid", func(c *Config) {}, false},
		{"MemoryNeedsNoDatabase", func(c *Config) { c.Database = ""; c.Memory = true }, false},
		{"Regex", func(c *Config) { c.TableName = ""; c.FileRegex = `(\w+)_\d+` }, false},
		{"BothTableAndRegex", func(c *Config) { c.FileRegex = `(\w+)` }, true},
		{"NeitherTableNorRegex", func(c *Config) { c.TableName = "" }, true},
		{"RegexWithoutGroup", func(c *Config) { c.TableName = ""; c.FileRegex = `\w+` }, true},
		{"RegexInvalid", func(c *Config) { c.TableName = ""; c.FileRegex = `(` }, true},
		{"MissingFile", func(c *Config) { c.Files = []string{filepath.Join(dir, "nope.csv")} }, true},
		{"DirectoryAsFile", func(c *Config) { c.Files = []string{dir} }, true},
		{"DatabaseIsDirectory", func(c *Config) { c.Database = dir }, true},
		{"NoDatabase", func(c *Config) { c.Database = "" }, true},
		{"LongSeparator", func(c *Config) { c.Separator = "||" }, true},
		{"NonASCIISeparator", func(c *Config) { c.Separator = "§" }, true},
		{"EmptyQuote", func(c *Config) { c.Quote = "" }, true},
		{"LongEscape", func(c *Config) { c.Escape = `\\` }, true},
		{"UnknownDriver", func(c *Config) { c.Driver = "oracle" }, true},
		{"UnknownFormat", func(c *Config) { c.OutFormat = "pdf" }, true},
		{"PostgresNoDatabaseCheck", func(c *Config) { c.Driver = "postgres"; c.Database = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTableNameFor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TableName = "fixed"
	name, err := cfg.TableNameFor("/data/anything.csv")
	require.NoError(t, err)
	assert.Equal(t, "fixed", name)

	cfg = DefaultConfig()
	cfg.FileRegex = `([a-z]+)_\d+\.csv`
	name, err = cfg.TableNameFor("/data/flights_1.csv")
	require.NoError(t, err)
	assert.Equal(t, "flights", name)

	_, err = cfg.TableNameFor("/data/README")
	assert.Error(t, err)

	cfg.FileRegex = `([a-z]*)\d+\.csv`
	_, err = cfg.TableNameFor("/data/2024.csv")
	assert.Error(t, err)
}

func TestLoadOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Separator = "|"
	cfg.Comment = "#"
	cfg.HeaderOn = true
	cfg.SanitySample = 10
	cfg.Overwrite = true

	opts := cfg.LoadOptions()
	assert.Equal(t, common.ParseOptions{Separator: '|', Quote: '"', Comment: '#'}, opts.Parse)
	assert.True(t, opts.HeaderPresent)
	assert.Equal(t, uint64(10), opts.SampleSize)
	assert.True(t, opts.Overwrite)
	assert.False(t, opts.IgnoreFieldCount)
}
