package common

// ParseOptions configures the record reader. Escape and Comment are disabled when zero.
type ParseOptions struct {
	Separator byte
	Quote     byte
	Escape    byte
	Comment   byte
}

// DefaultParseOptions returns comma separated, double-quoted parsing.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		Separator: ',',
		Quote:     '"',
	}
}

// LoadOptions stores the per-file knobs shared by the prober, reconciler and loader.
type LoadOptions struct {
	Parse            ParseOptions
	HeaderPresent    bool   // First record holds column names
	SampleSize       uint64 // Records checked while probing, 0 means all
	IgnoreFieldCount bool   // Tolerate width differences
	Overwrite        bool   // Drop the table before loading
}

// DefaultLoadOptions returns the options used when nothing is configured.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{Parse: DefaultParseOptions()}
}

// Outcome is the result of a committed load.
type Outcome struct {
	Rows   uint64
	Fields uint64
}
