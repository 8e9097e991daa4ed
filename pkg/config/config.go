// Package config defines core configuration types for gdocmark.
// These types are pure data structures with no dependency on the loader or
// the converter.
package config

// DefaultStartIndex is the first writable offset of an empty document body.
const DefaultStartIndex = 1

// InputFormat selects how input content is interpreted.
type InputFormat string

const (
	InputAuto     InputFormat = "auto"
	InputMarkdown InputFormat = "markdown"
	InputHTML     InputFormat = "html"
	InputPlain    InputFormat = "plain"
)

// Flavor specifies the Markdown flavor used when inspecting input.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// Normalization selects Unicode normalization applied before conversion.
type Normalization string

const (
	NormalizationNone Normalization = "none"
	NormalizationNFC  Normalization = "nfc"
)

// OutputFormat specifies how conversion results are reported.
type OutputFormat string

const (
	OutputJSON    OutputFormat = "json"
	OutputText    OutputFormat = "text"
	OutputTable   OutputFormat = "table"
	OutputSummary OutputFormat = "summary"
)

// Config is the root configuration structure for gdocmark.
type Config struct {
	// Format is the input format; auto detects it per file.
	Format InputFormat `yaml:"format,omitempty"`

	// StartIndex is the document offset where content is inserted.
	// Nil means DefaultStartIndex.
	StartIndex *int `yaml:"start_index,omitempty"`

	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `yaml:"flavor,omitempty"`

	// Inspect enables reporting of Markdown constructs the converter
	// leaves as literal text. Nil means enabled.
	Inspect *bool `yaml:"inspect,omitempty"`

	// UnicodeNormalization is applied to content before conversion.
	UnicodeNormalization Normalization `yaml:"unicode_normalization,omitempty"`

	// Ignore contains glob patterns for files to skip during discovery.
	Ignore []string `yaml:"ignore,omitempty"`

	// Extensions lists the file extensions picked up when walking
	// directories. Empty means the built-in set.
	Extensions []string `yaml:"extensions,omitempty"`

	// CLI-level options (not persisted to config files).

	// Output specifies the report format.
	Output OutputFormat `yaml:"-"`

	// OutDir, when set, receives one request body file per input.
	OutDir string `yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// Compact disables indentation in JSON output.
	Compact bool `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Format:               InputAuto,
		StartIndex:           IntPtr(DefaultStartIndex),
		Flavor:               FlavorCommonMark,
		Inspect:              BoolPtr(true),
		UnicodeNormalization: NormalizationNone,
		Ignore:               nil,
		Extensions:           nil,
		Output:               OutputJSON,
		Jobs:                 0, // 0 means use GOMAXPROCS
	}
}

// Start returns the configured start index or the default.
func (c *Config) Start() int {
	if c == nil || c.StartIndex == nil {
		return DefaultStartIndex
	}
	return *c.StartIndex
}

// InspectEnabled reports whether Markdown inspection is on.
func (c *Config) InspectEnabled() bool {
	if c == nil || c.Inspect == nil {
		return true
	}
	return *c.Inspect
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}

// BoolPtr returns a pointer to v.
func BoolPtr(v bool) *bool {
	return &v
}
