package config

import (
	"fmt"
	"strings"
)

// IsValid returns true if the input format is known.
func (f InputFormat) IsValid() bool {
	switch f {
	case InputAuto, InputMarkdown, InputHTML, InputPlain:
		return true
	default:
		return false
	}
}

// IsValid returns true if the flavor is known.
func (f Flavor) IsValid() bool {
	return f == FlavorCommonMark || f == FlavorGFM
}

// IsValid returns true if the normalization is known.
func (n Normalization) IsValid() bool {
	return n == NormalizationNone || n == NormalizationNFC
}

// IsValid returns true if the output format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputJSON, OutputText, OutputTable, OutputSummary:
		return true
	default:
		return false
	}
}

// ParseOutputFormat parses a report format name, case-insensitively.
func ParseOutputFormat(name string) (OutputFormat, error) {
	f := OutputFormat(strings.ToLower(strings.TrimSpace(name)))
	if !f.IsValid() {
		return "", fmt.Errorf("invalid output format %q; must be one of: json, text, table, summary", name)
	}
	return f, nil
}

// ParseNormalization parses a normalization name. The empty string means none.
func ParseNormalization(name string) (Normalization, error) {
	if name == "" {
		return NormalizationNone, nil
	}
	n := Normalization(strings.ToLower(name))
	if !n.IsValid() {
		return "", fmt.Errorf("invalid unicode normalization %q; must be one of: none, nfc", name)
	}
	return n, nil
}
