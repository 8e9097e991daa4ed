package reporter

import (
	"strings"

	"github.com/yaklabco/gdocmark/pkg/config"
)

// Format selects a reporter. The values are the config output formats.
type Format string

const (
	FormatJSON    = Format(config.OutputJSON)
	FormatText    = Format(config.OutputText)
	FormatTable   = Format(config.OutputTable)
	FormatSummary = Format(config.OutputSummary)
)

// ParseFormat accepts any case and surrounding space. The empty string
// selects JSON.
func ParseFormat(s string) (Format, error) {
	if strings.TrimSpace(s) == "" {
		return FormatJSON, nil
	}
	f, err := config.ParseOutputFormat(s)
	if err != nil {
		return "", err
	}
	return Format(f), nil
}

func (f Format) String() string {
	return string(f)
}

// IsValid reports whether f names a reporter.
func (f Format) IsValid() bool {
	return config.OutputFormat(f).IsValid()
}
