// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ANSI palette indexes.
const (
	colorGray   = "8"
	colorRed    = "9"
	colorGreen  = "10"
	colorYellow = "11"
	colorBlue   = "12"
	colorPink   = "13"
	colorCyan   = "14"
	colorWhite  = "7"
)

// Styles holds the renderers used by text, table and summary output.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Operation listing.
	FilePath lipgloss.Style
	Location lipgloss.Style
	Kind     lipgloss.Style
	Range    lipgloss.Style
	Style    lipgloss.Style
	Preview  lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	TableHeader    lipgloss.Style
	TableErrorRow  lipgloss.Style
	TableWarnRow   lipgloss.Style
	TableSeparator lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles returns plain styles, or the colored palette when colorEnabled.
func NewStyles(colorEnabled bool) *Styles {
	plain := lipgloss.NewStyle()
	s := &Styles{
		Error: plain, Warning: plain, Info: plain,
		FilePath: plain, Location: plain, Kind: plain, Range: plain, Style: plain, Preview: plain,
		SummaryTitle: plain, SummaryValue: plain, Success: plain, Failure: plain,
		TableHeader: plain, TableErrorRow: plain, TableWarnRow: plain, TableSeparator: plain,
		Dim: plain, Bold: plain,
	}
	if !colorEnabled {
		return s
	}

	fg := func(c string) lipgloss.Style { return plain.Foreground(lipgloss.Color(c)) }
	bold := plain.Bold(true)

	s.Error = fg(colorRed).Bold(true)
	s.Warning = fg(colorYellow).Bold(true)
	s.Info = fg(colorBlue).Bold(true)

	s.FilePath = bold
	s.Location = fg(colorGray)
	s.Kind = fg(colorCyan)
	s.Range = fg(colorGray)
	s.Style = fg(colorPink)
	s.Preview = fg(colorWhite)

	s.SummaryTitle = bold
	s.Success = fg(colorGreen).Bold(true)
	s.Failure = fg(colorRed).Bold(true)

	s.TableHeader = fg(colorWhite).Bold(true)
	s.TableErrorRow = fg(colorRed)
	s.TableWarnRow = fg(colorYellow)
	s.TableSeparator = fg(colorGray)

	s.Dim = fg(colorGray)
	s.Bold = bold
	return s
}

// IsColorEnabled resolves a --color mode for writer. "always" and "never"
// are absolute; anything else is auto, which colors only terminals and
// honors NO_COLOR and TERM=dumb.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "always":
		return true
	case "never":
		return false
	}

	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
