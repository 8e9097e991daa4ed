package convert

import (
	"fmt"
	"regexp"
	"strings"
)

// Format is the markup language of a piece of content.
type Format string

// Supported formats. FormatAuto asks Convert to detect the format.
const (
	FormatAuto     Format = "auto"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatPlain    Format = "plain"
)

// ParseFormat parses a format name. The empty string means auto.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return FormatAuto, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	case "plain", "text", "txt":
		return FormatPlain, nil
	default:
		return "", fmt.Errorf("%w %q; valid formats: auto, markdown, html, plain", ErrUnknownFormat, name)
	}
}

// String returns the format name.
func (f Format) String() string {
	return string(f)
}

// IsValid reports whether f is a known format.
func (f Format) IsValid() bool {
	switch f {
	case FormatAuto, FormatMarkdown, FormatHTML, FormatPlain:
		return true
	default:
		return false
	}
}

//nolint:gochecknoglobals // Compiled once, read-only.
var (
	tagPair        = regexp.MustCompile(`<[^>]*>`)
	leadingHeading = regexp.MustCompile(`(?m)^#`)
)

// DetectFormat guesses the format of content: a <...> pair means HTML;
// otherwise "**", "*", a backtick or a line starting with '#' means
// Markdown; anything else is plain text.
func DetectFormat(content string) Format {
	if tagPair.MatchString(content) {
		return FormatHTML
	}
	if strings.Contains(content, "**") ||
		strings.Contains(content, "*") ||
		strings.Contains(content, "`") ||
		leadingHeading.MatchString(content) {
		return FormatMarkdown
	}
	return FormatPlain
}
