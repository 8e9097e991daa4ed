package pretty

import (
	"fmt"
	"strings"
	"unicode/utf16"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/gdocmark/pkg/docops"
	"github.com/yaklabco/gdocmark/pkg/inspect"
)

const (
	kindColumnWidth  = 24
	rangeColumnWidth = 10
	styleColumnWidth = 28

	// DefaultPreviewWidth is the display width of text previews.
	DefaultPreviewWidth = 40

	lineSeparatorGlyph = "⏎"
	ellipsis           = "…"
)

// Preview renders text on one line: line separators are shown as ⏎ and the
// result is cut to width display cells, so wide characters count double.
func Preview(text string, width int) string {
	text = strings.ReplaceAll(text, "\n", lineSeparatorGlyph)
	if width <= 0 {
		return text
	}
	return runewidth.Truncate(text, width, ellipsis)
}

// SpanText returns the part of text covered by r when text starts at
// document offset base. Offsets count UTF-16 code units. Out-of-range
// bounds are clamped.
func SpanText(text string, base int, r docops.Range) string {
	units := utf16.Encode([]rune(text))
	start := min(max(r.StartIndex-base, 0), len(units))
	end := min(max(r.EndIndex-base, start), len(units))
	return string(utf16.Decode(units[start:end]))
}

// describeStyle names what an operation applies, e.g. "HEADING_1" or
// "bold,italic".
func describeStyle(op docops.Operation) string {
	switch o := op.(type) {
	case docops.SetParagraphStyle:
		if o.Style.NamedStyleType != "" {
			return o.Style.NamedStyleType
		}
		return strings.Join(o.Style.Fields(), ",")
	case docops.SetCharacterStyle:
		return strings.Join(o.Style.Fields(), ",")
	case docops.SetListMarker:
		return string(o.Preset)
	default:
		return ""
	}
}

// FormatOperation formats one operation of a document whose text starts at
// base. The preview shows the text the operation inserts or styles.
func (s *Styles) FormatOperation(op docops.Operation, text string, base, previewWidth int) string {
	var covered string
	if insert, ok := op.(docops.InsertText); ok {
		covered = insert.Text
	} else {
		covered = SpanText(text, base, op.Span())
	}

	return fmt.Sprintf("  %s %s %s %s\n",
		s.Kind.Render(padDisplay(string(op.Kind()), kindColumnWidth)),
		s.Range.Render(padDisplay(op.Span().String(), rangeColumnWidth)),
		s.Style.Render(padDisplay(describeStyle(op), styleColumnWidth)),
		s.Preview.Render(fmt.Sprintf("%q", Preview(covered, previewWidth))),
	)
}

// FormatFinding formats an inspection finding as a warning line.
func (s *Styles) FormatFinding(f inspect.Finding) string {
	return fmt.Sprintf("  %s  %s  %s  %s\n",
		s.Location.Render(fmt.Sprintf("line %d", f.Line)),
		s.Warning.Render("warning"),
		f.Message,
		s.Dim.Render("("+string(f.Kind)+")"),
	)
}

// FormatFileHeader formats the heading of one converted input.
func (s *Styles) FormatFileHeader(path, format string, operations int) string {
	word := "operations"
	if operations == 1 {
		word = "operation"
	}
	return s.FilePath.Render(path) + s.Dim.Render(fmt.Sprintf(" (%s, %d %s)", format, operations, word))
}

// FormatFileError formats an input that could not be converted.
func (s *Styles) FormatFileError(path string, err error) string {
	return fmt.Sprintf("%s: %s\n",
		s.FilePath.Render(path),
		s.Error.Render(fmt.Sprintf("error: %v", err)),
	)
}

// padDisplay pads s with spaces to width display cells. It must be called
// before styles are applied.
func padDisplay(s string, width int) string {
	return runewidth.FillRight(s, width)
}
