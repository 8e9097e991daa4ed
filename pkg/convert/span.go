package convert

import (
	"fmt"

	"github.com/yaklabco/gdocmark/pkg/docops"
)

// SpanKind says which style a Span carries.
type SpanKind int

const (
	SpanParagraphStyle SpanKind = iota + 1
	SpanCharacterStyle
	SpanListMarker
)

// String implements fmt.Stringer.
func (k SpanKind) String() string {
	switch k {
	case SpanParagraphStyle:
		return "paragraph"
	case SpanCharacterStyle:
		return "character"
	case SpanListMarker:
		return "list"
	default:
		return fmt.Sprintf("SpanKind(%d)", int(k))
	}
}

// Span is a half-open offset range with the style to apply to it.
// Only the style field matching Kind is meaningful.
type Span struct {
	Kind  SpanKind
	Start int
	End   int

	Paragraph docops.ParagraphStyle
	Character docops.TextStyle
	Preset    docops.BulletPreset
}

func paragraphSpan(start, end int, style docops.ParagraphStyle) Span {
	return Span{Kind: SpanParagraphStyle, Start: start, End: end, Paragraph: style}
}

func characterSpan(start, end int, style docops.TextStyle) Span {
	return Span{Kind: SpanCharacterStyle, Start: start, End: end, Character: style}
}

func listMarkerSpan(start, end int, preset docops.BulletPreset) Span {
	return Span{Kind: SpanListMarker, Start: start, End: end, Preset: preset}
}

// Shift returns the span moved by delta offsets.
func (s Span) Shift(delta int) Span {
	s.Start += delta
	s.End += delta
	return s
}

// Len returns the number of offsets covered.
func (s Span) Len() int {
	return s.End - s.Start
}

// Range returns the span's offsets as a docops.Range.
func (s Span) Range() docops.Range {
	return docops.Range{StartIndex: s.Start, EndIndex: s.End}
}

// Operation returns the style operation for the span.
func (s Span) Operation() docops.Operation {
	switch s.Kind {
	case SpanParagraphStyle:
		return docops.SetParagraphStyle{Range: s.Range(), Style: s.Paragraph}
	case SpanListMarker:
		return docops.SetListMarker{Range: s.Range(), Preset: s.Preset}
	default:
		return docops.SetCharacterStyle{Range: s.Range(), Style: s.Character}
	}
}
