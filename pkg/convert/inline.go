package convert

import (
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/yaklabco/gdocmark/pkg/docops"
)

// construct is a class of inline syntax. Classes are matched in
// declaration order; earlier classes win overlapping ranges.
type construct int

const (
	constructBold construct = iota
	constructItalic
	constructStrikethrough
	constructCode
	constructLink
)

//nolint:gochecknoglobals // Compiled once, read-only.
var (
	boldPattern   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	strikePattern = regexp.MustCompile(`~~(.+?)~~`)
	codePattern   = regexp.MustCompile("`([^`]+?)`")
	linkPattern   = regexp.MustCompile(`\[([^\]]+?)\]\(([^)]+?)\)`)
)

// inlineMatch is one located construct, in byte offsets of the source line.
// The open marker is [start, contentStart) and the close marker is
// [contentEnd, end).
type inlineMatch struct {
	class        construct
	start        int
	end          int
	contentStart int
	contentEnd   int

	// url and its byte range are set for links only.
	url      string
	urlStart int
	urlEnd   int
}

// inTarget reports whether other lies entirely inside m's link target.
func (m inlineMatch) inTarget(other inlineMatch) bool {
	return m.class == constructLink && other.start >= m.urlStart && other.end <= m.urlEnd
}

// encloses reports whether other lies entirely inside m's content.
func (m inlineMatch) encloses(other inlineMatch) bool {
	return other.start >= m.contentStart && other.end <= m.contentEnd
}

// compatible reports whether two matches can both be applied: they are
// disjoint or one sits entirely inside the other's content.
func compatible(a, b inlineMatch) bool {
	return a.end <= b.start || b.end <= a.start || a.encloses(b) || b.encloses(a)
}

// style returns the character style for the match's class.
func (m inlineMatch) style() docops.TextStyle {
	switch m.class {
	case constructBold:
		return docops.TextStyle{Bold: true}
	case constructItalic:
		return docops.TextStyle{Italic: true}
	case constructStrikethrough:
		return docops.TextStyle{Strikethrough: true}
	case constructCode:
		return docops.TextStyle{
			FontSize:           docops.Points(10),
			WeightedFontFamily: &docops.WeightedFontFamily{FontFamily: "Courier New"},
			BackgroundColor:    docops.RGB(0.95, 0.95, 0.95),
		}
	case constructLink:
		return docops.TextStyle{
			Underline:       true,
			ForegroundColor: docops.RGB(0, 0, 1),
			Link:            &docops.Link{URL: m.url},
		}
	default:
		return docops.TextStyle{}
	}
}

// finder returns the first candidate of one class starting at or after from.
type finder func(text string, from int) (inlineMatch, bool)

// finders lists the construct classes in precedence order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var finders = []finder{
	patternFinder(constructBold, boldPattern),
	findItalic,
	patternFinder(constructStrikethrough, strikePattern),
	patternFinder(constructCode, codePattern),
	findLink,
}

func patternFinder(class construct, re *regexp.Regexp) finder {
	return func(text string, from int) (inlineMatch, bool) {
		loc := re.FindStringSubmatchIndex(text[from:])
		if loc == nil {
			return inlineMatch{}, false
		}
		return inlineMatch{
			class:        class,
			start:        from + loc[0],
			end:          from + loc[1],
			contentStart: from + loc[2],
			contentEnd:   from + loc[3],
		}, true
	}
}

// findItalic matches *X* where neither asterisk touches another asterisk
// and X contains none.
func findItalic(text string, from int) (inlineMatch, bool) {
	for open := from; open < len(text); open++ {
		if text[open] != '*' {
			continue
		}
		if open > 0 && text[open-1] == '*' {
			continue
		}
		if open+1 >= len(text) || text[open+1] == '*' {
			continue
		}

		rel := strings.IndexByte(text[open+1:], '*')
		if rel < 0 {
			return inlineMatch{}, false
		}
		closing := open + 1 + rel
		if closing+1 < len(text) && text[closing+1] == '*' {
			continue
		}

		return inlineMatch{
			class:        constructItalic,
			start:        open,
			end:          closing + 1,
			contentStart: open + 1,
			contentEnd:   closing,
		}, true
	}
	return inlineMatch{}, false
}

func findLink(text string, from int) (inlineMatch, bool) {
	loc := linkPattern.FindStringSubmatchIndex(text[from:])
	if loc == nil {
		return inlineMatch{}, false
	}
	return inlineMatch{
		class:        constructLink,
		start:        from + loc[0],
		end:          from + loc[1],
		contentStart: from + loc[2],
		contentEnd:   from + loc[3],
		url:          text[from+loc[4] : from+loc[5]],
		urlStart:     from + loc[4],
		urlEnd:       from + loc[5],
	}, true
}

// locate finds every applied construct in text, in discovery order: class
// by class, left to right within a class. A candidate that conflicts with
// an accepted match is dropped and scanning resumes one byte later. A link
// wins over matches inside its target, which stays verbatim.
func locate(text string) []inlineMatch {
	var accepted []inlineMatch

	for _, find := range finders {
		pos := 0
		for pos < len(text) {
			candidate, ok := find(text, pos)
			if !ok {
				break
			}
			if conflictsWith(accepted, candidate) {
				pos = candidate.start + 1
				continue
			}
			accepted = slices.DeleteFunc(accepted, candidate.inTarget)
			accepted = append(accepted, candidate)
			pos = candidate.end
		}
	}

	return accepted
}

func conflictsWith(accepted []inlineMatch, candidate inlineMatch) bool {
	for _, m := range accepted {
		if !compatible(m, candidate) && !candidate.inTarget(m) {
			return true
		}
	}
	return false
}

// interval is a half-open byte range of removed marker characters.
type interval struct {
	start int
	end   int
}

// markerIntervals returns the marker ranges of all matches, sorted.
// Accepted matches never share marker bytes, so the ranges are disjoint.
func markerIntervals(matches []inlineMatch) []interval {
	removed := make([]interval, 0, 2*len(matches))
	for _, m := range matches {
		removed = append(removed,
			interval{start: m.start, end: m.contentStart},
			interval{start: m.contentEnd, end: m.end},
		)
	}
	sort.Slice(removed, func(i, j int) bool {
		return removed[i].start < removed[j].start
	})
	return removed
}

// strip returns text with the removed ranges deleted.
func strip(text string, removed []interval) string {
	var sb strings.Builder
	sb.Grow(len(text))
	pos := 0
	for _, iv := range removed {
		sb.WriteString(text[pos:iv.start])
		pos = iv.end
	}
	sb.WriteString(text[pos:])
	return sb.String()
}

// cleanOffset maps a byte offset of the source line to a byte offset of the
// stripped line by subtracting every marker byte removed before it.
func cleanOffset(pos int, removed []interval) int {
	shift := 0
	for _, iv := range removed {
		if iv.end > pos {
			break
		}
		shift += iv.end - iv.start
	}
	return pos - shift
}

// FormatInline strips inline syntax from text. It returns the clean text and
// one character span per construct, offset by basePos so that the spans are
// relative to wherever the clean text will start.
//
// Matches are located against the original text first; clean offsets are
// then derived by subtracting the marker characters removed before each
// position. Unterminated markers are left as literal text.
func FormatInline(text string, basePos int) (string, []Span) {
	matches := locate(text)
	if len(matches) == 0 {
		return text, nil
	}

	removed := markerIntervals(matches)
	clean := strip(text, removed)

	spans := make([]Span, 0, len(matches))
	for _, m := range matches {
		start := textLen(clean[:cleanOffset(m.contentStart, removed)])
		end := textLen(clean[:cleanOffset(m.contentEnd, removed)])
		spans = append(spans, characterSpan(basePos+start, basePos+end, m.style()))
	}

	return clean, spans
}
