package convert

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yaklabco/gdocmark/pkg/docops"
)

// BlockKind classifies a non-blank source line.
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockOrderedItem
	BlockUnorderedItem
	BlockQuote
)

// String implements fmt.Stringer.
func (k BlockKind) String() string {
	switch k {
	case BlockParagraph:
		return "paragraph"
	case BlockHeading:
		return "heading"
	case BlockOrderedItem:
		return "ordered-item"
	case BlockUnorderedItem:
		return "unordered-item"
	case BlockQuote:
		return "blockquote"
	default:
		return fmt.Sprintf("BlockKind(%d)", int(k))
	}
}

// maxHeadingLevel is the deepest heading the document supports.
const maxHeadingLevel = 6

//nolint:gochecknoglobals // Compiled once, read-only.
var (
	orderedMarker   = regexp.MustCompile(`^\d+\.\s`)
	unorderedMarker = regexp.MustCompile(`^[-*+]\s`)
)

// headingStyles maps heading levels to named paragraph styles.
//
//nolint:gochecknoglobals // Read-only lookup table.
var headingStyles = [maxHeadingLevel + 1]string{
	1: docops.NamedStyleHeading1,
	2: docops.NamedStyleHeading2,
	3: docops.NamedStyleHeading3,
	4: docops.NamedStyleHeading4,
	5: docops.NamedStyleHeading5,
	6: docops.NamedStyleHeading6,
}

// Block is one classified source line.
type Block struct {
	Kind BlockKind

	// Level is the heading level (1-6). Zero for other kinds.
	Level int

	// Raw is the line with its block marker stripped.
	Raw string

	// Clean is Raw with its inline syntax stripped. Set by the assembler.
	Clean string

	// Start is the document offset of the block's first character.
	// Set by the assembler.
	Start int
}

// IsBlank reports whether a line carries no content.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// ClassifyLine classifies one line and strips its block marker.
// It returns false for blank lines, which have no block.
func ClassifyLine(line string) (Block, bool) {
	if IsBlank(line) {
		return Block{}, false
	}

	if level := headingLevel(line); level > 0 {
		return Block{Kind: BlockHeading, Level: level, Raw: line[level+1:]}, true
	}

	if loc := orderedMarker.FindStringIndex(line); loc != nil {
		return Block{Kind: BlockOrderedItem, Raw: line[loc[1]:]}, true
	}

	if loc := unorderedMarker.FindStringIndex(line); loc != nil {
		return Block{Kind: BlockUnorderedItem, Raw: line[loc[1]:]}, true
	}

	if rest, ok := strings.CutPrefix(line, "> "); ok {
		return Block{Kind: BlockQuote, Raw: rest}, true
	}

	return Block{Kind: BlockParagraph, Raw: line}, true
}

// headingLevel returns the number of leading '#' when it is 1-6 and
// followed by a space, and zero otherwise.
func headingLevel(line string) int {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > maxHeadingLevel || level >= len(line) || line[level] != ' ' {
		return 0
	}
	return level
}

// blockquoteStyle is the fixed paragraph style of a quoted line.
func blockquoteStyle() docops.ParagraphStyle {
	return docops.ParagraphStyle{
		IndentFirstLine: docops.Points(18),
		IndentStart:     docops.Points(18),
		BorderLeft: &docops.ParagraphBorder{
			Width: docops.Points(3),
			Color: docops.RGB(0.8, 0.8, 0.8),
		},
	}
}

// blockSpan returns the block-level span covering [start, end), if the
// block kind has one.
func (b Block) blockSpan(start, end int) (Span, bool) {
	switch b.Kind {
	case BlockHeading:
		return paragraphSpan(start, end, docops.ParagraphStyle{NamedStyleType: headingStyles[b.Level]}), true
	case BlockQuote:
		return paragraphSpan(start, end, blockquoteStyle()), true
	case BlockOrderedItem:
		return listMarkerSpan(start, end, docops.NumberedDecimalAlphaRoman), true
	case BlockUnorderedItem:
		return listMarkerSpan(start, end, docops.BulletDiscCircleSquare), true
	case BlockParagraph:
		return Span{}, false
	default:
		return Span{}, false
	}
}
