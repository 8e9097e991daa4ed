package convert

import "strings"

// lineSeparator ends every assembled line.
const lineSeparator = "\n"

// Document is the assembled result of a Markdown conversion.
type Document struct {
	// Text is the clean text to insert. Every source line, blank or not,
	// contributes a trailing separator.
	Text string

	// Spans are the style spans in absolute document offsets, in
	// discovery order.
	Spans []Span

	// Blocks are the classified non-blank lines.
	Blocks []Block

	// Start is the insertion start index the offsets were computed from.
	Start int

	// End is the running offset after the last line. It always equals
	// Start plus the length of Text.
	End int
}

// SplitLines splits content on the line separator, which is not kept.
func SplitLines(content string) []string {
	return strings.Split(content, lineSeparator)
}

// Assemble joins the converted lines into one document starting at start.
//
// For each non-blank line the block-level span is recorded first, then the
// inline spans; both are already absolute. The running offset advances by
// the clean line length plus one for the separator.
func Assemble(lines []string, start int) Document {
	doc := Document{Start: start}

	var text strings.Builder
	offset := start

	for _, line := range lines {
		block, ok := ClassifyLine(line)
		if !ok {
			text.WriteString(lineSeparator)
			offset++
			continue
		}

		clean, inline := FormatInline(block.Raw, offset)
		length := textLen(clean)

		block.Clean = clean
		block.Start = offset
		doc.Blocks = append(doc.Blocks, block)

		// Zero-width ranges are rejected by the document service.
		if length > 0 {
			if span, hasSpan := block.blockSpan(offset, offset+length); hasSpan {
				doc.Spans = append(doc.Spans, span)
			}
		}
		doc.Spans = append(doc.Spans, inline...)

		text.WriteString(clean)
		text.WriteString(lineSeparator)
		offset += length + 1
	}

	doc.Text = text.String()
	doc.End = offset

	return doc
}
