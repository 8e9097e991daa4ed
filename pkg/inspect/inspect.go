// Package inspect reports Markdown constructs that the line-oriented
// converter does not understand. Such constructs still convert without
// error, but their markers end up in the document as literal text or lose
// their structure. The report is advisory and never changes the operations
// produced for a file.
package inspect

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Markdown flavors understood by the inspector.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Kind names a class of unsupported construct.
type Kind string

const (
	KindFencedCode         Kind = "fenced-code"
	KindIndentedCode       Kind = "indented-code"
	KindSetextHeading      Kind = "setext-heading"
	KindNestedHeading      Kind = "nested-heading"
	KindNestedList         Kind = "nested-list"
	KindThematicBreak      Kind = "thematic-break"
	KindHTML               Kind = "html"
	KindImage              Kind = "image"
	KindAutoLink           Kind = "autolink"
	KindUnderscoreEmphasis Kind = "underscore-emphasis"
	KindLongCodeSpan       Kind = "multi-backtick-code"
	KindSingleTilde        Kind = "single-tilde-strikethrough"
	KindTable              Kind = "table"
	KindTaskList           Kind = "task-list"
)

// Finding is one unsupported construct.
type Finding struct {
	// Line is the 1-based source line where the construct starts.
	Line    int    `json:"line"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// String implements fmt.Stringer.
func (f Finding) String() string {
	return fmt.Sprintf("%d: %s: %s", f.Line, f.Kind, f.Message)
}

// Inspector parses Markdown with goldmark and walks the tree for
// unsupported constructs.
type Inspector struct {
	flavor string
	md     goldmark.Markdown
}

// New creates an inspector for the given flavor. Unknown flavors fall back
// to CommonMark.
func New(flavor string) *Inspector {
	f := flavorOrDefault(flavor)
	return &Inspector{
		flavor: f,
		md:     newGoldmarkInstance(f),
	}
}

// Flavor returns the configured Markdown flavor.
func (i *Inspector) Flavor() string {
	return i.flavor
}

// Inspect parses content and returns its findings ordered by line.
func (i *Inspector) Inspect(ctx context.Context, content []byte) ([]Finding, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("inspect cancelled: %w", err)
	}

	reader := text.NewReader(content)
	doc := i.md.Parser().Parse(reader, parser.WithContext(parser.NewContext()))

	w := &walker{
		source: content,
		lines:  newLineIndex(content),
	}
	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if err := ctx.Err(); err != nil {
			return ast.WalkStop, fmt.Errorf("inspect cancelled: %w", err)
		}
		return w.visit(node), nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(w.findings, func(a, b Finding) int {
		return a.Line - b.Line
	})
	return w.findings, nil
}

// walker carries the state of one tree walk. The cursor is the offset just
// past the last block whose position is known; blocks that carry no source
// segments are located from it.
type walker struct {
	source   []byte
	lines    *lineIndex
	cursor   int
	findings []Finding
}

func (w *walker) report(line int, kind Kind, format string, args ...any) {
	if line < 1 {
		line = 1
	}
	w.findings = append(w.findings, Finding{
		Line:    line,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	})
}

//nolint:cyclop,funlen // One case per node type.
func (w *walker) visit(node ast.Node) ast.WalkStatus {
	switch n := node.(type) {
	case *ast.FencedCodeBlock:
		w.fencedCode(n)
		return ast.WalkSkipChildren

	case *ast.CodeBlock:
		w.report(w.blockLine(n), KindIndentedCode, "indented code block is inserted as plain paragraphs")
		w.advance(n)
		return ast.WalkSkipChildren

	case *ast.Heading:
		w.heading(n)

	case *ast.List:
		if hasListItemAncestor(n) {
			w.report(w.lineOf(n), KindNestedList, "nested list loses its indentation and is inserted as plain paragraphs")
		}

	case *ast.ThematicBreak:
		line := w.lines.nextContentLine(w.cursor)
		w.report(line, KindThematicBreak, "thematic break is inserted as literal text")
		if line > 0 {
			w.cursor = w.lines.lineEnd(line)
		}

	case *ast.HTMLBlock:
		w.report(w.blockLine(n), KindHTML, "HTML block is inserted as literal text")
		w.advance(n)
		return ast.WalkSkipChildren

	case *ast.RawHTML:
		w.report(w.lineOf(n), KindHTML, "inline HTML is inserted as literal text")

	case *ast.Image:
		w.report(w.lineOf(n), KindImage, "image is inserted as a link to %s", n.Destination)

	case *ast.AutoLink:
		w.report(w.lineOf(n), KindAutoLink, "autolink %s is inserted as literal text", n.URL(w.source))

	case *ast.Emphasis:
		if w.markerBefore(n, 1) == "_" {
			w.report(w.lineOf(n), KindUnderscoreEmphasis, "underscore emphasis is inserted as literal text; use asterisks")
		}

	case *ast.CodeSpan:
		if w.markerBefore(n, 2) == "``" {
			w.report(w.lineOf(n), KindLongCodeSpan, "code span with a multi-backtick fence is not recognised")
		}

	case *east.Strikethrough:
		if w.markerBefore(n, 2) != "~~" {
			w.report(w.lineOf(n), KindSingleTilde, "single-tilde strikethrough is inserted as literal text; use ~~")
		}

	case *east.Table:
		w.report(w.lineOf(n), KindTable, "table is inserted as literal text")
		if last := lastTextOffset(n); last >= 0 {
			w.cursor = max(w.cursor, w.lines.lineEnd(w.lines.lineAt(last)))
		}
		return ast.WalkSkipChildren

	case *east.TaskCheckBox:
		w.report(w.lineOf(n), KindTaskList, "task list checkbox is inserted as literal text")

	default:
		if node.Type() == ast.TypeBlock {
			w.advance(node)
		}
	}

	return ast.WalkContinue
}

// fencedCode reports a fenced block at its opening fence and moves the
// cursor past the closing fence when there is one.
func (w *walker) fencedCode(n *ast.FencedCodeBlock) {
	open := w.lines.nextContentLine(w.cursor)
	if lang := n.Language(w.source); len(lang) > 0 {
		w.report(open, KindFencedCode, "fenced %s code block is inserted as plain paragraphs", lang)
	} else {
		w.report(open, KindFencedCode, "fenced code block is inserted as plain paragraphs")
	}

	if open > 0 {
		w.cursor = w.lines.lineEnd(open)
	}
	w.advance(n)

	closing := w.lines.nextContentLine(w.cursor)
	if closing == 0 {
		return
	}
	trimmed := bytes.TrimLeft(w.lines.line(closing), " \t>")
	if bytes.HasPrefix(trimmed, []byte("```")) || bytes.HasPrefix(trimmed, []byte("~~~")) {
		w.cursor = w.lines.lineEnd(closing)
	}
}

func (w *walker) heading(n *ast.Heading) {
	line := w.blockLine(n)
	if line == 0 {
		line = w.lines.nextContentLine(w.cursor)
	}

	if kind := n.Parent().Kind(); kind != ast.KindDocument {
		w.report(line, KindNestedHeading, "heading inside %s is inserted as literal text", strings.ToLower(kind.String()))
	}

	segments := n.Lines()
	if segments.Len() == 0 {
		return
	}
	w.advance(n)
	if bytes.HasPrefix(bytes.TrimLeft(w.lines.line(line), " \t>"), []byte("#")) {
		return
	}
	lastLine := w.lines.lineAt(segments.At(segments.Len() - 1).Start)
	if isSetextUnderline(w.lines.line(lastLine + 1)) {
		w.report(line, KindSetextHeading, "setext heading is inserted as a paragraph; use a leading '#'")
		w.cursor = w.lines.lineEnd(lastLine + 1)
	}
}

// blockLine returns the line of a block's first source segment, or 0 when
// the block has none.
func (w *walker) blockLine(n ast.Node) int {
	lines := n.Lines()
	if lines == nil || lines.Len() == 0 {
		return 0
	}
	return w.lines.lineAt(lines.At(0).Start)
}

// advance moves the cursor to the end of the line holding the block's last
// source segment.
func (w *walker) advance(n ast.Node) {
	lines := n.Lines()
	if lines == nil || lines.Len() == 0 {
		return
	}
	last := w.lines.lineAt(lines.At(lines.Len() - 1).Start)
	if end := w.lines.lineEnd(last); end > w.cursor {
		w.cursor = end
	}
}

// lineOf locates any node: from its own segments, its first positioned
// descendant, an earlier sibling, or finally its parent.
func (w *walker) lineOf(n ast.Node) int {
	if offset := nodeOffset(n); offset >= 0 {
		return w.lines.lineAt(offset)
	}
	for prev := n.PreviousSibling(); prev != nil; prev = prev.PreviousSibling() {
		if offset := nodeOffset(prev); offset >= 0 {
			return w.lines.lineAt(offset)
		}
	}
	if parent := n.Parent(); parent != nil && parent.Kind() != ast.KindDocument {
		return w.lineOf(parent)
	}
	return w.lines.nextContentLine(w.cursor)
}

// markerBefore returns up to size source bytes immediately before the first
// text inside n.
func (w *walker) markerBefore(n ast.Node, size int) string {
	start := firstTextOffset(n)
	if start < size {
		return ""
	}
	return string(w.source[start-size : start])
}

func nodeOffset(n ast.Node) int {
	switch v := n.(type) {
	case *ast.Text:
		return v.Segment.Start
	case *ast.RawHTML:
		if v.Segments != nil && v.Segments.Len() > 0 {
			return v.Segments.At(0).Start
		}
	}
	if n.Type() != ast.TypeInline {
		if lines := n.Lines(); lines != nil && lines.Len() > 0 {
			return lines.At(0).Start
		}
	}
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if offset := nodeOffset(child); offset >= 0 {
			return offset
		}
	}
	return -1
}

func firstTextOffset(n ast.Node) int {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			return t.Segment.Start
		}
		if offset := firstTextOffset(child); offset >= 0 {
			return offset
		}
	}
	return -1
}

func lastTextOffset(n ast.Node) int {
	last := -1
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			last = max(last, t.Segment.Start)
			continue
		}
		last = max(last, lastTextOffset(child))
	}
	return last
}

func hasListItemAncestor(n ast.Node) bool {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Kind() == ast.KindListItem {
			return true
		}
	}
	return false
}

func isSetextUnderline(line []byte) bool {
	trimmed := bytes.TrimSpace(bytes.TrimLeft(line, " \t>"))
	if len(trimmed) == 0 {
		return false
	}
	marker := trimmed[0]
	if marker != '=' && marker != '-' {
		return false
	}
	return len(bytes.Trim(trimmed, string(marker))) == 0
}

// flavorOrDefault returns the flavor if valid, otherwise CommonMark.
func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorCommonMark
	}
}

//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	var opts []goldmark.Option
	if flavor == FlavorGFM {
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	}
	return goldmark.New(opts...)
}
