package pretty_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gdocmark/internal/ui/pretty"
	"github.com/yaklabco/gdocmark/pkg/docops"
	"github.com/yaklabco/gdocmark/pkg/inspect"
)

func TestPreview(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"separators shown", "a\nb\n", 0, "a⏎b⏎"},
		{"fits", "hello", 10, "hello"},
		{"truncated", "hello world", 8, "hello w…"},
		{"wide characters", "日本語テキスト", 7, "日本語…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pretty.Preview(tt.text, tt.width))
		})
	}
}

func TestSpanText(t *testing.T) {
	// "😀" occupies two offsets: 2 and 3.
	text := "a😀b\n"

	assert.Equal(t, "a", pretty.SpanText(text, 1, docops.Range{StartIndex: 1, EndIndex: 2}))
	assert.Equal(t, "😀", pretty.SpanText(text, 1, docops.Range{StartIndex: 2, EndIndex: 4}))
	assert.Equal(t, "b", pretty.SpanText(text, 1, docops.Range{StartIndex: 4, EndIndex: 5}))
	assert.Equal(t, text, pretty.SpanText(text, 1, docops.Range{StartIndex: 0, EndIndex: 100}))
	assert.Empty(t, pretty.SpanText(text, 1, docops.Range{StartIndex: 50, EndIndex: 60}))
}

func TestFormatOperation(t *testing.T) {
	styles := pretty.NewStyles(false)
	text := "Title\nbold\n"

	insert := styles.FormatOperation(docops.InsertText{Index: 1, Text: text, Length: 11}, text, 1, 0)
	assert.True(t, strings.HasPrefix(insert, "  insertText "))
	assert.Contains(t, insert, "[1,12)")
	assert.Contains(t, insert, `"Title⏎bold⏎"`)
	assert.True(t, strings.HasSuffix(insert, "\n"))

	heading := styles.FormatOperation(docops.SetParagraphStyle{
		Range: docops.Range{StartIndex: 1, EndIndex: 7},
		Style: docops.ParagraphStyle{NamedStyleType: docops.NamedStyleHeading1},
	}, text, 1, 0)
	assert.Contains(t, heading, "updateParagraphStyle")
	assert.Contains(t, heading, "HEADING_1")
	assert.Contains(t, heading, `"Title⏎"`)

	bold := styles.FormatOperation(docops.SetCharacterStyle{
		Range: docops.Range{StartIndex: 7, EndIndex: 11},
		Style: docops.TextStyle{Bold: true, Italic: true},
	}, text, 1, 0)
	assert.Contains(t, bold, "updateTextStyle")
	assert.Contains(t, bold, "bold,italic")
	assert.Contains(t, bold, `"bold"`)

	list := styles.FormatOperation(docops.SetListMarker{
		Range:  docops.Range{StartIndex: 7, EndIndex: 12},
		Preset: docops.BulletDiscCircleSquare,
	}, text, 1, 0)
	assert.Contains(t, list, "createParagraphBullets")
	assert.Contains(t, list, "BULLET_DISC_CIRCLE_SQUARE")
}

func TestFormatFinding(t *testing.T) {
	styles := pretty.NewStyles(false)

	got := styles.FormatFinding(inspect.Finding{
		Line:    3,
		Kind:    inspect.KindFencedCode,
		Message: "fenced code block is inserted as plain text",
	})

	assert.Equal(t, "  line 3  warning  fenced code block is inserted as plain text  (fenced-code)\n", got)
}

func TestFormatFileHeader(t *testing.T) {
	styles := pretty.NewStyles(false)

	assert.Equal(t, "doc.md (markdown, 1 operation)", styles.FormatFileHeader("doc.md", "markdown", 1))
	assert.Equal(t, "page.html (html, 4 operations)", styles.FormatFileHeader("page.html", "html", 4))
}

func TestFormatFileError(t *testing.T) {
	styles := pretty.NewStyles(false)

	got := styles.FormatFileError("empty.md", errors.New("content is empty"))
	assert.Equal(t, "empty.md: error: content is empty\n", got)
}
