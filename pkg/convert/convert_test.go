package convert_test

import (
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gdocmark/pkg/convert"
	"github.com/yaklabco/gdocmark/pkg/docops"
)

func utf16Len(s string) int {
	return len(utf16.Encode([]rune(s)))
}

func TestMarkdown_Heading(t *testing.T) {
	ops, err := convert.Markdown("# Title", 0)
	require.NoError(t, err)
	require.Len(t, ops, 2)

	assert.Equal(t, docops.InsertText{Index: 0, Text: "Title\n", Length: 6}, ops[0])
	heading, ok := ops[1].(docops.SetParagraphStyle)
	require.True(t, ok)
	assert.Equal(t, docops.Range{StartIndex: 0, EndIndex: 5}, heading.Range)
	assert.Equal(t, docops.NamedStyleHeading1, heading.Style.NamedStyleType)
}

func TestMarkdown_BoldAndItalic(t *testing.T) {
	ops, err := convert.Markdown("**bold** and *italic*", 0)
	require.NoError(t, err)
	require.Len(t, ops, 3)

	insert, ok := ops[0].(docops.InsertText)
	require.True(t, ok)
	assert.Equal(t, "bold and italic\n", insert.Text)

	bold, ok := ops[1].(docops.SetCharacterStyle)
	require.True(t, ok)
	assert.Equal(t, docops.Range{StartIndex: 0, EndIndex: 4}, bold.Range)
	assert.Equal(t, []string{"bold"}, bold.Style.Fields())

	italic, ok := ops[2].(docops.SetCharacterStyle)
	require.True(t, ok)
	assert.Equal(t, docops.Range{StartIndex: 9, EndIndex: 15}, italic.Range)
	assert.Equal(t, []string{"italic"}, italic.Style.Fields())
}

func TestMarkdown_List(t *testing.T) {
	ops, err := convert.Markdown("- item one\n- item two", 0)
	require.NoError(t, err)

	counts := docops.Count(ops)
	assert.Equal(t, 1, counts[docops.KindInsertText])
	assert.Equal(t, 2, counts[docops.KindSetListMarker])
	assert.Equal(t, docops.Range{StartIndex: 0, EndIndex: 8}, ops[1].Span())
	assert.Equal(t, docops.Range{StartIndex: 9, EndIndex: 17}, ops[2].Span())
}

func TestMarkdown_Link(t *testing.T) {
	ops, err := convert.Markdown("[click](http://x)", 0)
	require.NoError(t, err)
	require.Len(t, ops, 2)

	link, ok := ops[1].(docops.SetCharacterStyle)
	require.True(t, ok)
	assert.Equal(t, docops.Range{StartIndex: 0, EndIndex: 5}, link.Range)
	require.NotNil(t, link.Style.Link)
	assert.Equal(t, "http://x", link.Style.Link.URL)
	assert.True(t, link.Style.Underline)
}

func TestMarkdown_MalformedSyntaxIsLiteral(t *testing.T) {
	ops, err := convert.Markdown("*oops", 0)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, docops.InsertText{Index: 0, Text: "*oops\n", Length: 6}, ops[0])
}

func TestMarkdown_CRLF(t *testing.T) {
	ops, err := convert.Markdown("# A\r\nb", 0)
	require.NoError(t, err)
	insert, ok := ops[0].(docops.InsertText)
	require.True(t, ok)
	assert.Equal(t, "A\nb\n", insert.Text)
}

func TestConvert_Preconditions(t *testing.T) {
	tests := []struct {
		name    string
		content string
		opts    convert.Options
		wantErr error
	}{
		{"empty markdown", "", convert.Options{Format: convert.FormatMarkdown}, convert.ErrEmptyContent},
		{"empty auto", "", convert.Options{}, convert.ErrEmptyContent},
		{"negative start", "# x", convert.Options{StartIndex: -1}, convert.ErrInvalidStartIndex},
		{"negative start wins over empty", "", convert.Options{StartIndex: -3}, convert.ErrInvalidStartIndex},
		{"unknown format", "x", convert.Options{Format: "rtf"}, convert.ErrUnknownFormat},
		{"html without text", "<br><hr/>", convert.Options{Format: convert.FormatHTML}, nil},
		{"html only tags", "<div><span></span></div>", convert.Options{Format: convert.FormatHTML}, convert.ErrEmptyContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := convert.Convert(tt.content, tt.opts)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.NotNil(t, result)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, result)
		})
	}
}

func TestMarkdown_EmptyReturnsNoOperations(t *testing.T) {
	ops, err := convert.Markdown("", 1)
	require.ErrorIs(t, err, convert.ErrEmptyContent)
	assert.Nil(t, ops)
}

func TestConvert_Plain(t *testing.T) {
	result, err := convert.Convert("no *markup* here", convert.Options{Format: convert.FormatPlain, StartIndex: 4})
	require.NoError(t, err)

	assert.Equal(t, convert.FormatPlain, result.Format)
	require.Len(t, result.Operations, 1)
	assert.Equal(t, docops.InsertText{Index: 4, Text: "no *markup* here", Length: 16}, result.Operations[0])
	assert.Equal(t, 20, result.Document.End)
}

func TestConvert_AutoDetect(t *testing.T) {
	tests := []struct {
		content string
		want    convert.Format
	}{
		{"<p>hi</p>", convert.FormatHTML},
		{"# Title", convert.FormatMarkdown},
		{"just words", convert.FormatPlain},
	}

	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			result, err := convert.Convert(tt.content, convert.Options{Format: convert.FormatAuto, StartIndex: 1})
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Format)
			assert.Equal(t, docops.KindInsertText, result.Operations[0].Kind())
		})
	}
}

func TestConvert_NFC(t *testing.T) {
	decomposed := "**e\u0301**"

	raw, err := convert.Convert(decomposed, convert.Options{Format: convert.FormatMarkdown})
	require.NoError(t, err)
	assert.Equal(t, docops.Range{StartIndex: 0, EndIndex: 2}, raw.Operations[1].Span())

	composed, err := convert.Convert(decomposed, convert.Options{
		Format:        convert.FormatMarkdown,
		Normalization: convert.NormalizationNFC,
	})
	require.NoError(t, err)
	assert.Equal(t, "\u00e9\n", composed.Document.Text)
	assert.Equal(t, docops.Range{StartIndex: 0, EndIndex: 1}, composed.Operations[1].Span())
}

func TestConvert_UnknownNormalization(t *testing.T) {
	_, err := convert.Convert("x", convert.Options{Normalization: "nfkd"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nfkd")
}

func TestConvert_LengthInvariant(t *testing.T) {
	inputs := []string{
		"# 标题\n- 项目 **粗体**",
		"emoji 😀😀 *x*",
		"<h2>Caf&eacute;</h2><p>ok</p>",
	}

	for _, input := range inputs {
		result, err := convert.Convert(input, convert.Options{StartIndex: 1})
		require.NoError(t, err)

		insert, ok := result.Operations[0].(docops.InsertText)
		require.True(t, ok)
		assert.Equal(t, utf16Len(insert.Text), insert.Length)
		assert.Equal(t, 1+insert.Length, result.Document.End)
		for _, op := range result.Operations[1:] {
			span := op.Span()
			assert.True(t, span.Valid(), "%s %s", op.Kind(), span)
			assert.LessOrEqual(t, span.EndIndex, result.Document.End)
		}
	}
}
