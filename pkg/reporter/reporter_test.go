package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gdocmark/pkg/convert"
	"github.com/yaklabco/gdocmark/pkg/docops"
	"github.com/yaklabco/gdocmark/pkg/formatdetect"
	"github.com/yaklabco/gdocmark/pkg/inspect"
	"github.com/yaklabco/gdocmark/pkg/reporter"
	"github.com/yaklabco/gdocmark/pkg/runner"
)

// createTestResult converts two small inputs and records one failure.
func createTestResult(t *testing.T, dir string) *runner.Result {
	t.Helper()

	guide, err := convert.Convert("# Guide\n**bold** text", convert.Options{Format: convert.FormatMarkdown, StartIndex: 1})
	require.NoError(t, err)

	page, err := convert.Convert("<p>Hello</p>", convert.Options{Format: convert.FormatHTML, StartIndex: 1})
	require.NoError(t, err)

	result := &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path:      filepath.Join(dir, "docs", "guide.md"),
				Detection: formatdetect.Detection{Format: convert.FormatMarkdown, Source: formatdetect.SourceExtension, Language: "Markdown"},
				Result:    guide,
				Findings:  []inspect.Finding{{Line: 3, Kind: inspect.KindFencedCode, Message: "fenced code block is inserted as plain text"}},
			},
			{
				Path:      filepath.Join(dir, "page.html"),
				Detection: formatdetect.Detection{Format: convert.FormatHTML, Source: formatdetect.SourceExtension, Language: "HTML"},
				Result:    page,
			},
			{
				Path:      filepath.Join(dir, "empty.md"),
				Detection: formatdetect.Detection{Format: convert.FormatMarkdown, Source: formatdetect.SourceExtension},
				Error:     convert.ErrEmptyContent,
			},
		},
		Stats: runner.Stats{
			FilesDiscovered:   3,
			FilesConverted:    2,
			FilesFailed:       1,
			FilesWithFindings: 1,
			FindingsTotal:     1,
			OperationsTotal:   len(guide.Operations) + len(page.Operations),
			OperationsByKind:  map[docops.Kind]int{},
			InsertedLength:    (guide.Document.End - guide.Document.Start) + (page.Document.End - page.Document.Start),
			ByFormat:          map[convert.Format]int{convert.FormatMarkdown: 1, convert.FormatHTML: 1},
		},
	}

	for _, ops := range [][]docops.Operation{guide.Operations, page.Operations} {
		for kind, n := range docops.Count(ops) {
			result.Stats.OperationsByKind[kind] += n
		}
	}

	return result
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to json", input: "", want: reporter.FormatJSON},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "text", input: "Text", want: reporter.FormatText},
		{name: "table", input: "table", want: reporter.FormatTable},
		{name: "summary", input: " summary ", want: reporter.FormatSummary},
		{name: "unknown format", input: "sarif", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_IsValid(t *testing.T) {
	tests := []struct {
		format reporter.Format
		want   bool
	}{
		{reporter.FormatText, true},
		{reporter.FormatJSON, true},
		{reporter.FormatTable, true},
		{reporter.FormatSummary, true},
		{reporter.Format("diff"), false},
		{reporter.Format(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.format.IsValid())
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		format  reporter.Format
		wantErr bool
	}{
		{name: "json reporter", format: reporter.FormatJSON},
		{name: "text reporter", format: reporter.FormatText},
		{name: "table reporter", format: reporter.FormatTable},
		{name: "summary reporter", format: reporter.FormatSummary},
		{name: "empty defaults to json", format: ""},
		{name: "unknown format", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			rep, err := reporter.New(reporter.Options{
				Writer: &buf,
				Format: tt.format,
				Color:  "never",
			})
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, rep)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, rep)
		})
	}
}

func TestJSONReporter_NilResult(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf})

	count, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	assert.Equal(t, reporter.JSONOutputVersion, output.Version)
	assert.Empty(t, output.Files)
}

func TestJSONReporter_WithResults(t *testing.T) {
	dir := t.TempDir()
	result := createTestResult(t, dir)

	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf, WorkingDir: dir})

	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, result.Stats.OperationsTotal, count)

	var output struct {
		Files []struct {
			Path     string            `json:"path"`
			Format   string            `json:"format"`
			Source   string            `json:"source"`
			Language string            `json:"language"`
			Body     *json.RawMessage  `json:"body"`
			Findings []inspect.Finding `json:"findings"`
			Error    string            `json:"error"`
		} `json:"files"`
		Summary reporter.JSONSummary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	require.Len(t, output.Files, 3)

	guide := output.Files[0]
	assert.Equal(t, filepath.Join("docs", "guide.md"), guide.Path)
	assert.Equal(t, "markdown", guide.Format)
	assert.Equal(t, "extension", guide.Source)
	assert.Equal(t, "Markdown", guide.Language)
	require.NotNil(t, guide.Body)
	assert.Len(t, guide.Findings, 1)

	var body struct {
		Requests []map[string]json.RawMessage `json:"requests"`
	}
	require.NoError(t, json.Unmarshal(*guide.Body, &body))
	require.NotEmpty(t, body.Requests)
	assert.Contains(t, body.Requests[0], "insertText")

	failed := output.Files[2]
	assert.Nil(t, failed.Body)
	assert.Equal(t, convert.ErrEmptyContent.Error(), failed.Error)

	assert.Equal(t, 2, output.Summary.FilesConverted)
	assert.Equal(t, 1, output.Summary.FilesFailed)
	assert.Equal(t, 1, output.Summary.Findings)
	assert.Equal(t, 2, output.Summary.ByKind[docops.KindInsertText])
}

func TestJSONReporter_Compact(t *testing.T) {
	result := createTestResult(t, t.TempDir())

	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf, Compact: true})

	_, err := rep.Report(context.Background(), result)
	require.NoError(t, err)

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.True(t, strings.HasSuffix(out, "}\n"))
}

func TestTextReporter_NilResult(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{
		Writer:      &buf,
		Color:       "never",
		ShowSummary: true,
	})

	count, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Contains(t, buf.String(), "No files to convert")
}

func TestTextReporter_WithResults(t *testing.T) {
	dir := t.TempDir()
	result := createTestResult(t, dir)

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{
		Writer:      &buf,
		Color:       "never",
		ShowSummary: true,
		WorkingDir:  dir,
	})

	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, result.Stats.OperationsTotal, count)

	output := buf.String()
	assert.Contains(t, output, filepath.Join("docs", "guide.md")+" (markdown, ")
	assert.Contains(t, output, "insertText")
	assert.Contains(t, output, "HEADING_1")
	assert.Contains(t, output, `"Guide⏎bold text⏎"`)
	assert.Contains(t, output, "line 3  warning")
	assert.Contains(t, output, "page.html (html, ")
	assert.Contains(t, output, "empty.md: error: content is empty")
	assert.Contains(t, output, "2 files converted (1 html, 1 markdown)")
	assert.NotContains(t, output, dir)
}

func TestTableReporter(t *testing.T) {
	dir := t.TempDir()
	result := createTestResult(t, dir)

	var buf bytes.Buffer
	rep := reporter.NewTableReporter(reporter.Options{
		Writer:      &buf,
		Color:       "never",
		ShowSummary: true,
		WorkingDir:  dir,
	})

	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, result.Stats.OperationsTotal, count)

	output := buf.String()
	assert.Contains(t, output, "FILE")
	assert.Contains(t, output, filepath.Join("docs", "guide.md"))
	assert.Contains(t, output, "failed")
	assert.Contains(t, output, "2 files converted | 1 failed | 1 warnings")
	assert.NotContains(t, output, dir)

	// The caller's result is not rewritten.
	assert.True(t, filepath.IsAbs(result.Files[0].Path))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestReporters_WriteError(t *testing.T) {
	result := createTestResult(t, t.TempDir())

	for _, format := range []reporter.Format{reporter.FormatJSON, reporter.FormatText, reporter.FormatTable, reporter.FormatSummary} {
		t.Run(string(format), func(t *testing.T) {
			rep, err := reporter.New(reporter.Options{Writer: failingWriter{}, Format: format, Color: "never", ShowSummary: true})
			require.NoError(t, err)

			_, err = rep.Report(context.Background(), result)
			require.Error(t, err)
		})
	}
}
