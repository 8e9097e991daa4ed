package cli_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gdocmark/internal/cli"
)

type envelope struct {
	Files []struct {
		Path   string `json:"path"`
		Format string `json:"format"`
		Body   *struct {
			Requests []map[string]json.RawMessage `json:"requests"`
		} `json:"body"`
		Findings []struct {
			Line int    `json:"line"`
			Kind string `json:"kind"`
		} `json:"findings"`
		Error string `json:"error"`
	} `json:"files"`
	Summary struct {
		FilesConverted int `json:"filesConverted"`
		FilesFailed    int `json:"filesFailed"`
		Operations     int `json:"operations"`
	} `json:"summary"`
}

// execute runs the root command with an isolating config file.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cfgFile := filepath.Join(t.TempDir(), ".gdocmark.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("flavor: commonmark\n"), 0644))

	cmd := cli.NewRootCommand(testInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", cfgFile, "--color", "never"}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func insertedText(t *testing.T, request json.RawMessage) string {
	t.Helper()
	var insert struct {
		Location struct {
			Index int `json:"index"`
		} `json:"location"`
		Text string `json:"text"`
	}
	require.NoError(t, json.Unmarshal(request, &insert))
	return insert.Text
}

func TestIntegration_ConvertJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := writeFile(t, dir, "doc.md", "# Title\n**bold** text")

	stdout, _, err := execute(t, "", "convert", doc)
	require.NoError(t, err)

	var out envelope
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	require.Len(t, out.Files, 1)

	file := out.Files[0]
	assert.Equal(t, "markdown", file.Format)
	require.NotNil(t, file.Body)
	require.Len(t, file.Body.Requests, 3)
	assert.Equal(t, "Title\nbold text\n", insertedText(t, file.Body.Requests[0]["insertText"]))
	assert.Contains(t, file.Body.Requests[1], "updateParagraphStyle")
	assert.Contains(t, file.Body.Requests[2], "updateTextStyle")

	assert.Equal(t, 1, out.Summary.FilesConverted)
	assert.Equal(t, 3, out.Summary.Operations)
}

func TestIntegration_ConvertStdin(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "<p>Hello <b>world</b></p>", "convert", "--format", "html", "--start-index", "0", "-")
	require.NoError(t, err)

	var out envelope
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	require.Len(t, out.Files, 1)
	assert.Equal(t, "-", out.Files[0].Path)
	assert.Equal(t, "html", out.Files[0].Format)
	require.NotNil(t, out.Files[0].Body)
	assert.Equal(t, "Hello world\n", insertedText(t, out.Files[0].Body.Requests[0]["insertText"]))

	var bold struct {
		Range struct {
			StartIndex int `json:"startIndex"`
			EndIndex   int `json:"endIndex"`
		} `json:"range"`
	}
	require.NoError(t, json.Unmarshal(out.Files[0].Body.Requests[1]["updateTextStyle"], &bold))
	assert.Equal(t, 6, bold.Range.StartIndex)
	assert.Equal(t, 11, bold.Range.EndIndex)
}

func TestIntegration_ConvertText(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := writeFile(t, dir, "notes.md", "# Notes\n```\ncode\n```\n")

	stdout, _, err := execute(t, "", "convert", "--output", "text", doc)
	require.NoError(t, err)

	assert.Contains(t, stdout, "(markdown, ")
	assert.Contains(t, stdout, "insertText")
	assert.Contains(t, stdout, "HEADING_1")
	assert.Contains(t, stdout, "line 2  warning")
	assert.Contains(t, stdout, "1 file converted (1 markdown)")
}

func TestIntegration_ConvertFindings(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := writeFile(t, dir, "notes.md", "Intro\n\n```\ncode\n```\n")

	stdout, _, err := execute(t, "", "convert", doc)
	require.NoError(t, err)

	var out envelope
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	require.Len(t, out.Files[0].Findings, 1)
	assert.Equal(t, 3, out.Files[0].Findings[0].Line)
	assert.Equal(t, "fenced-code", out.Files[0].Findings[0].Kind)
}

func TestIntegration_ConvertInspectDisabled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := writeFile(t, dir, "notes.md", "```\ncode\n```\n")

	stdout, _, err := execute(t, "", "convert", "--inspect=false", doc)
	require.NoError(t, err)

	var out envelope
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Empty(t, out.Files[0].Findings)
}

func TestIntegration_ConvertOutDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "bodies")
	doc := writeFile(t, dir, "guide.md", "Some *emphasis*")

	_, _, err := execute(t, "", "convert", "--out-dir", outDir, "--compact", "--output", "summary", doc)
	require.NoError(t, err)

	body, err := os.ReadFile(filepath.Join(outDir, "guide.json"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), `{"requests":[{"insertText":`))
	assert.Equal(t, 1, strings.Count(string(body), "\n"))
}

func TestIntegration_ConvertFailures(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := writeFile(t, dir, "good.md", "fine")
	empty := writeFile(t, dir, "empty.md", "")

	stdout, _, err := execute(t, "", "convert", good, empty)
	require.Error(t, err)
	assert.True(t, errors.Is(err, cli.ErrConversionFailed))
	assert.Equal(t, cli.ExitConversionFailed, cli.ExitCode(err))

	var out envelope
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, 1, out.Summary.FilesConverted)
	assert.Equal(t, 1, out.Summary.FilesFailed)
}

func TestIntegration_ExitCodes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := writeFile(t, dir, "doc.md", "text")
	badConfig := writeFile(t, dir, "bad.yml", "flavor: pandoc\n")

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"unknown flag", []string{"convert", "--bogus", doc}, cli.ExitInvalidUsage},
		{"negative start index", []string{"convert", "--start-index", "-1", doc}, cli.ExitInvalidUsage},
		{"unknown input format", []string{"convert", "--format", "rtf", doc}, cli.ExitInvalidUsage},
		{"unknown output", []string{"convert", "--output", "sarif", doc}, cli.ExitInvalidUsage},
		{"missing path", []string{"convert", filepath.Join(dir, "missing.md")}, cli.ExitIOError},
		{"invalid config", []string{"convert", "--config", badConfig, doc}, cli.ExitConfigError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := execute(t, "", tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.want, cli.ExitCode(err), "error: %v", err)
		})
	}
}

func TestIntegration_Detect(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.md", "# A")
	writeFile(t, dir, "b.html", "<p>B</p>")
	writeFile(t, dir, "c.txt", "plain words")

	stdout, _, err := execute(t, "", "detect", "--output", "json", dir)
	require.NoError(t, err)

	var infos []struct {
		Path   string `json:"path"`
		Format string `json:"format"`
		Source string `json:"source"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &infos))
	require.Len(t, infos, 3)

	formats := make(map[string]string, len(infos))
	for _, info := range infos {
		formats[filepath.Base(info.Path)] = info.Format
		assert.Equal(t, "extension", info.Source)
	}
	assert.Equal(t, map[string]string{"a.md": "markdown", "b.html": "html", "c.txt": "plain"}, formats)
}

func TestIntegration_DetectText(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "**bold**", "detect", "-")
	require.NoError(t, err)
	assert.Contains(t, stdout, "-  markdown (content)")
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "custom.yml")

	_, _, err := execute(t, "", "init", "--output", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# gdocmark configuration"))

	_, _, err = execute(t, "", "init", "--output", path)
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))

	_, _, err = execute(t, "", "init", "--output", path, "--full", "--force")
	require.NoError(t, err)

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\nstart_index: 1\n")
}

func TestIntegration_InitJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")

	_, _, err := execute(t, "", "init", "--format", "json", "--output", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "flavor")
}

func TestIntegration_ConfigShowsEffectiveSettings(t *testing.T) {
	t.Parallel()

	cfgFile := writeFile(t, t.TempDir(), "team.yml", "flavor: gfm\nstart_index: 12\nignore: [\"drafts/**\"]\n")

	stdout, _, err := execute(t, "", "config", "--config", cfgFile)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout, "# Effective gdocmark configuration\n"))
	assert.Contains(t, stdout, cfgFile)
	assert.Contains(t, stdout, "flavor: gfm\n")
	assert.Contains(t, stdout, "start_index: 12\n")
	assert.Contains(t, stdout, "- drafts/**\n")
	assert.NotContains(t, stdout, "jobs")
}

func TestIntegration_ConfigRejectsInvalidFile(t *testing.T) {
	t.Parallel()

	cfgFile := writeFile(t, t.TempDir(), "bad.yml", "flavor: pandoc\n")

	_, _, err := execute(t, "", "config", "--config", cfgFile)
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}
