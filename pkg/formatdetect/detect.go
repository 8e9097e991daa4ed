// Package formatdetect decides which converter a file should go through.
// It uses go-enry to map file extensions to languages and falls back to a
// content sniff when the extension says nothing useful.
package formatdetect

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/gdocmark/pkg/convert"
)

// Language names reported by go-enry for the formats we convert.
const (
	langMarkdown = "Markdown"
	langHTML     = "HTML"
	langText     = "Text"
)

// Source says how a format was decided.
type Source string

const (
	SourceExtension Source = "extension"
	SourceContent   Source = "content"
	SourceBinary    Source = "binary"
	SourceConfig    Source = "config"
)

// Detection is the outcome of Detect.
type Detection struct {
	Format convert.Format
	Source Source
	// Language is the go-enry language name when Source is extension.
	Language string
}

// DefaultExtensions are the file extensions converted when none are
// configured.
func DefaultExtensions() []string {
	return []string{".md", ".markdown", ".html", ".htm", ".txt"}
}

// FromExtension maps the extension of path to a format. It reports false
// when the extension is unknown or belongs to another language.
func FromExtension(path string) (convert.Format, string, bool) {
	if filepath.Ext(path) == "" {
		return "", "", false
	}

	languages := enry.GetLanguagesByExtension(filepath.Base(path), nil, nil)
	for _, candidate := range []struct {
		lang   string
		format convert.Format
	}{
		{langMarkdown, convert.FormatMarkdown},
		{langHTML, convert.FormatHTML},
		{langText, convert.FormatPlain},
	} {
		if slices.Contains(languages, candidate.lang) {
			return candidate.format, candidate.lang, true
		}
	}
	return "", "", false
}

// Detect decides the format of a file. Binary content is reported as such
// with an empty format; otherwise the extension wins and the content sniff
// is the fallback.
func Detect(path string, content []byte) Detection {
	if enry.IsBinary(content) {
		return Detection{Source: SourceBinary}
	}

	if format, lang, ok := FromExtension(path); ok {
		return Detection{Format: format, Source: SourceExtension, Language: lang}
	}

	return Detection{Format: convert.DetectFormat(string(content)), Source: SourceContent}
}

// Fixed returns a Detection for a format chosen by configuration rather
// than detected. Binary content is still refused.
func Fixed(format convert.Format, content []byte) Detection {
	if enry.IsBinary(content) {
		return Detection{Source: SourceBinary}
	}
	return Detection{Format: format, Source: SourceConfig}
}

// MatchesExtension reports whether path ends in one of exts. The
// comparison ignores case and a missing leading dot in exts.
func MatchesExtension(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	for _, want := range exts {
		want = strings.ToLower(want)
		if !strings.HasPrefix(want, ".") {
			want = "." + want
		}
		if ext == want {
			return true
		}
	}
	return false
}
