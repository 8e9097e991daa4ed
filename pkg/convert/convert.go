package convert

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/yaklabco/gdocmark/pkg/docops"
)

// Normalization selects an optional Unicode normalization of the input.
type Normalization string

const (
	NormalizationNone Normalization = "none"
	NormalizationNFC  Normalization = "nfc"
)

// IsValid reports whether n is a known normalization. Empty means none.
func (n Normalization) IsValid() bool {
	switch n {
	case "", NormalizationNone, NormalizationNFC:
		return true
	default:
		return false
	}
}

// Options controls a conversion.
type Options struct {
	// Format of the content. Empty or FormatAuto detects it.
	Format Format

	// StartIndex is the document offset at which the content is inserted.
	StartIndex int

	// Normalization is applied to the content before conversion.
	Normalization Normalization
}

// Result is a finished conversion.
type Result struct {
	// Format is the format the content was converted as.
	Format Format

	// Document holds the clean text and absolute spans.
	Document Document

	// Operations are ready to send to the document service in order.
	Operations []docops.Operation
}

// Convert checks preconditions, resolves the format and converts content.
func Convert(content string, opts Options) (*Result, error) {
	if opts.StartIndex < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStartIndex, opts.StartIndex)
	}
	if content == "" {
		return nil, ErrEmptyContent
	}
	if !opts.Normalization.IsValid() {
		return nil, fmt.Errorf("unknown normalization %q", opts.Normalization)
	}
	if opts.Normalization == NormalizationNFC {
		content = norm.NFC.String(content)
	}

	format := opts.Format
	if format == "" || format == FormatAuto {
		format = DetectFormat(content)
	}

	var doc Document
	switch format {
	case FormatMarkdown:
		doc = convertMarkdown(content, opts.StartIndex)
	case FormatHTML:
		var ok bool
		if doc, ok = convertHTML(content, opts.StartIndex); !ok {
			return nil, fmt.Errorf("html has no text content: %w", ErrEmptyContent)
		}
	case FormatPlain:
		doc = Document{
			Text:  content,
			Start: opts.StartIndex,
			End:   opts.StartIndex + textLen(content),
		}
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}

	return &Result{
		Format:     format,
		Document:   doc,
		Operations: Emit(doc),
	}, nil
}

// Markdown converts Markdown content inserted at start.
func Markdown(content string, start int) ([]docops.Operation, error) {
	return operations(content, FormatMarkdown, start)
}

// HTML converts HTML content inserted at start. The HTML is first
// rewritten into Markdown by NormalizeHTML.
func HTML(content string, start int) ([]docops.Operation, error) {
	return operations(content, FormatHTML, start)
}

func operations(content string, format Format, start int) ([]docops.Operation, error) {
	result, err := Convert(content, Options{Format: format, StartIndex: start})
	if err != nil {
		return nil, err
	}
	return result.Operations, nil
}

func convertMarkdown(content string, start int) Document {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return Assemble(SplitLines(content), start)
}
