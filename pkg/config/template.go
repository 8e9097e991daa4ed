package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every key with its default value and documentation.
	// If false, generates a minimal template with everything commented out.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// KeyInfo documents one configuration key.
type KeyInfo struct {
	Key         string
	Description string
	Default     any
}

// Keys returns the documented configuration file keys in template order.
func Keys() []KeyInfo {
	defaults := NewConfig()
	return []KeyInfo{
		{
			Key:         "format",
			Description: "Input format: auto, markdown, html or plain. Auto picks the format from the file extension and falls back to sniffing the content.",
			Default:     string(defaults.Format),
		},
		{
			Key:         "start_index",
			Description: "Document offset where converted content is inserted. An empty document body starts at 1.",
			Default:     defaults.Start(),
		},
		{
			Key:         "flavor",
			Description: "Markdown flavor used to inspect input: commonmark or gfm.",
			Default:     string(defaults.Flavor),
		},
		{
			Key:         "inspect",
			Description: "Warn about Markdown constructs that are inserted as literal text, such as code fences and tables.",
			Default:     defaults.InspectEnabled(),
		},
		{
			Key:         "unicode_normalization",
			Description: "Unicode normalization applied before conversion: none or nfc.",
			Default:     string(defaults.UnicodeNormalization),
		},
		{
			Key:         "ignore",
			Description: "Glob patterns for files and directories to skip.",
			Default:     []string{"node_modules/**", "vendor/**"},
		},
		{
			Key:         "extensions",
			Description: "File extensions converted when walking directories.",
			Default:     []string{".md", ".markdown", ".html", ".htm", ".txt"},
		},
	}
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON()
	}

	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n")

	for _, key := range Keys() {
		buf.WriteString("\n# ")
		buf.WriteString(wrapComment(key.Description, commentWrapWidth))
		buf.WriteString("\n")

		prefix := "# "
		if opts.Full {
			prefix = ""
		}
		writeYAMLValue(&buf, prefix, key.Key, key.Default)
	}

	return buf.Bytes(), nil
}

func writeYAMLValue(buf *bytes.Buffer, prefix, key string, value any) {
	list, ok := value.([]string)
	if !ok {
		fmt.Fprintf(buf, "%s%s: %v\n", prefix, key, value)
		return
	}
	fmt.Fprintf(buf, "%s%s:\n", prefix, key)
	for _, item := range list {
		fmt.Fprintf(buf, "%s  - %q\n", prefix, item)
	}
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n# ")
}

// templateToJSON renders every key with its default value as JSON. YAML
// parsers accept the result, so it loads like any other config file.
func templateToJSON() ([]byte, error) {
	cfg := make(map[string]any)
	for _, key := range Keys() {
		cfg[key.Key] = key.Default
	}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return append(jsonBytes, '\n'), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# gdocmark configuration
# See: https://github.com/yaklabco/gdocmark`
}
