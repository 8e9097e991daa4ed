package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/gdocmark/pkg/config"
)

const envVarPrefix = "GDOCMARK_"

// envBinding ties one GDOCMARK_* variable to a config field.
type envBinding struct {
	suffix      string
	field       string
	description string
	apply       func(cfg *config.Config, raw string) error
}

//nolint:gochecknoglobals // Read-only lookup table.
var envBindings = []envBinding{
	{"FORMAT", "format", "Input format: auto, markdown, html, or plain",
		setString(func(c *config.Config, v string) { c.Format = config.InputFormat(v) })},
	{"START_INDEX", "start_index", "Document offset where content is inserted",
		setInt(func(c *config.Config, v int) { c.StartIndex = config.IntPtr(v) })},
	{"FLAVOR", "flavor", "Markdown flavor: commonmark or gfm",
		setString(func(c *config.Config, v string) { c.Flavor = config.Flavor(v) })},
	{"INSPECT", "inspect", "Report unsupported Markdown: true or false",
		setBool(func(c *config.Config, v bool) { c.Inspect = config.BoolPtr(v) })},
	{"UNICODE_NORMALIZATION", "unicode_normalization", "Unicode normalization: none or nfc",
		setString(func(c *config.Config, v string) { c.UnicodeNormalization = config.Normalization(v) })},
	{"IGNORE", "ignore", "Comma-separated list of ignore patterns",
		setList(func(c *config.Config, v []string) { c.Ignore = v })},
	{"EXTENSIONS", "extensions", "Comma-separated list of file extensions",
		setList(func(c *config.Config, v []string) { c.Extensions = v })},
	{"OUTPUT", "output", "Report format: json, text, table, or summary",
		setString(func(c *config.Config, v string) { c.Output = config.OutputFormat(v) })},
	{"JOBS", "jobs", "Number of parallel workers (0 = auto)",
		setInt(func(c *config.Config, v int) { c.Jobs = v })},
}

func setString(set func(*config.Config, string)) func(*config.Config, string) error {
	return func(c *config.Config, raw string) error {
		set(c, strings.TrimSpace(raw))
		return nil
	}
}

func setInt(set func(*config.Config, int)) func(*config.Config, string) error {
	return func(c *config.Config, raw string) error {
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("invalid integer %q", raw)
		}
		set(c, v)
		return nil
	}
}

func setBool(set func(*config.Config, bool)) func(*config.Config, string) error {
	return func(c *config.Config, raw string) error {
		v, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", raw)
		}
		set(c, v)
		return nil
	}
}

// setList splits a comma-separated value, dropping empty elements.
func setList(set func(*config.Config, []string)) func(*config.Config, string) error {
	return func(c *config.Config, raw string) error {
		var items []string
		for part := range strings.SplitSeq(raw, ",") {
			if item := strings.TrimSpace(part); item != "" {
				items = append(items, item)
			}
		}
		set(c, items)
		return nil
	}
}

// LoadFromEnv applies every non-empty GDOCMARK_* variable to cfg. The
// first malformed value is reported with its variable name.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}
	for _, b := range envBindings {
		name := envVarPrefix + b.suffix
		raw := os.Getenv(name)
		if raw == "" {
			continue
		}
		if err := b.apply(cfg, raw); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// GetEnvVarName returns the variable that sets a config key, or "".
func GetEnvVarName(field string) string {
	for _, b := range envBindings {
		if b.field == field {
			return envVarPrefix + b.suffix
		}
	}
	return ""
}

// ListEnvVars maps every supported variable to its description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envBindings))
	for _, b := range envBindings {
		vars[envVarPrefix+b.suffix] = b.description
	}
	return vars
}
