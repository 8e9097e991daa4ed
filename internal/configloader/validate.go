package configloader

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gdocmark/pkg/config"
	"github.com/yaklabco/gdocmark/pkg/formatdetect"
	"github.com/yaklabco/gdocmark/pkg/fsutil"
)

// ValidationError describes one invalid or suspicious configuration value.
type ValidationError struct {
	// Field is the key path, e.g. "extensions[0]".
	Field   string
	Value   any
	Message string

	// FilePath and Line locate the value when it came from a file.
	FilePath string
	Line     int
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	switch {
	case e.FilePath != "" && e.Line > 0:
		fmt.Fprintf(&b, "%s:%d: ", e.FilePath, e.Line)
	case e.FilePath != "":
		b.WriteString(e.FilePath + ": ")
	}
	if e.Field != "" {
		b.WriteString(e.Field + ": ")
	}
	b.WriteString(e.Message)
	return b.String()
}

// ValidationResult collects errors, which stop loading, and warnings,
// which are reported and ignored.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid reports whether there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// enum rejects a set value outside allowed.
func (r *ValidationResult) enum(field, value string, valid bool, allowed string) {
	if value != "" && !valid {
		r.fail(field, value, "invalid %s %q; must be one of: %s", strings.ReplaceAll(field, "_", " "), value, allowed)
	}
}

// Validate checks cfg. A nil config is valid.
func Validate(cfg *config.Config) *ValidationResult {
	r := &ValidationResult{}
	if cfg == nil {
		return r
	}

	r.enum("format", string(cfg.Format), cfg.Format.IsValid(), "auto, markdown, html, plain")
	r.enum("flavor", string(cfg.Flavor), cfg.Flavor.IsValid(), "commonmark, gfm")
	r.enum("unicode_normalization", string(cfg.UnicodeNormalization), cfg.UnicodeNormalization.IsValid(), "none, nfc")
	r.enum("output", string(cfg.Output), cfg.Output.IsValid(), "json, text, table, summary")

	if cfg.StartIndex != nil && *cfg.StartIndex < 0 {
		r.fail("start_index", *cfg.StartIndex, "start_index must be >= 0")
	}
	if cfg.Jobs < 0 {
		r.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	for i, pattern := range cfg.Ignore {
		if err := fsutil.CompileGlob(pattern); err != nil {
			r.fail(fmt.Sprintf("ignore[%d]", i), pattern, "%v", err)
		}
	}
	validateExtensions(cfg.Extensions, r)

	return r
}

// validateExtensions rejects malformed extensions and warns about ones
// whose format cannot be derived from the name alone.
func validateExtensions(exts []string, r *ValidationResult) {
	for i, ext := range exts {
		field := fmt.Sprintf("extensions[%d]", i)
		if ext == "" || strings.ContainsAny(ext, `/\`) {
			r.fail(field, ext, "invalid extension %q", ext)
			continue
		}
		name := "file." + strings.TrimPrefix(ext, ".")
		if _, _, ok := formatdetect.FromExtension(name); !ok {
			r.warn(field, ext, "extension %q has no known format; matching files are detected by content", ext)
		}
	}
}

// validateFile checks a single file layer and attributes errors to path.
func validateFile(cfg *config.Config, path string) error {
	r := Validate(cfg)
	if r.Valid() {
		return nil
	}
	first := r.Errors[0]
	first.FilePath = path
	return &first
}
