package pretty

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/gdocmark/pkg/convert"
	"github.com/yaklabco/gdocmark/pkg/docops"
	"github.com/yaklabco/gdocmark/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// formatBreakdown lists per-format counts, e.g. "2 markdown, 1 html".
func formatBreakdown(byFormat map[convert.Format]int) string {
	formats := make([]string, 0, len(byFormat))
	for format := range byFormat {
		formats = append(formats, string(format))
	}
	slices.Sort(formats)

	parts := make([]string, 0, len(formats))
	for _, format := range formats {
		parts = append(parts, fmt.Sprintf("%d %s", byFormat[convert.Format(format)], format))
	}
	return strings.Join(parts, ", ")
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 files converted (2 markdown, 1 html), 14 operations, 2 warnings in 1 file".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No files to convert.") + "\n"
	}

	var parts []string

	converted := fmt.Sprintf("%d %s converted", stats.FilesConverted, plural(stats.FilesConverted, wordFile, wordFiles))
	if breakdown := formatBreakdown(stats.ByFormat); breakdown != "" {
		converted += " (" + breakdown + ")"
	}
	if stats.FilesFailed == 0 {
		converted = s.Success.Render(converted)
	}
	parts = append(parts, converted)

	parts = append(parts, fmt.Sprintf("%d %s", stats.OperationsTotal, plural(stats.OperationsTotal, "operation", "operations")))

	if stats.FindingsTotal > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d %s", stats.FindingsTotal, plural(stats.FindingsTotal, "warning", "warnings")))+
			fmt.Sprintf(" in %d %s", stats.FilesWithFindings, plural(stats.FilesWithFindings, wordFile, wordFiles)))
	}

	if stats.FilesFailed > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesFailed)))
	}

	if stats.FilesWritten > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d written", stats.FilesWritten)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files converted:   " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesConverted)) + "\n")

	if stats.FilesFailed > 0 {
		builder.WriteString("  Files failed:      " +
			s.Failure.Render(strconv.Itoa(stats.FilesFailed)) + "\n")
	}

	if stats.FilesWritten > 0 {
		builder.WriteString("  Bodies written:    " +
			s.Success.Render(strconv.Itoa(stats.FilesWritten)) + "\n")
	}

	builder.WriteString("\n")

	builder.WriteString("  Operations:        " +
		s.SummaryValue.Render(strconv.Itoa(stats.OperationsTotal)) + "\n")
	for _, kind := range []docops.Kind{
		docops.KindInsertText,
		docops.KindSetParagraphStyle,
		docops.KindSetCharacterStyle,
		docops.KindSetListMarker,
	} {
		if n := stats.OperationsByKind[kind]; n > 0 {
			builder.WriteString(fmt.Sprintf("    %-24s %s\n", string(kind)+":", s.SummaryValue.Render(strconv.Itoa(n))))
		}
	}
	builder.WriteString("  Inserted length:   " +
		s.SummaryValue.Render(strconv.Itoa(stats.InsertedLength)) + "\n")

	if stats.FindingsTotal > 0 {
		builder.WriteString("  Warnings:          " +
			s.Warning.Render(strconv.Itoa(stats.FindingsTotal)) + "\n")
	}

	builder.WriteString("\n")

	switch {
	case stats.FilesFailed > 0:
		builder.WriteString(s.Failure.Render("Conversion failed for some inputs"))
	case stats.FindingsTotal > 0:
		builder.WriteString(s.Warning.Render("Converted with warnings"))
	default:
		builder.WriteString(s.Success.Render("Converted"))
	}
	builder.WriteString("\n")

	return builder.String()
}
