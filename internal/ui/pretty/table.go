package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/gdocmark/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 6 // FILE, FORMAT, OPS, LENGTH, WARN, STATUS
	minFileWidth     = 20
	formatWidth      = 8
	numberWidth      = 7
	statusWidth      = 8
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100

	statusOK     = "ok"
	statusWarn   = "warn"
	statusFailed = "failed"
)

// TableRow is one input in the conversion table.
type TableRow struct {
	File       string
	Format     string
	Operations int
	Length     int
	Findings   int
	Status     string
}

// TableFormatter formats a run as a styled per-file table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter. A non-positive termWidth
// selects a default.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

// RowFromOutcome summarises one file outcome.
func RowFromOutcome(outcome runner.FileOutcome) TableRow {
	row := TableRow{
		File:     outcome.Path,
		Format:   string(outcome.Detection.Format),
		Findings: len(outcome.Findings),
		Status:   statusOK,
	}

	switch {
	case outcome.Error != nil:
		row.Status = statusFailed
	case outcome.Result != nil:
		row.Format = string(outcome.Result.Format)
		row.Operations = len(outcome.Result.Operations)
		row.Length = outcome.Result.Document.End - outcome.Result.Document.Start
	}
	if row.Status == statusOK && row.Findings > 0 {
		row.Status = statusWarn
	}

	return row
}

// FormatTable formats runner results as a table followed by a totals row.
func (t *TableFormatter) FormatTable(result *runner.Result) string {
	if result == nil || len(result.Files) == 0 {
		return ""
	}

	rows := make([]TableRow, 0, len(result.Files))
	for _, file := range result.Files {
		rows = append(rows, RowFromOutcome(file))
	}

	fileWidth := t.fileColumnWidth(rows)

	var builder strings.Builder

	builder.WriteString(t.styles.TableHeader.Render(t.line(fileWidth, "FILE", "FORMAT", "OPS", "LENGTH", "WARN", "STATUS")))
	builder.WriteString("\n")
	builder.WriteString(t.separator(fileWidth, heavySeparator))
	builder.WriteString("\n")

	for _, row := range rows {
		content := t.line(fileWidth,
			truncateFilePath(row.File, fileWidth),
			row.Format,
			strconv.Itoa(row.Operations),
			strconv.Itoa(row.Length),
			strconv.Itoa(row.Findings),
			row.Status,
		)
		builder.WriteString(t.rowStyle(row.Status).Render(content))
		builder.WriteString("\n")
	}

	builder.WriteString(t.separator(fileWidth, lightSeparator))
	builder.WriteString("\n")

	stats := result.Stats
	builder.WriteString(t.styles.Bold.Render(t.line(fileWidth,
		fmt.Sprintf("%d files", len(rows)),
		"",
		strconv.Itoa(stats.OperationsTotal),
		strconv.Itoa(stats.InsertedLength),
		strconv.Itoa(stats.FindingsTotal),
		fmt.Sprintf("%d failed", stats.FilesFailed),
	)))
	builder.WriteString("\n")

	return builder.String()
}

// FormatTableSummary formats a summary line for table output.
func (t *TableFormatter) FormatTableSummary(stats runner.Stats, duration string) string {
	parts := []string{fmt.Sprintf("%d files converted", stats.FilesConverted)}

	if stats.FilesFailed > 0 {
		parts = append(parts, t.styles.Error.Render(fmt.Sprintf("%d failed", stats.FilesFailed)))
	}
	if stats.FindingsTotal > 0 {
		parts = append(parts, t.styles.Warning.Render(fmt.Sprintf("%d warnings", stats.FindingsTotal)))
	}
	if duration != "" {
		parts = append(parts, t.styles.Dim.Render(duration))
	}

	return " " + strings.Join(parts, " | ")
}

func (t *TableFormatter) fixedWidth() int {
	return formatWidth + 3*numberWidth + statusWidth + tablePadding*tableColumnCount
}

// fileColumnWidth fits the longest path, shrinking to the terminal width.
func (t *TableFormatter) fileColumnWidth(rows []TableRow) int {
	width := minFileWidth
	for _, row := range rows {
		width = max(width, runewidth.StringWidth(row.File))
	}

	if available := t.termWidth - t.fixedWidth(); width > available {
		width = max(minFileWidth, available)
	}
	return width
}

func (t *TableFormatter) line(fileWidth int, file, format, ops, length, findings, status string) string {
	return fmt.Sprintf(" %s  %s  %*s  %*s  %*s  %s",
		runewidth.FillRight(file, fileWidth),
		runewidth.FillRight(format, formatWidth),
		numberWidth, ops,
		numberWidth, length,
		numberWidth, findings,
		runewidth.FillRight(status, statusWidth),
	)
}

func (t *TableFormatter) separator(fileWidth int, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, fileWidth+t.fixedWidth()))
}

func (t *TableFormatter) rowStyle(status string) lipgloss.Style {
	switch status {
	case statusFailed:
		return t.styles.TableErrorRow
	case statusWarn:
		return t.styles.TableWarnRow
	default:
		return lipgloss.NewStyle()
	}
}

// truncateFilePath cuts a path to maxWidth display cells, keeping the end
// (the file name) rather than the beginning.
func truncateFilePath(path string, maxWidth int) string {
	if runewidth.StringWidth(path) <= maxWidth {
		return path
	}
	runes := []rune(path)
	width := runewidth.StringWidth(ellipsis)
	start := len(runes)
	for start > 0 {
		w := runewidth.RuneWidth(runes[start-1])
		if width+w > maxWidth {
			break
		}
		width += w
		start--
	}
	return ellipsis + string(runes[start:])
}
