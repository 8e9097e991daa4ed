package reporter

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/gdocmark/pkg/runner"
)

// Table layout constants for summary output.
const (
	minTableWidth = 60
	maxTableWidth = 90
	numColWidth   = 8
)

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	return runewidth.FillLeft(s, width)
}

// padRight pads a string to the given width with spaces on the right.
func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// SummaryReporter writes aggregate tables by format and by operation kind.
type SummaryReporter struct {
	console
	width int
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	return &SummaryReporter{
		console: newConsole(opts),
		width:   min(max(width(opts.Writer), minTableWidth), maxTableWidth),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer r.flush(&err)

	if result == nil || result.Stats.FilesDiscovered == 0 {
		r.noFiles()
		return 0, nil
	}

	stats := result.Stats

	r.renderFormatTable(stats)
	fmt.Fprintln(r.bw)
	r.renderKindTable(stats)
	r.renderFailures(result)

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummary(stats))
	}

	return stats.OperationsTotal, nil
}

func (r *SummaryReporter) separator() string {
	return r.styles.TableSeparator.Render(strings.Repeat("─", r.width))
}

func (r *SummaryReporter) renderFormatTable(stats runner.Stats) {
	nameWidth := r.width - numColWidth

	fmt.Fprintln(r.bw, r.styles.Bold.Render("Formats"))
	fmt.Fprintln(r.bw, r.separator())
	fmt.Fprintf(r.bw, "%s%s\n",
		r.styles.TableHeader.Render(padRight("Format", nameWidth)),
		r.styles.TableHeader.Render(padLeft("Files", numColWidth)),
	)
	fmt.Fprintln(r.bw, r.separator())

	for _, format := range slices.Sorted(maps.Keys(stats.ByFormat)) {
		fmt.Fprintf(r.bw, "%s%s\n",
			padRight(string(format), nameWidth),
			padLeft(strconv.Itoa(stats.ByFormat[format]), numColWidth),
		)
	}
	if stats.FilesFailed > 0 {
		fmt.Fprintf(r.bw, "%s%s\n",
			r.styles.TableErrorRow.Render(padRight("failed", nameWidth)),
			padLeft(strconv.Itoa(stats.FilesFailed), numColWidth),
		)
	}
}

func (r *SummaryReporter) renderKindTable(stats runner.Stats) {
	nameWidth := r.width - numColWidth

	fmt.Fprintln(r.bw, r.styles.Bold.Render("Operations"))
	fmt.Fprintln(r.bw, r.separator())
	fmt.Fprintf(r.bw, "%s%s\n",
		r.styles.TableHeader.Render(padRight("Request", nameWidth)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
	)
	fmt.Fprintln(r.bw, r.separator())

	for _, kind := range slices.Sorted(maps.Keys(stats.OperationsByKind)) {
		fmt.Fprintf(r.bw, "%s%s\n",
			padRight(string(kind), nameWidth),
			padLeft(strconv.Itoa(stats.OperationsByKind[kind]), numColWidth),
		)
	}
}

func (r *SummaryReporter) renderFailures(result *runner.Result) {
	for _, file := range result.Files {
		if file.Error == nil {
			continue
		}
		fmt.Fprint(r.bw, r.styles.FormatFileError(r.opts.displayPath(file.Path), file.Error))
	}
}
