package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/gdocmark/internal/ui/pretty"
	"github.com/yaklabco/gdocmark/pkg/runner"
)

// TableReporter prints one row per input: path, format, operation count
// and status.
type TableReporter struct {
	console
	table *pretty.TableFormatter
}

func NewTableReporter(opts Options) *TableReporter {
	c := newConsole(opts)
	return &TableReporter{console: c, table: pretty.NewTableFormatter(c.styles, width(opts.Writer))}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (n int, err error) {
	defer r.flush(&err)

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			r.noFiles()
		}
		return 0, nil
	}

	rows := *result
	rows.Files = make([]runner.FileOutcome, 0, len(result.Files))
	for _, file := range result.Files {
		file.Path = r.opts.displayPath(file.Path)
		rows.Files = append(rows.Files, file)
	}
	fmt.Fprint(r.bw, r.table.FormatTable(&rows))

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw, r.table.FormatTableSummary(result.Stats, ""))
	}
	return result.Stats.OperationsTotal, nil
}
