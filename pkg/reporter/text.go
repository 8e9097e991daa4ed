package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/gdocmark/pkg/runner"
)

// TextReporter lists every operation of every input with a preview of the
// text it touches, followed by inspection findings.
type TextReporter struct {
	console
}

func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{console: newConsole(opts)}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (n int, err error) {
	defer r.flush(&err)

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			r.noFiles()
		}
		return 0, nil
	}

	for _, file := range result.Files {
		n += r.writeFile(file)
	}
	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}
	return n, nil
}

// writeFile prints one input and returns how many operations it listed.
func (r *TextReporter) writeFile(file runner.FileOutcome) int {
	path := r.opts.displayPath(file.Path)
	switch {
	case file.Error != nil:
		fmt.Fprint(r.bw, r.styles.FormatFileError(path, file.Error))
		return 0
	case file.Result == nil:
		return 0
	}

	doc, ops := file.Result.Document, file.Result.Operations
	fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, string(file.Result.Format), len(ops)))
	for _, op := range ops {
		fmt.Fprint(r.bw, r.styles.FormatOperation(op, doc.Text, doc.Start, r.opts.previewWidth()))
	}
	for _, f := range file.Findings {
		fmt.Fprint(r.bw, r.styles.FormatFinding(f))
	}
	if file.Written {
		fmt.Fprintln(r.bw, r.styles.Dim.Render("  wrote "+r.opts.displayPath(file.OutputPath)))
	}
	fmt.Fprintln(r.bw)
	return len(ops)
}
