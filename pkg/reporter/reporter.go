// Package reporter writes conversion results as JSON request bodies or
// human-readable listings.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/gdocmark/pkg/runner"
)

// Reporter writes a run's results. Report returns the number of
// operations it reported.
type Reporter interface {
	Report(ctx context.Context, result *runner.Result) (int, error)
}

//nolint:gochecknoglobals // Read-only lookup table.
var constructors = map[Format]func(Options) Reporter{
	FormatJSON:    func(o Options) Reporter { return NewJSONReporter(o) },
	FormatText:    func(o Options) Reporter { return NewTextReporter(o) },
	FormatTable:   func(o Options) Reporter { return NewTableReporter(o) },
	FormatSummary: func(o Options) Reporter { return NewSummaryReporter(o) },
}

// New returns the reporter for opts.Format, JSON when unset. A nil
// Writer means stdout.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	if opts.Format == "" {
		opts.Format = FormatJSON
	}

	newReporter, ok := constructors[opts.Format]
	if !ok {
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}
	return newReporter(opts), nil
}
