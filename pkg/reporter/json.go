package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gdocmark/pkg/docops"
	"github.com/yaklabco/gdocmark/pkg/inspect"
	"github.com/yaklabco/gdocmark/pkg/runner"
)

// JSONOutputVersion is the version of the JSON report layout.
const JSONOutputVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single input's conversion.
type JSONFileResult struct {
	Path     string `json:"path"`
	Format   string `json:"format,omitempty"`
	Source   string `json:"source,omitempty"`
	Language string `json:"language,omitempty"`

	// Body is the batch update request body; nil when conversion failed.
	Body *docops.BatchUpdate `json:"body,omitempty"`

	Findings []inspect.Finding `json:"findings,omitempty"`
	Output   string            `json:"output,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesConverted int                 `json:"filesConverted"`
	FilesFailed    int                 `json:"filesFailed"`
	FilesWritten   int                 `json:"filesWritten"`
	Operations     int                 `json:"operations"`
	ByKind         map[docops.Kind]int `json:"byKind"`
	InsertedLength int                 `json:"insertedLength"`
	Findings       int                 `json:"findings"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.Operations, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: JSONOutputVersion,
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{
			ByKind: make(map[docops.Kind]int),
		},
	}

	if result == nil {
		return output
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:     r.opts.displayPath(file.Path),
			Format:   string(file.Detection.Format),
			Source:   string(file.Detection.Source),
			Language: file.Detection.Language,
			Findings: file.Findings,
		}
		if file.OutputPath != "" {
			fileResult.Output = r.opts.displayPath(file.OutputPath)
		}

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}

		if file.Result != nil {
			fileResult.Format = string(file.Result.Format)
			body := docops.NewBatchUpdate(file.Result.Operations)
			fileResult.Body = &body
		}

		output.Files = append(output.Files, fileResult)
	}

	stats := result.Stats
	output.Summary.FilesConverted = stats.FilesConverted
	output.Summary.FilesFailed = stats.FilesFailed
	output.Summary.FilesWritten = stats.FilesWritten
	output.Summary.Operations = stats.OperationsTotal
	output.Summary.InsertedLength = stats.InsertedLength
	output.Summary.Findings = stats.FindingsTotal
	for kind, n := range stats.OperationsByKind {
		output.Summary.ByKind[kind] = n
	}

	return output
}
