package runner

import (
	"github.com/yaklabco/gdocmark/pkg/convert"
	"github.com/yaklabco/gdocmark/pkg/docops"
	"github.com/yaklabco/gdocmark/pkg/formatdetect"
	"github.com/yaklabco/gdocmark/pkg/inspect"
)

// FileOutcome is the conversion of one input.
type FileOutcome struct {
	// Path is the file path that was processed, or "-" for stdin.
	Path string

	// Detection records how the input format was decided.
	Detection formatdetect.Detection

	// Result is nil if the file could not be converted.
	Result *convert.Result

	// Findings are Markdown constructs inserted as literal text.
	Findings []inspect.Finding

	// OutputPath is where the request body was written, if anywhere.
	OutputPath string

	// Written is false when OutputPath already held identical content.
	Written bool

	// Error is set if the file could not be read or converted.
	Error error
}

// Operations returns the converted operations, or nil.
func (o FileOutcome) Operations() []docops.Operation {
	if o.Result == nil {
		return nil
	}
	return o.Result.Operations
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesConverted  int
	FilesFailed     int

	// FilesWritten counts request bodies written under the output directory.
	FilesWritten int

	FilesWithFindings int
	FindingsTotal     int

	OperationsTotal  int
	OperationsByKind map[docops.Kind]int

	// InsertedLength is the total inserted text in document offsets.
	InsertedLength int

	ByFormat map[convert.Format]int
}

// Result is the overall runner result.
type Result struct {
	// Files are ordered as discovered (sorted by path, stdin first).
	Files []FileOutcome

	Stats Stats

	// Errors contains any non-file-specific errors encountered.
	Errors []error
}

// HasFailures reports whether any input failed to convert.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesFailed > 0 || len(r.Errors) > 0
}

// HasFindings reports whether inspection reported anything.
func (r *Result) HasFindings() bool {
	if r == nil {
		return false
	}
	return r.Stats.FindingsTotal > 0
}

func newStats() Stats {
	return Stats{
		OperationsByKind: make(map[docops.Kind]int),
		ByFormat:         make(map[convert.Format]int),
	}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesFailed++
		return
	}
	if outcome.Result == nil {
		return
	}

	r.Stats.FilesConverted++
	r.Stats.ByFormat[outcome.Result.Format]++

	if outcome.Written {
		r.Stats.FilesWritten++
	}

	ops := outcome.Result.Operations
	r.Stats.OperationsTotal += len(ops)
	for kind, n := range docops.Count(ops) {
		r.Stats.OperationsByKind[kind] += n
	}
	r.Stats.InsertedLength += outcome.Result.Document.End - outcome.Result.Document.Start

	if n := len(outcome.Findings); n > 0 {
		r.Stats.FilesWithFindings++
		r.Stats.FindingsTotal += n
	}
}
