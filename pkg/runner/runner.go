package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/yaklabco/gdocmark/internal/logging"
	"github.com/yaklabco/gdocmark/pkg/config"
	"github.com/yaklabco/gdocmark/pkg/convert"
	"github.com/yaklabco/gdocmark/pkg/docops"
	"github.com/yaklabco/gdocmark/pkg/formatdetect"
	"github.com/yaklabco/gdocmark/pkg/fsutil"
	"github.com/yaklabco/gdocmark/pkg/inspect"
)

// ErrBinaryInput is returned for inputs whose content is not text.
var ErrBinaryInput = errors.New("binary input")

// stdinOutputName names the request body written for standard input.
const stdinOutputName = "stdin"

// Runner converts files with a bounded worker pool.
type Runner struct {
	// Stdin is read when a path is "-".
	Stdin io.Reader
}

// New creates a Runner reading "-" from stdin.
func New(stdin io.Reader) *Runner {
	if stdin == nil {
		stdin = os.Stdin
	}
	return &Runner{Stdin: stdin}
}

// Run discovers files under opts.Paths and converts them concurrently.
// Outcomes are returned in discovery order whatever order workers finish in.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	cfg := opts.effectiveConfig()
	var inspector *inspect.Inspector
	if cfg.InspectEnabled() {
		inspector = inspect.New(string(cfg.Flavor))
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	jobs = min(jobs, len(files))

	logging.FromContext(ctx).Debug("converting",
		logging.FieldFilesDiscovered, len(files),
		logging.FieldJobs, jobs,
	)

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range workCh {
				outcome := r.process(ctx, path, workDir, opts, inspector)
				select {
				case <-ctx.Done():
					return
				case outCh <- outcome:
				}
			}
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// process converts one input. It never returns a nil outcome; failures
// are recorded in FileOutcome.Error.
func (r *Runner) process(
	ctx context.Context,
	path, workDir string,
	opts Options,
	inspector *inspect.Inspector,
) FileOutcome {
	outcome := FileOutcome{Path: path}
	cfg := opts.effectiveConfig()
	log := logging.FromContext(ctx).With(logging.FieldPath, path)

	content, err := r.read(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	outcome.Detection = DetectContent(path, content, cfg)
	if outcome.Detection.Source == formatdetect.SourceBinary {
		outcome.Error = fmt.Errorf("%w: %s", ErrBinaryInput, path)
		return outcome
	}

	converted, err := convert.Convert(string(content), ConvertOptions(cfg, outcome.Detection.Format))
	if err != nil {
		outcome.Error = fmt.Errorf("convert %s: %w", path, err)
		return outcome
	}
	outcome.Result = converted

	if inspector != nil && converted.Format == convert.FormatMarkdown {
		findings, err := inspector.Inspect(ctx, content)
		if err != nil {
			outcome.Error = fmt.Errorf("inspect %s: %w", path, err)
			return outcome
		}
		outcome.Findings = findings
	}

	if opts.OutDir != "" {
		source := path
		if path == StdinPath {
			source = stdinOutputName
		}
		outPath, err := fsutil.OutputPath(opts.OutDir, workDir, source)
		if err != nil {
			outcome.Error = err
			return outcome
		}
		body, err := docops.NewBatchUpdate(converted.Operations).Encode(opts.Compact)
		if err != nil {
			outcome.Error = err
			return outcome
		}
		written, err := fsutil.WriteAtomicIfChanged(ctx, outPath, body, fsutil.DefaultFileMode)
		if err != nil {
			outcome.Error = fmt.Errorf("write %s: %w", outPath, err)
			return outcome
		}
		outcome.OutputPath = outPath
		outcome.Written = written
	}

	log.Debug("converted",
		logging.FieldFormat, converted.Format,
		logging.FieldSource, outcome.Detection.Source,
		logging.FieldLanguage, outcome.Detection.Language,
		logging.FieldOperations, len(converted.Operations),
		logging.FieldLength, converted.Document.End-converted.Document.Start,
	)
	return outcome
}

func (r *Runner) read(ctx context.Context, path string) ([]byte, error) {
	return fsutil.ReadInput(ctx, path, r.Stdin)
}

// DetectContent decides the format of content read from path. A format
// fixed by cfg wins over detection.
func DetectContent(path string, content []byte, cfg *config.Config) formatdetect.Detection {
	if cfg != nil && cfg.Format != "" && cfg.Format != config.InputAuto {
		return formatdetect.Fixed(convert.Format(cfg.Format), content)
	}
	if path == StdinPath {
		path = ""
	}
	return formatdetect.Detect(path, content)
}

// ConvertOptions maps a configuration onto converter options for content
// already detected as format.
func ConvertOptions(cfg *config.Config, format convert.Format) convert.Options {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return convert.Options{
		Format:        format,
		StartIndex:    cfg.Start(),
		Normalization: convert.Normalization(cfg.UnicodeNormalization),
	}
}
