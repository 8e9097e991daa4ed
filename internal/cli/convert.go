package cli

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/gdocmark/internal/configloader"
	"github.com/yaklabco/gdocmark/internal/logging"
	"github.com/yaklabco/gdocmark/pkg/config"
	"github.com/yaklabco/gdocmark/pkg/reporter"
	"github.com/yaklabco/gdocmark/pkg/runner"
)

type convertFlags struct {
	output        string
	format        string
	startIndex    int
	flavor        string
	inspect       bool
	normalization string
	outDir        string
	jobs          int
	compact       bool
	ignore        []string
	extensions    []string
	previewWidth  int
}

func newConvertCommand() *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:     "convert [paths...]",
		Short:   "Convert files into batchUpdate request bodies",
		Long:    convertLongDescription,
		Example: convertExamples,
		Args:    cobra.ArbitraryArgs,
		Annotations: map[string]string{
			annotationEnv:       envHelp(),
			annotationExitCodes: exitCodeHelp,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, flags)
		},
	}

	addConvertFlags(cmd.Flags(), flags)

	return cmd
}

const convertLongDescription = `Convert Markdown, HTML and plain text files into Google Docs
batchUpdate request bodies.

By default, converts every .md, .markdown, .html, .htm and .txt file in the
current directory and subdirectories. Use "-" to read standard input.`

const convertExamples = `  gdocmark convert README.md                 # Print the request body as JSON
  gdocmark convert docs/ --out-dir build/    # Write one body per file
  gdocmark convert --output text notes.md    # Show the operations
  gdocmark convert --start-index 42 -        # Insert stdin at offset 42
  cat page.html | gdocmark convert --format html -`

const exitCodeHelp = `  0   every input converted
  1   some inputs failed to convert
  64  invalid usage
  65  invalid configuration
  70  internal error
  74  input or output error`

func envHelp() string {
	vars := configloader.ListEnvVars()
	var builder strings.Builder
	for i, name := range slices.Sorted(maps.Keys(vars)) {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(fmt.Sprintf("  %-32s %s", name, vars[name]))
	}
	return builder.String()
}

// cliConfig maps explicitly set flags onto a config overlay.
func cliConfig(cmd *cobra.Command, flags *convertFlags) (*config.Config, error) {
	cfg := &config.Config{
		Ignore:     flags.ignore,
		Extensions: flags.extensions,
		OutDir:     flags.outDir,
		Jobs:       flags.jobs,
		Compact:    flags.compact,
	}

	changed := cmd.Flags().Changed

	if changed("output") {
		output, err := config.ParseOutputFormat(flags.output)
		if err != nil {
			return nil, err
		}
		cfg.Output = output
	}
	if changed("format") {
		cfg.Format = config.InputFormat(strings.ToLower(flags.format))
		if !cfg.Format.IsValid() {
			return nil, fmt.Errorf("invalid --format %q; must be one of: auto, markdown, html, plain", flags.format)
		}
	}
	if changed("start-index") {
		if flags.startIndex < 0 {
			return nil, fmt.Errorf("invalid --start-index %d: must not be negative", flags.startIndex)
		}
		cfg.StartIndex = config.IntPtr(flags.startIndex)
	}
	if changed("flavor") {
		cfg.Flavor = config.Flavor(strings.ToLower(flags.flavor))
		if !cfg.Flavor.IsValid() {
			return nil, fmt.Errorf("invalid --flavor %q; must be one of: commonmark, gfm", flags.flavor)
		}
	}
	if changed("inspect") {
		cfg.Inspect = config.BoolPtr(flags.inspect)
	}
	if changed("normalization") {
		normalization, err := config.ParseNormalization(flags.normalization)
		if err != nil {
			return nil, err
		}
		cfg.UnicodeNormalization = normalization
	}
	if flags.jobs < 0 {
		return nil, fmt.Errorf("invalid --jobs %d: must not be negative", flags.jobs)
	}

	return cfg, nil
}

// loadConfig resolves the configuration for a command run.
func loadConfig(ctx context.Context, cmd *cobra.Command, workDir string, overlay *config.Config) (*config.Config, error) {
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    overlay,
	})
	if err != nil {
		return nil, withExitCode(ExitConfigError, errors.Join(errors.New("failed to load configuration"), err))
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldPaths, loadResult.LoadedFrom)
	}

	return loadResult.Config, nil
}

func runConvert(cmd *cobra.Command, args []string, flags *convertFlags) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	overlay, err := cliConfig(cmd, flags)
	if err != nil {
		return withExitCode(ExitInvalidUsage, err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("get working directory: %w", err))
	}

	finalCfg, err := loadConfig(ctx, cmd, workDir, overlay)
	if err != nil {
		return err
	}

	logger.Debug("configuration loaded",
		logging.FieldFormat, finalCfg.Format,
		logging.FieldStartIndex, finalCfg.Start(),
		logging.FieldFlavor, finalCfg.Flavor,
		logging.FieldJobs, finalCfg.Jobs,
	)

	runOpts := runner.OptionsFromConfig(finalCfg, workDir, args)

	logger.Debug("starting conversion run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldOutput, runOpts.OutDir,
	)

	started := time.Now()
	result, err := runner.New(cmd.InOrStdin()).Run(ctx, runOpts)
	if err != nil {
		return withExitCode(ExitIOError, errors.Join(errors.New("conversion run failed"), err))
	}

	logger.Debug("conversion run finished",
		logging.FieldFilesConverted, result.Stats.FilesConverted,
		logging.FieldFilesFailed, result.Stats.FilesFailed,
		logging.FieldFindingsTotal, result.Stats.FindingsTotal,
		logging.FieldDuration, time.Since(started),
	)

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	format, err := reporter.ParseFormat(string(finalCfg.Output))
	if err != nil {
		return withExitCode(ExitInvalidUsage, fmt.Errorf("invalid output: %w", err))
	}

	// Findings and failures also go to stderr for JSON reports.
	if format == reporter.FormatJSON {
		logOutcomes(logger, result)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:       cmd.OutOrStdout(),
		ErrorWriter:  cmd.ErrOrStderr(),
		Format:       format,
		Color:        colorMode,
		ShowSummary:  true,
		Compact:      finalCfg.Compact,
		PreviewWidth: flags.previewWidth,
		WorkingDir:   workDir,
	})
	if err != nil {
		return withExitCode(ExitInternalError, fmt.Errorf("create reporter: %w", err))
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return withExitCode(ExitIOError, fmt.Errorf("report results: %w", err))
	}

	if code := ExitCodeFromResult(result); code != ExitSuccess {
		return withExitCode(code, ErrConversionFailed)
	}

	return nil
}

func logOutcomes(logger *log.Logger, result *runner.Result) {
	for _, file := range result.Files {
		if file.Error != nil {
			logger.Error("conversion failed", logging.FieldPath, file.Path, logging.FieldError, file.Error)
			continue
		}
		for _, finding := range file.Findings {
			logger.Warn(finding.Message,
				logging.FieldPath, file.Path,
				logging.FieldLine, finding.Line,
				logging.FieldKind, finding.Kind,
			)
		}
	}
}

func addConvertFlags(fs *pflag.FlagSet, flags *convertFlags) {
	fs.StringVarP(&flags.output, "output", "o", "json", "report format: json, text, table, summary")
	fs.StringVar(&flags.format, "format", "auto", "input format: auto, markdown, html, plain")
	fs.IntVar(&flags.startIndex, "start-index", config.DefaultStartIndex,
		"document offset where the content is inserted")
	fs.StringVar(&flags.flavor, "flavor", "commonmark", "Markdown flavor used for inspection: commonmark, gfm")
	fs.BoolVar(&flags.inspect, "inspect", true, "report Markdown constructs inserted as literal text")
	fs.StringVar(&flags.normalization, "normalization", "none", "Unicode normalization applied before conversion: none, nfc")
	fs.StringVar(&flags.outDir, "out-dir", "", "write one request body per input into this directory")
	fs.IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	fs.BoolVar(&flags.compact, "compact", false, "write JSON on a single line")
	fs.StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	fs.StringSliceVar(&flags.extensions, "extensions", nil, "file extensions to convert when walking directories")
	fs.IntVar(&flags.previewWidth, "preview-width", 0, "width of text previews in text output (0 = default, -1 = unlimited)")
}
