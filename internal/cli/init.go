package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gdocmark/internal/logging"
	"github.com/yaklabco/gdocmark/pkg/config"
	"github.com/yaklabco/gdocmark/pkg/fsutil"
)

// defaultConfigNames maps a template format to the file init creates.
//
//nolint:gochecknoglobals // Read-only lookup table.
var defaultConfigNames = map[string]string{
	"yaml":     ".gdocmark.yml",
	formatJSON: ".gdocmark.json",
}

type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		Long: `Create .gdocmark.yml in the current directory. The default template
lists every key commented out with its default value; --full sets every key.`,
		Example: `  gdocmark init
  gdocmark init --full
  gdocmark init --format json
  gdocmark init --output team.yml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&flags.force, "force", "f", false, "overwrite an existing file")
	f.BoolVar(&flags.full, "full", false, "set every key instead of commenting them out")
	f.StringVar(&flags.format, "format", "yaml", "template format: yaml or json")
	f.StringVarP(&flags.output, "output", "o", "", "file to write (default .gdocmark.yml or .gdocmark.json)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()
	logger.SetOutput(cmd.ErrOrStderr())

	path, ok := defaultConfigNames[flags.format]
	if !ok {
		return withExitCode(ExitInvalidUsage, fmt.Errorf("invalid format %q: must be yaml or json", flags.format))
	}
	if flags.output != "" {
		path = flags.output
	}

	switch _, err := os.Stat(path); {
	case err == nil && !flags.force:
		return withExitCode(ExitInvalidUsage, fmt.Errorf("%s already exists; use --force to overwrite", path))
	case err == nil:
		logger.Warn("overwriting existing file", logging.FieldPath, path)
	case !errors.Is(err, fs.ErrNotExist):
		return withExitCode(ExitIOError, fmt.Errorf("stat %s: %w", path, err))
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{Full: flags.full, Format: flags.format})
	if err != nil {
		return withExitCode(ExitInternalError, fmt.Errorf("generate template: %w", err))
	}
	if err := fsutil.WriteAtomic(cmd.Context(), path, content, fsutil.DefaultFileMode); err != nil {
		return withExitCode(ExitIOError, err)
	}

	logger.Info("created configuration file", logging.FieldPath, path)
	logger.Info("GDOCMARK_* environment variables override it; see 'gdocmark convert --help'")
	return nil
}
