package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gdocmark/internal/configloader"
	"github.com/yaklabco/gdocmark/internal/logging"
)

func newConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration convert would use in the current directory,
after merging system, user, project and --config files with GDOCMARK_*
environment variables. The output is valid .gdocmark.yml content.`,
		Args: cobra.NoArgs,
		RunE: runConfig,
	}
}

func runConfig(cmd *cobra.Command, _ []string) error {
	logger := logging.Default()
	logger.SetOutput(cmd.ErrOrStderr())

	workDir, err := os.Getwd()
	if err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("get working directory: %w", err))
	}
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return withExitCode(ExitInternalError, fmt.Errorf("get config flag: %w", err))
	}

	res, err := configloader.Load(cmd.Context(), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
	})
	if err != nil {
		return withExitCode(ExitConfigError, errors.Join(errors.New("failed to load configuration"), err))
	}
	for _, w := range res.Warnings {
		logger.Warn(w)
	}
	logger.Debug("configuration resolved", logging.FieldConfig, configPath, logging.FieldPaths, res.LoadedFrom)

	data, err := res.Config.ToYAMLWithHeader(sourcesHeader(res.LoadedFrom))
	if err != nil {
		return withExitCode(ExitInternalError, err)
	}
	if _, err := cmd.OutOrStdout().Write(data); err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("write configuration: %w", err))
	}
	return nil
}

func sourcesHeader(loaded []string) string {
	var b strings.Builder
	b.WriteString("# Effective gdocmark configuration\n")
	b.WriteString("# Sources: defaults")
	for _, path := range loaded {
		b.WriteString(", " + path)
	}
	b.WriteString("\n")
	return b.String()
}
