package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gdocmark/internal/logging"
	"github.com/yaklabco/gdocmark/internal/ui/pretty"
	"github.com/yaklabco/gdocmark/pkg/config"
	"github.com/yaklabco/gdocmark/pkg/formatdetect"
	"github.com/yaklabco/gdocmark/pkg/fsutil"
	"github.com/yaklabco/gdocmark/pkg/runner"
)

type detectFlags struct {
	output string
}

const formatJSON = "json"

// detectInfo represents one input in JSON output.
type detectInfo struct {
	Path     string `json:"path"`
	Format   string `json:"format"`
	Source   string `json:"source"`
	Language string `json:"language,omitempty"`
}

func newDetectCommand() *cobra.Command {
	flags := &detectFlags{}

	cmd := &cobra.Command{
		Use:   "detect [paths...]",
		Short: "Print the detected input format of each file",
		Long: `Print the input format convert would use for each file, and whether it
came from the file extension, the content or the configuration.

Files are discovered the same way convert discovers them.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "text", "output format: text, json")

	return cmd
}

func runDetect(cmd *cobra.Command, args []string, flags *detectFlags) error {
	if flags.output != "text" && flags.output != formatJSON {
		return withExitCode(ExitInvalidUsage, fmt.Errorf("invalid output %q: must be text or json", flags.output))
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logging.Default())

	workDir, err := os.Getwd()
	if err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("get working directory: %w", err))
	}

	cfg, err := loadConfig(ctx, cmd, workDir, &config.Config{})
	if err != nil {
		return err
	}

	files, err := runner.Discover(ctx, runner.OptionsFromConfig(cfg, workDir, args))
	if err != nil {
		return withExitCode(ExitIOError, err)
	}

	infos := make([]detectInfo, 0, len(files))
	for _, path := range files {
		detection, err := detectFile(ctx, cmd, path, cfg)
		if err != nil {
			return withExitCode(ExitIOError, err)
		}
		infos = append(infos, detectInfo{
			Path:     relativeTo(workDir, path),
			Format:   string(detection.Format),
			Source:   string(detection.Source),
			Language: detection.Language,
		})
	}

	if flags.output == formatJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(infos); err != nil {
			return withExitCode(ExitIOError, fmt.Errorf("encoding detections: %w", err))
		}
		return nil
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, cmd.OutOrStdout()))

	for _, info := range infos {
		line := fmt.Sprintf("%s  %s", styles.FilePath.Render(info.Path), info.Format)
		detail := info.Source
		if info.Language != "" {
			detail += ", " + info.Language
		}
		fmt.Fprintln(cmd.OutOrStdout(), line+styles.Dim.Render(" ("+detail+")"))
	}

	return nil
}

func detectFile(ctx context.Context, cmd *cobra.Command, path string, cfg *config.Config) (formatdetect.Detection, error) {
	content, err := fsutil.ReadInput(ctx, path, cmd.InOrStdin())
	if err != nil {
		return formatdetect.Detection{}, err
	}
	return runner.DetectContent(path, content, cfg), nil
}

// relativeTo shortens path to be relative to dir when it lies beneath it.
func relativeTo(dir, path string) string {
	if !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(dir, path)
	if err != nil || !filepath.IsLocal(rel) {
		return path
	}
	return rel
}
