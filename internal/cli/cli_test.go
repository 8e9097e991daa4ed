package cli_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/yaklabco/gdocmark/internal/cli"
	"github.com/yaklabco/gdocmark/pkg/convert"
	"github.com/yaklabco/gdocmark/pkg/runner"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	if cmd == nil {
		t.Fatal("NewRootCommand returned nil")
	}

	if cmd.Use != "gdocmark" {
		t.Errorf("expected Use to be 'gdocmark', got %q", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("expected Short description to be set")
	}

	if cmd.Long == "" {
		t.Error("expected Long description to be set")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	expectedSubcommands := []string{"convert", "detect", "config", "init", "version"}

	for _, name := range expectedSubcommands {
		subCmd, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Errorf("expected subcommand %q to exist, got error: %v", name, err)
			continue
		}

		if subCmd.Name() != name {
			t.Errorf("expected subcommand name %q, got %q", name, subCmd.Name())
		}
	}
}

func TestConvertCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	convertCmd, _, err := cmd.Find([]string{"convert"})
	if err != nil {
		t.Fatalf("convert command not found: %v", err)
	}

	expectedFlags := map[string]string{
		"output":        "json",
		"format":        "auto",
		"start-index":   "1",
		"flavor":        "commonmark",
		"inspect":       "true",
		"normalization": "none",
		"out-dir":       "",
		"jobs":          "0",
		"compact":       "false",
		"ignore":        "[]",
		"extensions":    "[]",
		"preview-width": "0",
	}

	for name, def := range expectedFlags {
		flag := convertCmd.Flags().Lookup(name)
		if flag == nil {
			t.Errorf("expected flag %q to exist on convert command", name)
			continue
		}
		if flag.DefValue != def {
			t.Errorf("flag %q default = %q, want %q", name, flag.DefValue, def)
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, flagName := range []string{"debug", "config", "color"} {
		if cmd.PersistentFlags().Lookup(flagName) == nil {
			t.Errorf("expected global flag %q to exist", flagName)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{
		Version: "1.2.3",
		Commit:  "abc123",
		Date:    "2024-01-01",
	})
	cmd.SetArgs([]string{"version"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	for _, want := range []string{"gdocmark", "1.2.3", "abc123"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("version output %q missing %q", out.String(), want)
		}
	}
}

func TestVersionCommand_Short(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "1.2.3"})
	cmd.SetArgs([]string{"version", "--short"})

	var out bytes.Buffer
	cmd.SetOut(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version --short failed: %v", err)
	}
	if out.String() != "1.2.3\n" {
		t.Errorf("version --short = %q, want %q", out.String(), "1.2.3\n")
	}
}

func TestConvertCommandAcceptsArbitraryArgs(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	convertCmd, _, err := cmd.Find([]string{"convert"})
	if err != nil {
		t.Fatalf("convert command not found: %v", err)
	}

	if err := convertCmd.Args(convertCmd, []string{"file1.md", "page.html", "docs/", "-"}); err != nil {
		t.Errorf("convert command should accept arbitrary args, got error: %v", err)
	}
}

func TestConvertHelpSections(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetArgs([]string{"convert", "--help", "--color", "never"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("help failed: %v", err)
	}

	for _, want := range []string{"Usage:", "Examples:", "--out-dir build/", "Environment:", "GDOCMARK_START_INDEX", "Exit Codes:", "70  internal error", "--out-dir"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("help output missing %q", want)
		}
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"plain error", errors.New("boom"), cli.ExitInternalError},
		{"usage", &cli.ExitError{Code: cli.ExitInvalidUsage, Err: errors.New("bad flag")}, cli.ExitInvalidUsage},
		{"wrapped", errors.Join(errors.New("context"), &cli.ExitError{Code: cli.ExitIOError, Err: errors.New("read")}), cli.ExitIOError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := cli.ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	if got := cli.ExitCodeFromResult(nil); got != cli.ExitSuccess {
		t.Errorf("nil result: got %d", got)
	}

	failed := &runner.Result{
		Files: []runner.FileOutcome{{Path: "a.md", Error: convert.ErrEmptyContent}},
		Stats: runner.Stats{FilesFailed: 1},
	}
	if got := cli.ExitCodeFromResult(failed); got != cli.ExitConversionFailed {
		t.Errorf("failed result: got %d, want %d", got, cli.ExitConversionFailed)
	}
}
