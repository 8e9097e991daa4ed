package cli

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/gdocmark/internal/ui/pretty"
)

// Command annotations rendered as extra help sections.
const (
	annotationEnv       = "gdocmark/env"
	annotationExitCodes = "gdocmark/exit-codes"
)

// helpPalette styles the parts of a help page.
type helpPalette struct {
	command lipgloss.Style
	heading lipgloss.Style
	name    lipgloss.Style
	flag    lipgloss.Style
	dim     lipgloss.Style
}

func newHelpPalette(color bool) helpPalette {
	if !color {
		plain := lipgloss.NewStyle()
		return helpPalette{command: plain, heading: plain, name: plain, flag: plain, dim: plain}
	}
	return helpPalette{
		command: lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		heading: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		name:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		flag:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ name (pad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}

{{- with annotation . "` + annotationEnv + `"}}

{{ heading "Environment:" }}
{{ dim . }}
{{- end}}

{{- with annotation . "` + annotationExitCodes + `"}}

{{ heading "Exit Codes:" }}
{{ dim . }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Run "{{ command (print .CommandPath " [command] --help") }}" for details on a command.
{{- end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ trimLines . }}

{{end}}` + usageTemplate

// applyHelp installs styled help and usage output on root. The color
// decision is made when help is rendered, after flags have been parsed.
func applyHelp(root *cobra.Command) {
	root.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		if err := renderHelp(cmd, helpTemplate); err != nil {
			cmd.PrintErrln(err)
		}
	})
	root.SetUsageFunc(func(cmd *cobra.Command) error {
		return renderHelp(cmd, usageTemplate)
	})
}

func renderHelp(cmd *cobra.Command, text string) error {
	mode := "auto"
	if f := cmd.Flags().Lookup("color"); f != nil {
		mode = f.Value.String()
	}
	p := newHelpPalette(pretty.IsColorEnabled(mode, cmd.OutOrStdout()))

	tmpl, err := template.New("help").Funcs(p.funcs()).Parse(text)
	if err != nil {
		return fmt.Errorf("parse help template: %w", err)
	}
	if err := tmpl.Execute(cmd.OutOrStdout(), cmd); err != nil {
		return fmt.Errorf("render help: %w", err)
	}
	return nil
}

func (p helpPalette) funcs() template.FuncMap {
	return template.FuncMap{
		"command":    p.command.Render,
		"heading":    p.heading.Render,
		"name":       p.name.Render,
		"dim":        p.dim.Render,
		"flags":      p.flagUsages,
		"pad":        runewidth.FillRight,
		"trimLines":  trimLines,
		"annotation": func(cmd *cobra.Command, key string) string { return cmd.Annotations[key] },
	}
}

// flagUsages lists the visible flags in a two-column layout aligned on
// display width.
func (p helpPalette) flagUsages(fs *pflag.FlagSet) string {
	type row struct{ left, styled, usage string }
	var rows []row
	width := 0

	fs.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		varname, usage := pflag.UnquoteUsage(f)

		var left, styled strings.Builder
		if f.Shorthand != "" {
			left.WriteString("-" + f.Shorthand + ", ")
			styled.WriteString(p.flag.Render("-"+f.Shorthand) + ", ")
		} else {
			left.WriteString("    ")
			styled.WriteString("    ")
		}
		left.WriteString("--" + f.Name)
		styled.WriteString(p.flag.Render("--" + f.Name))
		if varname != "" {
			left.WriteString(" " + varname)
			styled.WriteString(" " + p.dim.Render(varname))
		}

		if def := defaultText(f); def != "" {
			usage += " " + p.dim.Render("(default "+def+")")
		}

		rows = append(rows, row{left: left.String(), styled: styled.String(), usage: usage})
		width = max(width, runewidth.StringWidth(left.String()))
	})

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		gap := strings.Repeat(" ", width-runewidth.StringWidth(r.left)+3)
		lines = append(lines, "  "+r.styled+gap+r.usage)
	}
	return strings.Join(lines, "\n")
}

// defaultText renders a flag default, or "" when it is the zero value.
func defaultText(f *pflag.Flag) string {
	switch f.DefValue {
	case "", "0", "false", "[]":
		return ""
	}
	if f.Value.Type() == "string" {
		return fmt.Sprintf("%q", f.DefValue)
	}
	return f.DefValue
}

func trimLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
