package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/kumihan/internal/configloader"
	"github.com/yaklabco/kumihan/internal/ui/pretty"
)

// columnGap separates the name column from the description column.
const columnGap = "   "

// HelpFormatter renders cobra help and usage text with the output styles.
type HelpFormatter struct {
	styles *pretty.Styles
}

// NewHelpFormatter creates a help formatter for the given color mode
// ("auto", "always" or "never") and destination.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: pretty.NewStyles(pretty.IsColorEnabled(colorMode, writer))}
}

// ApplyToCommand installs the styled help and usage functions on cmd.
// Subcommands inherit them. A --color flag on the rendered command
// overrides the formatter's color mode.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	cmd.SetUsageFunc(func(command *cobra.Command) error {
		return h.forCommand(command).render(command, usageTemplate)
	})

	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := h.forCommand(command).render(command, helpTemplate); err != nil {
			command.PrintErrln(err)
		}
	})
}

// forCommand returns a formatter honoring an explicitly set --color flag.
func (h *HelpFormatter) forCommand(cmd *cobra.Command) *HelpFormatter {
	flag := cmd.Flags().Lookup("color")
	if flag == nil || !flag.Changed {
		return h
	}
	return NewHelpFormatter(flag.Value.String(), cmd.OutOrStdout())
}

func (h *HelpFormatter) render(cmd *cobra.Command, text string) error {
	tmpl, err := template.New("help").Funcs(h.funcs()).Parse(text)
	if err != nil {
		return fmt.Errorf("parse help template: %w", err)
	}
	if err := tmpl.Execute(cmd.OutOrStdout(), cmd); err != nil {
		return fmt.Errorf("render help: %w", err)
	}
	return nil
}

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"heading":  h.styles.Bold.Render,
		"command":  h.styles.NodeType.Render,
		"dim":      h.styles.Dim.Render,
		"commands": h.commandsUsage,
		"flags":    h.flagsUsage,
		"envVars":  h.envVarsUsage,
		"join":     strings.Join,
		"trim":     trimTrailingWhitespaces,
	}
}

const helpTemplate = `{{with (or .Long .Short)}}{{ trim . }}

{{end}}{{if or .Runnable .HasSubCommands}}{{ .UsageString }}{{end}}`

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}
{{- end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]
{{- end}}
{{- if gt (len .Aliases) 0}}

{{ heading "Aliases:" }}
  {{ dim (join .Aliases ", ") }}
{{- end}}
{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end}}
{{- if .HasAvailableSubCommands}}

{{ heading "Available Commands:" }}
{{ commands . }}
{{- end}}
{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}
{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}
{{- if not .HasParent}}

{{ heading "Environment:" }}
{{ envVars }}
{{- end}}
{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

// row is one line of a two-column listing.
type row struct {
	name        string
	description string
}

// columns renders rows with the descriptions aligned. Widths are measured
// after styling so that ANSI sequences do not skew alignment.
func (h *HelpFormatter) columns(rows []row, style func(...string) string) string {
	styled := make([]string, len(rows))
	width := 0
	for i, r := range rows {
		styled[i] = style(r.name)
		width = max(width, lipgloss.Width(styled[i]))
	}

	lines := make([]string, len(rows))
	for i, r := range rows {
		pad := strings.Repeat(" ", width-lipgloss.Width(styled[i]))
		lines[i] = strings.TrimRight("  "+styled[i]+pad+columnGap+r.description, " ")
	}
	return strings.Join(lines, "\n")
}

func (h *HelpFormatter) commandsUsage(cmd *cobra.Command) string {
	var rows []row
	for _, sub := range cmd.Commands() {
		if sub.IsAvailableCommand() || sub.Name() == "help" {
			rows = append(rows, row{name: sub.Name(), description: sub.Short})
		}
	}
	return h.columns(rows, h.styles.NodeType.Render)
}

// flagsUsage lists the visible flags of fs as "-s, --name type" followed
// by the usage text and a non-zero default.
func (h *HelpFormatter) flagsUsage(fs *pflag.FlagSet) string {
	var rows []row
	fs.VisitAll(func(flag *pflag.Flag) {
		if flag.Hidden {
			return
		}

		typeName, usage := pflag.UnquoteUsage(flag)

		var name strings.Builder
		if flag.Shorthand != "" && flag.ShorthandDeprecated == "" {
			fmt.Fprintf(&name, "-%s, ", flag.Shorthand)
		} else {
			name.WriteString("    ")
		}
		name.WriteString(h.styles.AttrKey.Render("--" + flag.Name))
		if typeName != "" {
			name.WriteString(" " + h.styles.Dim.Render(typeName))
		}

		if def := defaultValue(flag, typeName); def != "" {
			usage += " " + h.styles.Dim.Render("(default "+def+")")
		}

		rows = append(rows, row{name: name.String(), description: usage})
	})
	return h.columns(rows, func(s ...string) string { return strings.Join(s, " ") })
}

// defaultValue formats a flag default for display, or "" for zero values.
func defaultValue(flag *pflag.Flag, typeName string) string {
	switch flag.DefValue {
	case "", "false", "0", "[]", "<nil>":
		return ""
	}
	if typeName == "string" {
		return fmt.Sprintf("%q", flag.DefValue)
	}
	return flag.DefValue
}

// envVarsUsage lists the KUMIHAN_* overrides in name order.
func (h *HelpFormatter) envVarsUsage() string {
	vars := configloader.ListEnvVars()

	rows := make([]row, 0, len(vars))
	for _, name := range slices.Sorted(maps.Keys(vars)) {
		rows = append(rows, row{name: name, description: vars[name]})
	}
	return h.columns(rows, h.styles.AttrKey.Render)
}

// trimTrailingWhitespaces removes trailing whitespace from lines.
func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
