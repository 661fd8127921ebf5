package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yaklabco/kumihan/internal/ui/pretty"
	"github.com/yaklabco/kumihan/pkg/config"
	"github.com/yaklabco/kumihan/pkg/parser"
	"github.com/yaklabco/kumihan/pkg/parser/builtin"
)

// parserInfo represents a registered parser in JSON output.
type parserInfo struct {
	Name        string `json:"name"`
	Priority    int    `json:"priority"`
	Default     int    `json:"default_priority"`
	Description string `json:"description"`
}

func newParsersCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "parsers",
		Short: "List registered parsers in dispatch order",
		Long: `List the notation parsers that will be tried, highest priority first,
after applying the enablement and priority overrides from configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != formatText && format != formatJSON {
				return usageError("invalid format %q: must be text or json", format)
			}

			cfg, err := loadConfig(cmd, &config.Config{})
			if err != nil {
				return err
			}

			coordinator, err := builtin.NewCoordinator(builtin.Options{Config: cfg})
			if err != nil {
				return configError(err)
			}

			infos := describeParsers(coordinator.Registrations())
			if format == formatJSON {
				return outputParsersJSON(cmd.OutOrStdout(), infos)
			}
			return outputParsersTable(cmd, infos)
		},
	}

	cmd.Flags().StringVar(&format, "format", formatText, "output format: text, json")

	return cmd
}

func describeParsers(regs []parser.Registration) []parserInfo {
	descriptions := make(map[string]string)
	for _, info := range builtin.Info() {
		descriptions[info.Name] = info.Description
	}

	infos := make([]parserInfo, 0, len(regs))
	for _, reg := range regs {
		def, _ := builtin.DefaultPriority(reg.Type)
		infos = append(infos, parserInfo{
			Name:        reg.Type.String(),
			Priority:    reg.Priority,
			Default:     def,
			Description: descriptions[reg.Type.String()],
		})
	}
	return infos
}

func outputParsersTable(cmd *cobra.Command, infos []parserInfo) error {
	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), out))
	table := pretty.NewTableFormatter(styles, terminalWidth(out))

	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		priority := strconv.Itoa(info.Priority)
		if info.Priority != info.Default {
			priority += " (default " + strconv.Itoa(info.Default) + ")"
		}
		rows = append(rows, []string{info.Name, priority, info.Description})
	}

	if _, err := io.WriteString(out, table.FormatTable([]string{"PARSER", "PRIORITY", "DESCRIPTION"}, rows)); err != nil {
		return ioError(fmt.Errorf("write parsers: %w", err))
	}
	return nil
}

func outputParsersJSON(w io.Writer, infos []parserInfo) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return ioError(fmt.Errorf("encoding parsers: %w", err))
	}
	return nil
}
