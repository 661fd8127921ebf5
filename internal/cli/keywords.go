package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/kumihan/internal/ui/pretty"
	"github.com/yaklabco/kumihan/pkg/config"
	"github.com/yaklabco/kumihan/pkg/parser"
	"github.com/yaklabco/kumihan/pkg/parser/builtin"
	"github.com/yaklabco/kumihan/pkg/parser/keyword"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// keywordInfo represents a keyword in JSON output.
type keywordInfo struct {
	Name     string   `json:"name"`
	NodeType string   `json:"node_type"`
	Aliases  []string `json:"aliases"`
	Level    int      `json:"level,omitempty"`
	Custom   bool     `json:"custom"`
}

func newKeywordsCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "keywords",
		Short: "List recognized keywords",
		Long: `List the built-in keywords and any custom keywords from configuration,
with the node type each produces and the aliases that resolve to it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != formatText && format != formatJSON {
				return usageError("invalid format %q: must be text or json", format)
			}

			cfg, err := loadConfig(cmd, &config.Config{})
			if err != nil {
				return err
			}

			vocab := keyword.NewVocabulary()
			if err := builtin.RegisterDefaults(parser.NewCoordinator(), builtin.Options{
				Config:     cfg,
				Vocabulary: vocab,
			}); err != nil {
				return configError(err)
			}

			defs := vocab.Definitions()
			if format == formatJSON {
				return outputKeywordsJSON(cmd.OutOrStdout(), defs)
			}
			return outputKeywordsTable(cmd, defs)
		},
	}

	cmd.Flags().StringVar(&format, "format", formatText, "output format: text, json")

	return cmd
}

func outputKeywordsTable(cmd *cobra.Command, defs []keyword.Definition) error {
	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), out))
	table := pretty.NewTableFormatter(styles, terminalWidth(out))

	rows := make([][]string, 0, len(defs))
	for _, def := range defs {
		name := def.Name
		if def.Custom {
			name += " *"
		}
		nodeType := def.NodeType
		if def.Level > 0 {
			nodeType += " (level " + strconv.Itoa(def.Level) + ")"
		}
		rows = append(rows, []string{name, nodeType, strings.Join(def.Aliases, ", ")})
	}

	if _, err := io.WriteString(out, table.FormatTable([]string{"KEYWORD", "NODE TYPE", "ALIASES"}, rows)); err != nil {
		return ioError(fmt.Errorf("write keywords: %w", err))
	}
	return nil
}

// outputKeywordsJSON outputs keywords as a JSON array.
func outputKeywordsJSON(w io.Writer, defs []keyword.Definition) error {
	infos := make([]keywordInfo, 0, len(defs))
	for _, def := range defs {
		aliases := def.Aliases
		if aliases == nil {
			aliases = []string{}
		}
		infos = append(infos, keywordInfo{
			Name:     def.Name,
			NodeType: def.NodeType,
			Aliases:  aliases,
			Level:    def.Level,
			Custom:   def.Custom,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return ioError(fmt.Errorf("encoding keywords: %w", err))
	}
	return nil
}
