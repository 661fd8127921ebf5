// Package cli provides the Cobra command structure for kumihan.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/kumihan/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root kumihan command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "kumihan",
		Short: "Parse Kumihan notation into a document tree",
		Long: `kumihan parses the Kumihan lightweight markup notation into a structured
document tree.

Block notation (#太字#text##), inline keyword directives (#見出し1 Title#),
lists and Markdown constructs are recognized by a set of notation parsers
tried in priority order, with a plain-content parser as the final fallback.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
			cmd.SetContext(logging.With(cmd.Context(), logging.FieldCommand, cmd.Name()))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newParseCommand(info))
	rootCmd.AddCommand(newKeywordsCommand())
	rootCmd.AddCommand(newParsersCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
