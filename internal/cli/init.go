package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/kumihan/internal/configloader"
	"github.com/yaklabco/kumihan/internal/logging"
	"github.com/yaklabco/kumihan/pkg/config"
)

// initFlags holds the flags for the init command.
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
		Short: "Initialize a new kumihan configuration file",
		Long: `Create a new .kumihan.yml configuration file in the current directory
with sensible defaults. The file can be customized to register custom
keywords, change parser priorities, and tune caching and chunking.

Examples:
  kumihan init                      Create minimal .kumihan.yml
  kumihan init --full               Create full config with every setting documented
  kumihan init --format json        Create .kumihan.json instead
  kumihan init --output custom.yml  Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runInit(ctx, cmd.OutOrStdout(), flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with every setting documented")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"Output file path (default: .kumihan.yml or .kumihan.json)")

	return cmd
}

func runInit(ctx context.Context, out io.Writer, flags *initFlags) error {
	logger := logging.NewInteractive(out)

	if flags.format != "yaml" && flags.format != formatJSON {
		return usageError("invalid format %q: must be yaml or json", flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		if flags.format == formatJSON {
			outputPath = ".kumihan.json"
		} else {
			outputPath = ".kumihan.yml"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	backupPath, err := configloader.WriteFile(ctx, absPath, content, flags.force)
	if err != nil {
		if errors.Is(err, configloader.ErrConfigExists) {
			return usageError("file %q already exists; use --force to overwrite", outputPath)
		}
		return ioError(err)
	}
	if backupPath != "" {
		logger.Warn("replaced existing file", logging.FieldPath, outputPath, logging.FieldBackup, backupPath)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	if flags.full {
		logger.Info("full template documents every parser with its default priority")
	}
	logger.Info("run 'kumihan keywords' to see the recognized keywords")

	return nil
}
