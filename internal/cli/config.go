package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/kumihan/internal/configloader"
	"github.com/yaklabco/kumihan/internal/logging"
	"github.com/yaklabco/kumihan/pkg/config"
)

// loadConfig resolves the configuration for cmd, merging cliCfg on top of
// the discovered files and environment. Failures carry ExitConfigError.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, error) {
	result, err := loadConfigResult(cmd, cliCfg)
	if err != nil {
		return nil, err
	}
	return result.Config, nil
}

// loadConfigResult is loadConfig that also returns the discovered paths.
func loadConfigResult(cmd *cobra.Command, cliCfg *config.Config) (*configloader.LoadResult, error) {
	logger := commandLogger(cmd)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, configError(fmt.Errorf("load configuration: %w", err))
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldPaths, loadResult.LoadedFrom)
	}

	return loadResult, nil
}

// colorMode returns the value of the global --color flag.
func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return "auto"
	}
	return mode
}

// terminalWidth returns the width of w when it is a terminal, 0 otherwise.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// isTerminalReader reports whether r is an interactive terminal.
func isTerminalReader(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// commandLogger returns the logger attached to the command's context,
// which carries the command name.
func commandLogger(cmd *cobra.Command) *log.Logger {
	return logging.FromContext(cmd.Context())
}
