package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/kumihan/internal/logging"
)

func newVersionCommand(info BuildInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of kumihan.`,
		Run: func(cmd *cobra.Command, _ []string) {
			logging.NewInteractive(cmd.OutOrStdout()).Info("kumihan",
				logging.FieldVersion, info.Version,
				logging.FieldCommit, info.Commit,
				logging.FieldBuilt, info.Date,
			)
		},
	}

	return cmd
}
