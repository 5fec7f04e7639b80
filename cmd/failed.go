package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"pylib-setup/internal/config"
	"pylib-setup/internal/installer"
	"pylib-setup/internal/logger"
)

// newFailedCmd prints the failure log of the last run.
func newFailedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "failed",
		Short: "Show the packages that failed in the last run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.LoadSettings(cmd.Flags())
			if err != nil {
				return err
			}

			content, err := installer.FailureLog{Path: settings.LogPath}.Read()
			if err != nil {
				return err
			}
			if strings.TrimSpace(content) == "" {
				logger.Info("[INFO] No failures recorded in %s\n", settings.LogPath)
				return nil
			}

			logger.Plain("%s", content)
			return nil
		},
	}

	cmd.Flags().StringP(config.KeyLog, "l", config.DefaultLogPath, "Failure log to read")
	return cmd
}
