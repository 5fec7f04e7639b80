package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"pylib-setup/internal/config"
	"pylib-setup/internal/installer"
	"pylib-setup/internal/logger"
	"pylib-setup/internal/pip"
	"pylib-setup/internal/state"
)

// newInstallCmd runs the full install: bootstrap, optional dependency
// pre-pass, the catalog loop, then the failure log and summary.
func newInstallCmd(runner pip.Runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install every library of the catalog and log the failures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, cfg, err := loadCatalog(cmd)
			if err != nil {
				return err
			}
			return runInstall(runner, settings, cfg)
		},
	}

	addPythonFlag(cmd)
	addCatalogFlags(cmd)
	cmd.Flags().StringP(config.KeyLog, "l", config.DefaultLogPath, "Failure log, replaced on every run")
	cmd.Flags().String(config.KeyReport, "", "Write a JSON report of the run to this path")
	cmd.Flags().String(config.KeyWheelhouse, "", "Directory, archive or URL of pre-built wheels passed to pip --find-links")
	cmd.Flags().Bool(config.KeyResolveDeps, false, "Install the declared dependencies of every package first")
	cmd.Flags().Bool(config.KeyNoClear, false, "Do not clear the terminal at startup")

	return cmd
}

func runInstall(runner pip.Runner, settings config.Settings, cfg config.Config) error {
	if !settings.NoClear {
		if err := pip.ClearScreen(runner); err != nil {
			logger.Debug("[DEBUG] Could not clear screen: %v\n", err)
		}
	}

	pm := pip.NewWithRunner(settings.Python, runner)

	// The wheelhouse must exist before the first install
	if settings.Wheelhouse != "" {
		wh, err := installer.PrepareWheelhouse(settings.Wheelhouse)
		if err != nil {
			return err
		}
		defer func() {
			if err := wh.Close(); err != nil {
				logger.Warn("[WARN] Failed to clean up wheelhouse: %v\n", err)
			}
		}()
		pm.SetFindLinks(wh.Dir)
	}

	report := state.NewReport(settings.Python, catalogName(settings))

	logger.Info("[INFO] Bootstrapping pip for %s\n", settings.Python)
	if err := pm.EnsurePip(); err != nil {
		logger.Warn("[WARN] %v\n", err)
	}

	result := installer.New(pm, cfg.Extras).Run(cfg.Catalog, settings.ResolveDeps)

	written := installer.FailureLog{Path: settings.LogPath}.Flush(result.Failed)
	installer.PrintSummary(result)

	if settings.ReportPath != "" {
		report.FinishedAt = time.Now().UTC()
		report.Attempted = result.Attempted
		report.Installed = result.Installed
		report.Failed = result.Failed
		report.Dependencies = result.Dependencies
		report.LogWritten = written
		if err := state.SaveReport(settings.ReportPath, report); err == nil {
			logger.Info("[INFO] Report written to %s\n", settings.ReportPath)
		}
	}

	return nil
}
