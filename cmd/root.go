package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"pylib-setup/internal/config"
	"pylib-setup/internal/logger"
	"pylib-setup/internal/pip"
)

// NewRootCmd builds the `pylib-setup` command tree. Every external command
// (pip, ensurepip, clear) goes through runner.
func NewRootCmd(runner pip.Runner) *cobra.Command {
	// debug indicates whether debug logging should be enabled (--debug).
	var debug bool

	rootCmd := &cobra.Command{
		Use:           "pylib-setup",
		Short:         "Install a catalog of Python libraries with pip and log the failures",
		SilenceUsage:  true,
		SilenceErrors: true,

		// PersistentPreRun runs before any subcommand and sets up logging.
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(debug)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newInstallCmd(runner))
	rootCmd.AddCommand(newDepsCmd(runner))
	rootCmd.AddCommand(newCatalogCmd())
	rootCmd.AddCommand(newFailedCmd())

	return rootCmd
}

// Execute runs the CLI with the real os/exec runner.
// Configuration errors exit non-zero; package failures never do.
func Execute() {
	if err := NewRootCmd(&pip.ExecRunner{}).Execute(); err != nil {
		logger.Error("[ERROR] %v\n", err)
		os.Exit(1)
	}
}

// addCatalogFlags registers the flags selecting what to install.
func addCatalogFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(config.KeyCatalog, "c", "", "Path to a catalog YAML file (default: built-in catalog)")
	cmd.Flags().StringSlice(config.KeyCategory, nil, "Only process these categories (repeatable)")
}

// addPythonFlag registers the interpreter flag.
func addPythonFlag(cmd *cobra.Command) {
	cmd.Flags().String(config.KeyPython, config.DefaultPython(), "Python interpreter used to run pip")
}

// loadCatalog resolves settings and the selected catalog for cmd.
func loadCatalog(cmd *cobra.Command) (config.Settings, config.Config, error) {
	settings, err := config.LoadSettings(cmd.Flags())
	if err != nil {
		return config.Settings{}, config.Config{}, err
	}

	cfg, err := config.LoadConfig(settings.CatalogPath)
	if err != nil {
		return config.Settings{}, config.Config{}, err
	}

	cfg.Catalog, err = cfg.Catalog.Select(settings.Categories)
	if err != nil {
		return config.Settings{}, config.Config{}, err
	}
	return settings, cfg, nil
}

// catalogName is how the catalog source shows up in logs and reports.
func catalogName(s config.Settings) string {
	if s.CatalogPath == "" {
		return config.DefaultName
	}
	return s.CatalogPath
}
