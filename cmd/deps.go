package cmd

import (
	"github.com/spf13/cobra"

	"pylib-setup/internal/installer"
	"pylib-setup/internal/logger"
	"pylib-setup/internal/pip"
)

// newDepsCmd prints the declared dependencies of the catalog without
// installing anything.
func newDepsCmd(runner pip.Runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Show the direct dependencies declared by the catalog's packages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, cfg, err := loadCatalog(cmd)
			if err != nil {
				return err
			}

			pm := pip.NewWithRunner(settings.Python, runner)
			in := installer.New(pm, cfg.Extras)
			deps := in.ResolveDependencies(cfg.Catalog)

			for _, dep := range deps {
				logger.Plain("%s\n", dep)
			}
			for _, name := range in.Failed() {
				logger.Warn("[WARN] No metadata for %s (is it installed?)\n", name)
			}
			return nil
		},
	}

	addPythonFlag(cmd)
	addCatalogFlags(cmd)
	return cmd
}
